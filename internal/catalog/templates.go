package catalog

import "github.com/philippauer/ha-wartungsplaner/internal/model"

// builtinTemplates is the compiled-in catalog of German household
// maintenance tasks, spanning all ten builtin categories.
var builtinTemplates = []model.Template{
	// --- Heizung ---
	{
		ID:            "heizung_wartung",
		Name:          "Heizungsanlage warten lassen",
		Description:   "Jährliche Wartung der Heizungsanlage durch Fachbetrieb (Brenner, Filter, Abgaswerte)",
		Category:      model.CategoryHeating,
		Priority:      model.PriorityHigh,
		IntervalValue: 1,
		IntervalUnit:  model.UnitYears,
	},
	{
		ID:            "heizung_entlueften",
		Name:          "Heizkörper entlüften",
		Description:   "Alle Heizkörper entlüften, um Luftblasen zu entfernen und gleichmäßige Wärmeverteilung sicherzustellen",
		Category:      model.CategoryHeating,
		Priority:      model.PriorityMedium,
		IntervalValue: 1,
		IntervalUnit:  model.UnitYears,
	},
	{
		ID:            "heizung_thermostate",
		Name:          "Thermostatventile prüfen",
		Description:   "Thermostatventile auf korrekte Funktion prüfen, Gängigkeit testen",
		Category:      model.CategoryHeating,
		Priority:      model.PriorityLow,
		IntervalValue: 1,
		IntervalUnit:  model.UnitYears,
	},
	// --- Sicherheit ---
	{
		ID:            "rauchmelder_test",
		Name:          "Rauchmelder testen",
		Description:   "Alle Rauchmelder auf Funktion testen (Testknopf drücken) und Batterien prüfen",
		Category:      model.CategorySafety,
		Priority:      model.PriorityCritical,
		IntervalValue: 3,
		IntervalUnit:  model.UnitMonths,
	},
	{
		ID:            "rauchmelder_batterie",
		Name:          "Rauchmelder-Batterien wechseln",
		Description:   "Batterien aller Rauchmelder austauschen (auch bei 10-Jahres-Batterien Ablaufdatum prüfen)",
		Category:      model.CategorySafety,
		Priority:      model.PriorityCritical,
		IntervalValue: 1,
		IntervalUnit:  model.UnitYears,
	},
	{
		ID:            "feuerloescher",
		Name:          "Feuerlöscher prüfen",
		Description:   "Feuerlöscher auf Druck, Verfallsdatum und Zugänglichkeit prüfen",
		Category:      model.CategorySafety,
		Priority:      model.PriorityHigh,
		IntervalValue: 2,
		IntervalUnit:  model.UnitYears,
	},
	{
		ID:            "erste_hilfe",
		Name:          "Erste-Hilfe-Kasten prüfen",
		Description:   "Inhalt des Erste-Hilfe-Kastens auf Vollständigkeit und Haltbarkeit prüfen",
		Category:      model.CategorySafety,
		Priority:      model.PriorityMedium,
		IntervalValue: 1,
		IntervalUnit:  model.UnitYears,
	},
	// --- Sanitär ---
	{
		ID:            "wasserleitungen",
		Name:          "Wasserleitungen auf Lecks prüfen",
		Description:   "Sichtbare Wasserleitungen und Anschlüsse auf Undichtigkeiten kontrollieren",
		Category:      model.CategoryPlumbing,
		Priority:      model.PriorityMedium,
		IntervalValue: 6,
		IntervalUnit:  model.UnitMonths,
	},
	{
		ID:            "silikonfugen",
		Name:          "Silikonfugen im Bad prüfen",
		Description:   "Silikonfugen in Bad und Küche auf Schimmel und Risse kontrollieren, bei Bedarf erneuern",
		Category:      model.CategoryPlumbing,
		Priority:      model.PriorityMedium,
		IntervalValue: 1,
		IntervalUnit:  model.UnitYears,
	},
	{
		ID:            "abfluesse",
		Name:          "Abflüsse reinigen",
		Description:   "Abflüsse in Bad und Küche reinigen, Siebe säubern, Siphon bei Bedarf durchspülen",
		Category:      model.CategoryPlumbing,
		Priority:      model.PriorityLow,
		IntervalValue: 3,
		IntervalUnit:  model.UnitMonths,
	},
	// --- Geräte ---
	{
		ID:            "waschmaschine",
		Name:          "Waschmaschine reinigen",
		Description:   "Waschmaschine mit Maschinenreiniger oder 90°C-Leerwäsche reinigen, Flusensieb säubern, Dichtung trocknen",
		Category:      model.CategoryAppliances,
		Priority:      model.PriorityMedium,
		IntervalValue: 2,
		IntervalUnit:  model.UnitMonths,
	},
	{
		ID:            "spuelmaschine",
		Name:          "Spülmaschine reinigen",
		Description:   "Spülmaschine mit Maschinenreiniger durchlaufen lassen, Sieb und Sprüharme reinigen",
		Category:      model.CategoryAppliances,
		Priority:      model.PriorityMedium,
		IntervalValue: 2,
		IntervalUnit:  model.UnitMonths,
	},
	{
		ID:            "kuehlschrank",
		Name:          "Kühlschrank abtauen und reinigen",
		Description:   "Kühlschrank komplett ausräumen, abtauen (falls nötig), reinigen und Dichtungen prüfen",
		Category:      model.CategoryAppliances,
		Priority:      model.PriorityLow,
		IntervalValue: 6,
		IntervalUnit:  model.UnitMonths,
	},
	{
		ID:            "dunstabzug",
		Name:          "Dunstabzugshaube reinigen",
		Description:   "Filter der Dunstabzugshaube reinigen oder austauschen, Fettablagerungen entfernen",
		Category:      model.CategoryAppliances,
		Priority:      model.PriorityMedium,
		IntervalValue: 3,
		IntervalUnit:  model.UnitMonths,
	},
	{
		ID:            "trockner_flusensieb",
		Name:          "Trockner-Flusensieb reinigen",
		Description:   "Flusensieb und Wärmetauscher des Trockners reinigen",
		Category:      model.CategoryAppliances,
		Priority:      model.PriorityMedium,
		IntervalValue: 1,
		IntervalUnit:  model.UnitMonths,
	},
	// --- Außen ---
	{
		ID:            "dachrinne",
		Name:          "Dachrinne reinigen",
		Description:   "Dachrinnen und Fallrohre von Laub und Schmutz befreien",
		Category:      model.CategoryExterior,
		Priority:      model.PriorityHigh,
		IntervalValue: 6,
		IntervalUnit:  model.UnitMonths,
	},
	{
		ID:            "fassade",
		Name:          "Fassade kontrollieren",
		Description:   "Hausfassade auf Risse, Abplatzungen und Schimmelbefall kontrollieren",
		Category:      model.CategoryExterior,
		Priority:      model.PriorityMedium,
		IntervalValue: 1,
		IntervalUnit:  model.UnitYears,
	},
	{
		ID:            "fenster_dichtungen",
		Name:          "Fensterdichtungen prüfen",
		Description:   "Fensterdichtungen auf Risse und Versprödung prüfen, bei Bedarf Dichtungen austauschen oder pflegen",
		Category:      model.CategoryExterior,
		Priority:      model.PriorityMedium,
		IntervalValue: 1,
		IntervalUnit:  model.UnitYears,
	},
	{
		ID:            "rolllaeden",
		Name:          "Rollläden warten",
		Description:   "Rollläden auf Funktion prüfen, Führungsschienen reinigen und Mechanik schmieren",
		Category:      model.CategoryExterior,
		Priority:      model.PriorityLow,
		IntervalValue: 1,
		IntervalUnit:  model.UnitYears,
	},
	// --- Innen ---
	{
		ID:            "lueftungsanlage",
		Name:          "Lüftungsfilter wechseln",
		Description:   "Filter der kontrollierten Wohnraumlüftung wechseln, Lüftungskanäle bei Bedarf reinigen",
		Category:      model.CategoryInterior,
		Priority:      model.PriorityHigh,
		IntervalValue: 6,
		IntervalUnit:  model.UnitMonths,
	},
	{
		ID:            "tuerscharniere",
		Name:          "Türscharniere ölen",
		Description:   "Alle Türscharniere und Schlösser mit geeignetem Öl schmieren",
		Category:      model.CategoryInterior,
		Priority:      model.PriorityLow,
		IntervalValue: 1,
		IntervalUnit:  model.UnitYears,
	},
	{
		ID:            "wasserhahn_perlator",
		Name:          "Perlatoren entkalken",
		Description:   "Perlatoren (Strahlregler) an allen Wasserhähnen abschrauben und entkalken",
		Category:      model.CategoryInterior,
		Priority:      model.PriorityLow,
		IntervalValue: 6,
		IntervalUnit:  model.UnitMonths,
	},
	// --- Elektrik ---
	{
		ID:            "fi_schalter",
		Name:          "FI-Schutzschalter testen",
		Description:   "Alle FI-Schutzschalter (RCD) im Sicherungskasten durch Drücken der Prüftaste testen",
		Category:      model.CategoryElectrical,
		Priority:      model.PriorityCritical,
		IntervalValue: 6,
		IntervalUnit:  model.UnitMonths,
	},
	{
		ID:            "steckdosen",
		Name:          "Steckdosen und Schalter prüfen",
		Description:   "Alle Steckdosen und Schalter auf festen Sitz, Verfärbungen und Wackelkontakte prüfen",
		Category:      model.CategoryElectrical,
		Priority:      model.PriorityMedium,
		IntervalValue: 1,
		IntervalUnit:  model.UnitYears,
	},
	{
		ID:            "blitzschutz",
		Name:          "Blitzschutzanlage prüfen lassen",
		Description:   "Blitzschutzanlage (falls vorhanden) durch Fachbetrieb prüfen lassen",
		Category:      model.CategoryElectrical,
		Priority:      model.PriorityHigh,
		IntervalValue: 4,
		IntervalUnit:  model.UnitYears,
	},
	// --- Garten ---
	{
		ID:            "garten_bewaesserung",
		Name:          "Bewässerungsanlage winterfest machen",
		Description:   "Bewässerungssystem entleeren und winterfest machen (vor dem ersten Frost)",
		Category:      model.CategoryGarden,
		Priority:      model.PriorityHigh,
		IntervalValue: 1,
		IntervalUnit:  model.UnitYears,
	},
	{
		ID:            "garten_hecke",
		Name:          "Hecke schneiden",
		Description:   "Hecken in Form schneiden (Achtung: Vogelschutzzeiten beachten, März-September nur Formschnitt)",
		Category:      model.CategoryGarden,
		Priority:      model.PriorityMedium,
		IntervalValue: 6,
		IntervalUnit:  model.UnitMonths,
	},
	{
		ID:            "garten_rasenmaehen",
		Name:          "Rasenmäher warten",
		Description:   "Rasenmäher-Messer schärfen, Ölstand prüfen, Luftfilter reinigen, Zündkerze prüfen",
		Category:      model.CategoryGarden,
		Priority:      model.PriorityMedium,
		IntervalValue: 1,
		IntervalUnit:  model.UnitYears,
	},
	// --- Reinigung ---
	{
		ID:            "matratze",
		Name:          "Matratze reinigen und wenden",
		Description:   "Matratze absaugen, Flecken behandeln und wenden oder drehen",
		Category:      model.CategoryCleaning,
		Priority:      model.PriorityLow,
		IntervalValue: 3,
		IntervalUnit:  model.UnitMonths,
	},
	{
		ID:            "fenster_putzen",
		Name:          "Fenster putzen",
		Description:   "Alle Fenster (innen und außen) gründlich reinigen",
		Category:      model.CategoryCleaning,
		Priority:      model.PriorityLow,
		IntervalValue: 3,
		IntervalUnit:  model.UnitMonths,
	},
	{
		ID:            "teppich_reinigung",
		Name:          "Teppiche grundreinigen",
		Description:   "Teppiche und Teppichböden mit Teppichreiniger oder professionell reinigen lassen",
		Category:      model.CategoryCleaning,
		Priority:      model.PriorityLow,
		IntervalValue: 1,
		IntervalUnit:  model.UnitYears,
	},
}

// BuiltinTemplates returns the full builtin catalog, each entry tagged
// builtin.
func BuiltinTemplates() []model.Template {
	out := make([]model.Template, len(builtinTemplates))
	for i, tpl := range builtinTemplates {
		tpl.Builtin = true
		out[i] = tpl
	}
	return out
}

// BuiltinTemplate returns the builtin template with the given id.
func BuiltinTemplate(id string) (model.Template, bool) {
	for _, tpl := range builtinTemplates {
		if tpl.ID == id {
			tpl.Builtin = true
			return tpl, true
		}
	}
	return model.Template{}, false
}
