package model

// Builtin category ids. Task.Category holds one of these or the id of a
// custom category.
const (
	CategoryHeating    = "heating"
	CategorySafety     = "safety"
	CategoryPlumbing   = "plumbing"
	CategoryAppliances = "appliances"
	CategoryExterior   = "exterior"
	CategoryInterior   = "interior"
	CategoryElectrical = "electrical"
	CategoryGarden     = "garden"
	CategoryCleaning   = "cleaning"
	CategoryOther      = "other"
)

// BuiltinCategoryIDs lists the fixed categories in display order.
var BuiltinCategoryIDs = []string{
	CategoryHeating,
	CategorySafety,
	CategoryPlumbing,
	CategoryAppliances,
	CategoryExterior,
	CategoryInterior,
	CategoryElectrical,
	CategoryGarden,
	CategoryCleaning,
	CategoryOther,
}

func IsBuiltinCategory(id string) bool {
	switch id {
	case CategoryHeating, CategorySafety, CategoryPlumbing, CategoryAppliances,
		CategoryExterior, CategoryInterior, CategoryElectrical, CategoryGarden,
		CategoryCleaning, CategoryOther:
		return true
	}
	return false
}

// Category carries the bilingual labels and icon of a task category.
// Builtin entries come from the compiled-in tables below; custom entries
// live in the store.
type Category struct {
	ID      string `json:"id"`
	NameDE  string `json:"name_de"`
	NameEN  string `json:"name_en"`
	Icon    string `json:"icon"`
	Builtin bool   `json:"builtin"`
}

var categoryLabels = map[string][2]string{
	CategoryHeating:    {"Heizung", "Heating"},
	CategorySafety:     {"Sicherheit", "Safety"},
	CategoryPlumbing:   {"Sanitär", "Plumbing"},
	CategoryAppliances: {"Geräte", "Appliances"},
	CategoryExterior:   {"Außen", "Exterior"},
	CategoryInterior:   {"Innen", "Interior"},
	CategoryElectrical: {"Elektrik", "Electrical"},
	CategoryGarden:     {"Garten", "Garden"},
	CategoryCleaning:   {"Reinigung", "Cleaning"},
	CategoryOther:      {"Sonstiges", "Other"},
}

var categoryIcons = map[string]string{
	CategoryHeating:    "mdi:radiator",
	CategorySafety:     "mdi:shield-check",
	CategoryPlumbing:   "mdi:water-pump",
	CategoryAppliances: "mdi:washing-machine",
	CategoryExterior:   "mdi:home-roof",
	CategoryInterior:   "mdi:sofa",
	CategoryElectrical: "mdi:flash",
	CategoryGarden:     "mdi:flower",
	CategoryCleaning:   "mdi:broom",
	CategoryOther:      "mdi:dots-horizontal",
}

const DefaultCategoryIcon = "mdi:dots-horizontal"

// BuiltinCategory returns the compiled-in category for id.
func BuiltinCategory(id string) (Category, bool) {
	labels, ok := categoryLabels[id]
	if !ok {
		return Category{}, false
	}
	return Category{
		ID:      id,
		NameDE:  labels[0],
		NameEN:  labels[1],
		Icon:    categoryIcons[id],
		Builtin: true,
	}, true
}

// BuiltinCategories returns all fixed categories in display order.
func BuiltinCategories() []Category {
	out := make([]Category, 0, len(BuiltinCategoryIDs))
	for _, id := range BuiltinCategoryIDs {
		c, _ := BuiltinCategory(id)
		out = append(out, c)
	}
	return out
}
