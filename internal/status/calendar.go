package status

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/philippauer/ha-wartungsplaner/internal/model"
	"github.com/philippauer/ha-wartungsplaner/internal/schedule"
)

const icsDateLayout = "20060102"

// BuildCalendarICS renders every scheduled task as an all-day iCalendar
// event. Tasks without a due date are skipped; events are ordered by task
// id so the feed is stable across runs.
func BuildCalendarICS(tasks map[string]model.Task, now time.Time) string {
	ids := make([]string, 0, len(tasks))
	for id := range tasks {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Wartungsplaner//Maintenance Calendar//DE",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"X-WR-CALNAME:Wartungsplaner",
	}

	stamp := now.UTC().Format("20060102T150405Z")
	for _, id := range ids {
		t := tasks[id]
		if t.NextDue == nil {
			continue
		}
		due, err := schedule.ParseDate(*t.NextDue)
		if err != nil {
			continue
		}
		end := due.AddDate(0, 0, 1)

		lines = append(lines,
			"BEGIN:VEVENT",
			"UID:"+escapeICSText(fmt.Sprintf("task-%s@wartungsplaner", id)),
			"DTSTAMP:"+stamp,
			"SUMMARY:"+escapeICSText(t.Name),
			"DTSTART;VALUE=DATE:"+due.Format(icsDateLayout),
			"DTEND;VALUE=DATE:"+end.Format(icsDateLayout),
			"CATEGORIES:"+escapeICSText(t.Category),
		)
		if desc := strings.TrimSpace(t.Description); desc != "" {
			lines = append(lines, "DESCRIPTION:"+escapeICSText(desc))
		}
		if rrule := intervalToICSRRULE(t.IntervalValue, t.IntervalUnit); rrule != "" {
			lines = append(lines, "RRULE:"+rrule)
		}
		lines = append(lines, "END:VEVENT")
	}

	lines = append(lines, "END:VCALENDAR", "")
	return strings.Join(lines, "\r\n")
}

func intervalToICSRRULE(value int, unit model.IntervalUnit) string {
	if value <= 0 {
		value = 1
	}
	var freq string
	switch unit {
	case model.UnitDays:
		freq = "DAILY"
	case model.UnitWeeks:
		freq = "WEEKLY"
	case model.UnitMonths:
		freq = "MONTHLY"
	case model.UnitYears:
		freq = "YEARLY"
	default:
		return ""
	}
	return fmt.Sprintf("FREQ=%s;INTERVAL=%d", freq, value)
}

func escapeICSText(s string) string {
	repl := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
		"\r", "\\n",
	)
	return repl.Replace(s)
}
