package schedule

import (
	"fmt"
	"time"

	"github.com/philippauer/ha-wartungsplaner/internal/model"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: must be YYYY-MM-DD", s)
	}
	return d, nil
}

func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// DaysBetween returns the whole days from a to b (b-a), ignoring clock time.
func DaysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// NextDue computes a task's next due date from its last completion, interval
// and optional snooze floor. A nil lastCompleted means the task was never
// completed and yields a nil due date. The snooze floor only ever pushes the
// result later, never earlier.
func NextDue(lastCompleted *string, intervalValue int, unit model.IntervalUnit, snoozedUntil *string) (*string, error) {
	if lastCompleted == nil {
		return nil, nil
	}
	base, err := ParseDate(*lastCompleted)
	if err != nil {
		return nil, err
	}

	var due time.Time
	switch unit {
	case model.UnitDays:
		due = base.AddDate(0, 0, intervalValue)
	case model.UnitWeeks:
		due = base.AddDate(0, 0, 7*intervalValue)
	case model.UnitMonths:
		due = addMonthsClamped(base, intervalValue)
	case model.UnitYears:
		due = addMonthsClamped(base, 12*intervalValue)
	default:
		return nil, fmt.Errorf("invalid interval unit %q", unit)
	}

	if snoozedUntil != nil {
		floor, err := ParseDate(*snoozedUntil)
		if err != nil {
			return nil, err
		}
		if floor.After(due) {
			due = floor
		}
	}

	out := FormatDate(due)
	return &out, nil
}

// addMonthsClamped adds months the way a calendar does: the day of month is
// clamped to the length of the target month (Jan 31 + 1 month = Feb 28/29).
// time.Time.AddDate would normalize the overflow into March instead.
func addMonthsClamped(d time.Time, months int) time.Time {
	year, month, day := d.Date()
	total := year*12 + int(month) - 1 + months
	ny, nm := total/12, time.Month(total%12+1)
	if max := daysInMonth(ny, nm); day > max {
		day = max
	}
	return time.Date(ny, nm, day, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	// Day zero of the following month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
