package model

import "time"

type TaskID = string

// Priority levels for maintenance tasks.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// IntervalUnit is the calendar unit of a task's completion interval.
type IntervalUnit string

const (
	UnitDays   IntervalUnit = "days"
	UnitWeeks  IntervalUnit = "weeks"
	UnitMonths IntervalUnit = "months"
	UnitYears  IntervalUnit = "years"
)

func (u IntervalUnit) Valid() bool {
	switch u {
	case UnitDays, UnitWeeks, UnitMonths, UnitYears:
		return true
	}
	return false
}

// Status is derived per task on every recompute pass; it is never stored.
type Status string

const (
	StatusNeverDone Status = "never_done"
	StatusOverdue   Status = "overdue"
	StatusDue       Status = "due"
	StatusDueSoon   Status = "due_soon"
	StatusDone      Status = "done"
)

// CompletionEntry is one record in a task's append-only completion history.
type CompletionEntry struct {
	Date      string    `json:"date"`
	Notes     string    `json:"notes"`
	Timestamp time.Time `json:"timestamp"`
}

// Task is the persistent maintenance task aggregate.
// Calendar dates (LastCompleted, NextDue, SnoozedUntil) are YYYY-MM-DD
// strings; nil means absent. NextDue is derived and recomputed by the store
// whenever one of its inputs changes, never set by callers.
type Task struct {
	ID                TaskID            `json:"id"`
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	Category          string            `json:"category"`
	Priority          Priority          `json:"priority"`
	IntervalValue     int               `json:"interval_value"`
	IntervalUnit      IntervalUnit      `json:"interval_unit"`
	LastCompleted     *string           `json:"last_completed"`
	CompletionHistory []CompletionEntry `json:"completion_history"`
	NextDue           *string           `json:"next_due"`
	SnoozedUntil      *string           `json:"snoozed_until"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}
