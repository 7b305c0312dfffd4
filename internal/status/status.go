// Package status derives due-state from stored tasks: per-task views,
// aggregate stats, and single-shot transition events.
package status

import (
	"sort"
	"time"

	"github.com/philippauer/ha-wartungsplaner/internal/model"
	"github.com/philippauer/ha-wartungsplaner/internal/schedule"
)

// Event types fired on status transitions.
const (
	EventTaskDue     = "task_due"
	EventTaskOverdue = "task_overdue"
)

// TaskView is a task enriched with its derived due-state.
type TaskView struct {
	model.Task
	Status       model.Status `json:"status"`
	DaysUntilDue *int         `json:"days_until_due"`
}

// Stats buckets every task by status.
type Stats struct {
	Total     int `json:"total"`
	Overdue   int `json:"overdue"`
	DueSoon   int `json:"due_soon"`
	Due       int `json:"due"`
	Done      int `json:"done"`
	NeverDone int `json:"never_done"`
}

// Event is fired when a task transitions into due or overdue.
type Event struct {
	Type     string         `json:"type"`
	TaskID   string         `json:"task_id"`
	TaskName string         `json:"task_name"`
	Category string         `json:"category"`
	Priority model.Priority `json:"priority"`
	NextDue  string         `json:"next_due"`
}

// Snapshot is one consistent recompute result.
type Snapshot struct {
	Tasks       map[string]TaskView `json:"tasks"`
	Stats       Stats               `json:"stats"`
	GeneratedAt time.Time           `json:"generated_at"`
}

// Compute derives a single task's status and days-until-due for the given
// day. A task with no due date is never_done; due_soon covers everything
// up to and including today+dueSoonDays.
func Compute(nextDue *string, today time.Time, dueSoonDays int) (model.Status, *int) {
	if nextDue == nil {
		return model.StatusNeverDone, nil
	}
	due, err := schedule.ParseDate(*nextDue)
	if err != nil {
		// A malformed stored date never escapes the store; treat it as
		// never scheduled rather than crash the refresh loop.
		return model.StatusNeverDone, nil
	}

	days := schedule.DaysBetween(today, due)
	switch {
	case days < 0:
		return model.StatusOverdue, &days
	case days == 0:
		return model.StatusDue, &days
	case days <= dueSoonDays:
		return model.StatusDueSoon, &days
	default:
		return model.StatusDone, &days
	}
}

// Recompute derives the full snapshot plus the transition events implied
// by prev, and returns the pruned status map to carry into the next run.
// A task seen for the first time records its status but fires nothing.
// Events come out sorted by task id so the result is deterministic.
func Recompute(tasks map[string]model.Task, dueSoonDays int, today time.Time, prev map[string]model.Status) (Snapshot, []Event, map[string]model.Status) {
	snap := Snapshot{
		Tasks:       make(map[string]TaskView, len(tasks)),
		GeneratedAt: today,
	}
	next := make(map[string]model.Status, len(tasks))
	var events []Event

	ids := make([]string, 0, len(tasks))
	for id := range tasks {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		t := tasks[id]
		st, days := Compute(t.NextDue, today, dueSoonDays)
		snap.Tasks[id] = TaskView{Task: t, Status: st, DaysUntilDue: days}
		next[id] = st

		snap.Stats.Total++
		switch st {
		case model.StatusOverdue:
			snap.Stats.Overdue++
		case model.StatusDueSoon:
			snap.Stats.DueSoon++
		case model.StatusDue:
			snap.Stats.Due++
		case model.StatusDone:
			snap.Stats.Done++
		case model.StatusNeverDone:
			snap.Stats.NeverDone++
		}

		prevStatus, seen := prev[id]
		if !seen || prevStatus == st {
			continue
		}
		switch st {
		case model.StatusDue, model.StatusOverdue:
			typ := EventTaskDue
			if st == model.StatusOverdue {
				typ = EventTaskOverdue
			}
			nextDue := ""
			if t.NextDue != nil {
				nextDue = *t.NextDue
			}
			events = append(events, Event{
				Type:     typ,
				TaskID:   id,
				TaskName: t.Name,
				Category: t.Category,
				Priority: t.Priority,
				NextDue:  nextDue,
			})
		}
	}

	return snap, events, next
}
