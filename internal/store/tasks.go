package store

import (
	"strings"

	"github.com/google/uuid"

	"github.com/philippauer/ha-wartungsplaner/internal/model"
	"github.com/philippauer/ha-wartungsplaner/internal/schedule"
)

// NewTask carries the caller-supplied fields for AddTask. Zero values for
// category, priority and interval fall back to the catalog defaults.
type NewTask struct {
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	Category      string             `json:"category"`
	Priority      model.Priority     `json:"priority"`
	IntervalValue int                `json:"interval_value"`
	IntervalUnit  model.IntervalUnit `json:"interval_unit"`
	LastCompleted *string            `json:"last_completed,omitempty"`
}

// TaskPatch is a partial task update; nil pointer means "no change".
// An empty LastCompleted string clears the completion date.
type TaskPatch struct {
	Name          *string             `json:"name,omitempty"`
	Description   *string             `json:"description,omitempty"`
	Category      *string             `json:"category,omitempty"`
	Priority      *model.Priority     `json:"priority,omitempty"`
	IntervalValue *int                `json:"interval_value,omitempty"`
	IntervalUnit  *model.IntervalUnit `json:"interval_unit,omitempty"`
	LastCompleted *string             `json:"last_completed,omitempty"`
}

func (p TaskPatch) touchesDueDate() bool {
	return p.IntervalValue != nil || p.IntervalUnit != nil || p.LastCompleted != nil
}

// AddTask validates the fields, generates an id, computes next_due and
// persists the new task.
func (s *FileStore) AddTask(in NewTask) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return model.Task{}, invalidf("name", "must not be empty")
	}
	if in.Category == "" {
		in.Category = model.CategoryOther
	}
	if in.Priority == "" {
		in.Priority = model.PriorityMedium
	}
	if in.IntervalValue == 0 {
		in.IntervalValue = 1
	}
	if in.IntervalUnit == "" {
		in.IntervalUnit = model.UnitMonths
	}
	if err := s.validateTaskFieldsLocked(in.Category, in.Priority, in.IntervalValue, in.IntervalUnit); err != nil {
		return model.Task{}, err
	}
	if in.LastCompleted != nil {
		if _, err := schedule.ParseDate(*in.LastCompleted); err != nil {
			return model.Task{}, invalidf("last_completed", "%v", err)
		}
	}

	now := s.clock.Now()
	t := model.Task{
		ID:                uuid.NewString(),
		Name:              in.Name,
		Description:       in.Description,
		Category:          in.Category,
		Priority:          in.Priority,
		IntervalValue:     in.IntervalValue,
		IntervalUnit:      in.IntervalUnit,
		LastCompleted:     in.LastCompleted,
		CompletionHistory: []model.CompletionEntry{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	next, err := schedule.NextDue(t.LastCompleted, t.IntervalValue, t.IntervalUnit, nil)
	if err != nil {
		return model.Task{}, err
	}
	t.NextDue = next

	s.s.Tasks[t.ID] = t
	if err := s.saveLocked(); err != nil {
		delete(s.s.Tasks, t.ID)
		return model.Task{}, err
	}
	s.logger.Printf("added task %q (%s)", t.Name, t.ID)
	return cloneTask(t), nil
}

// UpdateTask merges the provided fields into the task, recomputes next_due
// when a due-affecting field changed and persists.
func (s *FileStore) UpdateTask(id model.TaskID, p TaskPatch) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.s.Tasks[id]
	if !ok {
		return model.Task{}, ErrNotFound
	}
	t := cloneTask(prev)

	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return model.Task{}, invalidf("name", "must not be empty")
		}
		t.Name = name
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.IntervalValue != nil {
		t.IntervalValue = *p.IntervalValue
	}
	if p.IntervalUnit != nil {
		t.IntervalUnit = *p.IntervalUnit
	}
	if p.LastCompleted != nil {
		if *p.LastCompleted == "" {
			t.LastCompleted = nil
		} else {
			if _, err := schedule.ParseDate(*p.LastCompleted); err != nil {
				return model.Task{}, invalidf("last_completed", "%v", err)
			}
			v := *p.LastCompleted
			t.LastCompleted = &v
		}
	}
	if err := s.validateTaskFieldsLocked(t.Category, t.Priority, t.IntervalValue, t.IntervalUnit); err != nil {
		return model.Task{}, err
	}

	if p.touchesDueDate() {
		next, err := schedule.NextDue(t.LastCompleted, t.IntervalValue, t.IntervalUnit, t.SnoozedUntil)
		if err != nil {
			return model.Task{}, err
		}
		t.NextDue = next
	}
	t.UpdatedAt = s.clock.Now()

	s.s.Tasks[id] = t
	if err := s.saveLocked(); err != nil {
		s.s.Tasks[id] = prev
		return model.Task{}, err
	}
	return cloneTask(t), nil
}

// DeleteTask removes the task from the aggregate.
func (s *FileStore) DeleteTask(id model.TaskID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.s.Tasks[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.s.Tasks, id)
	if err := s.saveLocked(); err != nil {
		s.s.Tasks[id] = prev
		return err
	}
	s.logger.Printf("deleted task %q (%s)", prev.Name, id)
	return nil
}

// CompleteTask appends a completion entry dated today, sets last_completed,
// clears any snooze and recomputes next_due.
func (s *FileStore) CompleteTask(id model.TaskID, notes string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.s.Tasks[id]
	if !ok {
		return model.Task{}, ErrNotFound
	}
	t := cloneTask(prev)

	now := s.clock.Now()
	today := schedule.FormatDate(now)

	t.CompletionHistory = append(t.CompletionHistory, model.CompletionEntry{
		Date:      today,
		Notes:     notes,
		Timestamp: now,
	})
	t.LastCompleted = &today
	t.SnoozedUntil = nil

	next, err := schedule.NextDue(t.LastCompleted, t.IntervalValue, t.IntervalUnit, nil)
	if err != nil {
		return model.Task{}, err
	}
	t.NextDue = next
	t.UpdatedAt = now

	s.s.Tasks[id] = t
	if err := s.saveLocked(); err != nil {
		s.s.Tasks[id] = prev
		return model.Task{}, err
	}
	s.logger.Printf("completed task %q (%s)", t.Name, id)
	return cloneTask(t), nil
}

// SnoozeTask sets the snooze floor and recomputes next_due against the
// existing last_completed and interval.
func (s *FileStore) SnoozeTask(id model.TaskID, untilDate string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := schedule.ParseDate(untilDate); err != nil {
		return model.Task{}, invalidf("until_date", "%v", err)
	}

	prev, ok := s.s.Tasks[id]
	if !ok {
		return model.Task{}, ErrNotFound
	}
	t := cloneTask(prev)

	t.SnoozedUntil = &untilDate
	next, err := schedule.NextDue(t.LastCompleted, t.IntervalValue, t.IntervalUnit, t.SnoozedUntil)
	if err != nil {
		return model.Task{}, err
	}
	t.NextDue = next
	t.UpdatedAt = s.clock.Now()

	s.s.Tasks[id] = t
	if err := s.saveLocked(); err != nil {
		s.s.Tasks[id] = prev
		return model.Task{}, err
	}
	s.logger.Printf("snoozed task %q until %s", t.Name, untilDate)
	return cloneTask(t), nil
}

func (s *FileStore) validateTaskFieldsLocked(category string, priority model.Priority, intervalValue int, unit model.IntervalUnit) error {
	if !model.IsBuiltinCategory(category) {
		if _, ok := s.s.CustomCategories[category]; !ok {
			return invalidf("category", "unknown category %q", category)
		}
	}
	if !priority.Valid() {
		return invalidf("priority", "unknown priority %q", priority)
	}
	if intervalValue < 1 {
		return invalidf("interval_value", "must be >= 1")
	}
	if !unit.Valid() {
		return invalidf("interval_unit", "unknown unit %q", unit)
	}
	return nil
}
