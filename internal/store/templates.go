package store

import (
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/philippauer/ha-wartungsplaner/internal/model"
)

// NewTemplate carries the caller-supplied fields for AddCustomTemplate;
// the validation shape matches NewTask minus history and due-date fields.
type NewTemplate struct {
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	Category      string             `json:"category"`
	Priority      model.Priority     `json:"priority"`
	IntervalValue int                `json:"interval_value"`
	IntervalUnit  model.IntervalUnit `json:"interval_unit"`
}

// AddCustomTemplate validates, generates an id and persists the template.
func (s *FileStore) AddCustomTemplate(in NewTemplate) (model.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return model.Template{}, invalidf("name", "must not be empty")
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
		return model.Template{}, err
	}

	tpl := model.Template{
		ID:            uuid.NewString(),
		Name:          in.Name,
		Description:   in.Description,
		Category:      in.Category,
		Priority:      in.Priority,
		IntervalValue: in.IntervalValue,
		IntervalUnit:  in.IntervalUnit,
		Builtin:       false,
	}

	s.s.CustomTemplates[tpl.ID] = tpl
	if err := s.saveLocked(); err != nil {
		delete(s.s.CustomTemplates, tpl.ID)
		return model.Template{}, err
	}
	s.logger.Printf("added custom template %q (%s)", tpl.Name, tpl.ID)
	return tpl, nil
}

// DeleteCustomTemplate removes a custom template.
func (s *FileStore) DeleteCustomTemplate(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.s.CustomTemplates[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.s.CustomTemplates, id)
	if err := s.saveLocked(); err != nil {
		s.s.CustomTemplates[id] = prev
		return err
	}
	return nil
}

// HideBuiltinTemplate records a builtin template id as hidden. Builtin
// templates are never deleted, only excluded from listings.
func (s *FileStore) HideBuiltinTemplate(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.s.HiddenBuiltinTemplates, id) {
		return nil
	}
	s.s.HiddenBuiltinTemplates = append(s.s.HiddenBuiltinTemplates, id)
	if err := s.saveLocked(); err != nil {
		s.s.HiddenBuiltinTemplates = s.s.HiddenBuiltinTemplates[:len(s.s.HiddenBuiltinTemplates)-1]
		return err
	}
	return nil
}

// RestoreHiddenTemplates clears the hidden builtin id set.
func (s *FileStore) RestoreHiddenTemplates() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.s.HiddenBuiltinTemplates
	if len(prev) == 0 {
		return nil
	}
	s.s.HiddenBuiltinTemplates = []string{}
	if err := s.saveLocked(); err != nil {
		s.s.HiddenBuiltinTemplates = prev
		return err
	}
	s.logger.Printf("restored %d hidden builtin templates", len(prev))
	return nil
}
