package model

// Template is a task blueprint. Builtin templates are compiled into the
// catalog and can only be hidden; custom templates live in the store and can
// be deleted but not edited.
type Template struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Category      string       `json:"category"`
	Priority      Priority     `json:"priority"`
	IntervalValue int          `json:"interval_value"`
	IntervalUnit  IntervalUnit `json:"interval_unit"`
	Builtin       bool         `json:"builtin"`
}
