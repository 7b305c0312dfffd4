// Package catalog serves the template library: a compiled-in set of
// builtin German maintenance templates plus user-defined custom
// templates and categories backed by the store.
package catalog

import (
	"slices"

	"github.com/philippauer/ha-wartungsplaner/internal/model"
	"github.com/philippauer/ha-wartungsplaner/internal/store"
)

type Catalog struct {
	store *store.FileStore
}

func New(st *store.FileStore) *Catalog {
	return &Catalog{store: st}
}

// List returns the visible template library: builtin templates minus the
// hidden ids, followed by custom templates sorted by name.
func (c *Catalog) List() []model.Template {
	hidden := c.store.HiddenBuiltinTemplates()
	var out []model.Template
	for _, tpl := range BuiltinTemplates() {
		if !slices.Contains(hidden, tpl.ID) {
			out = append(out, tpl)
		}
	}
	return append(out, c.store.CustomTemplates()...)
}

// ByID resolves a template id, builtin ids first. Hidden builtin
// templates still resolve; hiding only affects listings.
func (c *Catalog) ByID(id string) (model.Template, error) {
	if tpl, ok := BuiltinTemplate(id); ok {
		return tpl, nil
	}
	tpl, ok := c.store.CustomTemplate(id)
	if !ok {
		return model.Template{}, store.ErrNotFound
	}
	return tpl, nil
}

// ByCategory filters the builtin catalog by category id.
func (c *Catalog) ByCategory(category string) []model.Template {
	var out []model.Template
	for _, tpl := range BuiltinTemplates() {
		if tpl.Category == category {
			out = append(out, tpl)
		}
	}
	return out
}

// Remove deletes a custom template, or hides a builtin one. Builtin
// templates are never deleted.
func (c *Catalog) Remove(id string) error {
	if _, ok := BuiltinTemplate(id); ok {
		return c.store.HideBuiltinTemplate(id)
	}
	return c.store.DeleteCustomTemplate(id)
}

// Restore clears all hidden builtin template ids.
func (c *Catalog) Restore() error {
	return c.store.RestoreHiddenTemplates()
}

// Categories returns the builtin categories in their fixed order,
// followed by custom categories sorted by id.
func (c *Catalog) Categories() []model.Category {
	out := model.BuiltinCategories()
	return append(out, c.store.CustomCategories()...)
}
