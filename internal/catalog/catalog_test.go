package catalog

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philippauer/ha-wartungsplaner/internal/model"
	"github.com/philippauer/ha-wartungsplaner/internal/schedule"
	"github.com/philippauer/ha-wartungsplaner/internal/store"
)

func newCatalogForTest(t *testing.T) (*Catalog, *store.FileStore) {
	t.Helper()
	clock := schedule.NewFakeClock(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC))
	st, err := store.New(t.TempDir(), clock, log.New(io.Discard, "", 0))
	require.NoError(t, err)
	return New(st), st
}

func TestBuiltinCatalogShape(t *testing.T) {
	all := BuiltinTemplates()
	require.Len(t, all, 31)

	seen := map[string]bool{}
	for _, tpl := range all {
		assert.True(t, tpl.Builtin, "builtin template %s must be tagged builtin", tpl.ID)
		assert.False(t, seen[tpl.ID], "duplicate builtin id %s", tpl.ID)
		seen[tpl.ID] = true
		assert.NotEmpty(t, tpl.Name)
		assert.True(t, model.IsBuiltinCategory(tpl.Category), "template %s has unknown category %s", tpl.ID, tpl.Category)
		assert.True(t, tpl.Priority.Valid())
		assert.True(t, tpl.IntervalUnit.Valid())
		assert.GreaterOrEqual(t, tpl.IntervalValue, 1)
	}

	smoke, ok := BuiltinTemplate("rauchmelder_test")
	require.True(t, ok)
	assert.Equal(t, model.CategorySafety, smoke.Category)
	assert.Equal(t, model.PriorityCritical, smoke.Priority)
	assert.Equal(t, 3, smoke.IntervalValue)
	assert.Equal(t, model.UnitMonths, smoke.IntervalUnit)
}

func TestListMergesBuiltinAndCustom(t *testing.T) {
	cat, st := newCatalogForTest(t)

	_, err := st.AddCustomTemplate(store.NewTemplate{
		Name:          "Pool-Filter wechseln",
		Category:      model.CategoryOther,
		IntervalValue: 2,
		IntervalUnit:  model.UnitMonths,
	})
	require.NoError(t, err)

	all := cat.List()
	require.Len(t, all, len(BuiltinTemplates())+1)
	// custom entries trail the builtin block
	last := all[len(all)-1]
	assert.Equal(t, "Pool-Filter wechseln", last.Name)
	assert.False(t, last.Builtin)
}

func TestListExcludesHiddenBuiltins(t *testing.T) {
	cat, _ := newCatalogForTest(t)

	require.NoError(t, cat.Remove("dachrinne"))

	for _, tpl := range cat.List() {
		assert.NotEqual(t, "dachrinne", tpl.ID)
	}
	require.Len(t, cat.List(), len(BuiltinTemplates())-1)

	// hidden builtins still resolve by id
	tpl, err := cat.ByID("dachrinne")
	require.NoError(t, err)
	assert.True(t, tpl.Builtin)
}

func TestRemoveAndRestore(t *testing.T) {
	cat, st := newCatalogForTest(t)

	custom, err := st.AddCustomTemplate(store.NewTemplate{Name: "Zisterne prüfen"})
	require.NoError(t, err)

	require.NoError(t, cat.Remove(custom.ID))
	_, err = cat.ByID(custom.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, cat.Remove("fassade"))
	require.NoError(t, cat.Remove("rolllaeden"))
	require.NoError(t, cat.Restore())
	assert.Len(t, cat.List(), len(BuiltinTemplates()))

	assert.ErrorIs(t, cat.Remove("no-such-template"), store.ErrNotFound)
}

func TestByID(t *testing.T) {
	cat, st := newCatalogForTest(t)

	tpl, err := cat.ByID("heizung_wartung")
	require.NoError(t, err)
	assert.Equal(t, "Heizungsanlage warten lassen", tpl.Name)
	assert.Equal(t, 1, tpl.IntervalValue)
	assert.Equal(t, model.UnitYears, tpl.IntervalUnit)

	custom, err := st.AddCustomTemplate(store.NewTemplate{Name: "Aquarium reinigen"})
	require.NoError(t, err)
	got, err := cat.ByID(custom.ID)
	require.NoError(t, err)
	assert.Equal(t, "Aquarium reinigen", got.Name)

	_, err = cat.ByID("unknown")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestByCategoryCoversBuiltinsOnly(t *testing.T) {
	cat, st := newCatalogForTest(t)

	// custom templates are not part of the category filter
	_, err := st.AddCustomTemplate(store.NewTemplate{
		Name:     "Notstromaggregat testen",
		Category: model.CategorySafety,
	})
	require.NoError(t, err)

	safety := cat.ByCategory(model.CategorySafety)
	require.Len(t, safety, 4)
	for _, tpl := range safety {
		assert.Equal(t, model.CategorySafety, tpl.Category)
		assert.True(t, tpl.Builtin)
	}

	assert.Empty(t, cat.ByCategory("no_such_category"))
}

func TestCategoriesOrder(t *testing.T) {
	cat, st := newCatalogForTest(t)

	builtin := cat.Categories()
	require.Len(t, builtin, len(model.BuiltinCategoryIDs))
	assert.Equal(t, model.CategoryHeating, builtin[0].ID)
	assert.Equal(t, model.CategoryOther, builtin[len(builtin)-1].ID)

	custom, err := st.AddCategory(store.NewCategory{NameDE: "Werkstatt", NameEN: "Workshop"})
	require.NoError(t, err)

	all := cat.Categories()
	require.Len(t, all, len(model.BuiltinCategoryIDs)+1)
	assert.Equal(t, custom.ID, all[len(all)-1].ID)
	assert.False(t, all[len(all)-1].Builtin)
}
