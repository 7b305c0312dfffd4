package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philippauer/ha-wartungsplaner/internal/catalog"
	"github.com/philippauer/ha-wartungsplaner/internal/model"
	"github.com/philippauer/ha-wartungsplaner/internal/schedule"
	"github.com/philippauer/ha-wartungsplaner/internal/status"
	"github.com/philippauer/ha-wartungsplaner/internal/store"
	"github.com/philippauer/ha-wartungsplaner/internal/telemetry"
)

func newAPIForTest(t *testing.T) (*http.ServeMux, *store.FileStore, *schedule.FakeClock) {
	t.Helper()
	clock := schedule.NewFakeClock(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC))
	logger := log.New(io.Discard, "", 0)
	st, err := store.New(t.TempDir(), clock, logger)
	require.NoError(t, err)
	cat := catalog.New(st)
	eng := status.NewEngine(st, clock, logger)
	journal := telemetry.NewJournal()
	eng.Subscribe(func(ev status.Event) { journal.Record(ev, clock.Now()) })

	mux := http.NewServeMux()
	NewHandler(st, cat, eng, journal, clock).Register(mux)
	return mux, st, clock
}

func jsonReq(method, path string, body any) *http.Request {
	var b []byte
	if body != nil {
		b, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func do(mux *http.ServeMux, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestTaskLifecycleOverHTTP(t *testing.T) {
	mux, _, _ := newAPIForTest(t)

	rec := do(mux, jsonReq(http.MethodPost, "/api/tasks", map[string]any{
		"name":           "Heizung entlüften",
		"category":       "heating",
		"priority":       "high",
		"interval_value": 6,
		"interval_unit":  "months",
		"last_completed": "2024-01-10",
	}))
	require.Equal(t, 201, rec.Code)
	created := decodeBody[model.Task](t, rec)
	assert.NotEmpty(t, created.ID)
	require.NotNil(t, created.NextDue)
	assert.Equal(t, "2024-07-10", *created.NextDue)

	// single task view carries derived status
	rec = do(mux, jsonReq(http.MethodGet, "/api/tasks/"+created.ID, nil))
	require.Equal(t, 200, rec.Code)
	view := decodeBody[status.TaskView](t, rec)
	assert.Equal(t, model.StatusDone, view.Status)

	// patch the interval: next_due moves
	rec = do(mux, jsonReq(http.MethodPatch, "/api/tasks/"+created.ID, map[string]any{
		"interval_value": 1,
	}))
	require.Equal(t, 200, rec.Code)
	patched := decodeBody[model.Task](t, rec)
	require.NotNil(t, patched.NextDue)
	assert.Equal(t, "2024-02-10", *patched.NextDue)

	// complete: dated today, snooze cleared, history grows
	rec = do(mux, jsonReq(http.MethodPost, "/api/tasks/"+created.ID+"/complete", map[string]any{
		"notes": "Ventile geprüft",
	}))
	require.Equal(t, 200, rec.Code)
	done := decodeBody[model.Task](t, rec)
	require.NotNil(t, done.LastCompleted)
	assert.Equal(t, "2024-03-15", *done.LastCompleted)
	require.Len(t, done.CompletionHistory, 1)
	assert.Equal(t, "Ventile geprüft", done.CompletionHistory[0].Notes)

	// snooze pushes the due date
	rec = do(mux, jsonReq(http.MethodPost, "/api/tasks/"+created.ID+"/snooze", map[string]any{
		"until": "2024-06-01",
	}))
	require.Equal(t, 200, rec.Code)
	snoozed := decodeBody[model.Task](t, rec)
	require.NotNil(t, snoozed.NextDue)
	assert.Equal(t, "2024-06-01", *snoozed.NextDue)

	// delete
	rec = do(mux, jsonReq(http.MethodDelete, "/api/tasks/"+created.ID, nil))
	require.Equal(t, 200, rec.Code)
	rec = do(mux, jsonReq(http.MethodGet, "/api/tasks/"+created.ID, nil))
	assert.Equal(t, 404, rec.Code)
}

func TestTasksListSnapshot(t *testing.T) {
	mux, st, _ := newAPIForTest(t)

	_, err := st.AddTask(store.NewTask{Name: "Rauchmelder testen"})
	require.NoError(t, err)

	rec := do(mux, jsonReq(http.MethodGet, "/api/tasks", nil))
	require.Equal(t, 200, rec.Code)
	snap := decodeBody[status.Snapshot](t, rec)
	assert.Equal(t, 1, snap.Stats.Total)
	assert.Equal(t, 1, snap.Stats.NeverDone)

	rec = do(mux, jsonReq(http.MethodGet, "/api/stats", nil))
	require.Equal(t, 200, rec.Code)
	stats := decodeBody[status.Stats](t, rec)
	assert.Equal(t, 1, stats.Total)
}

func TestErrorMapping(t *testing.T) {
	mux, _, _ := newAPIForTest(t)

	// validation -> 400
	rec := do(mux, jsonReq(http.MethodPost, "/api/tasks", map[string]any{"name": ""}))
	assert.Equal(t, 400, rec.Code)

	rec = do(mux, jsonReq(http.MethodPost, "/api/tasks", map[string]any{
		"name": "x", "interval_value": -1,
	}))
	assert.Equal(t, 400, rec.Code)

	// unknown id -> 404
	rec = do(mux, jsonReq(http.MethodGet, "/api/tasks/nope", nil))
	assert.Equal(t, 404, rec.Code)
	rec = do(mux, jsonReq(http.MethodPost, "/api/tasks/nope/complete", nil))
	assert.Equal(t, 404, rec.Code)
	rec = do(mux, jsonReq(http.MethodDelete, "/api/templates/nope", nil))
	assert.Equal(t, 404, rec.Code)

	// bad json -> 400
	req := httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewReader([]byte("{")))
	rec = do(mux, req)
	assert.Equal(t, 400, rec.Code)

	// wrong method -> 405
	rec = do(mux, jsonReq(http.MethodDelete, "/api/tasks", nil))
	assert.Equal(t, 405, rec.Code)
}

func TestTaskFromTemplate(t *testing.T) {
	mux, _, _ := newAPIForTest(t)

	rec := do(mux, jsonReq(http.MethodPost, "/api/tasks/from-template", map[string]any{
		"template_id": "rauchmelder_test",
	}))
	require.Equal(t, 201, rec.Code)
	created := decodeBody[model.Task](t, rec)
	assert.Equal(t, "Rauchmelder testen", created.Name)
	assert.Equal(t, model.CategorySafety, created.Category)
	assert.Equal(t, model.PriorityCritical, created.Priority)
	assert.Equal(t, 3, created.IntervalValue)
	assert.Nil(t, created.NextDue, "no completion date provided")

	// custom name and a starting completion date
	rec = do(mux, jsonReq(http.MethodPost, "/api/tasks/from-template", map[string]any{
		"template_id":    "heizung_wartung",
		"name":           "Heizung OG warten",
		"last_completed": "2023-11-01",
	}))
	require.Equal(t, 201, rec.Code)
	created = decodeBody[model.Task](t, rec)
	assert.Equal(t, "Heizung OG warten", created.Name)
	require.NotNil(t, created.NextDue)
	assert.Equal(t, "2024-11-01", *created.NextDue)

	rec = do(mux, jsonReq(http.MethodPost, "/api/tasks/from-template", map[string]any{
		"template_id": "unknown",
	}))
	assert.Equal(t, 404, rec.Code)
}

func TestTemplateEndpoints(t *testing.T) {
	mux, _, _ := newAPIForTest(t)

	rec := do(mux, jsonReq(http.MethodGet, "/api/templates", nil))
	require.Equal(t, 200, rec.Code)
	all := decodeBody[[]model.Template](t, rec)
	builtinCount := len(all)
	require.NotZero(t, builtinCount)

	// category filter serves builtins only
	rec = do(mux, jsonReq(http.MethodGet, "/api/templates?category=safety", nil))
	require.Equal(t, 200, rec.Code)
	safety := decodeBody[[]model.Template](t, rec)
	require.NotEmpty(t, safety)
	for _, tpl := range safety {
		assert.Equal(t, model.CategorySafety, tpl.Category)
	}

	// add a custom template
	rec = do(mux, jsonReq(http.MethodPost, "/api/templates", map[string]any{
		"name":           "Poolpumpe entkalken",
		"interval_value": 3,
		"interval_unit":  "months",
	}))
	require.Equal(t, 201, rec.Code)
	custom := decodeBody[model.Template](t, rec)
	assert.False(t, custom.Builtin)

	// hide a builtin, then restore
	rec = do(mux, jsonReq(http.MethodDelete, "/api/templates/dachrinne", nil))
	require.Equal(t, 200, rec.Code)
	rec = do(mux, jsonReq(http.MethodGet, "/api/templates", nil))
	listed := decodeBody[[]model.Template](t, rec)
	assert.Len(t, listed, builtinCount, "one hidden builtin, one custom added")
	for _, tpl := range listed {
		assert.NotEqual(t, "dachrinne", tpl.ID)
	}

	rec = do(mux, jsonReq(http.MethodPost, "/api/templates/restore", nil))
	require.Equal(t, 200, rec.Code)
	restored := decodeBody[[]model.Template](t, rec)
	assert.Len(t, restored, builtinCount+1)

	// delete the custom one for good
	rec = do(mux, jsonReq(http.MethodDelete, "/api/templates/"+custom.ID, nil))
	require.Equal(t, 200, rec.Code)
	rec = do(mux, jsonReq(http.MethodGet, "/api/templates/"+custom.ID, nil))
	assert.Equal(t, 404, rec.Code)
}

func TestCategoryEndpoints(t *testing.T) {
	mux, st, _ := newAPIForTest(t)

	rec := do(mux, jsonReq(http.MethodGet, "/api/categories", nil))
	require.Equal(t, 200, rec.Code)
	builtin := decodeBody[[]model.Category](t, rec)
	require.Len(t, builtin, len(model.BuiltinCategoryIDs))

	rec = do(mux, jsonReq(http.MethodPost, "/api/categories", map[string]any{
		"name_de": "Schwimmbad",
		"name_en": "Pool",
	}))
	require.Equal(t, 201, rec.Code)
	created := decodeBody[model.Category](t, rec)
	assert.Equal(t, "schwimmbad", created.ID)

	// referenced category cannot be deleted
	task, err := st.AddTask(store.NewTask{Name: "Pool reinigen", Category: created.ID})
	require.NoError(t, err)
	rec = do(mux, jsonReq(http.MethodDelete, "/api/categories/"+created.ID, nil))
	assert.Equal(t, 409, rec.Code)

	require.NoError(t, st.DeleteTask(task.ID))
	rec = do(mux, jsonReq(http.MethodDelete, "/api/categories/"+created.ID, nil))
	assert.Equal(t, 200, rec.Code)

	// builtin categories are not deletable
	rec = do(mux, jsonReq(http.MethodDelete, "/api/categories/heating", nil))
	assert.Equal(t, 404, rec.Code)
}

func TestSettingsEndpoints(t *testing.T) {
	mux, _, _ := newAPIForTest(t)

	rec := do(mux, jsonReq(http.MethodGet, "/api/settings", nil))
	require.Equal(t, 200, rec.Code)
	s := decodeBody[model.Settings](t, rec)
	assert.Equal(t, 7, s.DueSoonDays)
	assert.True(t, s.EnableNotifications)

	rec = do(mux, jsonReq(http.MethodPatch, "/api/settings", map[string]any{
		"due_soon_days": 14,
	}))
	require.Equal(t, 200, rec.Code)
	s = decodeBody[model.Settings](t, rec)
	assert.Equal(t, 14, s.DueSoonDays)

	rec = do(mux, jsonReq(http.MethodPatch, "/api/settings", map[string]any{
		"due_soon_days": 0,
	}))
	assert.Equal(t, 400, rec.Code)
}

func TestSettingsChangeShiftsStatuses(t *testing.T) {
	mux, st, _ := newAPIForTest(t)

	// due in 10 days: done under the default 7-day window
	_, err := st.AddTask(store.NewTask{
		Name:          "Filter wechseln",
		IntervalValue: 10,
		IntervalUnit:  model.UnitDays,
		LastCompleted: ptr("2024-03-15"),
	})
	require.NoError(t, err)

	rec := do(mux, jsonReq(http.MethodGet, "/api/tasks", nil))
	snap := decodeBody[status.Snapshot](t, rec)
	assert.Equal(t, 1, snap.Stats.Done)

	rec = do(mux, jsonReq(http.MethodPatch, "/api/settings", map[string]any{"due_soon_days": 14}))
	require.Equal(t, 200, rec.Code)

	rec = do(mux, jsonReq(http.MethodGet, "/api/tasks", nil))
	snap = decodeBody[status.Snapshot](t, rec)
	assert.Equal(t, 1, snap.Stats.DueSoon)
}

func TestEventsJournalEndpoint(t *testing.T) {
	mux, _, clock := newAPIForTest(t)

	rec := do(mux, jsonReq(http.MethodPost, "/api/tasks", map[string]any{
		"name":           "Filter reinigen",
		"interval_value": 1,
		"interval_unit":  "days",
		"last_completed": "2024-03-15",
	}))
	require.Equal(t, 201, rec.Code)

	// next day: any mutation-driven refresh notices the transition
	clock.Set(time.Date(2024, 3, 16, 9, 0, 0, 0, time.UTC))
	rec = do(mux, jsonReq(http.MethodPatch, "/api/settings", map[string]any{"due_soon_days": 7}))
	require.Equal(t, 200, rec.Code)

	rec = do(mux, jsonReq(http.MethodGet, "/api/events", nil))
	require.Equal(t, 200, rec.Code)
	payload := decodeBody[struct {
		Events []telemetry.Entry `json:"events"`
		Counts map[string]int    `json:"counts"`
	}](t, rec)
	require.Len(t, payload.Events, 1)
	assert.Equal(t, status.EventTaskDue, payload.Events[0].Event.Type)
	assert.Equal(t, "Filter reinigen", payload.Events[0].Event.TaskName)
	assert.Equal(t, 1, payload.Counts[status.EventTaskDue])

	// type filter
	rec = do(mux, jsonReq(http.MethodGet, "/api/events?type=task_overdue", nil))
	payload = decodeBody[struct {
		Events []telemetry.Entry `json:"events"`
		Counts map[string]int    `json:"counts"`
	}](t, rec)
	assert.Empty(t, payload.Events)

	rec = do(mux, jsonReq(http.MethodDelete, "/api/events", nil))
	require.Equal(t, 200, rec.Code)
	rec = do(mux, jsonReq(http.MethodGet, "/api/events", nil))
	payload = decodeBody[struct {
		Events []telemetry.Entry `json:"events"`
		Counts map[string]int    `json:"counts"`
	}](t, rec)
	assert.Empty(t, payload.Events)
}

func TestCalendarFeed(t *testing.T) {
	mux, st, _ := newAPIForTest(t)

	_, err := st.AddTask(store.NewTask{
		Name:          "Dachrinne reinigen",
		Category:      model.CategoryExterior,
		IntervalValue: 6,
		IntervalUnit:  model.UnitMonths,
		LastCompleted: ptr("2024-01-02"),
	})
	require.NoError(t, err)

	rec := do(mux, jsonReq(http.MethodGet, "/api/calendar.ics", nil))
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "BEGIN:VCALENDAR")
	assert.Contains(t, body, "SUMMARY:Dachrinne reinigen")
	assert.Contains(t, body, "DTSTART;VALUE=DATE:20240702")
}

func ptr(s string) *string { return &s }
