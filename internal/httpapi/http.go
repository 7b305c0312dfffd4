// Package httpapi exposes the task planner over JSON HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/philippauer/ha-wartungsplaner/internal/catalog"
	"github.com/philippauer/ha-wartungsplaner/internal/schedule"
	"github.com/philippauer/ha-wartungsplaner/internal/status"
	"github.com/philippauer/ha-wartungsplaner/internal/store"
	"github.com/philippauer/ha-wartungsplaner/internal/telemetry"
)

type Handler struct {
	store   *store.FileStore
	catalog *catalog.Catalog
	engine  *status.Engine
	journal *telemetry.Journal
	clock   schedule.Clock
}

func NewHandler(st *store.FileStore, cat *catalog.Catalog, eng *status.Engine, journal *telemetry.Journal, clock schedule.Clock) *Handler {
	if clock == nil {
		clock = schedule.RealClock{}
	}
	return &Handler{store: st, catalog: cat, engine: eng, journal: journal, clock: clock}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

// writeStoreErr maps store errors onto status codes: invalid input 400,
// unknown id 404, category still referenced 409, anything else 500.
func writeStoreErr(w http.ResponseWriter, err error) {
	switch {
	case store.IsValidation(err):
		writeErr(w, 400, err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeErr(w, 404, "not found")
	case errors.Is(err, store.ErrCategoryInUse):
		writeErr(w, 409, "category is still used by tasks")
	default:
		writeErr(w, 500, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

// /api/tasks  (collection)
func (h *Handler) TasksRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, 200, h.engine.Current())
		return

	case http.MethodPost:
		var in store.NewTask
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		t, err := h.store.AddTask(in)
		if err != nil {
			writeStoreErr(w, err)
			return
		}
		h.engine.Refresh()
		writeJSON(w, 201, t)
		return

	default:
		writeErr(w, 405, "method not allowed")
		return
	}
}

// /api/tasks/from-template
func (h *Handler) TaskFromTemplate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, 405, "method not allowed")
		return
	}
	var in struct {
		TemplateID    string  `json:"template_id"`
		Name          string  `json:"name"`
		LastCompleted *string `json:"last_completed,omitempty"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, 400, "bad json")
		return
	}
	tpl, err := h.catalog.ByID(strings.TrimSpace(in.TemplateID))
	if err != nil {
		writeStoreErr(w, err)
		return
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = tpl.Name
	}
	t, err := h.store.AddTask(store.NewTask{
		Name:          name,
		Description:   tpl.Description,
		Category:      tpl.Category,
		Priority:      tpl.Priority,
		IntervalValue: tpl.IntervalValue,
		IntervalUnit:  tpl.IntervalUnit,
		LastCompleted: in.LastCompleted,
	})
	if err != nil {
		writeStoreErr(w, err)
		return
	}
	h.engine.Refresh()
	writeJSON(w, 201, t)
}

// /api/tasks/{id}[/complete|/snooze]
func (h *Handler) TasksSub(w http.ResponseWriter, r *http.Request) {
	tail := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/tasks/"), "/")
	if tail == "" {
		writeErr(w, 404, "not found")
		return
	}
	parts := strings.Split(tail, "/")
	id := parts[0]

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			snap := h.engine.Current()
			view, ok := snap.Tasks[id]
			if !ok {
				writeErr(w, 404, "not found")
				return
			}
			writeJSON(w, 200, view)
			return

		case http.MethodPatch, http.MethodPut:
			var p store.TaskPatch
			if err := decodeJSON(r, &p); err != nil {
				writeErr(w, 400, "bad json")
				return
			}
			t, err := h.store.UpdateTask(id, p)
			if err != nil {
				writeStoreErr(w, err)
				return
			}
			h.engine.Refresh()
			writeJSON(w, 200, t)
			return

		case http.MethodDelete:
			if err := h.store.DeleteTask(id); err != nil {
				writeStoreErr(w, err)
				return
			}
			h.engine.Refresh()
			writeJSON(w, 200, map[string]any{"deleted": id})
			return

		default:
			writeErr(w, 405, "method not allowed")
			return
		}
	}

	if len(parts) == 2 && r.Method == http.MethodPost {
		switch parts[1] {
		case "complete":
			var in struct {
				Notes string `json:"notes"`
			}
			if r.ContentLength != 0 {
				if err := decodeJSON(r, &in); err != nil {
					writeErr(w, 400, "bad json")
					return
				}
			}
			t, err := h.store.CompleteTask(id, in.Notes)
			if err != nil {
				writeStoreErr(w, err)
				return
			}
			h.engine.Refresh()
			writeJSON(w, 200, t)
			return

		case "snooze":
			var in struct {
				Until string `json:"until"`
			}
			if err := decodeJSON(r, &in); err != nil {
				writeErr(w, 400, "bad json")
				return
			}
			t, err := h.store.SnoozeTask(id, in.Until)
			if err != nil {
				writeStoreErr(w, err)
				return
			}
			h.engine.Refresh()
			writeJSON(w, 200, t)
			return
		}
	}

	writeErr(w, 404, "not found")
}

// /api/templates  (collection)
func (h *Handler) TemplatesRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if cat := strings.TrimSpace(r.URL.Query().Get("category")); cat != "" {
			writeJSON(w, 200, h.catalog.ByCategory(cat))
			return
		}
		writeJSON(w, 200, h.catalog.List())
		return

	case http.MethodPost:
		var in store.NewTemplate
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		tpl, err := h.store.AddCustomTemplate(in)
		if err != nil {
			writeStoreErr(w, err)
			return
		}
		writeJSON(w, 201, tpl)
		return

	default:
		writeErr(w, 405, "method not allowed")
		return
	}
}

// /api/templates/{id}
func (h *Handler) TemplatesSub(w http.ResponseWriter, r *http.Request) {
	tail := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/templates/"), "/")
	if tail == "" {
		writeErr(w, 404, "not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		tpl, err := h.catalog.ByID(tail)
		if err != nil {
			writeStoreErr(w, err)
			return
		}
		writeJSON(w, 200, tpl)
		return

	case http.MethodDelete:
		if err := h.catalog.Remove(tail); err != nil {
			writeStoreErr(w, err)
			return
		}
		writeJSON(w, 200, map[string]any{"removed": tail})
		return

	default:
		writeErr(w, 405, "method not allowed")
		return
	}
}

// /api/templates/restore
func (h *Handler) TemplatesRestore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, 405, "method not allowed")
		return
	}
	if err := h.catalog.Restore(); err != nil {
		writeStoreErr(w, err)
		return
	}
	writeJSON(w, 200, h.catalog.List())
}

// /api/categories  (collection)
func (h *Handler) CategoriesRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, 200, h.catalog.Categories())
		return

	case http.MethodPost:
		var in store.NewCategory
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		c, err := h.store.AddCategory(in)
		if err != nil {
			writeStoreErr(w, err)
			return
		}
		writeJSON(w, 201, c)
		return

	default:
		writeErr(w, 405, "method not allowed")
		return
	}
}

// /api/categories/{id}
func (h *Handler) CategoriesSub(w http.ResponseWriter, r *http.Request) {
	tail := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/categories/"), "/")
	if tail == "" {
		writeErr(w, 404, "not found")
		return
	}
	if r.Method != http.MethodDelete {
		writeErr(w, 405, "method not allowed")
		return
	}
	if err := h.store.DeleteCategory(tail); err != nil {
		writeStoreErr(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"deleted": tail})
}

// /api/settings
func (h *Handler) Settings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, 200, h.store.Settings())
		return

	case http.MethodPatch, http.MethodPut:
		var p store.SettingsPatch
		if err := decodeJSON(r, &p); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		s, err := h.store.UpdateSettings(p)
		if err != nil {
			writeStoreErr(w, err)
			return
		}
		// the due_soon window feeds straight into status derivation
		h.engine.Refresh()
		writeJSON(w, 200, s)
		return

	default:
		writeErr(w, 405, "method not allowed")
		return
	}
}

// /api/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, 405, "method not allowed")
		return
	}
	writeJSON(w, 200, h.engine.Current().Stats)
}

// /api/events
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		var since time.Time
		if raw := strings.TrimSpace(r.URL.Query().Get("since")); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				writeErr(w, 400, "since must be RFC3339")
				return
			}
			since = parsed
		}
		entries := h.journal.Events(since, r.URL.Query()["type"])
		if entries == nil {
			entries = []telemetry.Entry{}
		}
		writeJSON(w, 200, map[string]any{
			"events": entries,
			"counts": h.journal.CountsByType(),
		})
		return

	case http.MethodDelete:
		h.journal.Clear()
		writeJSON(w, 200, map[string]any{"cleared": true})
		return

	default:
		writeErr(w, 405, "method not allowed")
		return
	}
}

// /api/calendar.ics
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, 405, "method not allowed")
		return
	}
	ics := status.BuildCalendarICS(h.store.Tasks(), h.clock.Now())
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="wartungsplaner.ics"`)
	w.WriteHeader(200)
	_, _ = w.Write([]byte(ics))
}

// Register wires all API routes onto the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/tasks", h.TasksRoot)
	mux.HandleFunc("/api/tasks/from-template", h.TaskFromTemplate)
	mux.HandleFunc("/api/tasks/", h.TasksSub)
	mux.HandleFunc("/api/templates", h.TemplatesRoot)
	mux.HandleFunc("/api/templates/restore", h.TemplatesRestore)
	mux.HandleFunc("/api/templates/", h.TemplatesSub)
	mux.HandleFunc("/api/categories", h.CategoriesRoot)
	mux.HandleFunc("/api/categories/", h.CategoriesSub)
	mux.HandleFunc("/api/settings", h.Settings)
	mux.HandleFunc("/api/stats", h.Stats)
	mux.HandleFunc("/api/events", h.Events)
	mux.HandleFunc("/api/calendar.ics", h.Calendar)
}
