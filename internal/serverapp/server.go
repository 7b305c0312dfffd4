package serverapp

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/philippauer/ha-wartungsplaner/internal/catalog"
	"github.com/philippauer/ha-wartungsplaner/internal/config"
	"github.com/philippauer/ha-wartungsplaner/internal/httpapi"
	"github.com/philippauer/ha-wartungsplaner/internal/httpmw"
	"github.com/philippauer/ha-wartungsplaner/internal/schedule"
	"github.com/philippauer/ha-wartungsplaner/internal/status"
	"github.com/philippauer/ha-wartungsplaner/internal/store"
	"github.com/philippauer/ha-wartungsplaner/internal/telemetry"
)

type Options struct {
	Config *config.Config
	Logger *log.Logger
	Clock  schedule.Clock
}

// App bundles the wired service so the caller can hook the periodic
// refresh and shut things down.
type App struct {
	Handler http.Handler
	Store   *store.FileStore
	Catalog *catalog.Catalog
	Engine  *status.Engine
	Journal *telemetry.Journal
}

func New(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Clock == nil {
		opts.Clock = schedule.RealClock{}
	}

	st, err := store.New(opts.Config.Storage.DataDir, opts.Clock, opts.Logger)
	if err != nil {
		return nil, err
	}
	cat := catalog.New(st)
	eng := status.NewEngine(st, opts.Clock, opts.Logger)

	journal := telemetry.NewJournal()
	clock := opts.Clock
	eng.Subscribe(func(ev status.Event) {
		journal.Record(ev, clock.Now())
	})
	eng.Refresh()

	mux := http.NewServeMux()
	httpapi.NewHandler(st, cat, eng, journal, opts.Clock).Register(mux)

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "wartungsplaner",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		snap := eng.Current()
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "wartungsplaner",
			"tasks":   snap.Stats.Total,
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	handler := httpmw.Chain(
		mux,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
	)

	return &App{Handler: handler, Store: st, Catalog: cat, Engine: eng, Journal: journal}, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
