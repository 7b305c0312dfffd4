package status

import (
	"log"
	"sync"

	"github.com/philippauer/ha-wartungsplaner/internal/model"
	"github.com/philippauer/ha-wartungsplaner/internal/schedule"
	"github.com/philippauer/ha-wartungsplaner/internal/store"
)

// Engine recomputes snapshots over the store and tracks status history
// across runs so transitions fire exactly once.
type Engine struct {
	store  *store.FileStore
	clock  schedule.Clock
	logger *log.Logger

	mu        sync.Mutex
	prev      map[string]model.Status
	last      Snapshot
	refreshed bool
	listeners []func(Event)
}

func NewEngine(st *store.FileStore, clock schedule.Clock, logger *log.Logger) *Engine {
	if clock == nil {
		clock = schedule.RealClock{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		store:  st,
		clock:  clock,
		logger: logger,
		prev:   map[string]model.Status{},
	}
}

// Subscribe registers a listener for transition events. Listeners run
// synchronously inside Refresh, in registration order.
func (e *Engine) Subscribe(fn func(Event)) {
	e.mu.Lock()
	e.listeners = append(e.listeners, fn)
	e.mu.Unlock()
}

// Refresh recomputes the snapshot from the store and fires any transition
// events. Refreshing twice against unchanged state is a no-op on events.
func (e *Engine) Refresh() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap, events, next := Recompute(
		e.store.Tasks(),
		e.store.Settings().DueSoonDays,
		e.clock.Now(),
		e.prev,
	)
	e.prev = next
	e.last = snap
	e.refreshed = true

	for _, ev := range events {
		e.logger.Printf("event %s: %s (%s) due %s", ev.Type, ev.TaskName, ev.TaskID, ev.NextDue)
		for _, fn := range e.listeners {
			fn(ev)
		}
	}
	return snap
}

// Current returns the last snapshot, computing one first if the engine
// has never refreshed.
func (e *Engine) Current() Snapshot {
	e.mu.Lock()
	refreshed := e.refreshed
	last := e.last
	e.mu.Unlock()
	if !refreshed {
		return e.Refresh()
	}
	return last
}
