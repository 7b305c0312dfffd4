// Package telemetry keeps an in-memory journal of fired transition
// events so clients can poll what became due since they last looked.
package telemetry

import (
	"sync"
	"time"

	"github.com/philippauer/ha-wartungsplaner/internal/status"
)

// maxEntries bounds the journal; the oldest entries fall off first.
const maxEntries = 1000

// Entry is one recorded transition event.
type Entry struct {
	ID        int          `json:"id"`
	Timestamp time.Time    `json:"timestamp"`
	Event     status.Event `json:"event"`
}

type Journal struct {
	mu      sync.RWMutex
	entries []Entry
	nextID  int
}

func NewJournal() *Journal {
	return &Journal{nextID: 1}
}

// Record appends a fired event. Safe to call from the engine's
// synchronous listener path.
func (j *Journal) Record(ev status.Event, now time.Time) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.entries = append(j.entries, Entry{ID: j.nextID, Timestamp: now, Event: ev})
	j.nextID++
	if len(j.entries) > maxEntries {
		j.entries = j.entries[len(j.entries)-maxEntries:]
	}
}

// Events returns entries at or after since, optionally filtered by event
// type. A zero since returns everything retained.
func (j *Journal) Events(since time.Time, types []string) []Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()

	var out []Entry
	for _, e := range j.entries {
		if !since.IsZero() && e.Timestamp.Before(since) {
			continue
		}
		if len(types) > 0 && !containsType(types, e.Event.Type) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// CountsByType aggregates retained entries per event type.
func (j *Journal) CountsByType() map[string]int {
	j.mu.RLock()
	defer j.mu.RUnlock()

	out := map[string]int{}
	for _, e := range j.entries {
		out[e.Event.Type]++
	}
	return out
}

func (j *Journal) Clear() {
	j.mu.Lock()
	j.entries = nil
	j.mu.Unlock()
}

func containsType(types []string, t string) bool {
	for _, v := range types {
		if v == t {
			return true
		}
	}
	return false
}
