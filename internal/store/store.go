package store

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/philippauer/ha-wartungsplaner/internal/model"
	"github.com/philippauer/ha-wartungsplaner/internal/schedule"
)

const (
	storageVersion = 1
	storageFile    = "wartungsplaner.json"
)

// persistedState is the single versioned record on disk. Loading a missing
// or partially absent file yields all-empty defaults per field.
type persistedState struct {
	Version                int                       `json:"version"`
	Tasks                  map[string]model.Task     `json:"tasks"`
	CustomTemplates        map[string]model.Template `json:"custom_templates"`
	CustomCategories       map[string]model.Category `json:"custom_categories"`
	HiddenBuiltinTemplates []string                  `json:"hidden_builtin_templates"`
	Settings               model.Settings            `json:"settings"`
}

func newPersistedState() persistedState {
	return persistedState{
		Version:                storageVersion,
		Tasks:                  map[string]model.Task{},
		CustomTemplates:        map[string]model.Template{},
		CustomCategories:       map[string]model.Category{},
		HiddenBuiltinTemplates: []string{},
		Settings:               model.DefaultSettings(),
	}
}

// FileStore owns the durable task/template/category/settings aggregate.
// Every mutator validates, mutates a copy, recomputes derived fields and
// persists before committing to memory; a failed save rolls the in-memory
// state back so readers never observe an uncommitted change.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	clock  schedule.Clock
	logger *log.Logger
	s      persistedState
}

func New(dataDir string, clock schedule.Clock, logger *log.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = schedule.RealClock{}
	}
	if logger == nil {
		logger = log.Default()
	}
	st := &FileStore{
		path:   filepath.Join(dataDir, storageFile),
		clock:  clock,
		logger: logger,
		s:      newPersistedState(),
	}
	if err := st.load(); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *FileStore) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.s = newPersistedState()
			return nil
		}
		return err
	}

	var loaded persistedState
	if err := json.Unmarshal(b, &loaded); err != nil {
		return err
	}
	if loaded.Tasks == nil {
		loaded.Tasks = map[string]model.Task{}
	}
	if loaded.CustomTemplates == nil {
		loaded.CustomTemplates = map[string]model.Template{}
	}
	if loaded.CustomCategories == nil {
		loaded.CustomCategories = map[string]model.Category{}
	}
	if loaded.HiddenBuiltinTemplates == nil {
		loaded.HiddenBuiltinTemplates = []string{}
	}
	if loaded.Settings.DueSoonDays == 0 {
		loaded.Settings = model.DefaultSettings()
	}
	loaded.Version = storageVersion
	s.s = loaded
	s.logger.Printf("loaded %d tasks from %s", len(s.s.Tasks), s.path)
	return nil
}

func (s *FileStore) saveLocked() error {
	sort.Strings(s.s.HiddenBuiltinTemplates)
	b, err := json.MarshalIndent(s.s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o644)
}

// --- read-side snapshot accessors ---

// Task returns a copy of the task with the given id.
func (s *FileStore) Task(id model.TaskID) (model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.s.Tasks[id]
	if !ok {
		return model.Task{}, ErrNotFound
	}
	return cloneTask(t), nil
}

// Tasks returns a copy of all tasks keyed by id.
func (s *FileStore) Tasks() map[string]model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]model.Task, len(s.s.Tasks))
	for id, t := range s.s.Tasks {
		out[id] = cloneTask(t)
	}
	return out
}

// CustomTemplates returns all custom templates sorted by name.
func (s *FileStore) CustomTemplates() []model.Template {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Template, 0, len(s.s.CustomTemplates))
	for _, tpl := range s.s.CustomTemplates {
		out = append(out, tpl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// CustomTemplate returns the custom template with the given id.
func (s *FileStore) CustomTemplate(id string) (model.Template, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tpl, ok := s.s.CustomTemplates[id]
	return tpl, ok
}

// CustomCategories returns all custom categories sorted by id.
func (s *FileStore) CustomCategories() []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Category, 0, len(s.s.CustomCategories))
	for _, c := range s.s.CustomCategories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// HiddenBuiltinTemplates returns the hidden builtin template ids, sorted.
func (s *FileStore) HiddenBuiltinTemplates() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]string(nil), s.s.HiddenBuiltinTemplates...)
	sort.Strings(out)
	return out
}

// Settings returns a copy of the current settings.
func (s *FileStore) Settings() model.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.s.Settings
}

func cloneTask(t model.Task) model.Task {
	out := t
	out.CompletionHistory = append([]model.CompletionEntry(nil), t.CompletionHistory...)
	if t.LastCompleted != nil {
		v := *t.LastCompleted
		out.LastCompleted = &v
	}
	if t.NextDue != nil {
		v := *t.NextDue
		out.NextDue = &v
	}
	if t.SnoozedUntil != nil {
		v := *t.SnoozedUntil
		out.SnoozedUntil = &v
	}
	return out
}
