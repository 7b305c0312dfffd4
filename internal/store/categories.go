package store

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/philippauer/ha-wartungsplaner/internal/model"
)

// NewCategory carries the caller-supplied fields for AddCategory.
type NewCategory struct {
	NameDE string `json:"name_de"`
	NameEN string `json:"name_en"`
	Icon   string `json:"icon"`
}

// AddCategory creates a custom category. The id is a slug of the German
// name; on collision a short random suffix is appended until the id is
// unique among builtin and custom ids.
func (s *FileStore) AddCategory(in NewCategory) (model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in.NameDE = strings.TrimSpace(in.NameDE)
	in.NameEN = strings.TrimSpace(in.NameEN)
	if in.NameDE == "" {
		return model.Category{}, invalidf("name_de", "must not be empty")
	}
	if in.NameEN == "" {
		return model.Category{}, invalidf("name_en", "must not be empty")
	}
	if in.Icon == "" {
		in.Icon = model.DefaultCategoryIcon
	}

	id := slugify(in.NameDE)
	for s.categoryIDTakenLocked(id) {
		id = slugify(in.NameDE) + "_" + randomSuffix()
	}

	c := model.Category{
		ID:      id,
		NameDE:  in.NameDE,
		NameEN:  in.NameEN,
		Icon:    in.Icon,
		Builtin: false,
	}

	s.s.CustomCategories[id] = c
	if err := s.saveLocked(); err != nil {
		delete(s.s.CustomCategories, id)
		return model.Category{}, err
	}
	s.logger.Printf("added category %q (%s)", c.NameDE, id)
	return c, nil
}

// DeleteCategory removes a custom category. It returns ErrCategoryInUse
// while any task still references the category; that is a checked outcome,
// both the category and the tasks stay untouched.
func (s *FileStore) DeleteCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.s.CustomCategories[id]
	if !ok {
		return ErrNotFound
	}
	for _, t := range s.s.Tasks {
		if t.Category == id {
			return ErrCategoryInUse
		}
	}
	delete(s.s.CustomCategories, id)
	if err := s.saveLocked(); err != nil {
		s.s.CustomCategories[id] = prev
		return err
	}
	return nil
}

func (s *FileStore) categoryIDTakenLocked(id string) bool {
	if model.IsBuiltinCategory(id) {
		return true
	}
	_, ok := s.s.CustomCategories[id]
	return ok
}

var umlauts = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss",
	"Ä", "ae", "Ö", "oe", "Ü", "ue",
)

// slugify lowercases, transliterates German umlauts and reduces everything
// else to [a-z0-9_] with collapsed separators.
func slugify(name string) string {
	name = strings.ToLower(umlauts.Replace(name))
	var b strings.Builder
	lastSep := true
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSep = false
		default:
			if !lastSep {
				b.WriteByte('_')
				lastSep = true
			}
		}
	}
	slug := strings.Trim(b.String(), "_")
	if slug == "" {
		slug = "kategorie"
	}
	return slug
}

func randomSuffix() string {
	var b [3]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
