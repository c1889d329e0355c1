package templates

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lokrain/harmonia-api/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned when neither the store nor the builtin catalog
// can resolve a template identifier.
var ErrNotFound = errors.New("template not found")

// Store persists user-imported templates. Builtins never enter the store.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Save validates and upserts a template document.
func (s *Store) Save(t *Template) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if _, ok := Builtin(t.ID); ok {
		return fmt.Errorf("template id %q shadows a builtin template", t.ID)
	}
	doc, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode template %q: %w", t.ID, err)
	}
	record := models.TemplateRecord{
		ID:       t.ID,
		Name:     t.Name,
		Version:  t.Version,
		Bars:     t.TotalBars(),
		Document: string(doc),
	}
	return s.db.Save(&record).Error
}

// Load fetches a stored template by id.
func (s *Store) Load(id string) (*Template, error) {
	var record models.TemplateRecord
	if err := s.db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var t Template
	if err := json.Unmarshal([]byte(record.Document), &t); err != nil {
		return nil, fmt.Errorf("stored template %q is corrupt: %w", id, err)
	}
	return &t, nil
}

// List returns summaries of all stored templates, ordered by id.
func (s *Store) List() ([]Summary, error) {
	var records []models.TemplateRecord
	if err := s.db.Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	summaries := make([]Summary, 0, len(records))
	for _, r := range records {
		summary := Summary{
			ID:      r.ID,
			Name:    r.Name,
			Version: r.Version,
			Bars:    r.Bars,
			Source:  "local",
		}
		var t Template
		if err := json.Unmarshal([]byte(r.Document), &t); err == nil {
			summary.Phrases = len(t.Phrases)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// Delete removes a stored template by id.
func (s *Store) Delete(id string) error {
	result := s.db.Delete(&models.TemplateRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
