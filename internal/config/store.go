package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/taskdeck/taskdeck/internal/models"
)

// Store is the persisted job document: an ordered list of jobs keyed by name.
// The zero value is a valid empty store.
type Store struct {
	Jobs []models.Job `json:"jobs"`
}

// LoadStore reads the job store from path. Any failure (missing file,
// unreadable file, malformed JSON) yields an empty store rather than an
// error; the boolean reports whether such a recovery happened so callers
// can log it instead of silently starting from scratch.
func LoadStore(path string) (*Store, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Store{Jobs: []models.Job{}}, true
	}

	var store Store
	if err := json.Unmarshal(data, &store); err != nil {
		return &Store{Jobs: []models.Job{}}, true
	}
	if store.Jobs == nil {
		store.Jobs = []models.Job{}
	}
	return &store, false
}

// SaveStore serializes the full store to path, pretty-printed, overwriting
// unconditionally. The parent directory is created if missing. There is no
// atomic-write or fsync guarantee; a crash mid-write can corrupt the file,
// which LoadStore will then treat as an empty store.
func SaveStore(path string, store *Store) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal job store: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write job store: %w", err)
	}

	return nil
}

// Upsert replaces any job with the same name and appends the new record at
// the end of the list (last-write-wins, the record moves to the end).
func (s *Store) Upsert(job models.Job) {
	s.removeByName(job.Name)
	s.Jobs = append(s.Jobs, job)
}

// Remove deletes the job with the given name. Returns whether a job was removed.
func (s *Store) Remove(name string) bool {
	before := len(s.Jobs)
	s.removeByName(name)
	return len(s.Jobs) != before
}

// Find returns the job with the given name, if present.
func (s *Store) Find(name string) (models.Job, bool) {
	for _, j := range s.Jobs {
		if j.Name == name {
			return j, true
		}
	}
	return models.Job{}, false
}

// Names returns the job names in store order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.Jobs))
	for _, j := range s.Jobs {
		names = append(names, j.Name)
	}
	return names
}

func (s *Store) removeByName(name string) {
	kept := s.Jobs[:0]
	for _, j := range s.Jobs {
		if j.Name != name {
			kept = append(kept, j)
		}
	}
	s.Jobs = kept
}
