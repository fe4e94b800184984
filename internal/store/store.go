// Package store persists accessibility scan runs so tools can drill into
// a run after the scan that produced it has returned.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pinchtab/axecheck"
)

// Entry is one recorded scan run.
type Entry struct {
	ID        string            `json:"id"`
	URL       string            `json:"url"`
	ScannedAt time.Time         `json:"scanned_at"`
	Results   *axecheck.Results `json:"results"`
}

// Store persists and retrieves scan runs.
type Store interface {
	Save(e *Entry) error
	Load(id string) (*Entry, error)
}

// DiskStore writes entries as JSON files under a lazily created temp
// directory, so runs survive for the life of the process without bounding
// memory.
type DiskStore struct {
	mu  sync.Mutex
	dir string
}

// NewDiskStore creates a DiskStore. The directory is created on first Save.
func NewDiskStore() *DiskStore {
	return &DiskStore{}
}

// Save writes an entry to disk.
func (s *DiskStore) Save(e *Entry) error {
	dir, err := s.ensureDir()
	if err != nil {
		return err
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding run %s: %w", e.ID, err)
	}
	if err := os.WriteFile(filepath.Join(dir, e.ID+".json"), data, 0o644); err != nil {
		return fmt.Errorf("writing run %s: %w", e.ID, err)
	}
	return nil
}

// Load reads an entry back from disk.
func (s *DiskStore) Load(id string) (*Entry, error) {
	dir, err := s.ensureDir()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, id+".json"))
	if err != nil {
		return nil, fmt.Errorf("reading run %s: %w", id, err)
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("decoding run %s: %w", id, err)
	}
	return &e, nil
}

func (s *DiskStore) ensureDir() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dir != "" {
		return s.dir, nil
	}
	dir, err := os.MkdirTemp("", "axecheck-runs-*")
	if err != nil {
		return "", fmt.Errorf("creating run directory: %w", err)
	}
	s.dir = dir
	return dir, nil
}
