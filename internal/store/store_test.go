package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/pinchtab/axecheck"
)

func testEntry(t *testing.T, id string) *Entry {
	t.Helper()
	results, err := axecheck.ParseResults([]byte(`{"violations": [{"id": "image-alt", "impact": "critical", "nodes": []}], "url": "https://example.test/"}`))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return &Entry{
		ID:        id,
		URL:       "https://example.test/",
		ScannedAt: time.Date(2026, 8, 21, 10, 0, 0, 0, time.UTC),
		Results:   results,
	}
}

func TestDiskStoreRoundTrip(t *testing.T) {
	s := NewDiskStore()
	e := testEntry(t, "run-1")
	if err := s.Save(e); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load("run-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.ID != e.ID || got.URL != e.URL {
		t.Errorf("loaded entry = %+v", got)
	}
	if !got.ScannedAt.Equal(e.ScannedAt) {
		t.Errorf("scanned_at = %v, want %v", got.ScannedAt, e.ScannedAt)
	}
	if got.Results.ViolationCount() != 1 {
		t.Errorf("results did not survive the round trip: %d violations", got.Results.ViolationCount())
	}
}

func TestDiskStoreLoadMissing(t *testing.T) {
	if _, err := NewDiskStore().Load("absent"); err == nil {
		t.Fatal("expected error for unknown run ID")
	}
}

// countingStore counts loads so tests can tell cache hits from misses.
type countingStore struct {
	entries map[string]*Entry
	loads   int
}

func newCountingStore() *countingStore {
	return &countingStore{entries: make(map[string]*Entry)}
}

func (s *countingStore) Save(e *Entry) error {
	s.entries[e.ID] = e
	return nil
}

func (s *countingStore) Load(id string) (*Entry, error) {
	s.loads++
	e, ok := s.entries[id]
	if !ok {
		return nil, fmt.Errorf("no run %s", id)
	}
	return e, nil
}

func TestLRUStoreEviction(t *testing.T) {
	backing := newCountingStore()
	s := NewLRUStore(2, backing)

	for _, id := range []string{"a", "b", "c"} {
		if err := s.Save(testEntry(t, id)); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	// "a" was evicted; loading it must hit the backing store.
	if _, err := s.Load("a"); err != nil {
		t.Fatalf("load a: %v", err)
	}
	if backing.loads != 1 {
		t.Errorf("backing loads = %d, want 1", backing.loads)
	}

	// "c" is still cached; loading it must not touch the backing store.
	if _, err := s.Load("c"); err != nil {
		t.Fatalf("load c: %v", err)
	}
	if backing.loads != 1 {
		t.Errorf("backing loads = %d after cached read, want 1", backing.loads)
	}
}

func TestLRUStoreResaveMovesToFront(t *testing.T) {
	backing := newCountingStore()
	s := NewLRUStore(2, backing)

	for _, id := range []string{"a", "b"} {
		if err := s.Save(testEntry(t, id)); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}
	// Re-saving "a" makes "b" the eviction candidate.
	if err := s.Save(testEntry(t, "a")); err != nil {
		t.Fatalf("resave a: %v", err)
	}
	if err := s.Save(testEntry(t, "c")); err != nil {
		t.Fatalf("save c: %v", err)
	}

	if _, err := s.Load("a"); err != nil {
		t.Fatalf("load a: %v", err)
	}
	if backing.loads != 0 {
		t.Errorf("a should still be cached, backing loads = %d", backing.loads)
	}
}
