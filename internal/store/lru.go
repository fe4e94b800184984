package store

import (
	"container/list"
	"sync"
)

// LRUStore keeps the most recent entries in memory in front of a backing
// store. Saves write through; loads that miss memory fall back to the
// backing store without promoting the entry back in.
type LRUStore struct {
	mu      sync.Mutex
	cap     int
	order   *list.List               // front is most recent; values are *Entry
	byID    map[string]*list.Element
	backing Store
}

// NewLRUStore creates an LRUStore holding up to capacity entries in memory.
// Capacities below one are raised to one.
func NewLRUStore(capacity int, backing Store) *LRUStore {
	if capacity < 1 {
		capacity = 1
	}
	return &LRUStore{
		cap:     capacity,
		order:   list.New(),
		byID:    make(map[string]*list.Element),
		backing: backing,
	}
}

// Save writes the entry through to the backing store and caches it.
func (s *LRUStore) Save(e *Entry) error {
	if err := s.backing.Save(e); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if el, ok := s.byID[e.ID]; ok {
		el.Value = e
		s.order.MoveToFront(el)
		return nil
	}
	s.byID[e.ID] = s.order.PushFront(e)
	if s.order.Len() > s.cap {
		oldest := s.order.Back()
		s.order.Remove(oldest)
		delete(s.byID, oldest.Value.(*Entry).ID)
	}
	return nil
}

// Load returns the cached entry when present, otherwise defers to the
// backing store.
func (s *LRUStore) Load(id string) (*Entry, error) {
	s.mu.Lock()
	if el, ok := s.byID[id]; ok {
		s.order.MoveToFront(el)
		e := el.Value.(*Entry)
		s.mu.Unlock()
		return e, nil
	}
	s.mu.Unlock()
	return s.backing.Load(id)
}
