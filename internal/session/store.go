// Package session keeps uploaded datasets in memory for the lifetime of the
// process. Only datasets are stored; dashboards are always recomputed.
package session

import (
	"sync"

	"github.com/couchcryptid/asp-occurrence-dashboard/internal/domain"
)

// Store is a thread-safe LRU of datasets keyed by dataset ID. When full, the
// least recently used dataset is evicted.
type Store struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value *domain.Dataset
	prev  *entry
	next  *entry
}

// NewStore creates a store holding at most maxEntries datasets.
func NewStore(maxEntries int) *Store {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &Store{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

// Get returns the dataset with id and marks it recently used.
func (s *Store) Get(id string) (*domain.Dataset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	s.moveToFront(e)
	return e.value, true
}

// Put stores ds under its ID. It returns the ID of an evicted dataset, if any.
func (s *Store) Put(ds *domain.Dataset) (evicted string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[ds.ID]; ok {
		e.value = ds
		s.moveToFront(e)
		return ""
	}

	e := &entry{key: ds.ID, value: ds}
	s.entries[ds.ID] = e
	s.addToFront(e)

	if len(s.entries) > s.maxEntries {
		return s.evictTail()
	}
	return ""
}

// Len returns the number of datasets held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) moveToFront(e *entry) {
	if e == s.head {
		return
	}
	s.remove(e)
	s.addToFront(e)
}

func (s *Store) addToFront(e *entry) {
	e.next = s.head
	e.prev = nil
	if s.head != nil {
		s.head.prev = e
	}
	s.head = e
	if s.tail == nil {
		s.tail = e
	}
}

func (s *Store) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		s.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		s.tail = e.prev
	}
}

func (s *Store) evictTail() string {
	if s.tail == nil {
		return ""
	}
	key := s.tail.key
	delete(s.entries, key)
	s.remove(s.tail)
	return key
}
