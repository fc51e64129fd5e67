package profile

import (
	"context"
	"sync"
)

// MemStore is an in-memory Store, used in tests and by the dev identity
// service.
type MemStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewMemStore() *MemStore {
	return &MemStore{records: make(map[string]Record)}
}

func (s *MemStore) Find(_ context.Context, name string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[name]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (s *MemStore) Save(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.Username] = rec
	return nil
}

// All returns a copy of every stored record, in no particular order.
func (s *MemStore) All() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	return out
}
