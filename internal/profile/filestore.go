package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/chuilabs/chui/internal/filex"
)

// FileStore keeps profile records in a single JSON file, rewritten in full
// on every save. Like the ledger, the file is unlocked: single writer at a
// time is assumed.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Find(_ context.Context, name string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return Record{}, err
	}
	rec, ok := records[name]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (s *FileStore) Save(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}
	records[rec.Username] = rec

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}
	if err := filex.WriteFileAtomic(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write profiles: %w", err)
	}
	return nil
}

func (s *FileStore) load() (map[string]Record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]Record), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}

	records := make(map[string]Record)
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}
	return records, nil
}
