// Package session holds the single opaque bearer credential for this
// installation and mirrors it to disk so the user stays signed in across
// restarts.
//
// The in-memory value is authoritative. Durable reads happen exactly once,
// at construction; durable writes and removals are best-effort and their
// failures are logged, never returned. If the filesystem is unavailable the
// client keeps working purely in memory for the rest of the process.
package session

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/chuilabs/chui/internal/filex"
	"github.com/chuilabs/chui/internal/logging"
)

// Store owns the session credential. At most one live token exists per
// installation; switching accounts overwrites it.
type Store struct {
	mu    sync.Mutex
	token string
	path  string
	log   logging.Logger
}

// New builds a Store backed by the file at path and initializes the
// in-memory token from it. A missing or unreadable file is a normal state
// and yields an empty token.
func New(path string, log logging.Logger) *Store {
	s := &Store{path: path, log: log.With("component", "session")}
	s.token = s.readPersisted()
	return s
}

// Get returns the current token, or "" when no session exists.
func (s *Store) Get() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Set stores the token in memory and attempts to persist it. Persistence
// failure is swallowed: the in-memory value stands regardless.
func (s *Store) Set(ctx context.Context, token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if err := filex.WriteFileAtomic(s.path, []byte(token+"\n"), 0o600); err != nil {
		s.log.Warn(ctx, "could not persist session token", "path", s.path, "err", err)
	}
}

// Clear drops the in-memory token and attempts to remove the durable copy,
// also best-effort.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.Warn(ctx, "could not remove session token file", "path", s.path, "err", err)
	}
}

func (s *Store) readPersisted() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
