package profile

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Store.Find when no record exists for the
// username. Match with errors.Is.
var ErrNotFound = errors.New("profile not found")

// Store persists profile records keyed by username.
type Store interface {
	// Find returns the record for the exact username, or ErrNotFound.
	Find(ctx context.Context, name string) (Record, error)

	// Save inserts or replaces the record for rec.Username.
	Save(ctx context.Context, rec Record) error
}
