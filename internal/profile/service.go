package profile

import (
	"context"
	"errors"
	"time"
)

// Service owns all writes to the profile store.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService binds the upsert service to a store.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Upsert creates or patches the record for name.
//
// The merge contract: a nil authUserID never clears a previously known
// reference, and email is overwritten only when the pointer is non-nil
// (an explicit empty string *is* an overwrite — set-if-provided, not
// set-if-truthy). Missing records are inserted with CreatedAt=UpdatedAt=now.
//
// Each call is a single read-then-write; there is no cross-call atomicity.
// Two concurrent upserts for the same username can race on the existence
// check, so callers that care must serialize per username.
func (s *Service) Upsert(ctx context.Context, name string, authUserID, email *string) error {
	now := s.now()

	existing, err := s.store.Find(ctx, name)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	if errors.Is(err, ErrNotFound) {
		rec := Record{Username: name, CreatedAt: now, UpdatedAt: now}
		if authUserID != nil {
			rec.AuthUserID = *authUserID
		}
		if email != nil {
			rec.Email = *email
		}
		return s.store.Save(ctx, rec)
	}

	existing.UpdatedAt = now
	if authUserID != nil {
		existing.AuthUserID = *authUserID
	}
	if email != nil {
		existing.Email = *email
	}
	return s.store.Save(ctx, existing)
}
