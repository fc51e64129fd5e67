// Package auth is the identity-resolution facade: sign-up, sign-in and
// sign-out against the hosted identity service, with exactly one profile
// upsert per successful resolution.
//
// Local validation always happens before any network call, so a rejected
// input leaves no state anywhere. Remote failures propagate unchanged and
// nothing local is written before the remote call succeeds; there is no
// rollback because there is nothing to roll back.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chuilabs/chui/internal/profile"
	"github.com/chuilabs/chui/internal/remote"
	"github.com/chuilabs/chui/internal/username"
)

// ErrInvalidEmail is returned when the sign-up email is missing an "@" or
// empty. Sign-in identifiers without "@" are usernames, not bad emails.
var ErrInvalidEmail = errors.New("invalid email")

// Session is a successful resolution: the opaque bearer token plus the
// canonical username it belongs to.
type Session struct {
	Token    string
	Username string
}

// Service orchestrates the facade. It performs no retries and assumes the
// caller issues at most one resolution at a time.
type Service struct {
	client   remote.Client
	profiles *profile.Service
}

func NewService(client remote.Client, profiles *profile.Service) *Service {
	return &Service{client: client, profiles: profiles}
}

// SignUp creates a hosted account for username/email/password.
//
// The username is held to the strict service policy and the email must
// contain "@"; both checks run before the network call. On success the
// profile record is upserted with the remote account id and the email.
// A failing upsert is surfaced as-is even though the remote account already
// exists at that point — an accepted inconsistency window.
func (s *Service) SignUp(ctx context.Context, rawUsername, rawEmail, password string) (Session, error) {
	name, err := username.Validate(rawUsername, username.Strict)
	if err != nil {
		return Session{}, err
	}

	email := strings.ToLower(strings.TrimSpace(rawEmail))
	if email == "" || !strings.Contains(email, "@") {
		return Session{}, fmt.Errorf("%w: valid email required for password reset", ErrInvalidEmail)
	}

	result, err := s.client.SignUpEmail(ctx, name, email, password)
	if err != nil {
		return Session{}, err
	}

	if err := s.profiles.Upsert(ctx, name, &result.User.ID, &email); err != nil {
		return Session{}, fmt.Errorf("profile upsert after sign-up: %w", err)
	}

	return Session{Token: result.Token, Username: name}, nil
}

// SignIn authenticates an identifier that is either an email (contains "@")
// or a bare username, in which case it is validated and mapped to its
// synthetic address first.
//
// The canonical username comes from the *response*: the server-reported
// display name is normalized and used for the profile upsert, which may
// legitimately differ from what the user typed if account data drifted.
// A name that fails the strict policy after normalization (including an
// empty one) fails the sign-in rather than propagating a malformed username
// into the profile store.
func (s *Service) SignIn(ctx context.Context, identifier, password string) (Session, error) {
	email := strings.ToLower(strings.TrimSpace(identifier))
	if email == "" {
		return Session{}, fmt.Errorf("%w: email required", ErrInvalidEmail)
	}
	if !strings.Contains(email, "@") {
		name, err := username.Validate(identifier, username.Relaxed)
		if err != nil {
			return Session{}, err
		}
		email = username.ToEmail(name)
	}

	result, err := s.client.SignInEmail(ctx, email, password, true)
	if err != nil {
		return Session{}, err
	}

	resolved, err := username.Validate(result.User.Name, username.Strict)
	if err != nil {
		return Session{}, fmt.Errorf("server-reported name %q: %w", result.User.Name, err)
	}

	if err := s.profiles.Upsert(ctx, resolved, &result.User.ID, nil); err != nil {
		return Session{}, fmt.Errorf("profile upsert after sign-in: %w", err)
	}

	return Session{Token: result.Token, Username: resolved}, nil
}

// SignOut invalidates the remote session. Clearing the local credential
// store is the caller's job, so a remote failure here never strands the
// local state.
func (s *Service) SignOut(ctx context.Context, token string) error {
	return s.client.SignOut(ctx, token)
}
