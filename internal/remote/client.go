// Package remote defines the client surface of the hosted identity service
// and its HTTP implementation. The service is an external collaborator: it
// is addressed through named operations and its failures are opaque to us.
package remote

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable marks transport-level failures (connection refused, DNS,
// timeouts): the service could not be reached at all. Callers use it to
// decide whether the local registry fallback applies. Auth failures are
// never wrapped in it.
var ErrUnavailable = errors.New("identity service unavailable")

// Error is a failure reported by the identity service itself. The message
// is surfaced verbatim; this client never interprets it.
type Error struct {
	Op      string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// AuthUser is the remote account as reported by the service.
type AuthUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AuthResult is the outcome of a successful sign-up or sign-in.
type AuthResult struct {
	User  AuthUser `json:"user"`
	Token string   `json:"token"`
}

// ProfileInfo is one row of the remote profile listing.
type ProfileInfo struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// CurrentUser is the profile behind a session token, keyed by the remote
// account id.
type CurrentUser struct {
	AuthUserID string `json:"authUserId"`
	Username   string `json:"username"`
	Email      string `json:"email,omitempty"`
}

// Client is the set of named operations the identity service exposes.
//
// All methods honor context cancellation. No method retries; a failure
// propagates immediately.
type Client interface {
	// SignUpEmail creates an account keyed by email+password.
	SignUpEmail(ctx context.Context, name, email, password string) (AuthResult, error)

	// SignInEmail authenticates an existing account.
	SignInEmail(ctx context.Context, email, password string, rememberMe bool) (AuthResult, error)

	// SignOut invalidates the remote session behind token.
	SignOut(ctx context.Context, token string) error

	// ListProfiles returns the profiles known to the service. Read-only;
	// requires an authenticated session.
	ListProfiles(ctx context.Context, token string) ([]ProfileInfo, error)

	// GetCurrentUser resolves the profile behind token. Read-only; this is
	// the lookup-by-account-id path, outside the upsert's write path.
	GetCurrentUser(ctx context.Context, token string) (CurrentUser, error)
}
