// Package authd is a small stand-in for the managed identity service, meant
// for local development and end-to-end tests. It speaks the same named
// operations the hosted backend exposes, keeps everything in memory, hashes
// passwords with bcrypt and issues random uuid tokens.
//
// It is deliberately not a product: no persistence, no rate limiting, no
// token expiry.
package authd

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/chuilabs/chui/internal/logging"
	"github.com/chuilabs/chui/internal/username"
)

type account struct {
	id           string
	name         string
	email        string
	passwordHash []byte
}

// Server holds the in-memory account and session state.
type Server struct {
	mu       sync.Mutex
	accounts map[string]*account // keyed by email
	sessions map[string]string   // token -> account id
	log      logging.Logger
}

func NewServer(log logging.Logger) *Server {
	return &Server{
		accounts: make(map[string]*account),
		sessions: make(map[string]string),
		log:      log.With("component", "authd"),
	}
}

// createAccount registers a new account and opens a session for it.
func (s *Server) createAccount(name, email, password string) (*account, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[email]; exists {
		return nil, "", errEmailTaken
	}

	acc := &account{
		id:           uuid.NewString(),
		name:         name,
		email:        email,
		passwordHash: hash,
	}
	s.accounts[email] = acc

	token := uuid.NewString()
	s.sessions[token] = acc.id
	return acc, token, nil
}

// authenticate verifies email+password and opens a session.
func (s *Server) authenticate(email, password string) (*account, string, error) {
	s.mu.Lock()
	acc, ok := s.accounts[email]
	s.mu.Unlock()

	if !ok {
		return nil, "", errBadCredentials
	}
	if bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)) != nil {
		return nil, "", errBadCredentials
	}

	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = acc.id
	s.mu.Unlock()
	return acc, token, nil
}

// dropSession removes the session for token. Unknown tokens are a no-op:
// sign-out is idempotent.
func (s *Server) dropSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// accountByToken resolves a live session token to its account.
func (s *Server) accountByToken(token string) (*account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.sessions[token]
	if !ok {
		return nil, false
	}
	for _, acc := range s.accounts {
		if acc.id == id {
			return acc, true
		}
	}
	return nil, false
}

// hasSession reports whether token belongs to a live session.
func (s *Server) hasSession(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[token]
	return ok
}

// profiles lists every account as {username, email}. Synthetic addresses
// under the placeholder domain are not real contact emails, so they are
// omitted from the listing.
func (s *Server) profiles() []profileInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]profileInfo, 0, len(s.accounts))
	for _, acc := range s.accounts {
		out = append(out, profileInfo{Username: acc.name, Email: contactEmail(acc)})
	}
	return out
}

// contactEmail returns the account's email, or "" for synthetic addresses
// under the placeholder domain, which are not real contact emails.
func contactEmail(acc *account) string {
	if strings.HasSuffix(acc.email, "@"+username.EmailDomain) {
		return ""
	}
	return acc.email
}
