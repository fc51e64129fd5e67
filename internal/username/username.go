// Package username implements normalization and validation of account names,
// plus the synthetic email mapping used for username-only sign-in.
//
// Two validation regimes exist on purpose. The hosted identity service only
// accepts letters and digits, while the local flat-file registry also
// tolerates underscores. Callers always pick a Policy explicitly; nothing in
// this package guesses which rule applies.
package username

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// EmailDomain is the unroutable placeholder domain reserved for
// username-only accounts. Addresses under it are synthesized, never real.
const EmailDomain = "users.chui.local"

// ErrInvalidUsername is returned (wrapped) when a name fails its policy.
// The wrapped message carries the human-readable rule.
var ErrInvalidUsername = errors.New("invalid username")

// Policy is a named username-validation regime.
type Policy struct {
	re   *regexp.Regexp
	rule string
}

var (
	// Strict is the hosted identity-service regime.
	Strict = Policy{
		re:   regexp.MustCompile(`^[a-z0-9]{3,20}$`),
		rule: "3-20 letters/numbers",
	}

	// Relaxed is the flat-file registry regime.
	Relaxed = Policy{
		re:   regexp.MustCompile(`^[a-z0-9_]{3,20}$`),
		rule: "3-20 characters: lowercase letters, numbers, underscore",
	}
)

// Rule returns the human-readable description of the policy.
func (p Policy) Rule() string { return p.rule }

// Normalize trims surrounding whitespace and lowercases raw.
// No other transformation is applied.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Validate normalizes raw and checks it against the policy. On success the
// canonical form is returned. On failure the error wraps ErrInvalidUsername
// and includes the policy rule.
func Validate(raw string, p Policy) (string, error) {
	name := Normalize(raw)
	if !p.re.MatchString(name) {
		return "", fmt.Errorf("%w: %s", ErrInvalidUsername, p.rule)
	}
	return name, nil
}

// ToEmail derives the canonical login email for a username-only account.
// The mapping is one-directional: recovering a username from an arbitrary
// address outside EmailDomain is not attempted anywhere.
func ToEmail(name string) string {
	return name + "@" + EmailDomain
}
