package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubExec struct {
	signedIn bool
	calls    []string
}

func (s *stubExec) isSignedIn() bool { return s.signedIn }

func (s *stubExec) record(name string) error {
	s.calls = append(s.calls, name)
	return nil
}

func (s *stubExec) SignUp(context.Context) error { return s.record("signup") }
func (s *stubExec) Login(context.Context) error  { return s.record("login") }
func (s *stubExec) Logout(context.Context) error { return s.record("logout") }
func (s *stubExec) WhoAmI(context.Context) error { return s.record("whoami") }
func (s *stubExec) Users(context.Context) error  { return s.record("users") }

func runScript(t *testing.T, a execIface, script string) {
	t.Helper()
	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), a, func() string { return "" }, scanner)
}

func TestREPL_Dispatch(t *testing.T) {
	s := &stubExec{}
	runScript(t, s, "signup\nlogin\nwhoami\nusers\nlogout\nexit\n")
	assert.Equal(t, []string{"signup", "login", "whoami", "users", "logout"}, s.calls)
}

func TestREPL_IgnoresBlankAndUnknown(t *testing.T) {
	s := &stubExec{}

	var printed []string
	orig := printlnFn
	printlnFn = func(args ...any) (int, error) {
		printed = append(printed, args[0].(string))
		return 0, nil
	}
	defer func() { printlnFn = orig }()

	runScript(t, s, "\n   \nfrobnicate\nquit\n")
	assert.Empty(t, s.calls)
	assert.Contains(t, printed, "Unknown command:")
}

func TestREPL_ExitsOnEOF(t *testing.T) {
	s := &stubExec{}
	runScript(t, s, "login") // no trailing newline, then EOF
	assert.Equal(t, []string{"login"}, s.calls)
}
