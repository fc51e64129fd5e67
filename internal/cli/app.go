// Package cli is the interactive shell of the chui client: prompts, the
// command loop and the glue between user actions and the identity
// subsystem. Rendering stays as plain line output; the chat screens proper
// are a separate surface and not part of this module.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/chuilabs/chui/internal/auth"
	"github.com/chuilabs/chui/internal/config"
	"github.com/chuilabs/chui/internal/filex"
	"github.com/chuilabs/chui/internal/logging"
	"github.com/chuilabs/chui/internal/profile"
	"github.com/chuilabs/chui/internal/registry"
	"github.com/chuilabs/chui/internal/remote"
	"github.com/chuilabs/chui/internal/session"
)

// Names of the local files kept under the data directory. Exported so the
// one-shot commands open the same files as the shell.
const (
	LedgerFileName   = "users.csv"
	ProfilesFileName = "profiles.json"
	SessionFileName  = "session-token"
)

// resolver is the facade surface the shell needs; satisfied by
// *auth.Service and stubbed in tests.
type resolver interface {
	SignUp(ctx context.Context, username, email, password string) (auth.Session, error)
	SignIn(ctx context.Context, identifier, password string) (auth.Session, error)
	SignOut(ctx context.Context, token string) error
}

// localResolver is the registry fallback path.
type localResolver interface {
	Resolve(ctx context.Context, name string) (registry.Record, error)
}

// profileQuery is the read-only remote profile surface: the full listing and
// the lookup behind a session token.
type profileQuery interface {
	ListProfiles(ctx context.Context, token string) ([]remote.ProfileInfo, error)
	GetCurrentUser(ctx context.Context, token string) (remote.CurrentUser, error)
}

// App wires the shell to the identity subsystem. All resolutions are
// user-initiated and sequential; the busy flag rejects a second submission
// while one is outstanding, since no operation below queues or de-duplicates.
type App struct {
	config   *config.Config
	log      logging.Logger
	auth     resolver
	registry localResolver
	queries  profileQuery
	sessions *session.Store
	reader   *bufio.Reader

	userName string
	local    bool
	busy     bool
}

// NewApp resolves the data directory, builds the local stores and the
// remote client, and returns a ready shell.
func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	dir := cfg.DataDir
	if dir == "" {
		d, err := filex.DefaultAppDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := filex.EnsureDir(dir); err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	remoteClient := remote.NewHTTPClient(cfg.ServerEndpointURL, httpClient)

	profiles := profile.NewService(profile.NewFileStore(filepath.Join(dir, ProfilesFileName)))

	return &App{
		config:   cfg,
		log:      log,
		auth:     auth.NewService(remoteClient, profiles),
		registry: registry.New(filepath.Join(dir, LedgerFileName), log),
		queries:  remoteClient,
		sessions: session.New(filepath.Join(dir, SessionFileName), log),
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

// Run starts the command loop.
func (a *App) Run(ctx context.Context) {
	fmt.Println("Welcome to chui (type 'help' for commands)")
	if a.sessions.Get() != "" {
		fmt.Println("Restored session from previous run.")
	}
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

// status renders the prompt suffix: username and mode, when known.
func (a *App) status() string {
	switch {
	case a.userName != "" && a.local:
		return fmt.Sprintf("(%s local)", a.userName)
	case a.userName != "":
		return fmt.Sprintf("(%s)", a.userName)
	case a.sessions.Get() != "":
		return "(session)"
	default:
		return ""
	}
}

func (a *App) isSignedIn() bool {
	return a.userName != "" || a.sessions.Get() != ""
}

// beginResolve marks a resolution as in flight. It returns false when one
// is already outstanding, in which case the caller must bail out.
func (a *App) beginResolve() bool {
	if a.busy {
		fmt.Println("Another request is still in progress.")
		return false
	}
	a.busy = true
	return true
}

func (a *App) endResolve() {
	a.busy = false
}
