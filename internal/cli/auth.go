package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/chuilabs/chui/internal/remote"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point at the interactive input helpers and can be swapped
// in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// SignUp prompts for username, email and password and creates a hosted
// account. On success the session token is stored and the user is signed in.
func (a *App) SignUp(ctx context.Context) error {
	if !a.beginResolve() {
		return nil
	}
	defer a.endResolve()

	name, err := getSimpleText(a.reader, "Pick a username (3-20 letters/numbers)", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email (used for password reset)", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	sess, err := a.auth.SignUp(ctx, name, email, password)
	if err != nil {
		fmt.Println("Sign-up failed:", err)
		return err
	}

	a.sessions.Set(ctx, sess.Token)
	a.userName = sess.Username
	a.local = false
	fmt.Printf("Welcome, %s!\n", sess.Username)
	return nil
}

// Login prompts for a username-or-email identifier and a password, then
// signs in against the identity service.
//
// When the service cannot be reached at all (remote.ErrUnavailable), the
// identifier is resolved through the local flat-file registry instead and
// the shell enters local mode: a stable numeric identity, no token, no
// hosted session. Authentication failures never trigger the fallback.
func (a *App) Login(ctx context.Context) error {
	if !a.beginResolve() {
		return nil
	}
	defer a.endResolve()

	identifier, err := getSimpleText(a.reader, "Username or email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	sess, err := a.auth.SignIn(ctx, identifier, password)
	if err == nil {
		a.sessions.Set(ctx, sess.Token)
		a.userName = sess.Username
		a.local = false
		fmt.Printf("Signed in as %s.\n", sess.Username)
		return nil
	}

	if !errors.Is(err, remote.ErrUnavailable) {
		fmt.Println("Sign-in failed:", err)
		return err
	}

	a.log.Warn(ctx, "identity service unreachable, resolving locally", "err", err)
	rec, rerr := a.registry.Resolve(ctx, identifier)
	if rerr != nil {
		fmt.Println("Local resolution failed:", rerr)
		return rerr
	}

	a.userName = rec.Username
	a.local = true
	fmt.Printf("Signed in locally as %s (id %d).\n", rec.Username, rec.UserID)
	return nil
}

// Logout invalidates the hosted session when one exists, then clears the
// local credential. The remote call is best-effort: a failure is reported
// but never keeps the local state signed in.
func (a *App) Logout(ctx context.Context) error {
	if token := a.sessions.Get(); token != "" {
		if err := a.auth.SignOut(ctx, token); err != nil {
			a.log.Warn(ctx, "remote sign-out failed", "err", err)
		}
	}
	a.sessions.Clear(ctx)
	a.userName = ""
	a.local = false
	fmt.Println("Signed out.")
	return nil
}

// WhoAmI prints the current identity, if any. A session restored from disk
// carries only an opaque token, so the username is looked up remotely and
// remembered for the rest of the run.
func (a *App) WhoAmI(ctx context.Context) error {
	switch {
	case a.userName != "" && a.local:
		fmt.Printf("%s (local registry)\n", a.userName)
	case a.userName != "":
		fmt.Println(a.userName)
	case a.sessions.Get() != "":
		cur, err := a.queries.GetCurrentUser(ctx, a.sessions.Get())
		if err != nil {
			a.log.Warn(ctx, "current-user lookup failed", "err", err)
			fmt.Println("Signed in (restored session).")
			return nil
		}
		a.userName = cur.Username
		fmt.Println(cur.Username)
	default:
		fmt.Println("Not signed in.")
	}
	return nil
}

// Users lists the profiles known to the identity service.
func (a *App) Users(ctx context.Context) error {
	profiles, err := a.queries.ListProfiles(ctx, a.sessions.Get())
	if err != nil {
		fmt.Println("Could not list users:", err)
		return err
	}
	if len(profiles) == 0 {
		fmt.Println("No users yet.")
		return nil
	}
	for _, p := range profiles {
		if p.Email != "" {
			fmt.Printf("%s <%s>\n", p.Username, p.Email)
		} else {
			fmt.Println(p.Username)
		}
	}
	return nil
}
