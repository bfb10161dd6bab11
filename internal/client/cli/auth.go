package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/services"
	"github.com/dmitrijs2005/sessionkeeper/internal/common"
)

// getSimpleText, getTextOrKeep and getPassword are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getTextOrKeep = GetTextOrKeep
	getPassword   = GetPassword
)

const (
	MsgRestoring      = "Restoring session..."
	MsgSignInRequired = "Please sign in first (type 'login')."
)

// awaitRestore blocks until the stored session has been checked.
func (a *App) awaitRestore(ctx context.Context) error {
	select {
	case <-a.session.Ready():
		return nil
	default:
	}

	fmt.Fprintln(a.out, MsgRestoring)
	select {
	case <-a.session.Ready():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// requireSession gates protected commands: it waits out the restore and
// refuses when nobody is signed in.
func (a *App) requireSession(ctx context.Context) bool {
	if err := a.awaitRestore(ctx); err != nil {
		return false
	}
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, MsgSignInRequired)
		return false
	}
	return true
}

// Login prompts for credentials and signs in through the session controller.
// The password is wiped before returning. A rejected login is reported to
// the user and is not an error.
func (a *App) Login(ctx context.Context) error {
	if err := a.awaitRestore(ctx); err != nil {
		return err
	}
	if s := a.session.Snapshot(); s.User != nil {
		fmt.Fprintf(a.out, "Already signed in as %s. Type 'logout' first.\n", s.User.Username)
		return nil
	}

	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	a.session.ClearError()

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res := a.session.Login(ctx, username, string(password))
	if !res.Success {
		fmt.Fprintln(a.out, res.Message)
		return nil
	}

	if u := a.session.Snapshot().User; u != nil {
		fmt.Fprintf(a.out, "Welcome back, %s\n", u.Name)
	}
	return nil
}

// Signup registers a new account. It does not sign in.
func (a *App) Signup(ctx context.Context) error {
	form, err := a.readUserForm(nil)
	if err != nil {
		return err
	}

	if _, err := a.users.Signup(ctx, form); err != nil {
		fmt.Fprintln(a.out, services.UserMessage(err))
		return nil
	}

	fmt.Fprintln(a.out, services.MsgSignedUp)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	wasIn := a.isLoggedIn()
	a.session.Logout(ctx)
	if wasIn {
		fmt.Fprintln(a.out, "Logged out.")
	} else {
		fmt.Fprintln(a.out, "Not signed in.")
	}
	return nil
}

func (a *App) Status(_ context.Context) error {
	s := a.session.Snapshot()
	switch {
	case s.IsBootstrapping:
		fmt.Fprintln(a.out, MsgRestoring)
	case s.User != nil:
		fmt.Fprintf(a.out, "Signed in as %s (%s)\n", s.User.Username, s.User.Name)
	default:
		fmt.Fprintln(a.out, "Signed out")
	}
	if s.Error != "" {
		fmt.Fprintln(a.out, "Last error:", s.Error)
	}
	return nil
}
