package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/postboard/internal/client/client"
	"github.com/dmitrijs2005/postboard/internal/common"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// Register prompts for name, email and password and creates an account.
// The new account becomes the current session. The password is wiped
// before returning.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	p, err := a.authService.Register(ctx, name, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s! You are logged in.\n", p.Name)
	return nil
}

// Login prompts for credentials and replaces the current session on
// success. A failed login leaves any existing session in place.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	p, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s <%s>\n", p.Name, p.Email)
	return nil
}

// Logout forgets the session locally.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(context.Context) error {
	p, ok := a.authService.CurrentUser()
	if !ok {
		return client.ErrNotLoggedIn
	}
	fmt.Fprintf(a.out, "%s <%s> id=%s\n", p.Name, p.Email, p.ID)
	return nil
}

func (a *App) Ping(ctx context.Context) error {
	if err := a.authService.Ping(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s is up\n", a.config.ServerURL)
	return nil
}

// describe turns command errors into a line for the user.
func describe(err error) string {
	switch {
	case errors.Is(err, client.ErrNotLoggedIn):
		return "you need to log in first"
	case errors.Is(err, common.ErrorUnauthorized):
		return fmt.Sprintf("not authorized; try logging in again (%v)", err)
	case errors.Is(err, common.ErrorForbidden):
		return "that post belongs to someone else"
	case errors.Is(err, common.ErrorNotFound):
		return "post not found"
	case errors.Is(err, client.ErrUnavailable):
		return "server unreachable"
	default:
		return err.Error()
	}
}
