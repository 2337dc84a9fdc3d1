package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/glidepath/internal/client/identity"
	"github.com/dmitrijs2005/glidepath/internal/client/session"
	"github.com/dmitrijs2005/glidepath/internal/common"
)

// Register creates a new account and signs the session in as it.
func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Please enter your email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	repeat, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(repeat)

	if !bytes.Equal(password, repeat) {
		return identity.ErrPasswordMismatch
	}

	account, err := a.provider.SignUp(ctx, email, password)
	if err != nil {
		return err
	}

	a.signIn(ctx, account)
	printlnFn("Account created, you are now logged in as", account.Email)
	return nil
}

// Login authenticates against the identity provider and switches the session
// to the returned account. Guest usage does not carry over.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Please enter your email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	account, err := a.provider.SignIn(ctx, email, password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return err
		}
		return fmt.Errorf("login failed: %w", err)
	}

	a.signIn(ctx, account)
	printlnFn("Logged in as", account.Email)
	return nil
}

// signIn installs the account identity and warms the entitlement and profile
// caches. Either warm-up failing is not fatal; the data reloads on demand.
func (a *App) signIn(ctx context.Context, account identity.Account) {
	a.account = account
	a.sess.SetIdentity(session.Identity{UserID: account.UserID, Email: account.Email})

	if err := a.engine.Refresh(ctx, account.UserID); err != nil {
		a.log.Warn(ctx, "entitlement fetch after login failed", "error", err)
	}
	if _, err := a.profiles.Refresh(ctx); err != nil {
		a.log.Warn(ctx, "profile fetch after login failed", "error", err)
	}
}

// Logout returns the session to the guest identity.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errors.New("you are not logged in")
	}
	if err := a.provider.SignOut(ctx); err != nil {
		a.log.Warn(ctx, "provider sign-out failed", "error", err)
	}
	a.account = identity.Account{}
	a.sess.SetIdentity(session.Identity{})
	printlnFn("Logged out.")
	return nil
}

// ResetPassword requests a password-reset email from the identity provider.
func (a *App) ResetPassword(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Please enter your email", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.provider.ResetPassword(ctx, email); err != nil {
		return fmt.Errorf("password reset failed: %w", err)
	}
	printlnFn("If the address is registered, a reset email is on its way.")
	return nil
}
