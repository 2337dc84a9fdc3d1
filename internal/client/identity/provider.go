// Package identity consumes the remote identity provider as an opaque
// capability: sign-in, sign-up, password reset, sign-out. The provider's
// session protocol is its own business; the client only reads the uid, email
// and expiry out of the ID token it hands back.
package identity

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrTokenExpired       = errors.New("session expired, please log in again")
)

// Account is an authenticated identity as reported by the provider.
type Account struct {
	UserID    string
	Email     string
	Token     string
	ExpiresAt time.Time
}

// Expired reports whether the account's token is past its expiry.
func (a Account) Expired() bool {
	return !a.ExpiresAt.IsZero() && time.Now().After(a.ExpiresAt)
}

// Provider is the capability surface consumed from the identity service.
type Provider interface {
	SignIn(ctx context.Context, email string, password []byte) (Account, error)
	SignUp(ctx context.Context, email string, password []byte) (Account, error)
	ResetPassword(ctx context.Context, email string) error
	SignOut(ctx context.Context) error
}
