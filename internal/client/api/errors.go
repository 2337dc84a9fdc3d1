package api

import (
	"errors"
	"fmt"
)

var (
	// ErrPaymentRequired is returned when the remote side rejects a run with
	// a payment/credit-required status. The attempt consumed no entitlement.
	ErrPaymentRequired = errors.New("payment required")

	// ErrUnavailable is returned when the server cannot be reached at all.
	ErrUnavailable = errors.New("server unavailable")

	// ErrNotFound is returned for missing profiles or simulations.
	ErrNotFound = errors.New("not found")
)

// Error is a remote failure that carried a server-provided message.
// Match broad classes with the sentinels above; use RemoteMessage to surface
// the server's own wording to the user.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote error (status %d)", e.Status)
	}
	return e.Message
}

// RemoteMessage extracts the server-provided message from err, or returns
// fallback when err carries none.
func RemoteMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
