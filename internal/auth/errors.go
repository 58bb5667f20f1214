package auth

import "errors"

// Validation errors are caught before any storage access and carry
// messages safe to show back on the form.
var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrMissingFields    = errors.New("user name, email and password are required")
)

// ErrInvalidCredentials covers both unknown-user and wrong-password
// failures. The two cases share one message on purpose: callers must
// not be able to tell from the response whether an account exists.
var ErrInvalidCredentials = errors.New("invalid user name or password")

// ErrSessionInvalid is returned when a session token is missing a
// valid signature, has passed its absolute lifetime, or has been idle
// past its idle window.
var ErrSessionInvalid = errors.New("session invalid or expired")
