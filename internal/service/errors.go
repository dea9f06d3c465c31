package service

import "errors"

// Sentinel errors returned by services. Handlers match them with [errors.Is]
// to pick the HTTP status and client-facing message.
var (
	// ErrWrongCredentials is returned by Login when no user matches the
	// email or the password hash check fails. Both cases are deliberately
	// indistinguishable to the caller.
	ErrWrongCredentials = errors.New("wrong email or password")

	// ErrTokenExpired is returned by ParseToken when the token is past its
	// encoded expiry.
	ErrTokenExpired = errors.New("token is expired")

	// ErrTokenInvalid is returned by ParseToken when the signature does not
	// verify or the token structure cannot be parsed.
	ErrTokenInvalid = errors.New("token is invalid")

	// ErrTokenCreationFailed is returned when signing a new JWT fails.
	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrInvalidPageOrLimit is returned by List when page or limit resolves
	// to a value below 1 after parsing and clamping.
	ErrInvalidPageOrLimit = errors.New("page or limit must be greater than 1")
)

// ValidationError is a client-input failure carrying the exact message to be
// returned in the JSON error body. Handlers match it with [errors.As] and map
// it to HTTP 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(message string) error {
	return &ValidationError{Message: message}
}
