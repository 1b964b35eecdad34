package usecase

import "errors"

// Sentinel errors returned by the service layer; the HTTP layer maps them
// to status codes with errors.Is.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
