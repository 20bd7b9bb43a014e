package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrPrecondition          = errors.New("precondition failed")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
