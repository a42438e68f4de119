// Package common defines shared constants and sentinel errors used across
// client and server layers of hoverboard. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")
	ErrorInvalidInput = errors.New("invalid input")

	// Auth errors (invalid, malformed or expired token).
	ErrInvalidToken = errors.New("invalid token")

	// Login errors. Unknown email and wrong password share one value.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")

	// Registration and username claim errors.
	ErrEmailTaken      = errors.New("email already registered")
	ErrInvalidUsername = errors.New("username must be 3-30 characters, alphanumeric and underscores only")
	ErrUsernameTaken   = errors.New("username already taken")
)
