// Package common defines sentinel errors shared across the service and HTTP
// layers of SignSpeak. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Validation errors (malformed identifiers).
	ErrorInvalidID = errors.New("invalid identifier")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
