// Package common defines shared constants and sentinel errors used across
// the bankd client and server layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Session lifecycle errors.
	ErrSessionExpired = errors.New("session expired")

	// Ledger-specific errors.
	ErrorDuplicateAccountType = errors.New("account of this type already exists")
	ErrorAccountInactive      = errors.New("account is not active")
	ErrorInvalidAmount        = errors.New("amount must be positive")
	ErrorInvalidCardNumber    = errors.New("invalid card number")
)
