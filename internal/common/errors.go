// Package common contains shared constants and sentinel errors used across
// ShelfKeeper components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Validation / catalog-specific errors.
	ErrorAlreadyExists     = errors.New("already exists")
	ErrorValidation        = errors.New("validation error")
	ErrorInsufficientStock = errors.New("insufficient stock")
	ErrorCategoryInUse     = errors.New("category has products")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
