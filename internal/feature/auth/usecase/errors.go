// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

// Sentinel errors shared between the auth usecase and its adapters.
var (
	// ErrUserNotFound is returned when no user matches the given email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when the email is already registered.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrSessionNotFound is returned when no session matches the given ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionRevoked is returned when the session has been revoked.
	ErrSessionRevoked = errors.New("session has been revoked")

	// ErrSessionExpired is returned when the session has passed its expiry.
	ErrSessionExpired = errors.New("session has expired")

	// ErrInvalidRefreshToken is returned for unknown or malformed refresh tokens.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)
