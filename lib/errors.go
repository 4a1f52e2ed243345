package lib

import (
	"errors"

	"github.com/uptrace/bun/driver/pgdriver"
)

// Database errors
var (
	ErrConflict = errors.New("conflict")
	ErrNotFound = errors.New("not found")
)

// Auth errors
var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("expired token")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// MapPgError maps low-level PostgreSQL errors onto the sentinel errors above
// so handlers can branch without knowing SQLSTATE codes.
func MapPgError(err error) error {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		switch pgErr.Field('C') { // SQLSTATE
		case "23505": // unique_violation
			return ErrConflict
		case "P0002": // no_data_found
			return ErrNotFound
		}
	}
	return err
}

// IsUniqueViolation reports whether the error is a unique constraint violation
func IsUniqueViolation(err error) bool {
	return errors.Is(MapPgError(err), ErrConflict)
}

// IsNotFound reports whether the error means no matching record
func IsNotFound(err error) bool {
	return errors.Is(MapPgError(err), ErrNotFound)
}

// GetUserMessage returns a message safe to show to API clients
func GetUserMessage(err error) string {
	switch {
	case errors.Is(err, ErrConflict):
		return "A record with these details already exists"
	case errors.Is(err, ErrNotFound):
		return "The requested resource was not found"
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, ErrInvalidToken):
		return "Invalid or malformed token"
	case errors.Is(err, ErrExpiredToken):
		return "Token has expired"
	default:
		return "An unexpected error occurred"
	}
}

// GetDetailForLogging returns the full error detail for structured logs
func GetDetailForLogging(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
