// Package service holds the authentication and booking logic that sits
// between the HTTP handlers and the repositories.  Every failure a caller
// is expected to handle is one of the sentinels below (possibly wrapped);
// anything else is an internal error.
package service

import (
	"errors"

	"github.com/iliyamo/staynstray/internal/repository"
)

var (
	// ErrValidation marks missing or malformed input.
	ErrValidation = errors.New("validation failed")
	// ErrUnsupportedBookingType is returned for booking types other than
	// hotel and flight, including train.
	ErrUnsupportedBookingType = errors.New("unsupported booking type")
	// ErrEmailExists is returned when registering an email that is taken.
	ErrEmailExists = repository.ErrEmailExists
	// ErrUserNotFound is returned when no user has the given email.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidPassword is returned when the password does not match.
	ErrInvalidPassword = errors.New("invalid credentials")
	// ErrMissingCredential is returned when no token was presented.
	ErrMissingCredential = errors.New("missing credential")
	// ErrInvalidCredential is returned for tampered, malformed or expired tokens.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrItemNotFound is returned when a booked item is not in the catalog.
	ErrItemNotFound = errors.New("inventory item not found")
	// ErrServer wraps storage failures whose cause must not reach the client.
	ErrServer = errors.New("internal server error")
)
