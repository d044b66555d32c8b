// Package repository implements MySQL persistence for users and bookings.
// Sentinel errors let higher layers distinguish expected failures from
// infrastructure errors without inspecting driver types.  Lookups that
// find nothing return sql.ErrNoRows unchanged.
package repository

import "errors"

// ErrEmailExists is returned by UserRepo.Create when the email is already
// registered.  Handlers should translate this into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")
