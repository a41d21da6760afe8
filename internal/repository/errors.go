// Package repository contains the data access layer, separated from HTTP
// handlers.  This file defines sentinel errors shared across repositories so
// handlers can map failure scenarios to HTTP codes: not-found conditions
// become 404, a taken username becomes 400, anything else becomes 500.
package repository

import "errors"

// ErrFilmNotFound is returned when a film id does not exist.
var ErrFilmNotFound = errors.New("film not found")

// ErrActorNotFound is returned when an actor id does not exist.
var ErrActorNotFound = errors.New("actor not found")

// ErrOscarNotFound is returned when an oscar id does not exist.
var ErrOscarNotFound = errors.New("oscar not found")

// ErrUserNotFound is returned when a user id or username does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrUsernameExists is returned when creating or renaming a user would
// violate username uniqueness.
var ErrUsernameExists = errors.New("username already exists")
