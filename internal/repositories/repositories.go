package repositories

import "github.com/mlahtinen/tutorloop/internal/errors"

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.NewSentinel("not found")
