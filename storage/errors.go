package storage

import "errors"

// ErrNotFound is returned when an evaluation record does not exist.
var ErrNotFound = errors.New("evaluation not found")
