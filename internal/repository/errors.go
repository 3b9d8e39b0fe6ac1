package repository

import "errors"

// ErrNotFound is returned when an update or lookup matches no row.
var ErrNotFound = errors.New("record not found")
