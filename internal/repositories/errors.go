package repositories

import "errors"

// ErrNotFound is wrapped by every lookup that matches no row.
var ErrNotFound = errors.New("record not found")
