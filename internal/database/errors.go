package database

import "errors"

// ErrNoDatabase is returned when the pool could not be initialized.
var ErrNoDatabase = errors.New("database unavailable")
