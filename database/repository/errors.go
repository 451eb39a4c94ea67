package repository

import "errors"

// ErrNotFound is wrapped by every repository when a lookup by id matches nothing.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is wrapped when a unique index rejects an insert.
var ErrDuplicate = errors.New("already exists")
