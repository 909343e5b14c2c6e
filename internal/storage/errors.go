package storage

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("entry already exists for this habit and day")
	ErrNotLoaded = errors.New("storage not loaded")
)
