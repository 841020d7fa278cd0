package core

import "errors"

// Common errors.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("note not found")
	ErrReadOnly   = errors.New("store is in read-only mode")
)
