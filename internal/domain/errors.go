package domain

import "errors"

// Error categories returned by the engine. Callers match them with errors.Is;
// the message wrapped around them carries the detail.
var (
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
)
