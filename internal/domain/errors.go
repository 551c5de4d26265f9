package domain

import "errors"

// Error taxonomy shared by the services and the HTTP layer
var (
	ErrInvalidAuth  = errors.New("invalid authentication")
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)
