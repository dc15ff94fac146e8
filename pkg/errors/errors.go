package apperrors

import "errors"

// Common errors
var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrInvalidInput  = errors.New("invalid input")
	ErrAlreadyExists = errors.New("already exists")
	ErrPersistence   = errors.New("persistence failure")
	ErrUpstream      = errors.New("upstream model failure")
)
