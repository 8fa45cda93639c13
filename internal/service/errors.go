package service

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// FieldError reports a problem with one input field. It unwraps to
// ErrValidation or ErrConflict.
type FieldError struct {
	Field   string
	Message string
	Kind    error
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Message }

func (e *FieldError) Unwrap() error { return e.Kind }

func invalid(field, msg string) error {
	return &FieldError{Field: field, Message: msg, Kind: ErrValidation}
}

func conflict(field, msg string) error {
	return &FieldError{Field: field, Message: msg, Kind: ErrConflict}
}
