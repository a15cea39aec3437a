package models

import "fmt"

// ValidationError is returned when caller input cannot produce a valid pet.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// DecodeError is returned when a persisted record cannot be turned back into a pet.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode pet: %s: %v", e.Reason, e.Err)
	}
	return "decode pet: " + e.Reason
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
