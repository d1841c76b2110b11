package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Validation error
//
// Returned for configuration and request input that must be rejected
// before a simulation starts.

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Invariant violations
//
// These indicate a construction bug (unknown crop id, missing neighbor,
// re-ordering a consumed harvest entry). They abort the run; aggregates
// computed after one would be meaningless.

type InvariantViolationError struct {
	*DomainError
	Invariant string
}

func NewInvariantViolationError(invariant, message string) *InvariantViolationError {
	return &InvariantViolationError{
		DomainError: &DomainError{Message: fmt.Sprintf("invariant %q violated: %s", invariant, message)},
		Invariant:   invariant,
	}
}

// UnknownCropError reports a crop id that does not resolve in the grove
type UnknownCropError struct {
	*InvariantViolationError
	CropID int
}

func NewUnknownCropError(cropID int) *UnknownCropError {
	return &UnknownCropError{
		InvariantViolationError: NewInvariantViolationError("crop-lookup", fmt.Sprintf("crop %d not found in grove", cropID)),
		CropID:                  cropID,
	}
}

// Unwrap lets errors.As match the general invariant violation
func (e *UnknownCropError) Unwrap() error {
	return e.InvariantViolationError
}
