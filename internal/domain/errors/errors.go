package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a referenced order, user or product vanished
	// between snapshot and operation. Surfaced, never retried.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists signals a uniqueness violation (email, order id, AWB).
	ErrAlreadyExists = errors.New("already exists")

	// ErrOrderNotAvailable signals a claim lost the race: the order left
	// pending between the snapshot and the transactional re-check.
	ErrOrderNotAvailable = errors.New("order is not available for assignment")

	// ErrNoOrdersAvailable signals an empty candidate queue.
	ErrNoOrdersAvailable = errors.New("no orders available")

	// ErrAlreadyHoldingOrder signals the operator still holds an in-progress
	// order that could not be released before a new claim or market switch.
	ErrAlreadyHoldingOrder = errors.New("operator already holds an order in progress")

	// ErrNotHoldingOrder signals a mutation attempted by an operator that is
	// not the current holder of the order.
	ErrNotHoldingOrder = errors.New("order is not held by this operator")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("operation not permitted for role")
)

// ValidationError names the field whose missing or malformed value blocked a
// transition. No mutation happens when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
