package domain

import (
	"errors"
	"fmt"
)

var (
	ErrClientNotFound  = errors.New("client not found")
	ErrClientExists    = errors.New("client already exists")
	ErrNoCurrentClient = errors.New("no client selected")

	// ErrInvalidStage is returned when a workflow transition or chat turn is
	// attempted from a stage that does not allow it.
	ErrInvalidStage = errors.New("operation not valid in current stage")
)

// ValidationError marks bad input on a client-facing operation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// GatewayError wraps a failure from the completion provider. The provider's
// message is surfaced to the caller verbatim.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string {
	return e.Err.Error()
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// IsGateway reports whether err is a GatewayError.
func IsGateway(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge)
}
