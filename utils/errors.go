package utils

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError is a client-side failure: required fields missing or input
// that cannot be parsed. It never reaches the server.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// AuthError means no usable session credential exists. Raised before any
// network call is attempted.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

func NewAuthError(message string) error {
	return &AuthError{Message: message}
}

// ProtocolError marks a server response that could not be parsed at all.
type ProtocolError struct {
	Message string
	Err     error
}

func (e *ProtocolError) Error() string { return e.Message }
func (e *ProtocolError) Unwrap() error { return e.Err }

func NewProtocolError(err error) error {
	return &ProtocolError{Message: "invalid server response", Err: err}
}

// BusinessError is a well-formed server response signaling logical failure.
// Details holds any per-field validation messages the server supplied.
type BusinessError struct {
	Message string
	Details []string
}

func (e *BusinessError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return e.Message + "\n" + strings.Join(e.Details, "\n")
}

// NetworkError wraps a transport failure for the given operation.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// IndexError reports an out-of-range access on a draft's line items.
type IndexError struct {
	Index  int
	Length int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Length)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

func IsProtocol(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}

func IsBusiness(err error) bool {
	var be *BusinessError
	return errors.As(err, &be)
}

func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

func IsIndex(err error) bool {
	var ie *IndexError
	return errors.As(err, &ie)
}
