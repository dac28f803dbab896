package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrEmptyID            = errors.New("id cannot be empty")
	ErrEmptyDescription   = errors.New("description cannot be empty")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
	ErrInvalidAmount      = errors.New("amount must be a non-negative value")
	ErrInvalidType        = errors.New("type must be income or expense")
	ErrInvalidDate        = errors.New("date cannot be zero")
	ErrEmptyCategoryName  = errors.New("category name cannot be empty")
	ErrEmptyPatch         = errors.New("patch must change at least one field")
)

// RemoteCallError is returned when a call to the remote store reports a failure
// (network, validation or backend side). It is the only failure kind the
// application state distinguishes.
type RemoteCallError struct {
	Op  string
	Err error
}

// NewRemoteCallError wraps err as a failure of the remote operation op.
// A nil err yields nil.
func NewRemoteCallError(op string, err error) error {
	if err == nil {
		return nil
	}
	var rce *RemoteCallError
	if errors.As(err, &rce) {
		return err
	}
	return &RemoteCallError{Op: op, Err: err}
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("remote %s failed: %v", e.Op, e.Err)
}

func (e *RemoteCallError) Unwrap() error {
	return e.Err
}

// Message returns the human-readable message of the underlying failure
func (e *RemoteCallError) Message() string {
	if e.Err == nil {
		return "unknown error"
	}
	return e.Err.Error()
}

// ErrorMessage extracts the user-facing message from err
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var rce *RemoteCallError
	if errors.As(err, &rce) {
		return rce.Message()
	}
	return err.Error()
}

var validationErrors = []error{
	ErrEmptyID,
	ErrEmptyDescription,
	ErrDescriptionTooLong,
	ErrInvalidAmount,
	ErrInvalidType,
	ErrInvalidDate,
	ErrEmptyCategoryName,
	ErrEmptyPatch,
}

// IsValidationError reports whether err was caused by malformed input
func IsValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
