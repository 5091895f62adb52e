package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrNotPermitted      = errors.New("not permitted")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrConflict          = errors.New("concurrent modification")
	ErrAlreadyExists     = errors.New("already exists")
	ErrUpload            = errors.New("document upload failed")
	ErrPayment           = errors.New("payment failed")
)

// ValidationError aggregates field-level failures found before any mutation.
// errors.Is matches ErrValidation as well as the category of every violation.
type ValidationError struct {
	Violations []error
}

// NewValidationError returns nil when no violations are given so callers can
// write `if err := errs.NewValidationError(v...); err != nil`.
func NewValidationError(violations ...error) error {
	kept := make([]error, 0, len(violations))
	for _, v := range violations {
		if v != nil {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return &ValidationError{Violations: kept}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Error())
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() []error {
	return append([]error{ErrValidation}, e.Violations...)
}

// AuthorizationError is returned when a principal lacks rights for an action.
// It is never downgraded to a validation failure.
type AuthorizationError struct {
	Action    string
	Principal string
	Cause     error
}

func NewAuthorizationError(action, principal string) *AuthorizationError {
	return &AuthorizationError{Action: action, Principal: principal}
}

func NewAuthorizationErrorWithCause(action, principal string, cause error) *AuthorizationError {
	return &AuthorizationError{Action: action, Principal: principal, Cause: cause}
}

func (e *AuthorizationError) Error() string {
	msg := fmt.Sprintf("%s: %s by %s", ErrNotPermitted, e.Action, sanitize(e.Principal))
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *AuthorizationError) Unwrap() error {
	return ErrNotPermitted
}

// InvalidTransitionError reports a target status that is not reachable from the current one.
type InvalidTransitionError struct {
	From string
	To   string
}

func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ConflictError is returned to the loser of an optimistic concurrency race.
// The caller must re-read and decide again; it must not merge.
type ConflictError struct {
	ParamName string
	ID        any
	Expected  string
}

func NewConflictError(paramName string, id any, expected string) *ConflictError {
	return &ConflictError{ParamName: paramName, ID: id, Expected: expected}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s no longer matches %s", ErrConflict, e.ParamName, sanitize(e.ID), e.Expected)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// AlreadyExistsError reports a write-once value that has already been written.
type AlreadyExistsError struct {
	ParamName string
	ID        any
}

func NewAlreadyExistsError(paramName string, id any) *AlreadyExistsError {
	return &AlreadyExistsError{ParamName: paramName, ID: id}
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s: %s for %s", ErrAlreadyExists, e.ParamName, sanitize(e.ID))
}

func (e *AlreadyExistsError) Unwrap() error {
	return ErrAlreadyExists
}

// UploadError wraps a blob store failure for a single file.
type UploadError struct {
	FileName string
	Cause    error
}

func NewUploadError(fileName string, cause error) *UploadError {
	return &UploadError{FileName: fileName, Cause: cause}
}

func (e *UploadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrUpload, sanitize(e.FileName), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrUpload, sanitize(e.FileName))
}

func (e *UploadError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrUpload}
	}
	return []error{ErrUpload, e.Cause}
}

// PaymentError wraps a payment collaborator failure or cancellation.
type PaymentError struct {
	Reason string
	Cause  error
}

func NewPaymentError(reason string) *PaymentError {
	return &PaymentError{Reason: reason}
}

func NewPaymentErrorWithCause(reason string, cause error) *PaymentError {
	return &PaymentError{Reason: reason, Cause: cause}
}

func (e *PaymentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrPayment, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrPayment, e.Reason)
}

func (e *PaymentError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrPayment}
	}
	return []error{ErrPayment, e.Cause}
}
