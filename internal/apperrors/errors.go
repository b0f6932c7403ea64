package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller is not allowed to touch the resource.
var ErrForbidden = errors.New("forbidden")

// ErrInternal is returned when a failure should not leak details to the caller.
var ErrInternal = errors.New("internal error")

// ErrConfiguration indicates a required well-known account is missing from the chart.
var ErrConfiguration = errors.New("configuration error")

// ErrImbalance indicates a journal whose debits and credits differ.
var ErrImbalance = errors.New("journal does not balance")

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// ConfigurationError reports an account role whose code is not in the chart,
// or whose account has the wrong type for that role (Reason set).
type ConfigurationError struct {
	Role   string
	Code   string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("configuration error: %s account %q %s", e.Role, e.Code, e.Reason)
	}
	return fmt.Sprintf("configuration error: %s account %q is not in the chart of accounts", e.Role, e.Code)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// ImbalanceError reports a journal that failed the debit == credit check.
type ImbalanceError struct {
	Journal string
	Debit   decimal.Decimal
	Credit  decimal.Decimal
}

func (e *ImbalanceError) Error() string {
	return fmt.Sprintf("journal %q does not balance: debits %s, credits %s", e.Journal, e.Debit.String(), e.Credit.String())
}

func (e *ImbalanceError) Unwrap() error { return ErrImbalance }

// ValidationError names the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError is a shorthand for &ValidationError{...}.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
