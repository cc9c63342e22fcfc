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

// ErrConflict indicates a state conflict, e.g. a document already transitioned
// by a concurrent request.
var ErrConflict = errors.New("conflicting state")

// ErrForbidden indicates the user lacks the role required for an action.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrInvalidRate indicates a non-positive exchange rate. Conversions fail
// before any writes happen.
var ErrInvalidRate = errors.New("exchange rate must be positive")

// AppError wraps an underlying error with an HTTP-ish status code and a
// human-readable message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationError creates an AppError that unwraps to ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}

// UnbalancedBatchError reports a failed pre-commit balance check. The batch is
// rejected and nothing is persisted.
type UnbalancedBatchError struct {
	ReferenceNumber string
	TotalDebit      decimal.Decimal
	TotalCredit     decimal.Decimal
}

func (e *UnbalancedBatchError) Error() string {
	return fmt.Sprintf("posting batch for %s does not balance: debits %s, credits %s, delta %s",
		e.ReferenceNumber, e.TotalDebit.StringFixed(2), e.TotalCredit.StringFixed(2), e.Delta().StringFixed(2))
}

// Delta returns totalDebit - totalCredit.
func (e *UnbalancedBatchError) Delta() decimal.Decimal {
	return e.TotalDebit.Sub(e.TotalCredit)
}

// MissingAccountConfigError reports a mandatory account role for which no
// account resolved at any level of the override hierarchy. Never defaulted.
type MissingAccountConfigError struct {
	Role string
	Line string
}

func (e *MissingAccountConfigError) Error() string {
	if e.Line != "" {
		return fmt.Sprintf("no account configured for mandatory role %s (%s)", e.Role, e.Line)
	}
	return fmt.Sprintf("no account configured for mandatory role %s", e.Role)
}
