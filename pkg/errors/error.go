// Package errors provides coded errors shared by every layer of the API.
//
// Codes are grouped by range:
//   - 1-99: unknown and internal faults
//   - 100-199: rejected input such as malformed bar series or out-of-range horizons
//   - 200-299: missing rows, empty upstream results, store and cache faults
//   - 300-399: indicator lookup and calculation
//   - 700-799: market data, news and text generation collaborators
//
// Each code belongs to a Kind (invalid_input, insufficient_data, not_found,
// upstream_unavailable, rate_limited, ...). The HTTP layer maps kinds to statuses.
//
//	err := errors.Newf(errors.ErrCodeInvalidHorizon, "days must be within [1, %d], got %d", 30, days)
//	err = errors.Wrap(errors.ErrCodeMarketDataFailed, "failed to fetch bars", cause)
//
//	if errors.IsKind(err, errors.KindRateLimited) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func New(code ErrorCode, message string) *Error {
	return Wrap(code, message, nil)
}

func Newf(code ErrorCode, format string, args ...any) *Error {
	return Wrap(code, fmt.Sprintf(format, args...), nil)
}

// Wrap attaches code and message to cause. A nil cause yields a plain coded error.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return Wrap(code, fmt.Sprintf(format, args...), cause)
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("[%d] %s", e.Code, e.Message)
	}

	return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Kind is shorthand for e.Code.Kind().
func (e *Error) Kind() Kind {
	return e.Code.Kind()
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode returns the code of the outermost coded error in the chain.
// An InsufficientDataError counts as ErrCodeInsufficientData and an
// uncoded chain yields ErrCodeUnknown.
func GetCode(err error) ErrorCode {
	for current := err; current != nil; current = errors.Unwrap(current) {
		switch e := current.(type) {
		case *Error:
			return e.Code
		case *InsufficientDataError:
			return ErrCodeInsufficientData
		}
	}

	return ErrCodeUnknown
}

func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

func GetKind(err error) Kind {
	return GetCode(err).Kind()
}

// IsKind reports whether err is non-nil and its code belongs to kind.
func IsKind(err error, kind Kind) bool {
	if err == nil {
		return false
	}

	return GetKind(err) == kind
}

// InsufficientDataError reports a computation that needs more points than
// the series holds. Required or Actual may be zero when unknown.
type InsufficientDataError struct {
	Required int
	Actual   int
	Symbol   string
	Message  string
}

func NewInsufficientDataError(required, actual int, symbol, message string) *InsufficientDataError {
	return &InsufficientDataError{
		Required: required,
		Actual:   actual,
		Symbol:   symbol,
		Message:  message,
	}
}

func NewInsufficientDataErrorf(required, actual int, symbol, format string, args ...any) *InsufficientDataError {
	return NewInsufficientDataError(required, actual, symbol, fmt.Sprintf(format, args...))
}

func (e *InsufficientDataError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	if e.Symbol != "" {
		return fmt.Sprintf("insufficient data for %s: need %d points, have %d", e.Symbol, e.Required, e.Actual)
	}

	return fmt.Sprintf("insufficient data: need %d points, have %d", e.Required, e.Actual)
}

func IsInsufficientDataError(err error) bool {
	var target *InsufficientDataError

	return errors.As(err, &target)
}
