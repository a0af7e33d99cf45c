// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Common application errors.
var (
	// Data access errors.
	ErrTransport     = errors.New("spreadsheet transport failed")
	ErrNotFound      = errors.New("not found")
	ErrParse         = errors.New("unrecognized cell value")
	ErrInvalidRecord = errors.New("invalid record")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// TransportError reports a failed call to the spreadsheet backend. The status
// and message returned by the remote side are preserved as-is.
type TransportError struct {
	Err     error
	Op      string // "read" or "write"
	SheetID string
	Range   string
	Message string
	Status  int
	Timeout bool
}

func (e *TransportError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "sheets %s %s!%s", e.Op, e.SheetID, e.Range)
	switch {
	case e.Timeout:
		b.WriteString(": timed out")
	case e.Status != 0:
		fmt.Fprintf(&b, ": status %d", e.Status)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	} else if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrTransport) match any TransportError, and
// errors.Is(err, ErrRateLimit) match a 429 response.
func (e *TransportError) Is(target error) bool {
	switch target {
	case ErrTransport:
		return true
	case ErrRateLimit:
		return e.Status == 429
	}
	return false
}

// NotFoundError is returned when a write workflow cannot locate its target row.
type NotFoundError struct {
	Table string
	Key   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: no row with key %q", e.Table, e.Key)
}

// Is lets errors.Is(err, ErrNotFound) match any NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ParseError reports a closed-enumeration cell holding an unknown value.
// Row is the 1-based data row (0 when the value did not come from a sheet).
type ParseError struct {
	Table string
	Field string
	Value string
	Row   int
}

func (e *ParseError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("%s: unrecognized value %q", e.Field, e.Value)
	}
	return fmt.Sprintf("%s row %d: %s: unrecognized value %q", e.Table, e.Row, e.Field, e.Value)
}

// Is lets errors.Is(err, ErrParse) match any ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ValidationError wraps a record that failed validation before a write.
type ValidationError struct {
	Err   error
	Table string
	Key   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Table, e.Key, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrInvalidRecord) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRecord
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsRetryable determines if an error should trigger a retry.
// Only transport failures are retryable; not-found, parse and validation
// failures are terminal.
func IsRetryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		if transportErr.Timeout {
			return true
		}
		return transportErr.Status == 0 || transportErr.Status == 429 || transportErr.Status >= 500
	}

	return false
}
