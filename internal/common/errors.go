// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
	"strings"
)

// Common application errors.
var (
	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")

	// Pipeline errors.
	ErrEmptySource   = errors.New("source file is empty")
	ErrOutputExists  = errors.New("output file already exists")
	ErrMalformedRow  = errors.New("malformed row")
	ErrInvalidResult = errors.New("invalid analysis result")
)

// SchemaError reports required columns missing from the source table.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// MonthProblem describes a single row whose month label cannot be used.
type MonthProblem struct {
	Label     string
	Reason    string
	Line      int
	Duplicate bool
}

// MonthError reports rows with unrecognized or duplicated month labels.
type MonthError struct {
	Problems []MonthProblem
}

func (e *MonthError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		if p.Line > 0 {
			parts = append(parts, fmt.Sprintf("line %d: %s %q", p.Line, p.Reason, p.Label))
		} else {
			parts = append(parts, fmt.Sprintf("%s %q", p.Reason, p.Label))
		}
	}
	return fmt.Sprintf("invalid month labels: %s", strings.Join(parts, "; "))
}

// SourceReadError reports an input file that exists but cannot be read or parsed.
type SourceReadError struct {
	Err  error
	Path string
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("failed to read source %s: %v", e.Path, e.Err)
}

func (e *SourceReadError) Unwrap() error {
	return e.Err
}

// ExportError reports an output file that could not be written.
type ExportError struct {
	Err  error
	Path string
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("failed to export results to %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
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

// IsFatal reports whether err must stop the run before any result is produced.
// Export failures are reported but never undo work already shown to the user.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var exportErr *ExportError
	return !errors.As(err, &exportErr)
}
