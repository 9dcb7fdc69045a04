// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Ingestion errors.
	ErrUnrecognizedFile    = errors.New("unrecognized bill file")
	ErrEmptyFile           = errors.New("empty file")
	ErrNoSheets            = errors.New("workbook has no sheets")
	ErrUnsupportedEncoding = errors.New("unsupported text encoding")

	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")

	// Command errors.
	ErrNoFiles = errors.New("no files found to import")
)

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
