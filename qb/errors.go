package qb

import (
	"fmt"
)

// SqlError wraps builder failures with context
type SqlError struct {
	Message string
	Cause   error
	Context map[string]string
}

func (e *SqlError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *SqlError) Unwrap() error {
	return e.Cause
}

// Error constructor
func NewError(message string, cause error) *SqlError {
	return &SqlError{
		Message: message,
		Cause:   cause,
		Context: make(map[string]string),
	}
}

// Add context to error
func (e *SqlError) WithContext(key, value string) *SqlError {
	e.Context[key] = value
	return e
}

// Common error constructors
func ValidationError(message string) error {
	return NewError(fmt.Sprintf("validation failed: %s", message), nil)
}

func DialectError(message string, cause error) error {
	return NewError(fmt.Sprintf("dialect error: %s", message), cause)
}

func JoinError(table string) error {
	return NewError(fmt.Sprintf("invalid join definition for table '%s'", table), nil)
}
