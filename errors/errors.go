// Package errors provides standardized error handling patterns for streambuf.
// It includes error classification, standard error variables, and helper functions
// for consistent error wrapping and classification across the buffer types.
package errors

import (
	"errors"
	"fmt"
)

// ErrorClass represents the classification of errors for handling purposes
type ErrorClass int

const (
	// ErrorInvalid represents errors due to invalid input or configuration
	ErrorInvalid ErrorClass = iota
	// ErrorFatal represents defects that indicate corrupted buffer state;
	// continuing after one of these would corrupt subsequent reads and writes
	ErrorFatal
)

// String returns the string representation of ErrorClass
func (ec ErrorClass) String() string {
	switch ec {
	case ErrorInvalid:
		return "invalid"
	case ErrorFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Standard error variables for common conditions.
//
// Short reads and short writes are never errors at this layer; they are
// signaled purely through returned counts. The variables below cover the
// two remaining cases: construction misuse (invalid) and broken buffer
// invariants (fatal defects).
var (
	// Construction misuse
	ErrInvalidCapacity   = errors.New("buffer capacity must be at least 1")
	ErrInvalidExtentSize = errors.New("extent size must be at least 1")
	ErrInvalidMinFree    = errors.New("minimum free space must be between 1 and the extent size")

	// Caller defects
	ErrNegativeCount = errors.New("negative count")
	ErrOvercommit    = errors.New("commit exceeds available writable space")

	// Internal defects
	ErrCorruptState = errors.New("buffer bookkeeping is inconsistent")

	// Stream adapter conditions
	ErrEmpty = errors.New("buffer is empty")

	// Observability errors
	ErrMetricsRegistration = errors.New("metrics registration failed")
)

// ClassifiedError wraps an error with its classification
type ClassifiedError struct {
	Class     ErrorClass
	Err       error
	Message   string
	Component string
	Operation string
}

// Error implements the error interface
func (ce *ClassifiedError) Error() string {
	if ce.Message != "" {
		return ce.Message
	}
	return ce.Err.Error()
}

// Unwrap returns the underlying error
func (ce *ClassifiedError) Unwrap() error {
	return ce.Err
}

// IsFatal checks if an error is a defect that must stop processing
func IsFatal(err error) bool {
	if err == nil {
		return false
	}

	// Check for classified error
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorFatal
	}

	// Check for known fatal errors
	return errors.Is(err, ErrOvercommit) ||
		errors.Is(err, ErrCorruptState) ||
		errors.Is(err, ErrNegativeCount)
}

// IsInvalid checks if an error is due to invalid input or configuration
func IsInvalid(err error) bool {
	if err == nil {
		return false
	}

	// Check for classified error
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorInvalid
	}

	// Check for known invalid errors
	return errors.Is(err, ErrInvalidCapacity) ||
		errors.Is(err, ErrInvalidExtentSize) ||
		errors.Is(err, ErrInvalidMinFree) ||
		errors.Is(err, ErrMetricsRegistration)
}

// Classify returns the error class for an error
func Classify(err error) ErrorClass {
	if IsFatal(err) {
		return ErrorFatal
	}
	return ErrorInvalid
}

// newClassified creates a new classified error.
// This is an internal helper - use WrapInvalid() or WrapFatal() instead.
func newClassified(class ErrorClass, err error, component, operation, message string) *ClassifiedError {
	return &ClassifiedError{
		Class:     class,
		Err:       err,
		Message:   message,
		Component: component,
		Operation: operation,
	}
}

// Wrap creates a standardized error with context following the pattern:
// "component.method: action failed: %w"
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}

// WrapInvalid wraps an error as invalid with context
func WrapInvalid(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorInvalid, wrappedErr, component, method, wrappedErr.Error())
}

// WrapFatal wraps an error as fatal with context
func WrapFatal(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorFatal, wrappedErr, component, method, wrappedErr.Error())
}
