// Package fault defines the error taxonomy shared across prom9.
// Callers match categories with errors.Is; the helpers attach the
// offending path/field/file so user-facing layers can report it verbatim.
package fault

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument signals a bad configuration value, such as a
	// non-positive attachment block size.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound signals a missing attachment file or a task id absent
	// from the history.
	ErrNotFound = errors.New("not found")

	// ErrUnsupportedType signals an attachment with a disallowed extension.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrExtraction signals a PDF that could not be parsed for text.
	ErrExtraction = errors.New("pdf extraction failed")

	// ErrBinaryOrUnsupported signals a file that decodes neither as UTF-8
	// nor as Latin-1.
	ErrBinaryOrUnsupported = errors.New("binary or unsupported text encoding")

	// ErrMissingField signals a required payload field absent at render
	// time. This is a programming error in the caller, not user input.
	ErrMissingField = errors.New("missing required field")

	// ErrDependencyUnavailable signals an optional capability (PDF export,
	// voice transcription) that is not installed or not configured.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// InvalidArgument wraps ErrInvalidArgument with a description of the bad value.
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// NotFound wraps ErrNotFound naming what was missing.
func NotFound(what string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, what)
}

// UnsupportedType wraps ErrUnsupportedType naming the offending file.
func UnsupportedType(name string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedType, name)
}

// Extraction wraps ErrExtraction naming the file and the underlying cause.
func Extraction(name string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrExtraction, name, cause)
}

// BinaryOrUnsupported wraps ErrBinaryOrUnsupported naming the file.
func BinaryOrUnsupported(name string) error {
	return fmt.Errorf("%w: %s", ErrBinaryOrUnsupported, name)
}

// MissingField wraps ErrMissingField naming the absent payload key.
func MissingField(key string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, key)
}

// DependencyUnavailable wraps ErrDependencyUnavailable naming the capability.
func DependencyUnavailable(capability string) error {
	return fmt.Errorf("%w: %s", ErrDependencyUnavailable, capability)
}
