package wirekit

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors. Typed errors below unwrap to the underlying cause so callers
// can use errors.Is / errors.As on both.
var (
	// ErrNilInput is returned when a required value, document or path is absent.
	ErrNilInput = errors.New("wirekit: nil input")
	// ErrFileNotFound is returned by file readers when the path does not exist.
	// It is distinct from any parse failure.
	ErrFileNotFound = errors.New("wirekit: file not found")
	// ErrCloneFailed is returned when a round-trip clone yields no value.
	ErrCloneFailed = errors.New("wirekit: clone failed, deserialization returned nil")
	// ErrCanceled is returned by context-aware operations whose context was
	// cancelled or timed out. The context error is wrapped alongside it.
	ErrCanceled = errors.New("wirekit: operation canceled")
)

// FormatError reports input that is not well-formed text for the format.
type FormatError struct {
	Format string // "json" or "xml"
	Offset int64  // byte offset of the failure (-1 when unknown)
	Err    error
}

func (e *FormatError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s: malformed document at offset %d: %v", e.Format, e.Offset, e.Err)
	}
	return fmt.Sprintf("%s: malformed document: %v", e.Format, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// MappingError reports well-formed input that cannot populate the target type.
type MappingError struct {
	Format string
	Type   reflect.Type
	Err    error
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("%s: cannot map document onto %v: %v", e.Format, e.Type, e.Err)
}

func (e *MappingError) Unwrap() error { return e.Err }

// IsFormatError reports whether err carries a *FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// IsMappingError reports whether err carries a *MappingError.
func IsMappingError(err error) bool {
	var me *MappingError
	return errors.As(err, &me)
}

func canceled(err error) error {
	return fmt.Errorf("%w: %w", ErrCanceled, err)
}
