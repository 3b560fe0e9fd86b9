// Package property provides validated fields: small typed cells that only
// ever change through a parser function. Every typed attribute in the entity
// model (binning, titles, expressions, ...) is stored in a Field so that
// validation lives in exactly one place per attribute.
package property

import (
	"errors"
	"fmt"
)

// Field errors
var (
	ErrValidation = errors.New("invalid value")
	ErrNotSet     = errors.New("property not set")
	ErrReadOnly   = errors.New("property is read-only")
	ErrNoClear    = errors.New("property cannot be cleared")
)

// Parser validates a raw value and returns the value to store.
// Returning an error leaves the field untouched.
type Parser[T any] func(value T) (T, error)

// Option configures a Field at construction time.
type Option func(*settings)

type settings struct {
	readOnly bool
	noClear  bool
}

// ReadOnly disables Set after construction.
func ReadOnly() Option {
	return func(s *settings) { s.readOnly = true }
}

// NoClear disables Clear after construction.
func NoClear() Option {
	return func(s *settings) { s.noClear = true }
}

// Field is a validated, optionally-present value. The zero Field is not
// usable; create one with New. Reads on an unset field fail with ErrNotSet.
type Field[T any] struct {
	name     string
	parse    Parser[T]
	value    T
	present  bool
	readOnly bool
	noClear  bool
}

// New creates a field named name, guarded by parse. A nil parse accepts any
// value unchanged. The field starts unset.
func New[T any](name string, parse Parser[T], opts ...Option) Field[T] {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return Field[T]{
		name:     name,
		parse:    parse,
		readOnly: s.readOnly,
		noClear:  s.noClear,
	}
}

// Name returns the field name used in error messages.
func (f *Field[T]) Name() string {
	return f.name
}

// IsSet reports whether the field currently holds a value.
func (f *Field[T]) IsSet() bool {
	return f.present
}

// Get returns the stored value, or ErrNotSet when the field was never set
// or has been cleared.
func (f *Field[T]) Get() (T, error) {
	if !f.present {
		var zero T
		return zero, fmt.Errorf("%s: %w", f.name, ErrNotSet)
	}
	return f.value, nil
}

// GetDefault returns the stored value, or def when the field is unset.
func (f *Field[T]) GetDefault(def T) T {
	if !f.present {
		return def
	}
	return f.value
}

// Set runs the parser and stores its result. On parse failure the previous
// value (and presence) are left untouched and the error is returned, wrapped
// with the field name and ErrValidation.
func (f *Field[T]) Set(value T) error {
	if f.readOnly {
		return fmt.Errorf("%s: %w", f.name, ErrReadOnly)
	}
	if f.parse != nil {
		parsed, err := f.parse(value)
		if err != nil {
			if errors.Is(err, ErrValidation) {
				return fmt.Errorf("%s: %w", f.name, err)
			}
			return fmt.Errorf("%s: %w: %w", f.name, ErrValidation, err)
		}
		value = parsed
	}
	f.value = value
	f.present = true
	return nil
}

// Clear unsets the field. Subsequent Get calls fail with ErrNotSet.
func (f *Field[T]) Clear() error {
	if f.noClear {
		return fmt.Errorf("%s: %w", f.name, ErrNoClear)
	}
	var zero T
	f.value = zero
	f.present = false
	return nil
}
