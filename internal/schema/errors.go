// Package schema holds the pieces every heimdex contract shares: the
// validation error taxonomy, identifier rules, the pipeline version
// contract and JSON decoding helpers.
package schema

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrValidation marks a value that violates a contract constraint.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidArgument marks a parameter outside an operation's domain.
	ErrInvalidArgument = errors.New("invalid argument")
)

// FieldError describes one violated constraint on a named field. Cause,
// when set, is the underlying error (a decoder or reader failure).
type FieldError struct {
	Field   string
	Message string
	Cause   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *FieldError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrValidation, e.Cause}
	}
	return []error{ErrValidation}
}

// InvalidArgument returns an error wrapping ErrInvalidArgument.
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// Checker accumulates field errors so a single Validate call reports every
// violation instead of the first one.
type Checker struct {
	prefix string
	errs   []error
}

// NewChecker returns a Checker whose field names are prefixed with prefix.
func NewChecker(prefix string) *Checker {
	return &Checker{prefix: prefix}
}

func (c *Checker) field(name string) string {
	if c.prefix == "" {
		return name
	}
	return c.prefix + "." + name
}

// Failf records a violation on field.
func (c *Checker) Failf(field, format string, args ...any) {
	c.errs = append(c.errs, &FieldError{Field: c.field(field), Message: fmt.Sprintf(format, args...)})
}

// Require records a violation when ok is false.
func (c *Checker) Require(ok bool, field, format string, args ...any) {
	if !ok {
		c.Failf(field, format, args...)
	}
}

func (c *Checker) NonNegative(field string, v int) {
	c.Require(v >= 0, field, "must be >= 0, got %d", v)
}

func (c *Checker) NonNegativeFloat(field string, v float64) {
	c.Require(v >= 0, field, "must be >= 0, got %g", v)
}

func (c *Checker) UnitInterval(field string, v float64) {
	c.Require(v >= 0 && v <= 1, field, "must be within [0, 1], got %g", v)
}

// MaxChars checks the length of s in code points.
func (c *Checker) MaxChars(field, s string, max int) {
	if n := utf8.RuneCountInString(s); n > max {
		c.Failf(field, "must be at most %d characters, got %d", max, n)
	}
}

func (c *Checker) NotEmpty(field, s string) {
	c.Require(s != "", field, "must not be empty")
}

// Range checks start >= 0 and end >= start.
func (c *Checker) Range(startField string, start int, endField string, end int) {
	c.NonNegative(startField, start)
	c.NonNegative(endField, end)
	if end < start {
		c.Failf(endField, "must be >= %s (%d), got %d", startField, start, end)
	}
}

// Merge adds the errors of a nested validation.
func (c *Checker) Merge(err error) {
	if err != nil {
		c.errs = append(c.errs, err)
	}
}

// Err joins the recorded violations, or returns nil.
func (c *Checker) Err() error {
	return errors.Join(c.errs...)
}
