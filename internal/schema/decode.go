package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// FieldPolicy controls how decoding treats fields the Go type does not know.
type FieldPolicy int

const (
	// Lenient ignores unknown fields so newer producers do not break older
	// consumers.
	Lenient FieldPolicy = iota
	// Strict rejects unknown fields.
	Strict
)

func (p FieldPolicy) String() string {
	if p == Strict {
		return "strict"
	}
	return "lenient"
}

// Decode unmarshals a single JSON value from data into v.
func Decode(data []byte, v any, policy FieldPolicy) error {
	return DecodeReader(bytes.NewReader(data), v, policy)
}

// DecodeReader is Decode over a stream. Trailing data after the value is an
// error.
func DecodeReader(r io.Reader, v any, policy FieldPolicy) error {
	dec := json.NewDecoder(r)
	if policy == Strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(v); err != nil {
		return &FieldError{Field: "body", Message: fmt.Sprintf("cannot parse JSON: %v", err), Cause: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return &FieldError{Field: "body", Message: "unexpected data after JSON value"}
	}
	return nil
}
