package gomap

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedValue = errors.New("unsupported value")
	ErrNonFinite        = errors.New("cannot add non-finite floats to result")
	ErrUnserializable   = errors.New("unserializable object")
)

// MarshalError reports a value that could not be added to a result tree.
type MarshalError struct {
	FieldPath string // Field path (e.g., "person.address.street")
	Message   string
	Err       error
}

func (e *MarshalError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.FieldPath != "" {
		return fmt.Sprintf("at %s: %s", e.FieldPath, msg)
	}
	return msg
}

func (e *MarshalError) Unwrap() error {
	return e.Err
}
