package serialization

import (
	"errors"
	"fmt"
)

var (
	ErrNullArgument           = errors.New("serialization: null argument")
	ErrShapeMismatch          = errors.New("serialization: value shape mismatch")
	ErrUnsupportedContentType = errors.New("serialization: unsupported content type")
	ErrTypeAssertion          = errors.New("serialization: unexpected model type")
)

// NullArgumentError is returned when a required node, writer or factory is nil.
type NullArgumentError struct {
	Argument string
}

func (e *NullArgumentError) Error() string {
	return fmt.Sprintf("serialization: %s cannot be nil", e.Argument)
}

func (e *NullArgumentError) Is(target error) bool {
	return target == ErrNullArgument
}

// ShapeError reports a payload value whose kind does not match the read
// primitive that was applied to it.
type ShapeError struct {
	Expected Kind
	Actual   Kind
	Detail   string
}

func (e *ShapeError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("serialization: expected %s, got %s: %s", e.Expected, e.Actual, e.Detail)
	}
	return fmt.Sprintf("serialization: expected %s, got %s", e.Expected, e.Actual)
}

func (e *ShapeError) Is(target error) bool {
	return target == ErrShapeMismatch
}

// FieldError attaches the payload field name to a failure raised while a
// field deserializer ran.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("serialization: field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
