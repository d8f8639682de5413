package serialization

import (
	"fmt"
)

// ReadObject decodes the object at node and asserts it to T. A null node
// yields the zero T.
func ReadObject[T Parsable](node ParseNode, ctor ParsableFactory) (T, error) {
	var zero T
	p, err := node.GetObjectValue(ctor)
	if err != nil || p == nil {
		return zero, err
	}
	v, ok := p.(T)
	if !ok {
		return zero, fmt.Errorf("%w: got %T, want %T", ErrTypeAssertion, p, zero)
	}
	return v, nil
}

// ReadCollection decodes the array at node, preserving element order. Null
// elements become the zero T.
func ReadCollection[T Parsable](node ParseNode, ctor ParsableFactory) ([]T, error) {
	items, err := node.GetCollectionOfObjectValues(ctor)
	if err != nil || items == nil {
		return nil, err
	}
	out := make([]T, len(items))
	for i, p := range items {
		if p == nil {
			continue
		}
		v, ok := p.(T)
		if !ok {
			var zero T
			return nil, fmt.Errorf("%w: element %d is %T, want %T", ErrTypeAssertion, i, p, zero)
		}
		out[i] = v
	}
	return out, nil
}

// ReadEnum decodes an enum whose parser returns T values.
func ReadEnum[T any](node ParseNode, parser EnumFactory) (*T, error) {
	raw, err := node.GetEnumValue(parser)
	if err != nil || raw == nil {
		return nil, err
	}
	v, ok := raw.(T)
	if !ok {
		var zero T
		return nil, fmt.Errorf("%w: enum parser returned %T, want %T", ErrTypeAssertion, raw, zero)
	}
	return &v, nil
}

// ReadEnumCollection decodes an array of enum values.
func ReadEnumCollection[T any](node ParseNode, parser EnumFactory) ([]T, error) {
	items, err := node.GetCollectionOfEnumValues(parser)
	if err != nil || items == nil {
		return nil, err
	}
	out := make([]T, len(items))
	for i, raw := range items {
		v, ok := raw.(T)
		if !ok {
			var zero T
			return nil, fmt.Errorf("%w: element %d is %T, want %T", ErrTypeAssertion, i, raw, zero)
		}
		out[i] = v
	}
	return out, nil
}

// ObjectsOf widens a typed model slice for WriteCollectionOfObjectValues.
// A nil slice stays nil so the writer skips it.
func ObjectsOf[T Parsable](items []T) []Parsable {
	if items == nil {
		return nil
	}
	out := make([]Parsable, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

// Enum widens an optional enum for WriteEnumValue; nil stays an untyped nil.
func Enum[T fmt.Stringer](v *T) fmt.Stringer {
	if v == nil {
		return nil
	}
	return *v
}

// EnumsOf widens a typed enum slice for WriteCollectionOfEnumValues.
func EnumsOf[T fmt.Stringer](items []T) []fmt.Stringer {
	if items == nil {
		return nil
	}
	out := make([]fmt.Stringer, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}
