package serialization

import "slices"

// Kind enumerates the primitive shapes a decoded payload value can take.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Value is an untyped payload value kept for fields a model does not
// declare. Only the slot matching Kind is meaningful.
//
// Numbers read from a payload also keep their literal text in Raw so they
// re-encode exactly; Num is then the nearest float64 and may be infinite.
type Value struct {
	Kind   Kind
	Str    string
	Num    float64
	Raw    string
	Bool   bool
	Object map[string]Value
	Array  []Value
}

func NullValue() Value {
	return Value{Kind: KindNull}
}

func StringValue(s string) Value {
	return Value{Kind: KindString, Str: s}
}

func NumberValue(n float64) Value {
	return Value{Kind: KindNumber, Num: n}
}

// RawNumberValue keeps the literal number text next to its float64
// approximation.
func RawNumberValue(raw string, approx float64) Value {
	return Value{Kind: KindNumber, Num: approx, Raw: raw}
}

func BoolValue(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

func ObjectValue(m map[string]Value) Value {
	if m == nil {
		m = map[string]Value{}
	}
	return Value{Kind: KindObject, Object: m}
}

func ArrayValue(vs ...Value) Value {
	if vs == nil {
		vs = []Value{}
	}
	return Value{Kind: KindArray, Array: vs}
}

// Equal reports deep equality. Numbers compare by literal text when both
// sides carry one and by value otherwise; NaN never equals.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindNull:
		return true
	case KindString:
		return v.Str == other.Str
	case KindNumber:
		if v.Raw != "" && other.Raw != "" {
			return v.Raw == other.Raw
		}
		return v.Num == other.Num
	case KindBool:
		return v.Bool == other.Bool
	case KindObject:
		if len(v.Object) != len(other.Object) {
			return false
		}
		for k, item := range v.Object {
			o, ok := other.Object[k]
			if !ok || !item.Equal(o) {
				return false
			}
		}
		return true
	case KindArray:
		return slices.EqualFunc(v.Array, other.Array, Value.Equal)
	default:
		return false
	}
}

// Any converts v into plain Go values (nil, string, float64, bool,
// map[string]any, []any).
func (v Value) Any() any {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return v.Num
	case KindBool:
		return v.Bool
	case KindObject:
		out := make(map[string]any, len(v.Object))
		for k, item := range v.Object {
			out[k] = item.Any()
		}
		return out
	case KindArray:
		out := make([]any, len(v.Array))
		for i, item := range v.Array {
			out[i] = item.Any()
		}
		return out
	default:
		return nil
	}
}

// SortedKeys returns the keys of m in ascending order. Writers use it so
// additional data encodes deterministically.
func SortedKeys(m map[string]Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// EqualData compares two additional-data maps; nil and empty are equal.
func EqualData(a, b map[string]Value) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		o, ok := b[k]
		if !ok || !v.Equal(o) {
			return false
		}
	}
	return true
}
