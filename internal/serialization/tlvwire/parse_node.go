package tlvwire

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/danmuck/modelwire/internal/isoduration"
	"github.com/danmuck/modelwire/internal/serialization"
)

var ErrUnknownType = errors.New("tlvwire: unknown field type")

const kindUnknown = serialization.Kind(255)

// ParseNode wraps one decoded field. depth counts the containers above it.
type ParseNode struct {
	field  Field
	hooks  serialization.Hooks
	limits Limits
	depth  int
}

// NewParseNode decodes a framed document with DefaultLimits.
func NewParseNode(content []byte) (*ParseNode, error) {
	return NewParseNodeWithLimits(content, DefaultLimits())
}

func NewParseNodeWithLimits(content []byte, limits Limits) (*ParseNode, error) {
	limits = limits.orDefault()
	root, err := DecodeDocument(content, limits)
	if err != nil {
		return nil, err
	}
	return &ParseNode{field: root, limits: limits}, nil
}

func (n *ParseNode) child(f Field) *ParseNode {
	return &ParseNode{field: f, hooks: n.hooks, limits: n.limits, depth: n.depth + 1}
}

// enter rejects opening a container whose members would sit below MaxDepth.
func (n *ParseNode) enter() error {
	if limit := n.limits.orDefault().MaxDepth; n.depth >= limit {
		return fmt.Errorf("%w: limit %d", ErrDepthExceeded, limit)
	}
	return nil
}

func (n *ParseNode) kind() serialization.Kind {
	switch n.field.Type {
	case TypeNull:
		return serialization.KindNull
	case TypeBool:
		return serialization.KindBool
	case TypeInt64, TypeFloat64, TypeNumber:
		return serialization.KindNumber
	case TypeString:
		return serialization.KindString
	case TypeObject:
		return serialization.KindObject
	case TypeArray:
		return serialization.KindArray
	default:
		return kindUnknown
	}
}

func (n *ParseNode) mismatch(expected serialization.Kind) error {
	return &serialization.ShapeError{Expected: expected, Actual: n.kind()}
}

func (n *ParseNode) IsNull() bool {
	return n.field.Type == TypeNull
}

func (n *ParseNode) SetOnBeforeAssignFieldValues(action serialization.ParsableAction) {
	n.hooks.OnBefore = action
}

func (n *ParseNode) SetOnAfterAssignFieldValues(action serialization.ParsableAction) {
	n.hooks.OnAfter = action
}

func (n *ParseNode) members() ([]Member, error) {
	if n.field.Type != TypeObject {
		return nil, n.mismatch(serialization.KindObject)
	}
	if err := n.enter(); err != nil {
		return nil, err
	}
	return DecodeMembers(n.field.Value)
}

func (n *ParseNode) elements() ([]*ParseNode, error) {
	if n.IsNull() {
		return nil, nil
	}
	if n.field.Type != TypeArray {
		return nil, n.mismatch(serialization.KindArray)
	}
	if err := n.enter(); err != nil {
		return nil, err
	}
	fields, err := DecodeFields(n.field.Value)
	if err != nil {
		return nil, err
	}
	out := make([]*ParseNode, len(fields))
	for i, f := range fields {
		out[i] = n.child(f)
	}
	return out, nil
}

func (n *ParseNode) GetChildNode(key string) (serialization.ParseNode, error) {
	if n.IsNull() {
		return nil, nil
	}
	members, err := n.members()
	if err != nil {
		return nil, err
	}
	var found *ParseNode
	for _, m := range members {
		if m.Key == key {
			found = n.child(m.Value)
		}
	}
	if found == nil {
		return nil, nil
	}
	return found, nil
}

func (n *ParseNode) GetStringValue() (*string, error) {
	if n.IsNull() {
		return nil, nil
	}
	if n.field.Type != TypeString {
		return nil, n.mismatch(serialization.KindString)
	}
	v := string(n.field.Value)
	return &v, nil
}

func (n *ParseNode) GetBoolValue() (*bool, error) {
	if n.IsNull() {
		return nil, nil
	}
	if n.field.Type != TypeBool {
		return nil, n.mismatch(serialization.KindBool)
	}
	v, err := n.field.Bool()
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (n *ParseNode) GetInt64Value() (*int64, error) {
	if n.IsNull() {
		return nil, nil
	}
	switch n.field.Type {
	case TypeInt64:
		v, err := n.field.Int64()
		if err != nil {
			return nil, err
		}
		return &v, nil
	case TypeNumber:
		v, err := strconv.ParseInt(string(n.field.Value), 10, 64)
		if err != nil {
			return nil, &serialization.ShapeError{
				Expected: serialization.KindNumber,
				Actual:   serialization.KindNumber,
				Detail:   fmt.Sprintf("%s is not a 64-bit integer", n.field.Value),
			}
		}
		return &v, nil
	default:
		return nil, n.mismatch(serialization.KindNumber)
	}
}

func (n *ParseNode) GetFloat64Value() (*float64, error) {
	if n.IsNull() {
		return nil, nil
	}
	switch n.field.Type {
	case TypeFloat64:
		v, err := n.field.Float64()
		if err != nil {
			return nil, err
		}
		return &v, nil
	case TypeInt64:
		i, err := n.field.Int64()
		if err != nil {
			return nil, err
		}
		v := float64(i)
		return &v, nil
	case TypeNumber:
		v, err := n.numberLiteral()
		if err != nil {
			return nil, err
		}
		return &v, nil
	default:
		return nil, n.mismatch(serialization.KindNumber)
	}
}

// numberLiteral parses a TypeNumber field. Literals beyond float64 range
// yield an infinity rather than an error.
func (n *ParseNode) numberLiteral() (float64, error) {
	v, err := strconv.ParseFloat(string(n.field.Value), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, &serialization.ShapeError{
			Expected: serialization.KindNumber,
			Actual:   serialization.KindNumber,
			Detail:   fmt.Sprintf("invalid number literal %q", n.field.Value),
		}
	}
	return v, nil
}

func (n *ParseNode) GetISODurationValue() (*isoduration.Duration, error) {
	s, err := n.GetStringValue()
	if err != nil || s == nil {
		return nil, err
	}
	d, err := isoduration.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (n *ParseNode) GetEnumValue(parser serialization.EnumFactory) (any, error) {
	if parser == nil {
		return nil, &serialization.NullArgumentError{Argument: "parser"}
	}
	s, err := n.GetStringValue()
	if err != nil || s == nil {
		return nil, err
	}
	return parser(*s)
}

func (n *ParseNode) GetObjectValue(ctor serialization.ParsableFactory) (serialization.Parsable, error) {
	if ctor == nil {
		return nil, &serialization.NullArgumentError{Argument: "ctor"}
	}
	if n.IsNull() {
		return nil, nil
	}
	members, err := n.members()
	if err != nil {
		return nil, err
	}
	result, err := ctor(n)
	if err != nil {
		return nil, err
	}
	fields := make([]serialization.Field, len(members))
	for i, m := range members {
		fields[i] = serialization.Field{Key: m.Key, Node: n.child(m.Value)}
	}
	if err := serialization.Populate(result, fields, n.hooks); err != nil {
		return nil, err
	}
	return result, nil
}

func (n *ParseNode) GetCollectionOfObjectValues(ctor serialization.ParsableFactory) ([]serialization.Parsable, error) {
	if ctor == nil {
		return nil, &serialization.NullArgumentError{Argument: "ctor"}
	}
	elems, err := n.elements()
	if err != nil || elems == nil {
		return nil, err
	}
	out := make([]serialization.Parsable, len(elems))
	for i, e := range elems {
		v, err := e.GetObjectValue(ctor)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (n *ParseNode) GetCollectionOfStringValues() ([]string, error) {
	elems, err := n.elements()
	if err != nil || elems == nil {
		return nil, err
	}
	out := make([]string, len(elems))
	for i, e := range elems {
		if e.field.Type != TypeString {
			return nil, e.mismatch(serialization.KindString)
		}
		out[i] = string(e.field.Value)
	}
	return out, nil
}

func (n *ParseNode) GetCollectionOfEnumValues(parser serialization.EnumFactory) ([]any, error) {
	if parser == nil {
		return nil, &serialization.NullArgumentError{Argument: "parser"}
	}
	elems, err := n.elements()
	if err != nil || elems == nil {
		return nil, err
	}
	out := make([]any, len(elems))
	for i, e := range elems {
		if e.field.Type != TypeString {
			return nil, e.mismatch(serialization.KindString)
		}
		v, err := parser(string(e.field.Value))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (n *ParseNode) GetRawValue() (serialization.Value, error) {
	switch n.field.Type {
	case TypeNull:
		return serialization.NullValue(), nil
	case TypeString:
		return serialization.StringValue(string(n.field.Value)), nil
	case TypeBool:
		v, err := n.field.Bool()
		if err != nil {
			return serialization.Value{}, err
		}
		return serialization.BoolValue(v), nil
	case TypeInt64, TypeFloat64:
		v, err := n.GetFloat64Value()
		if err != nil {
			return serialization.Value{}, err
		}
		return serialization.NumberValue(*v), nil
	case TypeNumber:
		v, err := n.numberLiteral()
		if err != nil {
			return serialization.Value{}, err
		}
		return serialization.RawNumberValue(string(n.field.Value), v), nil
	case TypeObject:
		members, err := n.members()
		if err != nil {
			return serialization.Value{}, err
		}
		out := make(map[string]serialization.Value, len(members))
		for _, m := range members {
			v, err := n.child(m.Value).GetRawValue()
			if err != nil {
				return serialization.Value{}, err
			}
			out[m.Key] = v
		}
		return serialization.ObjectValue(out), nil
	case TypeArray:
		elems, err := n.elements()
		if err != nil {
			return serialization.Value{}, err
		}
		out := make([]serialization.Value, len(elems))
		for i, e := range elems {
			v, err := e.GetRawValue()
			if err != nil {
				return serialization.Value{}, err
			}
			out[i] = v
		}
		return serialization.ArrayValue(out...), nil
	default:
		return serialization.Value{}, fmt.Errorf("%w: %d", ErrUnknownType, n.field.Type)
	}
}
