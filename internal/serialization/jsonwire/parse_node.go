// Package jsonwire implements the model protocol over JSON payloads.
package jsonwire

import (
	"errors"
	"strconv"

	"github.com/danmuck/modelwire/internal/isoduration"
	"github.com/danmuck/modelwire/internal/serialization"
	"github.com/tidwall/gjson"
)

var ErrInvalidJSON = errors.New("jsonwire: invalid JSON content")

// ParseNode wraps one gjson result. Object members are walked with ForEach so
// keys such as "@odata.type" need no path escaping.
type ParseNode struct {
	value gjson.Result
	hooks serialization.Hooks
}

// NewParseNode validates content and returns its root node.
func NewParseNode(content []byte) (*ParseNode, error) {
	if !gjson.ValidBytes(content) {
		return nil, ErrInvalidJSON
	}
	return &ParseNode{value: gjson.ParseBytes(content)}, nil
}

func (n *ParseNode) child(value gjson.Result) *ParseNode {
	return &ParseNode{value: value, hooks: n.hooks}
}

func (n *ParseNode) kind() serialization.Kind {
	switch n.value.Type {
	case gjson.String:
		return serialization.KindString
	case gjson.Number:
		return serialization.KindNumber
	case gjson.True, gjson.False:
		return serialization.KindBool
	case gjson.JSON:
		if n.value.IsArray() {
			return serialization.KindArray
		}
		return serialization.KindObject
	default:
		return serialization.KindNull
	}
}

func (n *ParseNode) mismatch(expected serialization.Kind) error {
	return &serialization.ShapeError{Expected: expected, Actual: n.kind()}
}

func (n *ParseNode) IsNull() bool {
	return n.kind() == serialization.KindNull
}

func (n *ParseNode) SetOnBeforeAssignFieldValues(action serialization.ParsableAction) {
	n.hooks.OnBefore = action
}

func (n *ParseNode) SetOnAfterAssignFieldValues(action serialization.ParsableAction) {
	n.hooks.OnAfter = action
}

func (n *ParseNode) GetChildNode(key string) (serialization.ParseNode, error) {
	if n.IsNull() {
		return nil, nil
	}
	if n.kind() != serialization.KindObject {
		return nil, n.mismatch(serialization.KindObject)
	}
	var found *ParseNode
	n.value.ForEach(func(k, v gjson.Result) bool {
		if k.Str == key {
			found = n.child(v)
		}
		return true
	})
	if found == nil {
		return nil, nil
	}
	return found, nil
}

func (n *ParseNode) GetStringValue() (*string, error) {
	if n.IsNull() {
		return nil, nil
	}
	if n.kind() != serialization.KindString {
		return nil, n.mismatch(serialization.KindString)
	}
	v := n.value.Str
	return &v, nil
}

func (n *ParseNode) GetBoolValue() (*bool, error) {
	if n.IsNull() {
		return nil, nil
	}
	if n.kind() != serialization.KindBool {
		return nil, n.mismatch(serialization.KindBool)
	}
	v := n.value.Type == gjson.True
	return &v, nil
}

func (n *ParseNode) GetInt64Value() (*int64, error) {
	if n.IsNull() {
		return nil, nil
	}
	if n.kind() != serialization.KindNumber {
		return nil, n.mismatch(serialization.KindNumber)
	}
	v, err := strconv.ParseInt(n.value.Raw, 10, 64)
	if err != nil {
		return nil, &serialization.ShapeError{
			Expected: serialization.KindNumber,
			Actual:   serialization.KindNumber,
			Detail:   "not an int64: " + n.value.Raw,
		}
	}
	return &v, nil
}

func (n *ParseNode) GetFloat64Value() (*float64, error) {
	if n.IsNull() {
		return nil, nil
	}
	if n.kind() != serialization.KindNumber {
		return nil, n.mismatch(serialization.KindNumber)
	}
	v := n.value.Num
	return &v, nil
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
	if n.kind() != serialization.KindObject {
		return nil, n.mismatch(serialization.KindObject)
	}
	result, err := ctor(n)
	if err != nil {
		return nil, err
	}
	var fields []serialization.Field
	n.value.ForEach(func(k, v gjson.Result) bool {
		fields = append(fields, serialization.Field{Key: k.Str, Node: n.child(v)})
		return true
	})
	if err := serialization.Populate(result, fields, n.hooks); err != nil {
		return nil, err
	}
	return result, nil
}

func (n *ParseNode) elements() ([]*ParseNode, error) {
	if n.IsNull() {
		return nil, nil
	}
	if n.kind() != serialization.KindArray {
		return nil, n.mismatch(serialization.KindArray)
	}
	var out []*ParseNode
	n.value.ForEach(func(_, v gjson.Result) bool {
		out = append(out, n.child(v))
		return true
	})
	if out == nil {
		out = []*ParseNode{}
	}
	return out, nil
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
		if e.kind() != serialization.KindString {
			return nil, e.mismatch(serialization.KindString)
		}
		out[i] = e.value.Str
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
		if e.kind() != serialization.KindString {
			return nil, e.mismatch(serialization.KindString)
		}
		v, err := parser(e.value.Str)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (n *ParseNode) GetRawValue() (serialization.Value, error) {
	switch n.kind() {
	case serialization.KindString:
		return serialization.StringValue(n.value.Str), nil
	case serialization.KindNumber:
		return serialization.RawNumberValue(n.value.Raw, n.value.Num), nil
	case serialization.KindBool:
		return serialization.BoolValue(n.value.Type == gjson.True), nil
	case serialization.KindObject:
		members := make(map[string]serialization.Value)
		var err error
		n.value.ForEach(func(k, v gjson.Result) bool {
			var raw serialization.Value
			raw, err = n.child(v).GetRawValue()
			if err != nil {
				return false
			}
			members[k.Str] = raw
			return true
		})
		if err != nil {
			return serialization.Value{}, err
		}
		return serialization.ObjectValue(members), nil
	case serialization.KindArray:
		items := []serialization.Value{}
		var err error
		n.value.ForEach(func(_, v gjson.Result) bool {
			var raw serialization.Value
			raw, err = n.child(v).GetRawValue()
			if err != nil {
				return false
			}
			items = append(items, raw)
			return true
		})
		if err != nil {
			return serialization.Value{}, err
		}
		return serialization.ArrayValue(items...), nil
	default:
		return serialization.NullValue(), nil
	}
}
