package serialization

import (
	"reflect"

	"github.com/rs/zerolog/log"
)

// Field is one member of an object node in payload order.
type Field struct {
	Key  string
	Node ParseNode
}

// Hooks carries the decode callbacks a ParseNode propagates to its children.
type Hooks struct {
	OnBefore ParsableAction
	OnAfter  ParsableAction
}

// Populate runs the field-deserializer dispatch for target. Declared fields
// invoke their callback; every other field is stored raw in the target's
// additional data when target is an AdditionalDataHolder and dropped
// otherwise.
func Populate(target Parsable, fields []Field, hooks Hooks) error {
	if IsNil(target) {
		return &NullArgumentError{Argument: "target"}
	}
	if hooks.OnBefore != nil {
		if err := hooks.OnBefore(target); err != nil {
			return err
		}
	}

	deserializers := target.GetFieldDeserializers()
	holder, _ := target.(AdditionalDataHolder)
	var extra map[string]Value
	for _, f := range fields {
		if fn, ok := deserializers[f.Key]; ok {
			if err := fn(f.Node); err != nil {
				return &FieldError{Field: f.Key, Err: err}
			}
			continue
		}
		if holder == nil {
			log.Debug().Str("field", f.Key).Msg("serialization.Populate dropped undeclared field")
			continue
		}
		raw, err := f.Node.GetRawValue()
		if err != nil {
			return &FieldError{Field: f.Key, Err: err}
		}
		if extra == nil {
			extra = holder.GetAdditionalData()
			if extra == nil {
				extra = make(map[string]Value)
			}
		}
		extra[f.Key] = raw
	}
	if extra != nil {
		holder.SetAdditionalData(extra)
		log.Debug().Int("fields", len(extra)).Msg("serialization.Populate kept additional data")
	}

	if hooks.OnAfter != nil {
		return hooks.OnAfter(target)
	}
	return nil
}

// IsNil reports whether p is nil or a typed nil pointer.
func IsNil(p Parsable) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
