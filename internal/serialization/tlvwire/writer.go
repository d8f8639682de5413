package tlvwire

import (
	"errors"
	"fmt"

	"github.com/danmuck/modelwire/internal/isoduration"
	"github.com/danmuck/modelwire/internal/serialization"
)

var (
	ErrUnbalanced = errors.New("tlvwire: unterminated object or array")
	ErrMissingKey = errors.New("tlvwire: object member written without a key")
)

// typeDocument marks the implicit root container.
const typeDocument uint8 = 0

type container struct {
	typ   uint8
	key   string
	buf   []byte
	count int
	// keys written so far; nil unless typ is TypeObject.
	keys map[string]struct{}
}

// SerializationWriter buffers nested containers and frames the root field
// when content is requested.
type SerializationWriter struct {
	limits Limits
	stack  []*container

	onBefore serialization.ParsableAction
	onAfter  serialization.ParsableAction
	onStart  serialization.ParsableWriter
}

func NewSerializationWriter() *SerializationWriter {
	return NewSerializationWriterWithLimits(DefaultLimits())
}

func NewSerializationWriterWithLimits(limits Limits) *SerializationWriter {
	return &SerializationWriter{
		limits: limits,
		stack:  []*container{{typ: typeDocument}},
	}
}

func (w *SerializationWriter) SetOnBeforeSerialization(action serialization.ParsableAction) {
	w.onBefore = action
}

func (w *SerializationWriter) SetOnAfterObjectSerialization(action serialization.ParsableAction) {
	w.onAfter = action
}

func (w *SerializationWriter) SetOnStartObjectSerialization(action serialization.ParsableWriter) {
	w.onStart = action
}

func (w *SerializationWriter) top() *container {
	return w.stack[len(w.stack)-1]
}

// emit appends f to the innermost container. Keys are only recorded inside
// objects.
func (w *SerializationWriter) emit(key string, f Field) error {
	c := w.top()
	if c.typ == TypeObject {
		if key == "" {
			return ErrMissingKey
		}
		c.buf = AppendField(c.buf, KeyField(key))
		c.keys[key] = struct{}{}
	}
	c.buf = AppendField(c.buf, f)
	c.count++
	return nil
}

func (w *SerializationWriter) open(typ uint8, key string) {
	c := &container{typ: typ, key: key}
	if typ == TypeObject {
		c.keys = make(map[string]struct{})
	}
	w.stack = append(w.stack, c)
}

func (w *SerializationWriter) close() error {
	if len(w.stack) < 2 {
		return ErrUnbalanced
	}
	c := w.top()
	w.stack = w.stack[:len(w.stack)-1]
	return w.emit(c.key, Field{Type: c.typ, Value: c.buf})
}

func (w *SerializationWriter) WriteStringValue(key string, value *string) error {
	if value == nil {
		return nil
	}
	return w.emit(key, StringField(*value))
}

func (w *SerializationWriter) WriteBoolValue(key string, value *bool) error {
	if value == nil {
		return nil
	}
	return w.emit(key, BoolField(*value))
}

func (w *SerializationWriter) WriteInt64Value(key string, value *int64) error {
	if value == nil {
		return nil
	}
	return w.emit(key, Int64Field(*value))
}

func (w *SerializationWriter) WriteFloat64Value(key string, value *float64) error {
	if value == nil {
		return nil
	}
	return w.emit(key, Float64Field(*value))
}

func (w *SerializationWriter) WriteISODurationValue(key string, value *isoduration.Duration) error {
	if value == nil {
		return nil
	}
	return w.emit(key, StringField(value.String()))
}

func (w *SerializationWriter) WriteEnumValue(key string, value fmt.Stringer) error {
	if value == nil {
		return nil
	}
	return w.emit(key, StringField(value.String()))
}

func (w *SerializationWriter) WriteObjectValue(key string, value serialization.Parsable) error {
	if serialization.IsNil(value) {
		return nil
	}
	if w.onBefore != nil {
		if err := w.onBefore(value); err != nil {
			return err
		}
	}
	w.open(TypeObject, key)
	if w.onStart != nil {
		if err := w.onStart(value, w); err != nil {
			return err
		}
	}
	if err := value.Serialize(w); err != nil {
		return err
	}
	if err := w.close(); err != nil {
		return err
	}
	if w.onAfter != nil {
		return w.onAfter(value)
	}
	return nil
}

func (w *SerializationWriter) WriteCollectionOfObjectValues(key string, values []serialization.Parsable) error {
	if values == nil {
		return nil
	}
	w.open(TypeArray, key)
	for _, item := range values {
		if serialization.IsNil(item) {
			if err := w.WriteNullValue(""); err != nil {
				return err
			}
			continue
		}
		if err := w.WriteObjectValue("", item); err != nil {
			return err
		}
	}
	return w.close()
}

func (w *SerializationWriter) WriteCollectionOfStringValues(key string, values []string) error {
	if values == nil {
		return nil
	}
	w.open(TypeArray, key)
	for _, item := range values {
		if err := w.emit("", StringField(item)); err != nil {
			return err
		}
	}
	return w.close()
}

func (w *SerializationWriter) WriteCollectionOfEnumValues(key string, values []fmt.Stringer) error {
	if values == nil {
		return nil
	}
	w.open(TypeArray, key)
	for _, item := range values {
		f := NullField()
		if item != nil {
			f = StringField(item.String())
		}
		if err := w.emit("", f); err != nil {
			return err
		}
	}
	return w.close()
}

func (w *SerializationWriter) WriteNullValue(key string) error {
	return w.emit(key, NullField())
}

func (w *SerializationWriter) WriteAnyValue(key string, value serialization.Value) error {
	switch value.Kind {
	case serialization.KindNull:
		return w.emit(key, NullField())
	case serialization.KindString:
		return w.emit(key, StringField(value.Str))
	case serialization.KindNumber:
		if value.Raw != "" {
			return w.emit(key, NumberField(value.Raw))
		}
		return w.emit(key, Float64Field(value.Num))
	case serialization.KindBool:
		return w.emit(key, BoolField(value.Bool))
	case serialization.KindObject:
		w.open(TypeObject, key)
		for _, k := range serialization.SortedKeys(value.Object) {
			if err := w.WriteAnyValue(k, value.Object[k]); err != nil {
				return err
			}
		}
		return w.close()
	case serialization.KindArray:
		w.open(TypeArray, key)
		for _, item := range value.Array {
			if err := w.WriteAnyValue("", item); err != nil {
				return err
			}
		}
		return w.close()
	default:
		return fmt.Errorf("tlvwire: unknown value kind %d", value.Kind)
	}
}

// WriteAdditionalData writes data after the declared fields. Keys the
// current object already holds are skipped so the typed value wins.
func (w *SerializationWriter) WriteAdditionalData(data map[string]serialization.Value) error {
	written := w.top().keys
	for _, k := range serialization.SortedKeys(data) {
		if _, ok := written[k]; ok {
			continue
		}
		if err := w.WriteAnyValue(k, data[k]); err != nil {
			return err
		}
	}
	return nil
}

// GetSerializedContent frames the single root field as a document.
func (w *SerializationWriter) GetSerializedContent() ([]byte, error) {
	if len(w.stack) != 1 {
		return nil, ErrUnbalanced
	}
	root := w.stack[0]
	if root.count != 1 {
		return nil, ErrRootField
	}
	return frameDocument(root.buf, w.limits)
}
