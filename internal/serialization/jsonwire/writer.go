package jsonwire

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/danmuck/modelwire/internal/isoduration"
	"github.com/danmuck/modelwire/internal/serialization"
)

var ErrUnbalanced = errors.New("jsonwire: unterminated object or array")

// frame is one open object or array.
type frame struct {
	hasMember bool
	// keys written so far; nil for arrays.
	keys map[string]struct{}
}

// SerializationWriter emits compact JSON in call order.
type SerializationWriter struct {
	buf  bytes.Buffer
	open []*frame

	onBefore serialization.ParsableAction
	onAfter  serialization.ParsableAction
	onStart  serialization.ParsableWriter
}

func NewSerializationWriter() *SerializationWriter {
	return &SerializationWriter{}
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

func (w *SerializationWriter) top() *frame {
	if len(w.open) == 0 {
		return nil
	}
	return w.open[len(w.open)-1]
}

func (w *SerializationWriter) writeKey(key string) error {
	f := w.top()
	if f != nil {
		if f.hasMember {
			w.buf.WriteByte(',')
		}
		f.hasMember = true
	}
	if key == "" {
		return nil
	}
	if f != nil && f.keys != nil {
		f.keys[key] = struct{}{}
	}
	if err := w.writeString(key); err != nil {
		return err
	}
	w.buf.WriteByte(':')
	return nil
}

func (w *SerializationWriter) writeString(s string) error {
	enc := json.NewEncoder(&w.buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	w.buf.Truncate(w.buf.Len() - 1)
	return nil
}

func (w *SerializationWriter) writeFloat(f float64) error {
	b, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("jsonwire: %w", err)
	}
	w.buf.Write(b)
	return nil
}

// writeNumber emits the literal text of a decoded number when it is a
// valid JSON number, else the float64 value.
func (w *SerializationWriter) writeNumber(v serialization.Value) error {
	if isJSONNumber(v.Raw) {
		w.buf.WriteString(v.Raw)
		return nil
	}
	return w.writeFloat(v.Num)
}

func isJSONNumber(raw string) bool {
	if raw == "" {
		return false
	}
	if c := raw[0]; c != '-' && (c < '0' || c > '9') {
		return false
	}
	return json.Valid([]byte(raw))
}

func (w *SerializationWriter) push(open byte) {
	w.buf.WriteByte(open)
	f := &frame{}
	if open == '{' {
		f.keys = make(map[string]struct{})
	}
	w.open = append(w.open, f)
}

func (w *SerializationWriter) pop(closing byte) {
	w.open = w.open[:len(w.open)-1]
	w.buf.WriteByte(closing)
}

func (w *SerializationWriter) WriteStringValue(key string, value *string) error {
	if value == nil {
		return nil
	}
	if err := w.writeKey(key); err != nil {
		return err
	}
	return w.writeString(*value)
}

func (w *SerializationWriter) WriteBoolValue(key string, value *bool) error {
	if value == nil {
		return nil
	}
	if err := w.writeKey(key); err != nil {
		return err
	}
	w.buf.WriteString(strconv.FormatBool(*value))
	return nil
}

func (w *SerializationWriter) WriteInt64Value(key string, value *int64) error {
	if value == nil {
		return nil
	}
	if err := w.writeKey(key); err != nil {
		return err
	}
	w.buf.WriteString(strconv.FormatInt(*value, 10))
	return nil
}

func (w *SerializationWriter) WriteFloat64Value(key string, value *float64) error {
	if value == nil {
		return nil
	}
	if err := w.writeKey(key); err != nil {
		return err
	}
	return w.writeFloat(*value)
}

func (w *SerializationWriter) WriteISODurationValue(key string, value *isoduration.Duration) error {
	if value == nil {
		return nil
	}
	s := value.String()
	return w.WriteStringValue(key, &s)
}

func (w *SerializationWriter) WriteEnumValue(key string, value fmt.Stringer) error {
	if value == nil {
		return nil
	}
	s := value.String()
	return w.WriteStringValue(key, &s)
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
	if err := w.writeKey(key); err != nil {
		return err
	}
	w.push('{')
	if w.onStart != nil {
		if err := w.onStart(value, w); err != nil {
			return err
		}
	}
	if err := value.Serialize(w); err != nil {
		return err
	}
	w.pop('}')
	if w.onAfter != nil {
		return w.onAfter(value)
	}
	return nil
}

func (w *SerializationWriter) WriteCollectionOfObjectValues(key string, values []serialization.Parsable) error {
	if values == nil {
		return nil
	}
	if err := w.writeKey(key); err != nil {
		return err
	}
	w.push('[')
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
	w.pop(']')
	return nil
}

func (w *SerializationWriter) WriteCollectionOfStringValues(key string, values []string) error {
	if values == nil {
		return nil
	}
	if err := w.writeKey(key); err != nil {
		return err
	}
	w.push('[')
	for i := range values {
		if err := w.WriteStringValue("", &values[i]); err != nil {
			return err
		}
	}
	w.pop(']')
	return nil
}

func (w *SerializationWriter) WriteCollectionOfEnumValues(key string, values []fmt.Stringer) error {
	if values == nil {
		return nil
	}
	if err := w.writeKey(key); err != nil {
		return err
	}
	w.push('[')
	for _, item := range values {
		if item == nil {
			if err := w.WriteNullValue(""); err != nil {
				return err
			}
			continue
		}
		if err := w.WriteEnumValue("", item); err != nil {
			return err
		}
	}
	w.pop(']')
	return nil
}

func (w *SerializationWriter) WriteNullValue(key string) error {
	if err := w.writeKey(key); err != nil {
		return err
	}
	w.buf.WriteString("null")
	return nil
}

func (w *SerializationWriter) WriteAnyValue(key string, value serialization.Value) error {
	if err := w.writeKey(key); err != nil {
		return err
	}
	return w.writeValue(value)
}

func (w *SerializationWriter) writeValue(v serialization.Value) error {
	switch v.Kind {
	case serialization.KindNull:
		w.buf.WriteString("null")
	case serialization.KindString:
		return w.writeString(v.Str)
	case serialization.KindNumber:
		return w.writeNumber(v)
	case serialization.KindBool:
		w.buf.WriteString(strconv.FormatBool(v.Bool))
	case serialization.KindObject:
		w.push('{')
		for _, k := range serialization.SortedKeys(v.Object) {
			if err := w.WriteAnyValue(k, v.Object[k]); err != nil {
				return err
			}
		}
		w.pop('}')
	case serialization.KindArray:
		w.push('[')
		for _, item := range v.Array {
			if err := w.WriteAnyValue("", item); err != nil {
				return err
			}
		}
		w.pop(']')
	default:
		return fmt.Errorf("jsonwire: unknown value kind %d", v.Kind)
	}
	return nil
}

// WriteAdditionalData writes data after the declared fields. Keys the
// current object already holds are skipped so the typed value wins.
func (w *SerializationWriter) WriteAdditionalData(data map[string]serialization.Value) error {
	var written map[string]struct{}
	if f := w.top(); f != nil {
		written = f.keys
	}
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

// GetSerializedContent returns a copy of the bytes written so far.
func (w *SerializationWriter) GetSerializedContent() ([]byte, error) {
	if len(w.open) != 0 {
		return nil, ErrUnbalanced
	}
	return bytes.Clone(w.buf.Bytes()), nil
}
