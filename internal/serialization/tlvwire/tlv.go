// Package tlvwire implements the model protocol over a compact
// type-length-value encoding.
//
// A field is a 1-byte type, a 4-byte big-endian length and the value bytes.
// Objects hold alternating key and value fields; arrays hold value fields.
package tlvwire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

const FieldHeaderLen = 5

var (
	ErrShortFieldHeader = errors.New("tlvwire: short field header")
	ErrShortFieldValue  = errors.New("tlvwire: short field value")
	ErrInvalidLength    = errors.New("tlvwire: invalid length")
	ErrMalformedObject  = errors.New("tlvwire: object members must be key/value pairs")
)

// Type IDs of the tlv contract.
const (
	TypeNull    uint8 = 1
	TypeBool    uint8 = 2
	TypeInt64   uint8 = 3
	TypeFloat64 uint8 = 4
	TypeString  uint8 = 5
	TypeObject  uint8 = 6
	TypeArray   uint8 = 7
	TypeKey     uint8 = 8
	// TypeNumber holds a number as its decimal JSON literal so values
	// outside int64 and float64 survive a round trip.
	TypeNumber uint8 = 9
)

// Field is one decoded TLV field.
type Field struct {
	Type  uint8
	Value []byte
}

func AppendField(dst []byte, f Field) []byte {
	var head [FieldHeaderLen]byte
	head[0] = f.Type
	binary.BigEndian.PutUint32(head[1:5], uint32(len(f.Value)))
	dst = append(dst, head[:]...)
	return append(dst, f.Value...)
}

func EncodeField(f Field) []byte {
	return AppendField(make([]byte, 0, FieldHeaderLen+len(f.Value)), f)
}

func EncodeFields(fields []Field) []byte {
	out := make([]byte, 0)
	for _, f := range fields {
		out = AppendField(out, f)
	}
	return out
}

// DecodeFields splits payload into fields. Values alias payload.
func DecodeFields(payload []byte) ([]Field, error) {
	fields := make([]Field, 0)
	i := 0
	for i < len(payload) {
		if len(payload)-i < FieldHeaderLen {
			return nil, ErrShortFieldHeader
		}
		typeID := payload[i]
		l := binary.BigEndian.Uint32(payload[i+1 : i+5])
		i += FieldHeaderLen
		if uint32(len(payload)-i) < l {
			return nil, ErrShortFieldValue
		}
		end := i + int(l)
		fields = append(fields, Field{Type: typeID, Value: payload[i:end:end]})
		i = end
	}
	return fields, nil
}

func NullField() Field {
	return Field{Type: TypeNull}
}

func BoolField(v bool) Field {
	b := byte(0)
	if v {
		b = 1
	}
	return Field{Type: TypeBool, Value: []byte{b}}
}

func Int64Field(v int64) Field {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(v))
	return Field{Type: TypeInt64, Value: buf}
}

func Float64Field(v float64) Field {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, math.Float64bits(v))
	return Field{Type: TypeFloat64, Value: buf}
}

func StringField(v string) Field {
	return Field{Type: TypeString, Value: []byte(v)}
}

func NumberField(literal string) Field {
	return Field{Type: TypeNumber, Value: []byte(literal)}
}

func KeyField(v string) Field {
	return Field{Type: TypeKey, Value: []byte(v)}
}

// Bool returns the field value as bool.
func (f Field) Bool() (bool, error) {
	if len(f.Value) != 1 {
		return false, ErrInvalidLength
	}
	switch f.Value[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("tlvwire: invalid bool value %d", f.Value[0])
	}
}

// Int64 returns the field value as int64.
func (f Field) Int64() (int64, error) {
	if len(f.Value) != 8 {
		return 0, ErrInvalidLength
	}
	return int64(binary.BigEndian.Uint64(f.Value)), nil
}

// Float64 returns the field value as float64.
func (f Field) Float64() (float64, error) {
	if len(f.Value) != 8 {
		return 0, ErrInvalidLength
	}
	return math.Float64frombits(binary.BigEndian.Uint64(f.Value)), nil
}

// Member is one decoded key/value pair of an object field.
type Member struct {
	Key   string
	Value Field
}

// DecodeMembers splits an object payload into key/value pairs.
func DecodeMembers(payload []byte) ([]Member, error) {
	fields, err := DecodeFields(payload)
	if err != nil {
		return nil, err
	}
	if len(fields)%2 != 0 {
		return nil, ErrMalformedObject
	}
	members := make([]Member, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		if fields[i].Type != TypeKey {
			return nil, ErrMalformedObject
		}
		members = append(members, Member{Key: string(fields[i].Value), Value: fields[i+1]})
	}
	return members, nil
}
