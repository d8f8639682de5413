package serialization

import (
	"fmt"

	"github.com/danmuck/modelwire/internal/isoduration"
)

// Parsable is implemented by every model that can be read from a ParseNode
// and written to a SerializationWriter.
type Parsable interface {
	// GetFieldDeserializers returns a fresh map from payload field name to a
	// callback that assigns the field on the receiver.
	GetFieldDeserializers() map[string]FieldDeserializer
	Serialize(writer SerializationWriter) error
}

// AdditionalDataHolder is implemented by models that keep payload fields they
// do not declare.
type AdditionalDataHolder interface {
	GetAdditionalData() map[string]Value
	SetAdditionalData(value map[string]Value)
}

// ParsableFactory creates the model instance for the object at node,
// selecting a concrete variant from the discriminator when the model is
// polymorphic.
type ParsableFactory func(node ParseNode) (Parsable, error)

// FieldDeserializer reads one field value from node into its owning model.
type FieldDeserializer func(node ParseNode) error

// EnumFactory maps the wire string of an enum onto its typed value.
type EnumFactory func(raw string) (any, error)

// ParsableAction is a hook invoked with a model around decode or encode.
type ParsableAction func(Parsable) error

// ParsableWriter is a hook invoked when a model starts serializing.
type ParsableWriter func(Parsable, SerializationWriter) error

// ParseNode is a positioned handle into a decoded payload tree.
//
// Scalar getters return nil for a null value and a *ShapeError when the value
// has a different shape.
type ParseNode interface {
	// GetChildNode returns nil without error when key is absent.
	GetChildNode(key string) (ParseNode, error)
	IsNull() bool
	GetStringValue() (*string, error)
	GetBoolValue() (*bool, error)
	GetInt64Value() (*int64, error)
	GetFloat64Value() (*float64, error)
	GetISODurationValue() (*isoduration.Duration, error)
	GetEnumValue(parser EnumFactory) (any, error)
	GetObjectValue(ctor ParsableFactory) (Parsable, error)
	GetCollectionOfObjectValues(ctor ParsableFactory) ([]Parsable, error)
	GetCollectionOfStringValues() ([]string, error)
	GetCollectionOfEnumValues(parser EnumFactory) ([]any, error)
	GetRawValue() (Value, error)
	SetOnBeforeAssignFieldValues(action ParsableAction)
	SetOnAfterAssignFieldValues(action ParsableAction)
}

// SerializationWriter emits a payload tree. Nil values are skipped; an empty
// key addresses the root or an array element.
type SerializationWriter interface {
	WriteStringValue(key string, value *string) error
	WriteBoolValue(key string, value *bool) error
	WriteInt64Value(key string, value *int64) error
	WriteFloat64Value(key string, value *float64) error
	WriteISODurationValue(key string, value *isoduration.Duration) error
	WriteEnumValue(key string, value fmt.Stringer) error
	WriteObjectValue(key string, value Parsable) error
	WriteCollectionOfObjectValues(key string, values []Parsable) error
	WriteCollectionOfStringValues(key string, values []string) error
	WriteCollectionOfEnumValues(key string, values []fmt.Stringer) error
	WriteNullValue(key string) error
	WriteAnyValue(key string, value Value) error
	// WriteAdditionalData writes every entry of data; models call it after
	// their declared fields.
	WriteAdditionalData(data map[string]Value) error
	GetSerializedContent() ([]byte, error)
	SetOnBeforeSerialization(action ParsableAction)
	SetOnAfterObjectSerialization(action ParsableAction)
	SetOnStartObjectSerialization(action ParsableWriter)
}
