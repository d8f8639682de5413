package models

import (
	"github.com/danmuck/modelwire/internal/serialization"
)

// ItemBody is the content of an item together with its format.
type ItemBody struct {
	additionalData map[string]serialization.Value
	content        *string
	contentType    *BodyType
}

func NewItemBody() *ItemBody {
	return &ItemBody{additionalData: make(map[string]serialization.Value)}
}

// CreateItemBodyFromDiscriminatorValue creates a new instance of the
// appropriate class based on the discriminator value.
func CreateItemBodyFromDiscriminatorValue(parseNode serialization.ParseNode) (serialization.Parsable, error) {
	if parseNode == nil {
		return nil, &serialization.NullArgumentError{Argument: "parseNode"}
	}
	return NewItemBody(), nil
}

func (m *ItemBody) GetAdditionalData() map[string]serialization.Value {
	return m.additionalData
}

func (m *ItemBody) SetAdditionalData(value map[string]serialization.Value) {
	m.additionalData = value
}

func (m *ItemBody) GetContent() *string {
	return m.content
}

func (m *ItemBody) SetContent(value *string) {
	m.content = value
}

func (m *ItemBody) GetContentType() *BodyType {
	return m.contentType
}

func (m *ItemBody) SetContentType(value *BodyType) {
	m.contentType = value
}

func (m *ItemBody) GetFieldDeserializers() map[string]serialization.FieldDeserializer {
	return map[string]serialization.FieldDeserializer{
		"content": func(n serialization.ParseNode) error {
			val, err := n.GetStringValue()
			if err != nil {
				return err
			}
			m.SetContent(val)
			return nil
		},
		"contentType": func(n serialization.ParseNode) error {
			val, err := serialization.ReadEnum[BodyType](n, ParseBodyType)
			if err != nil {
				return err
			}
			m.SetContentType(val)
			return nil
		},
	}
}

func (m *ItemBody) Serialize(writer serialization.SerializationWriter) error {
	if writer == nil {
		return &serialization.NullArgumentError{Argument: "writer"}
	}
	if err := writer.WriteStringValue("content", m.content); err != nil {
		return err
	}
	if err := writer.WriteEnumValue("contentType", serialization.Enum(m.contentType)); err != nil {
		return err
	}
	return writer.WriteAdditionalData(m.additionalData)
}
