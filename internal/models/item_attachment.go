package models

import (
	"maps"

	"github.com/danmuck/modelwire/internal/serialization"
)

// ItemAttachment embeds another item's body.
type ItemAttachment struct {
	Attachment
	item *ItemBody
}

func NewItemAttachment() *ItemAttachment {
	m := &ItemAttachment{Attachment: *NewAttachment()}
	odataType := ItemAttachmentType
	m.SetOdataType(&odataType)
	return m
}

func CreateItemAttachmentFromDiscriminatorValue(parseNode serialization.ParseNode) (serialization.Parsable, error) {
	if parseNode == nil {
		return nil, &serialization.NullArgumentError{Argument: "parseNode"}
	}
	return NewItemAttachment(), nil
}

func (m *ItemAttachment) GetItem() *ItemBody {
	return m.item
}

func (m *ItemAttachment) SetItem(value *ItemBody) {
	m.item = value
}

func (m *ItemAttachment) GetFieldDeserializers() map[string]serialization.FieldDeserializer {
	res := m.Attachment.GetFieldDeserializers()
	maps.Copy(res, map[string]serialization.FieldDeserializer{
		"item": func(n serialization.ParseNode) error {
			val, err := serialization.ReadObject[*ItemBody](n, CreateItemBodyFromDiscriminatorValue)
			if err != nil {
				return err
			}
			m.SetItem(val)
			return nil
		},
	})
	return res
}

func (m *ItemAttachment) Serialize(writer serialization.SerializationWriter) error {
	if writer == nil {
		return &serialization.NullArgumentError{Argument: "writer"}
	}
	if err := m.serializeFields(writer); err != nil {
		return err
	}
	if err := writer.WriteObjectValue("item", m.item); err != nil {
		return err
	}
	return writer.WriteAdditionalData(m.additionalData)
}
