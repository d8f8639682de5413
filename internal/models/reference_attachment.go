package models

import (
	"maps"

	"github.com/danmuck/modelwire/internal/serialization"
)

// ReferenceAttachment links to content stored elsewhere.
type ReferenceAttachment struct {
	Attachment
	sourceURL *string
}

func NewReferenceAttachment() *ReferenceAttachment {
	m := &ReferenceAttachment{Attachment: *NewAttachment()}
	odataType := ReferenceAttachmentType
	m.SetOdataType(&odataType)
	return m
}

func CreateReferenceAttachmentFromDiscriminatorValue(parseNode serialization.ParseNode) (serialization.Parsable, error) {
	if parseNode == nil {
		return nil, &serialization.NullArgumentError{Argument: "parseNode"}
	}
	return NewReferenceAttachment(), nil
}

func (m *ReferenceAttachment) GetSourceURL() *string {
	return m.sourceURL
}

func (m *ReferenceAttachment) SetSourceURL(value *string) {
	m.sourceURL = value
}

func (m *ReferenceAttachment) GetFieldDeserializers() map[string]serialization.FieldDeserializer {
	res := m.Attachment.GetFieldDeserializers()
	maps.Copy(res, map[string]serialization.FieldDeserializer{
		"sourceUrl": stringSetter(m.SetSourceURL),
	})
	return res
}

func (m *ReferenceAttachment) Serialize(writer serialization.SerializationWriter) error {
	if writer == nil {
		return &serialization.NullArgumentError{Argument: "writer"}
	}
	if err := m.serializeFields(writer); err != nil {
		return err
	}
	if err := writer.WriteStringValue("sourceUrl", m.sourceURL); err != nil {
		return err
	}
	return writer.WriteAdditionalData(m.additionalData)
}
