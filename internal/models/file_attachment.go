package models

import (
	"maps"

	"github.com/danmuck/modelwire/internal/serialization"
)

// FileAttachment carries file content inline as base64 text.
type FileAttachment struct {
	Attachment
	contentBytes *string
	contentID    *string
}

func NewFileAttachment() *FileAttachment {
	m := &FileAttachment{Attachment: *NewAttachment()}
	odataType := FileAttachmentType
	m.SetOdataType(&odataType)
	return m
}

func CreateFileAttachmentFromDiscriminatorValue(parseNode serialization.ParseNode) (serialization.Parsable, error) {
	if parseNode == nil {
		return nil, &serialization.NullArgumentError{Argument: "parseNode"}
	}
	return NewFileAttachment(), nil
}

// GetContentBytes returns the base64-encoded file content.
func (m *FileAttachment) GetContentBytes() *string {
	return m.contentBytes
}

func (m *FileAttachment) SetContentBytes(value *string) {
	m.contentBytes = value
}

func (m *FileAttachment) GetContentID() *string {
	return m.contentID
}

func (m *FileAttachment) SetContentID(value *string) {
	m.contentID = value
}

func (m *FileAttachment) GetFieldDeserializers() map[string]serialization.FieldDeserializer {
	res := m.Attachment.GetFieldDeserializers()
	maps.Copy(res, map[string]serialization.FieldDeserializer{
		"contentBytes": stringSetter(m.SetContentBytes),
		"contentId":    stringSetter(m.SetContentID),
	})
	return res
}

func (m *FileAttachment) Serialize(writer serialization.SerializationWriter) error {
	if writer == nil {
		return &serialization.NullArgumentError{Argument: "writer"}
	}
	if err := m.serializeFields(writer); err != nil {
		return err
	}
	if err := writer.WriteStringValue("contentBytes", m.contentBytes); err != nil {
		return err
	}
	if err := writer.WriteStringValue("contentId", m.contentID); err != nil {
		return err
	}
	return writer.WriteAdditionalData(m.additionalData)
}
