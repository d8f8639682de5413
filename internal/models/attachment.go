package models

import (
	"github.com/danmuck/modelwire/internal/serialization"
)

const (
	FileAttachmentType      = "#microsoft.graph.fileAttachment"
	ItemAttachmentType      = "#microsoft.graph.itemAttachment"
	ReferenceAttachmentType = "#microsoft.graph.referenceAttachment"
)

// Attachmentable is satisfied by Attachment and every variant embedding it.
type Attachmentable interface {
	serialization.Parsable
	serialization.AdditionalDataHolder
	GetOdataType() *string
	GetName() *string
	GetContentType() *string
	GetSize() *int64
	GetIsInline() *bool
}

var attachmentVariants = NewAttachmentVariants(serialization.DefaultDiscriminatorKey)

// NewAttachmentVariants builds a registry of the attachment variants keyed by
// the payload member key.
func NewAttachmentVariants(key string) *serialization.Registry {
	r := serialization.NewRegistry(key, func(serialization.ParseNode) (serialization.Parsable, error) {
		return NewAttachment(), nil
	})
	r.Register(FileAttachmentType, func(serialization.ParseNode) (serialization.Parsable, error) {
		return NewFileAttachment(), nil
	})
	r.Register(ItemAttachmentType, func(serialization.ParseNode) (serialization.Parsable, error) {
		return NewItemAttachment(), nil
	})
	r.Register(ReferenceAttachmentType, func(serialization.ParseNode) (serialization.Parsable, error) {
		return NewReferenceAttachment(), nil
	})
	return r
}

// AttachmentVariants exposes the discriminator registry of Attachment so
// callers can observe fallbacks.
func AttachmentVariants() *serialization.Registry {
	return attachmentVariants
}

// Attachment is the polymorphic base of message attachments. Unknown
// "@odata.type" values decode as a plain Attachment.
type Attachment struct {
	additionalData map[string]serialization.Value
	odataType      *string
	contentType    *string
	isInline       *bool
	name           *string
	size           *int64
}

func NewAttachment() *Attachment {
	return &Attachment{additionalData: make(map[string]serialization.Value)}
}

// CreateAttachmentFromDiscriminatorValue reads "@odata.type" at parseNode and
// builds the matching variant.
func CreateAttachmentFromDiscriminatorValue(parseNode serialization.ParseNode) (serialization.Parsable, error) {
	if parseNode == nil {
		return nil, &serialization.NullArgumentError{Argument: "parseNode"}
	}
	return attachmentVariants.Create(parseNode)
}

func (m *Attachment) GetAdditionalData() map[string]serialization.Value {
	return m.additionalData
}

func (m *Attachment) SetAdditionalData(value map[string]serialization.Value) {
	m.additionalData = value
}

func (m *Attachment) GetOdataType() *string {
	return m.odataType
}

func (m *Attachment) SetOdataType(value *string) {
	m.odataType = value
}

func (m *Attachment) GetContentType() *string {
	return m.contentType
}

func (m *Attachment) SetContentType(value *string) {
	m.contentType = value
}

func (m *Attachment) GetIsInline() *bool {
	return m.isInline
}

func (m *Attachment) SetIsInline(value *bool) {
	m.isInline = value
}

func (m *Attachment) GetName() *string {
	return m.name
}

func (m *Attachment) SetName(value *string) {
	m.name = value
}

func (m *Attachment) GetSize() *int64 {
	return m.size
}

func (m *Attachment) SetSize(value *int64) {
	m.size = value
}

func (m *Attachment) GetFieldDeserializers() map[string]serialization.FieldDeserializer {
	return map[string]serialization.FieldDeserializer{
		"@odata.type": stringSetter(m.SetOdataType),
		"contentType": stringSetter(m.SetContentType),
		"isInline":    boolSetter(m.SetIsInline),
		"name":        stringSetter(m.SetName),
		"size":        int64Setter(m.SetSize),
	}
}

// serializeFields writes the declared base fields only; variants append
// their own before the additional data.
func (m *Attachment) serializeFields(writer serialization.SerializationWriter) error {
	if err := writer.WriteStringValue("@odata.type", m.odataType); err != nil {
		return err
	}
	if err := writer.WriteStringValue("contentType", m.contentType); err != nil {
		return err
	}
	if err := writer.WriteBoolValue("isInline", m.isInline); err != nil {
		return err
	}
	if err := writer.WriteStringValue("name", m.name); err != nil {
		return err
	}
	return writer.WriteInt64Value("size", m.size)
}

func (m *Attachment) Serialize(writer serialization.SerializationWriter) error {
	if writer == nil {
		return &serialization.NullArgumentError{Argument: "writer"}
	}
	if err := m.serializeFields(writer); err != nil {
		return err
	}
	return writer.WriteAdditionalData(m.additionalData)
}
