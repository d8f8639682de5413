package models

import (
	"github.com/danmuck/modelwire/internal/isoduration"
	"github.com/danmuck/modelwire/internal/serialization"
)

// Message is a mail item with a body, categories and polymorphic
// attachments.
type Message struct {
	additionalData  map[string]serialization.Value
	attachments     []Attachmentable
	body            *ItemBody
	categories      []string
	importance      *Importance
	retentionPeriod *isoduration.Duration
	subject         *string
}

func NewMessage() *Message {
	return &Message{additionalData: make(map[string]serialization.Value)}
}

func CreateMessageFromDiscriminatorValue(parseNode serialization.ParseNode) (serialization.Parsable, error) {
	if parseNode == nil {
		return nil, &serialization.NullArgumentError{Argument: "parseNode"}
	}
	return NewMessage(), nil
}

func (m *Message) GetAdditionalData() map[string]serialization.Value {
	return m.additionalData
}

func (m *Message) SetAdditionalData(value map[string]serialization.Value) {
	m.additionalData = value
}

// GetAttachments returns the attachments in payload order, each as its
// concrete variant.
func (m *Message) GetAttachments() []Attachmentable {
	return m.attachments
}

func (m *Message) SetAttachments(value []Attachmentable) {
	m.attachments = value
}

func (m *Message) GetBody() *ItemBody {
	return m.body
}

func (m *Message) SetBody(value *ItemBody) {
	m.body = value
}

func (m *Message) GetCategories() []string {
	return m.categories
}

func (m *Message) SetCategories(value []string) {
	m.categories = value
}

func (m *Message) GetImportance() *Importance {
	return m.importance
}

func (m *Message) SetImportance(value *Importance) {
	m.importance = value
}

func (m *Message) GetRetentionPeriod() *isoduration.Duration {
	return m.retentionPeriod
}

func (m *Message) SetRetentionPeriod(value *isoduration.Duration) {
	m.retentionPeriod = value
}

func (m *Message) GetSubject() *string {
	return m.subject
}

func (m *Message) SetSubject(value *string) {
	m.subject = value
}

func (m *Message) GetFieldDeserializers() map[string]serialization.FieldDeserializer {
	return map[string]serialization.FieldDeserializer{
		"attachments": func(n serialization.ParseNode) error {
			val, err := serialization.ReadCollection[Attachmentable](n, CreateAttachmentFromDiscriminatorValue)
			if err != nil {
				return err
			}
			m.SetAttachments(val)
			return nil
		},
		"body": func(n serialization.ParseNode) error {
			val, err := serialization.ReadObject[*ItemBody](n, CreateItemBodyFromDiscriminatorValue)
			if err != nil {
				return err
			}
			m.SetBody(val)
			return nil
		},
		"categories": func(n serialization.ParseNode) error {
			val, err := n.GetCollectionOfStringValues()
			if err != nil {
				return err
			}
			m.SetCategories(val)
			return nil
		},
		"importance": func(n serialization.ParseNode) error {
			val, err := serialization.ReadEnum[Importance](n, ParseImportance)
			if err != nil {
				return err
			}
			m.SetImportance(val)
			return nil
		},
		"retentionPeriod": func(n serialization.ParseNode) error {
			val, err := n.GetISODurationValue()
			if err != nil {
				return err
			}
			m.SetRetentionPeriod(val)
			return nil
		},
		"subject": stringSetter(m.SetSubject),
	}
}

func (m *Message) Serialize(writer serialization.SerializationWriter) error {
	if writer == nil {
		return &serialization.NullArgumentError{Argument: "writer"}
	}
	if err := writer.WriteStringValue("subject", m.subject); err != nil {
		return err
	}
	if err := writer.WriteObjectValue("body", m.body); err != nil {
		return err
	}
	if err := writer.WriteEnumValue("importance", serialization.Enum(m.importance)); err != nil {
		return err
	}
	if err := writer.WriteCollectionOfStringValues("categories", m.categories); err != nil {
		return err
	}
	if err := writer.WriteCollectionOfObjectValues("attachments", serialization.ObjectsOf(m.attachments)); err != nil {
		return err
	}
	if err := writer.WriteISODurationValue("retentionPeriod", m.retentionPeriod); err != nil {
		return err
	}
	return writer.WriteAdditionalData(m.additionalData)
}
