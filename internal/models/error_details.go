package models

import (
	"github.com/danmuck/modelwire/internal/serialization"
)

// ErrorDetails is one entry of MainError's details list.
type ErrorDetails struct {
	additionalData map[string]serialization.Value
	code           *string
	message        *string
	target         *string
}

func NewErrorDetails() *ErrorDetails {
	return &ErrorDetails{additionalData: make(map[string]serialization.Value)}
}

func CreateErrorDetailsFromDiscriminatorValue(parseNode serialization.ParseNode) (serialization.Parsable, error) {
	if parseNode == nil {
		return nil, &serialization.NullArgumentError{Argument: "parseNode"}
	}
	return NewErrorDetails(), nil
}

func (m *ErrorDetails) GetAdditionalData() map[string]serialization.Value {
	return m.additionalData
}

func (m *ErrorDetails) SetAdditionalData(value map[string]serialization.Value) {
	m.additionalData = value
}

func (m *ErrorDetails) GetCode() *string {
	return m.code
}

func (m *ErrorDetails) SetCode(value *string) {
	m.code = value
}

func (m *ErrorDetails) GetMessage() *string {
	return m.message
}

func (m *ErrorDetails) SetMessage(value *string) {
	m.message = value
}

func (m *ErrorDetails) GetTarget() *string {
	return m.target
}

func (m *ErrorDetails) SetTarget(value *string) {
	m.target = value
}

func (m *ErrorDetails) GetFieldDeserializers() map[string]serialization.FieldDeserializer {
	return map[string]serialization.FieldDeserializer{
		"code":    stringSetter(m.SetCode),
		"message": stringSetter(m.SetMessage),
		"target":  stringSetter(m.SetTarget),
	}
}

func (m *ErrorDetails) Serialize(writer serialization.SerializationWriter) error {
	if writer == nil {
		return &serialization.NullArgumentError{Argument: "writer"}
	}
	if err := writer.WriteStringValue("code", m.code); err != nil {
		return err
	}
	if err := writer.WriteStringValue("message", m.message); err != nil {
		return err
	}
	if err := writer.WriteStringValue("target", m.target); err != nil {
		return err
	}
	return writer.WriteAdditionalData(m.additionalData)
}
