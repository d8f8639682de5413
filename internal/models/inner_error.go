package models

import (
	"github.com/danmuck/modelwire/internal/serialization"
)

// InnerError carries service diagnostics attached to a MainError.
type InnerError struct {
	additionalData  map[string]serialization.Value
	clientRequestID *string
	date            *string
	requestID       *string
}

func NewInnerError() *InnerError {
	return &InnerError{additionalData: make(map[string]serialization.Value)}
}

func CreateInnerErrorFromDiscriminatorValue(parseNode serialization.ParseNode) (serialization.Parsable, error) {
	if parseNode == nil {
		return nil, &serialization.NullArgumentError{Argument: "parseNode"}
	}
	return NewInnerError(), nil
}

func (m *InnerError) GetAdditionalData() map[string]serialization.Value {
	return m.additionalData
}

func (m *InnerError) SetAdditionalData(value map[string]serialization.Value) {
	m.additionalData = value
}

func (m *InnerError) GetClientRequestID() *string {
	return m.clientRequestID
}

func (m *InnerError) SetClientRequestID(value *string) {
	m.clientRequestID = value
}

// GetDate returns the service timestamp exactly as received.
func (m *InnerError) GetDate() *string {
	return m.date
}

func (m *InnerError) SetDate(value *string) {
	m.date = value
}

func (m *InnerError) GetRequestID() *string {
	return m.requestID
}

func (m *InnerError) SetRequestID(value *string) {
	m.requestID = value
}

func (m *InnerError) GetFieldDeserializers() map[string]serialization.FieldDeserializer {
	return map[string]serialization.FieldDeserializer{
		"client-request-id": stringSetter(m.SetClientRequestID),
		"date":              stringSetter(m.SetDate),
		"request-id":        stringSetter(m.SetRequestID),
	}
}

func (m *InnerError) Serialize(writer serialization.SerializationWriter) error {
	if writer == nil {
		return &serialization.NullArgumentError{Argument: "writer"}
	}
	if err := writer.WriteStringValue("client-request-id", m.clientRequestID); err != nil {
		return err
	}
	if err := writer.WriteStringValue("date", m.date); err != nil {
		return err
	}
	if err := writer.WriteStringValue("request-id", m.requestID); err != nil {
		return err
	}
	return writer.WriteAdditionalData(m.additionalData)
}
