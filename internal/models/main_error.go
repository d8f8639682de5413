package models

import (
	"github.com/danmuck/modelwire/internal/serialization"
)

// MainError is the body of an ODataError envelope.
type MainError struct {
	additionalData map[string]serialization.Value
	code           *string
	details        []*ErrorDetails
	innerError     *InnerError
	message        *string
	target         *string
}

func NewMainError() *MainError {
	return &MainError{additionalData: make(map[string]serialization.Value)}
}

func CreateMainErrorFromDiscriminatorValue(parseNode serialization.ParseNode) (serialization.Parsable, error) {
	if parseNode == nil {
		return nil, &serialization.NullArgumentError{Argument: "parseNode"}
	}
	return NewMainError(), nil
}

func (m *MainError) GetAdditionalData() map[string]serialization.Value {
	return m.additionalData
}

func (m *MainError) SetAdditionalData(value map[string]serialization.Value) {
	m.additionalData = value
}

func (m *MainError) GetCode() *string {
	return m.code
}

func (m *MainError) SetCode(value *string) {
	m.code = value
}

// GetDetails returns the detail entries in payload order.
func (m *MainError) GetDetails() []*ErrorDetails {
	return m.details
}

func (m *MainError) SetDetails(value []*ErrorDetails) {
	m.details = value
}

func (m *MainError) GetInnerError() *InnerError {
	return m.innerError
}

func (m *MainError) SetInnerError(value *InnerError) {
	m.innerError = value
}

func (m *MainError) GetMessage() *string {
	return m.message
}

func (m *MainError) SetMessage(value *string) {
	m.message = value
}

func (m *MainError) GetTarget() *string {
	return m.target
}

func (m *MainError) SetTarget(value *string) {
	m.target = value
}

func (m *MainError) GetFieldDeserializers() map[string]serialization.FieldDeserializer {
	return map[string]serialization.FieldDeserializer{
		"code": stringSetter(m.SetCode),
		"details": func(n serialization.ParseNode) error {
			val, err := serialization.ReadCollection[*ErrorDetails](n, CreateErrorDetailsFromDiscriminatorValue)
			if err != nil {
				return err
			}
			m.SetDetails(val)
			return nil
		},
		"innerError": func(n serialization.ParseNode) error {
			val, err := serialization.ReadObject[*InnerError](n, CreateInnerErrorFromDiscriminatorValue)
			if err != nil {
				return err
			}
			m.SetInnerError(val)
			return nil
		},
		"message": stringSetter(m.SetMessage),
		"target":  stringSetter(m.SetTarget),
	}
}

func (m *MainError) Serialize(writer serialization.SerializationWriter) error {
	if writer == nil {
		return &serialization.NullArgumentError{Argument: "writer"}
	}
	if err := writer.WriteStringValue("code", m.code); err != nil {
		return err
	}
	if err := writer.WriteCollectionOfObjectValues("details", serialization.ObjectsOf(m.details)); err != nil {
		return err
	}
	if err := writer.WriteObjectValue("innerError", m.innerError); err != nil {
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
