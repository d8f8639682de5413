package models

import (
	"fmt"

	"github.com/danmuck/modelwire/internal/serialization"
)

// ODataError is the error envelope returned by the service. It satisfies the
// error interface so callers can return it directly.
type ODataError struct {
	// ResponseStatusCode is the HTTP status that carried the envelope, when
	// known. It is not part of the payload.
	ResponseStatusCode int

	additionalData map[string]serialization.Value
	mainError      *MainError
}

func NewODataError() *ODataError {
	return &ODataError{additionalData: make(map[string]serialization.Value)}
}

func CreateODataErrorFromDiscriminatorValue(parseNode serialization.ParseNode) (serialization.Parsable, error) {
	if parseNode == nil {
		return nil, &serialization.NullArgumentError{Argument: "parseNode"}
	}
	return NewODataError(), nil
}

func (m *ODataError) GetAdditionalData() map[string]serialization.Value {
	return m.additionalData
}

func (m *ODataError) SetAdditionalData(value map[string]serialization.Value) {
	m.additionalData = value
}

// GetError returns the "error" member of the envelope.
func (m *ODataError) GetError() *MainError {
	return m.mainError
}

func (m *ODataError) SetError(value *MainError) {
	m.mainError = value
}

// PrimaryMessage returns the main error message, or "" when absent.
func (m *ODataError) PrimaryMessage() string {
	if m.mainError == nil || m.mainError.GetMessage() == nil {
		return ""
	}
	return *m.mainError.GetMessage()
}

func (m *ODataError) Error() string {
	if msg := m.PrimaryMessage(); msg != "" {
		return msg
	}
	if m.ResponseStatusCode != 0 {
		return fmt.Sprintf("odata error: status %d", m.ResponseStatusCode)
	}
	return "odata error"
}

func (m *ODataError) GetFieldDeserializers() map[string]serialization.FieldDeserializer {
	return map[string]serialization.FieldDeserializer{
		"error": func(n serialization.ParseNode) error {
			val, err := serialization.ReadObject[*MainError](n, CreateMainErrorFromDiscriminatorValue)
			if err != nil {
				return err
			}
			m.SetError(val)
			return nil
		},
	}
}

func (m *ODataError) Serialize(writer serialization.SerializationWriter) error {
	if writer == nil {
		return &serialization.NullArgumentError{Argument: "writer"}
	}
	if err := writer.WriteObjectValue("error", m.mainError); err != nil {
		return err
	}
	return writer.WriteAdditionalData(m.additionalData)
}
