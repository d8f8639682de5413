package jsonwire

import (
	"fmt"

	"github.com/danmuck/modelwire/internal/serialization"
)

const ContentType = "application/json"

// ParseNodeFactory builds JSON parse nodes.
type ParseNodeFactory struct{}

func NewParseNodeFactory() *ParseNodeFactory {
	return &ParseNodeFactory{}
}

func (f *ParseNodeFactory) GetValidContentType() (string, error) {
	return ContentType, nil
}

func (f *ParseNodeFactory) GetRootParseNode(contentType string, content []byte) (serialization.ParseNode, error) {
	if err := checkContentType(contentType); err != nil {
		return nil, err
	}
	if content == nil {
		return nil, &serialization.NullArgumentError{Argument: "content"}
	}
	node, err := NewParseNode(content)
	if err != nil {
		return nil, err
	}
	return node, nil
}

// SerializationWriterFactory builds JSON writers.
type SerializationWriterFactory struct{}

func NewSerializationWriterFactory() *SerializationWriterFactory {
	return &SerializationWriterFactory{}
}

func (f *SerializationWriterFactory) GetValidContentType() (string, error) {
	return ContentType, nil
}

func (f *SerializationWriterFactory) GetSerializationWriter(contentType string) (serialization.SerializationWriter, error) {
	if err := checkContentType(contentType); err != nil {
		return nil, err
	}
	return NewSerializationWriter(), nil
}

func checkContentType(contentType string) error {
	if contentType == "" {
		return &serialization.NullArgumentError{Argument: "contentType"}
	}
	if serialization.NormalizeContentType(contentType) != ContentType {
		return fmt.Errorf("%w: %s", serialization.ErrUnsupportedContentType, contentType)
	}
	return nil
}

// Register adds the JSON factories to both registries.
func Register(parsers *serialization.ParseNodeFactoryRegistry, writers *serialization.SerializationWriterFactoryRegistry) error {
	if err := parsers.Register(NewParseNodeFactory()); err != nil {
		return err
	}
	return writers.Register(NewSerializationWriterFactory())
}
