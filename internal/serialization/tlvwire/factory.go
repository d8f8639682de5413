package tlvwire

import (
	"fmt"

	"github.com/danmuck/modelwire/internal/serialization"
)

const ContentType = "application/vnd.modelwire.tlv"

// ParseNodeFactory builds TLV parse nodes.
type ParseNodeFactory struct {
	Limits Limits
}

func NewParseNodeFactory(limits Limits) *ParseNodeFactory {
	return &ParseNodeFactory{Limits: limits}
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
	node, err := NewParseNodeWithLimits(content, f.Limits)
	if err != nil {
		return nil, err
	}
	return node, nil
}

// SerializationWriterFactory builds TLV writers.
type SerializationWriterFactory struct {
	Limits Limits
}

func NewSerializationWriterFactory(limits Limits) *SerializationWriterFactory {
	return &SerializationWriterFactory{Limits: limits}
}

func (f *SerializationWriterFactory) GetValidContentType() (string, error) {
	return ContentType, nil
}

func (f *SerializationWriterFactory) GetSerializationWriter(contentType string) (serialization.SerializationWriter, error) {
	if err := checkContentType(contentType); err != nil {
		return nil, err
	}
	return NewSerializationWriterWithLimits(f.Limits), nil
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

// Register adds the TLV factories to both registries.
func Register(parsers *serialization.ParseNodeFactoryRegistry, writers *serialization.SerializationWriterFactoryRegistry, limits Limits) error {
	if err := parsers.Register(NewParseNodeFactory(limits)); err != nil {
		return err
	}
	return writers.Register(NewSerializationWriterFactory(limits))
}
