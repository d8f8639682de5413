package serialization

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// ParseNodeFactory builds root parse nodes for one content type.
type ParseNodeFactory interface {
	GetValidContentType() (string, error)
	GetRootParseNode(contentType string, content []byte) (ParseNode, error)
}

// SerializationWriterFactory builds writers for one content type.
type SerializationWriterFactory interface {
	GetValidContentType() (string, error)
	GetSerializationWriter(contentType string) (SerializationWriter, error)
}

var (
	DefaultParseNodeFactoryRegistry           = NewParseNodeFactoryRegistry()
	DefaultSerializationWriterFactoryRegistry = NewSerializationWriterFactoryRegistry()
)

// NormalizeContentType drops parameters and vendor prefixes so
// "application/vnd.api+json; charset=utf-8" selects "application/json".
func NormalizeContentType(contentType string) string {
	ct := contentType
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	ct = strings.ToLower(strings.TrimSpace(ct))
	typ, sub, ok := strings.Cut(ct, "/")
	if !ok {
		return ct
	}
	if i := strings.LastIndexByte(sub, '+'); i >= 0 {
		sub = sub[i+1:]
	}
	return typ + "/" + sub
}

// ParseNodeFactoryRegistry dispatches to the factory registered for a
// content type.
type ParseNodeFactoryRegistry struct {
	mu        sync.RWMutex
	factories map[string]ParseNodeFactory
}

func NewParseNodeFactoryRegistry() *ParseNodeFactoryRegistry {
	return &ParseNodeFactoryRegistry{factories: make(map[string]ParseNodeFactory)}
}

// Register binds factory under its own valid content type.
func (r *ParseNodeFactoryRegistry) Register(factory ParseNodeFactory) error {
	if factory == nil {
		return &NullArgumentError{Argument: "factory"}
	}
	ct, err := factory.GetValidContentType()
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[NormalizeContentType(ct)] = factory
	return nil
}

// ContentTypes returns the registered content types in sorted order.
func (r *ParseNodeFactoryRegistry) ContentTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for ct := range r.factories {
		out = append(out, ct)
	}
	slices.Sort(out)
	return out
}

func (r *ParseNodeFactoryRegistry) GetValidContentType() (string, error) {
	return "", fmt.Errorf("serialization: the registry supports multiple content types, get the registered factory instead")
}

func (r *ParseNodeFactoryRegistry) GetRootParseNode(contentType string, content []byte) (ParseNode, error) {
	if strings.TrimSpace(contentType) == "" {
		return nil, &NullArgumentError{Argument: "contentType"}
	}
	if content == nil {
		return nil, &NullArgumentError{Argument: "content"}
	}
	ct := NormalizeContentType(contentType)
	r.mu.RLock()
	factory, ok := r.factories[ct]
	r.mu.RUnlock()
	if !ok {
		log.Debug().Str("content_type", contentType).Msg("serialization.ParseNodeFactoryRegistry no factory")
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedContentType, contentType)
	}
	return factory.GetRootParseNode(ct, content)
}

// SerializationWriterFactoryRegistry dispatches to the writer factory
// registered for a content type.
type SerializationWriterFactoryRegistry struct {
	mu        sync.RWMutex
	factories map[string]SerializationWriterFactory
}

func NewSerializationWriterFactoryRegistry() *SerializationWriterFactoryRegistry {
	return &SerializationWriterFactoryRegistry{factories: make(map[string]SerializationWriterFactory)}
}

func (r *SerializationWriterFactoryRegistry) Register(factory SerializationWriterFactory) error {
	if factory == nil {
		return &NullArgumentError{Argument: "factory"}
	}
	ct, err := factory.GetValidContentType()
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[NormalizeContentType(ct)] = factory
	return nil
}

func (r *SerializationWriterFactoryRegistry) ContentTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for ct := range r.factories {
		out = append(out, ct)
	}
	slices.Sort(out)
	return out
}

func (r *SerializationWriterFactoryRegistry) GetValidContentType() (string, error) {
	return "", fmt.Errorf("serialization: the registry supports multiple content types, get the registered factory instead")
}

func (r *SerializationWriterFactoryRegistry) GetSerializationWriter(contentType string) (SerializationWriter, error) {
	if strings.TrimSpace(contentType) == "" {
		return nil, &NullArgumentError{Argument: "contentType"}
	}
	ct := NormalizeContentType(contentType)
	r.mu.RLock()
	factory, ok := r.factories[ct]
	r.mu.RUnlock()
	if !ok {
		log.Debug().Str("content_type", contentType).Msg("serialization.SerializationWriterFactoryRegistry no factory")
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedContentType, contentType)
	}
	return factory.GetSerializationWriter(ct)
}

// Deserialize decodes content as a single model built by ctor.
func Deserialize(factory ParseNodeFactory, contentType string, content []byte, ctor ParsableFactory) (Parsable, error) {
	if factory == nil {
		return nil, &NullArgumentError{Argument: "factory"}
	}
	if ctor == nil {
		return nil, &NullArgumentError{Argument: "ctor"}
	}
	node, err := factory.GetRootParseNode(contentType, content)
	if err != nil {
		return nil, err
	}
	return node.GetObjectValue(ctor)
}

// DeserializeCollection decodes content as an array of models built by ctor.
func DeserializeCollection(factory ParseNodeFactory, contentType string, content []byte, ctor ParsableFactory) ([]Parsable, error) {
	if factory == nil {
		return nil, &NullArgumentError{Argument: "factory"}
	}
	if ctor == nil {
		return nil, &NullArgumentError{Argument: "ctor"}
	}
	node, err := factory.GetRootParseNode(contentType, content)
	if err != nil {
		return nil, err
	}
	return node.GetCollectionOfObjectValues(ctor)
}

// Serialize encodes model as the root value of a new payload.
func Serialize(factory SerializationWriterFactory, contentType string, model Parsable) ([]byte, error) {
	if factory == nil {
		return nil, &NullArgumentError{Argument: "factory"}
	}
	if IsNil(model) {
		return nil, &NullArgumentError{Argument: "model"}
	}
	writer, err := factory.GetSerializationWriter(contentType)
	if err != nil {
		return nil, err
	}
	if err := writer.WriteObjectValue("", model); err != nil {
		return nil, err
	}
	return writer.GetSerializedContent()
}

// SerializeCollection encodes models as a root array.
func SerializeCollection(factory SerializationWriterFactory, contentType string, models []Parsable) ([]byte, error) {
	if factory == nil {
		return nil, &NullArgumentError{Argument: "factory"}
	}
	writer, err := factory.GetSerializationWriter(contentType)
	if err != nil {
		return nil, err
	}
	if models == nil {
		models = []Parsable{}
	}
	if err := writer.WriteCollectionOfObjectValues("", models); err != nil {
		return nil, err
	}
	return writer.GetSerializedContent()
}
