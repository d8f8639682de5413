package serialization

import (
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
)

// DefaultDiscriminatorKey is the payload member that names the concrete
// variant of a polymorphic value.
const DefaultDiscriminatorKey = "@odata.type"

// Registry maps discriminator values to variant factories for one
// polymorphic base type. Values that are missing, not strings or not
// registered resolve to the fallback so that variants added server-side do
// not break older clients.
type Registry struct {
	key      string
	fallback ParsableFactory

	mu         sync.RWMutex
	variants   map[string]ParsableFactory
	onFallback func(key, value string)
}

// NewRegistry panics when fallback is nil.
func NewRegistry(key string, fallback ParsableFactory) *Registry {
	if fallback == nil {
		panic("serialization: registry fallback factory is required")
	}
	if key == "" {
		key = DefaultDiscriminatorKey
	}
	return &Registry{
		key:      key,
		fallback: fallback,
		variants: make(map[string]ParsableFactory),
	}
}

func (r *Registry) Key() string {
	return r.key
}

// Register binds value to factory, replacing any earlier binding.
func (r *Registry) Register(value string, factory ParsableFactory) {
	if factory == nil {
		panic("serialization: registry variant factory is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.variants[value] = factory
}

// SetOnFallback installs a callback run every time resolution falls back.
func (r *Registry) SetOnFallback(fn func(key, value string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onFallback = fn
}

// Values returns the registered discriminator values in sorted order.
func (r *Registry) Values() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.variants))
	for v := range r.variants {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Resolve reads the discriminator at node and returns the matching factory.
func (r *Registry) Resolve(node ParseNode) (ParsableFactory, error) {
	if node == nil {
		return nil, &NullArgumentError{Argument: "parseNode"}
	}
	child, err := node.GetChildNode(r.key)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return r.useFallback(""), nil
	}
	value, err := child.GetStringValue()
	if err != nil || value == nil {
		log.Debug().Str("key", r.key).Msg("serialization.Registry discriminator is not a string")
		return r.useFallback(""), nil
	}

	r.mu.RLock()
	factory, ok := r.variants[*value]
	r.mu.RUnlock()
	if !ok {
		return r.useFallback(*value), nil
	}
	return factory, nil
}

// Create resolves the variant for node and constructs it.
func (r *Registry) Create(node ParseNode) (Parsable, error) {
	factory, err := r.Resolve(node)
	if err != nil {
		return nil, err
	}
	return factory(node)
}

func (r *Registry) useFallback(value string) ParsableFactory {
	r.mu.RLock()
	hook := r.onFallback
	r.mu.RUnlock()
	log.Debug().Str("key", r.key).Str("value", value).Msg("serialization.Registry fallback to base variant")
	if hook != nil {
		hook(r.key, value)
	}
	return r.fallback
}
