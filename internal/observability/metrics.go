package observability

import (
	"github.com/danmuck/modelwire/internal/serialization"
	"github.com/prometheus/client_golang/prometheus"
)

// CodecMetrics counts decode and encode activity of the wire packages.
type CodecMetrics struct {
	objectsDecoded *prometheus.CounterVec
	objectsEncoded *prometheus.CounterVec
	unknownFields  *prometheus.CounterVec
	decodeErrors   *prometheus.CounterVec
	fallbacks      *prometheus.CounterVec
}

// NewCodecMetrics registers the codec collectors on reg.
func NewCodecMetrics(reg prometheus.Registerer) (*CodecMetrics, error) {
	m := &CodecMetrics{
		objectsDecoded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "modelwire",
				Subsystem: "codec",
				Name:      "objects_decoded_total",
				Help:      "Objects populated from a payload, nested objects included.",
			},
			[]string{"content_type"},
		),
		objectsEncoded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "modelwire",
				Subsystem: "codec",
				Name:      "objects_encoded_total",
				Help:      "Objects written to a payload, nested objects included.",
			},
			[]string{"content_type"},
		),
		unknownFields: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "modelwire",
				Subsystem: "codec",
				Name:      "unknown_fields_total",
				Help:      "Undeclared payload fields kept as additional data.",
			},
			[]string{"content_type"},
		),
		decodeErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "modelwire",
				Subsystem: "codec",
				Name:      "decode_errors_total",
				Help:      "Payloads rejected before any object was decoded.",
			},
			[]string{"content_type"},
		),
		fallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "modelwire",
				Subsystem: "codec",
				Name:      "discriminator_fallbacks_total",
				Help:      "Polymorphic values decoded as their base type.",
			},
			[]string{"key"},
		),
	}
	for _, c := range []prometheus.Collector{m.objectsDecoded, m.objectsEncoded, m.unknownFields, m.decodeErrors, m.fallbacks} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveFallbacks counts every fallback of r.
func (m *CodecMetrics) ObserveFallbacks(r *serialization.Registry) {
	r.SetOnFallback(func(key, _ string) {
		m.fallbacks.WithLabelValues(key).Inc()
	})
}

// InstrumentParseNodeFactory wraps f so every root node it returns reports
// decoded objects and unknown fields.
func (m *CodecMetrics) InstrumentParseNodeFactory(f serialization.ParseNodeFactory) serialization.ParseNodeFactory {
	return &instrumentedParseNodeFactory{ParseNodeFactory: f, metrics: m}
}

// InstrumentSerializationWriterFactory wraps f so every writer it returns
// reports encoded objects.
func (m *CodecMetrics) InstrumentSerializationWriterFactory(f serialization.SerializationWriterFactory) serialization.SerializationWriterFactory {
	return &instrumentedWriterFactory{SerializationWriterFactory: f, metrics: m}
}

type instrumentedParseNodeFactory struct {
	serialization.ParseNodeFactory
	metrics *CodecMetrics
}

func (f *instrumentedParseNodeFactory) GetRootParseNode(contentType string, content []byte) (serialization.ParseNode, error) {
	ct := serialization.NormalizeContentType(contentType)
	node, err := f.ParseNodeFactory.GetRootParseNode(contentType, content)
	if err != nil {
		f.metrics.decodeErrors.WithLabelValues(ct).Inc()
		return nil, err
	}
	node.SetOnAfterAssignFieldValues(func(p serialization.Parsable) error {
		f.metrics.objectsDecoded.WithLabelValues(ct).Inc()
		if holder, ok := p.(serialization.AdditionalDataHolder); ok {
			if n := len(holder.GetAdditionalData()); n > 0 {
				f.metrics.unknownFields.WithLabelValues(ct).Add(float64(n))
			}
		}
		return nil
	})
	return node, nil
}

type instrumentedWriterFactory struct {
	serialization.SerializationWriterFactory
	metrics *CodecMetrics
}

func (f *instrumentedWriterFactory) GetSerializationWriter(contentType string) (serialization.SerializationWriter, error) {
	writer, err := f.SerializationWriterFactory.GetSerializationWriter(contentType)
	if err != nil {
		return nil, err
	}
	ct := serialization.NormalizeContentType(contentType)
	writer.SetOnAfterObjectSerialization(func(serialization.Parsable) error {
		f.metrics.objectsEncoded.WithLabelValues(ct).Inc()
		return nil
	})
	return writer, nil
}
