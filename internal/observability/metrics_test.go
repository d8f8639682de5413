package observability

import (
	"testing"

	"github.com/danmuck/modelwire/internal/models"
	"github.com/danmuck/modelwire/internal/serialization"
	"github.com/danmuck/modelwire/internal/serialization/jsonwire"
	"github.com/danmuck/modelwire/internal/serialization/tlvwire"
	"github.com/danmuck/modelwire/internal/testutil/testlog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCodecMetricsCountThroughHooks(t *testing.T) {
	testlog.Start(t)
	reg := prometheus.NewRegistry()
	m, err := NewCodecMetrics(reg)
	if err != nil {
		t.Fatalf("new metrics: %v", err)
	}
	variants := serialization.NewRegistry("", models.CreateItemBodyFromDiscriminatorValue)
	m.ObserveFallbacks(variants)

	parsers := m.InstrumentParseNodeFactory(jsonwire.NewParseNodeFactory())
	payload := []byte(`{"error":{"code":"x","innerError":{"date":"d","@odata.type":"#t"}},"trace":1}`)
	got, err := serialization.Deserialize(parsers, jsonwire.ContentType, payload, models.CreateODataErrorFromDiscriminatorValue)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if v := testutil.ToFloat64(m.objectsDecoded.WithLabelValues(jsonwire.ContentType)); v != 3 {
		t.Fatalf("expected 3 decoded objects, got %v", v)
	}
	if v := testutil.ToFloat64(m.unknownFields.WithLabelValues(jsonwire.ContentType)); v != 2 {
		t.Fatalf("expected 2 unknown fields, got %v", v)
	}

	writers := m.InstrumentSerializationWriterFactory(tlvwire.NewSerializationWriterFactory(tlvwire.DefaultLimits()))
	if _, err := serialization.Serialize(writers, tlvwire.ContentType, got); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if v := testutil.ToFloat64(m.objectsEncoded.WithLabelValues(tlvwire.ContentType)); v != 3 {
		t.Fatalf("expected 3 encoded objects, got %v", v)
	}

	if _, err := serialization.Deserialize(parsers, jsonwire.ContentType, []byte(`{`), models.CreateODataErrorFromDiscriminatorValue); err == nil {
		t.Fatalf("expected invalid payload error")
	}
	if v := testutil.ToFloat64(m.decodeErrors.WithLabelValues(jsonwire.ContentType)); v != 1 {
		t.Fatalf("expected 1 decode error, got %v", v)
	}

	node, err := jsonwire.NewParseNode([]byte(`{"@odata.type":"#unknown"}`))
	if err != nil {
		t.Fatalf("parse node: %v", err)
	}
	if _, err := variants.Create(node); err != nil {
		t.Fatalf("create: %v", err)
	}
	if v := testutil.ToFloat64(m.fallbacks.WithLabelValues(serialization.DefaultDiscriminatorKey)); v != 1 {
		t.Fatalf("expected 1 fallback, got %v", v)
	}
}

func TestNewCodecMetricsRejectsDuplicateRegistration(t *testing.T) {
	testlog.Start(t)
	reg := prometheus.NewRegistry()
	if _, err := NewCodecMetrics(reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := NewCodecMetrics(reg); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}
