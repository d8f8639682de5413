package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/danmuck/modelwire/internal/serialization"
	"github.com/danmuck/modelwire/internal/serialization/tlvwire"
	"github.com/danmuck/modelwire/internal/testutil/testlog"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadCodecConfigDefaultsAndOverrides(t *testing.T) {
	testlog.Start(t)
	path := writeConfig(t, `
content_type = "application/vnd.api+json"
discriminator_key = "kind"
indent = true
max_payload_bytes = 1024
max_depth = 32
log_level = "debug"
`)
	cfg, err := LoadCodecConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ContentType != "application/vnd.api+json" {
		t.Fatalf("unexpected content type: %q", cfg.ContentType)
	}
	if cfg.OutputContentType != cfg.ContentType {
		t.Fatalf("output content type should follow content_type, got %q", cfg.OutputContentType)
	}
	if cfg.DiscriminatorKey != "kind" || !cfg.Indent || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if cfg.Limits() != (tlvwire.Limits{MaxPayloadBytes: 1024, MaxDepth: 32}) {
		t.Fatalf("unexpected limits: %+v", cfg.Limits())
	}
}

func TestLoadCodecConfigEmptyFileUsesDefaults(t *testing.T) {
	testlog.Start(t)
	cfg, err := LoadCodecConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg != DefaultCodecConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.DiscriminatorKey != serialization.DefaultDiscriminatorKey {
		t.Fatalf("unexpected discriminator key: %q", cfg.DiscriminatorKey)
	}
}

func TestLoadCodecConfigRejects(t *testing.T) {
	testlog.Start(t)
	tests := []struct {
		name    string
		content string
	}{
		{name: "unsupported content type", content: `content_type = "application/xml"`},
		{name: "empty discriminator", content: `discriminator_key = "  "`},
		{name: "zero payload limit", content: `max_payload_bytes = 0`},
		{name: "payload limit overflow", content: `max_payload_bytes = 5000000000`},
		{name: "zero depth limit", content: `max_depth = 0`},
		{name: "bad log level", content: `log_level = "loud"`},
		{name: "unknown key", content: `colour = "blue"`},
		{name: "malformed toml", content: `content_type = `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadCodecConfig(writeConfig(t, tt.content)); err == nil {
				t.Fatalf("expected error for %q", tt.content)
			}
		})
	}

	_, err := LoadCodecConfig(writeConfig(t, `output_content_type = "text/csv"`))
	if !errors.Is(err, serialization.ErrUnsupportedContentType) {
		t.Fatalf("expected ErrUnsupportedContentType, got %v", err)
	}
}

func TestTemplatesLoad(t *testing.T) {
	testlog.Start(t)
	for _, kind := range []string{"json", "tlv"} {
		path := filepath.Join(t.TempDir(), kind+".toml")
		if err := WriteTemplate(path, kind, false); err != nil {
			t.Fatalf("write %s template: %v", kind, err)
		}
		cfg, err := LoadCodecConfig(path)
		if err != nil {
			t.Fatalf("load %s template: %v", kind, err)
		}
		if kind == "tlv" && cfg.OutputContentType != tlvwire.ContentType {
			t.Fatalf("tlv template should encode tlv, got %q", cfg.OutputContentType)
		}
		if err := WriteTemplate(path, kind, false); err == nil {
			t.Fatalf("expected refusal to overwrite %s", path)
		}
		if err := WriteTemplate(path, kind, true); err != nil {
			t.Fatalf("forced overwrite: %v", err)
		}
	}
	if _, err := Template("yaml"); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}
