package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/modelwire/internal/logging"
	"github.com/danmuck/modelwire/internal/serialization"
	"github.com/danmuck/modelwire/internal/serialization/jsonwire"
	"github.com/danmuck/modelwire/internal/serialization/tlvwire"
)

// CodecConfig drives modelctl decoding and re-encoding.
type CodecConfig struct {
	ContentType       string
	OutputContentType string
	DiscriminatorKey  string
	Indent            bool
	MaxPayloadBytes   uint32
	MaxDepth          int
	LogLevel          string
}

// config.toml key mapping to CodecConfig.
type fileConfig struct {
	ContentType       string `toml:"content_type"`
	OutputContentType string `toml:"output_content_type"`
	DiscriminatorKey  string `toml:"discriminator_key"`
	Indent            bool   `toml:"indent"`
	MaxPayloadBytes   int64  `toml:"max_payload_bytes"`
	MaxDepth          int    `toml:"max_depth"`
	LogLevel          string `toml:"log_level"`
}

func DefaultCodecConfig() CodecConfig {
	return CodecConfig{
		ContentType:       jsonwire.ContentType,
		OutputContentType: jsonwire.ContentType,
		DiscriminatorKey:  serialization.DefaultDiscriminatorKey,
		MaxPayloadBytes:   tlvwire.DefaultLimits().MaxPayloadBytes,
		MaxDepth:          tlvwire.DefaultLimits().MaxDepth,
		LogLevel:          "info",
	}
}

// Limits returns the tlv limits carried by the config.
func (c CodecConfig) Limits() tlvwire.Limits {
	return tlvwire.Limits{MaxPayloadBytes: c.MaxPayloadBytes, MaxDepth: c.MaxDepth}
}

// LoadCodecConfig overlays the keys defined in path onto DefaultCodecConfig.
// An output_content_type left unset follows content_type.
func LoadCodecConfig(path string) (CodecConfig, error) {
	cfg := DefaultCodecConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return CodecConfig{}, fmt.Errorf("load codec config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return CodecConfig{}, fmt.Errorf("load codec config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("content_type") {
		cfg.ContentType = strings.TrimSpace(raw.ContentType)
	}
	if meta.IsDefined("output_content_type") {
		cfg.OutputContentType = strings.TrimSpace(raw.OutputContentType)
	} else {
		cfg.OutputContentType = cfg.ContentType
	}
	if meta.IsDefined("discriminator_key") {
		cfg.DiscriminatorKey = strings.TrimSpace(raw.DiscriminatorKey)
	}
	if meta.IsDefined("indent") {
		cfg.Indent = raw.Indent
	}
	if meta.IsDefined("max_payload_bytes") {
		if raw.MaxPayloadBytes <= 0 || raw.MaxPayloadBytes > math.MaxUint32 {
			return CodecConfig{}, fmt.Errorf("load codec config: max_payload_bytes out of range: %d", raw.MaxPayloadBytes)
		}
		cfg.MaxPayloadBytes = uint32(raw.MaxPayloadBytes)
	}
	if meta.IsDefined("max_depth") {
		cfg.MaxDepth = raw.MaxDepth
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	if err := ValidateCodecConfig(cfg); err != nil {
		return CodecConfig{}, err
	}
	return cfg, nil
}

func ValidateCodecConfig(cfg CodecConfig) error {
	if err := validateContentType("content_type", cfg.ContentType); err != nil {
		return err
	}
	if err := validateContentType("output_content_type", cfg.OutputContentType); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.DiscriminatorKey) == "" {
		return fmt.Errorf("codec config missing discriminator_key")
	}
	if cfg.MaxPayloadBytes == 0 {
		return fmt.Errorf("codec config max_payload_bytes must be positive")
	}
	if cfg.MaxDepth <= 0 {
		return fmt.Errorf("codec config max_depth must be positive")
	}
	if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("codec config invalid log_level %q", cfg.LogLevel)
	}
	return nil
}

func validateContentType(key, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("codec config missing %s", key)
	}
	switch serialization.NormalizeContentType(value) {
	case jsonwire.ContentType, tlvwire.ContentType:
		return nil
	default:
		return fmt.Errorf("codec config %s: %w: %s", key, serialization.ErrUnsupportedContentType, value)
	}
}
