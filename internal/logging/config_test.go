package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]struct {
		want zerolog.Level
		ok   bool
	}{
		"":         {zerolog.InfoLevel, false},
		"DEBUG":    {zerolog.DebugLevel, true},
		" warn ":   {zerolog.WarnLevel, true},
		"off":      {zerolog.Disabled, true},
		"verbose":  {zerolog.InfoLevel, false},
		"trace":    {zerolog.TraceLevel, true},
		"warning":  {zerolog.WarnLevel, true},
		"inactive": {zerolog.Disabled, true},
	}
	for raw, tc := range cases {
		got, ok := ParseLevel(raw)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseLevel(%q) = (%v, %v), want (%v, %v)", raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogTimestamp, "false")
	t.Setenv(EnvLogNoColor, "true")
	t.Setenv(EnvLogBypass, "not-a-bool")

	cfg := DefaultConfig(ProfileRuntime)
	ApplyEnvOverrides(&cfg)
	if cfg.Level != zerolog.ErrorLevel {
		t.Fatalf("expected error level, got %v", cfg.Level)
	}
	if cfg.Timestamp {
		t.Fatalf("expected timestamp disabled")
	}
	if !cfg.NoColor {
		t.Fatalf("expected no color")
	}
	if cfg.Bypass {
		t.Fatalf("invalid bool must not override bypass")
	}
}

func TestApplyBypassWritesJSON(t *testing.T) {
	prevLogger := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	Apply(Config{Level: zerolog.InfoLevel, Bypass: true, Out: &buf})
	log.Info().Str("component", "test").Msg("hello")
	log.Debug().Msg("filtered")

	out := buf.String()
	if !strings.Contains(out, `"component":"test"`) || !strings.Contains(out, `"message":"hello"`) {
		t.Fatalf("unexpected output: %s", out)
	}
	if strings.Contains(out, "filtered") {
		t.Fatalf("debug line should be filtered: %s", out)
	}
}

func TestApplyTagsApp(t *testing.T) {
	prevLogger := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	Apply(Config{Level: zerolog.InfoLevel, NoColor: true, App: "modelctl", Out: &buf})
	log.Info().Str("content_type", "application/json").Msg("decoded")

	out := buf.String()
	if !strings.Contains(out, "app=modelctl") || !strings.Contains(out, "decoded") {
		t.Fatalf("unexpected log line: %q", out)
	}
}

func TestIsTerminalRejectsBuffers(t *testing.T) {
	var buf bytes.Buffer
	if IsTerminal(&buf) {
		t.Fatalf("a buffer is never a terminal")
	}
}
