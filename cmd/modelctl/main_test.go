package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/modelwire/internal/serialization/tlvwire"
)

func TestDecodeJSONRoundTrip(t *testing.T) {
	in := `{"error":{"code":"NotFound","message":"gone","extra":true}}`
	var stdout, stderr bytes.Buffer
	code := run([]string{"decode", "-type", "odataerror"}, strings.NewReader(in), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d, stderr=%s", code, stderr.String())
	}
	want := `{"error":{"code":"NotFound","message":"gone","extra":true}}`
	if stdout.String() != want {
		t.Fatalf("unexpected output: %s", stdout.String())
	}
	if !strings.Contains(stderr.String(), "primary_message=gone") {
		t.Fatalf("expected primary message in logs: %s", stderr.String())
	}
}

func TestDecodeJSONToTLVAndBack(t *testing.T) {
	in := `{"@odata.type":"#microsoft.graph.referenceAttachment","name":"doc","sourceUrl":"https://example.com"}`
	var tlvOut, stderr bytes.Buffer
	code := run([]string{"decode", "-type", "attachment", "-out-content-type", tlvwire.ContentType},
		strings.NewReader(in), &tlvOut, &stderr)
	if code != 0 {
		t.Fatalf("encode exit code %d, stderr=%s", code, stderr.String())
	}
	if _, err := tlvwire.DecodeHeader(tlvOut.Bytes()); err != nil {
		t.Fatalf("output is not a tlv document: %v", err)
	}

	var jsonOut bytes.Buffer
	code = run([]string{"decode", "-type", "attachment", "-content-type", tlvwire.ContentType},
		bytes.NewReader(tlvOut.Bytes()), &jsonOut, &stderr)
	if code != 0 {
		t.Fatalf("decode exit code %d, stderr=%s", code, stderr.String())
	}
	want := `{"@odata.type":"#microsoft.graph.referenceAttachment","name":"doc","sourceUrl":"https://example.com"}`
	if jsonOut.String() != want {
		t.Fatalf("unexpected output: %s", jsonOut.String())
	}
}

func TestDecodeCollectionWithConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfgPath, []byte("indent = true\nlog_level = \"error\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	inPath := filepath.Join(dir, "bodies.json")
	if err := os.WriteFile(inPath, []byte(`[{"content":"a","contentType":"text"},null]`), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", cfgPath, "decode", "-type", "itembody", "-collection", "-in", inPath},
		strings.NewReader(""), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d, stderr=%s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "\n") || !strings.Contains(stdout.String(), `"contentType": "text"`) {
		t.Fatalf("expected indented output: %s", stdout.String())
	}
}

func TestDecodeRejectsUnknownType(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"decode", "-type", "calendar"}, strings.NewReader(`{}`), &stdout, &stderr)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if stdout.Len() != 0 {
		t.Fatalf("expected no output, got %s", stdout.String())
	}
}

func TestDuration(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"duration", "PT1H30M", "P1W"}, nil, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr=%s", code, stderr.String())
	}
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "PT1H30M\tPT1H30M\t") || !strings.Contains(lines[1], "weeks=1") {
		t.Fatalf("unexpected output: %q", stdout.String())
	}

	stdout.Reset()
	if code := run([]string{"duration", "P1M1Y"}, nil, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit code 1 for invalid duration, got %d", code)
	}
}

func TestUnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"encode"}, nil, &stdout, &stderr); code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
	if code := run(nil, nil, &stdout, &stderr); code != 2 {
		t.Fatalf("expected exit code 2 without a command, got %d", code)
	}
}

func TestLogEnvironmentOverridesConfig(t *testing.T) {
	t.Setenv("MODELWIRE_LOG_LEVEL", "error")
	in := `{"error":{"code":"NotFound","message":"gone"}}`
	var stdout, stderr bytes.Buffer
	if code := run([]string{"decode", "-type", "odataerror"}, strings.NewReader(in), &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr=%s", code, stderr.String())
	}
	if strings.Contains(stderr.String(), "primary_message=gone") {
		t.Fatalf("info line should be filtered by the environment level: %s", stderr.String())
	}

	t.Setenv("MODELWIRE_LOG_LEVEL", "info")
	t.Setenv("MODELWIRE_LOG_BYPASS", "true")
	stdout.Reset()
	stderr.Reset()
	if code := run([]string{"decode", "-type", "odataerror"}, strings.NewReader(in), &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr=%s", code, stderr.String())
	}
	if !strings.Contains(stderr.String(), `"app":"modelctl"`) || !strings.Contains(stderr.String(), `"primary_message":"gone"`) {
		t.Fatalf("expected JSON log lines tagged with the app: %s", stderr.String())
	}
}
