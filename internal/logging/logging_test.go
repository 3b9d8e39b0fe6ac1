package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARNING": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q): want %v, got %v", in, want, got)
		}
	}
}

func TestNew_JSONErrorCarriesStack(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "INFO", false)
	logger.Error("send failed", "attempt", 3)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "send failed" {
		t.Errorf("unexpected msg %v", rec["msg"])
	}
	if _, ok := rec["stacktrace"]; !ok {
		t.Error("expected stacktrace on error record")
	}
	if rec["service"] != "portfolio-backend" {
		t.Errorf("expected service attribute, got %v", rec["service"])
	}
}

func TestNew_DevelopmentIsText(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "DEBUG", true)
	logger.Debug("hello", "k", "v")

	out := buf.String()
	if !strings.Contains(out, "msg=hello") || !strings.Contains(out, "k=v") {
		t.Errorf("expected text output, got %q", out)
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "WARN", false)
	logger.Info("quiet")
	if buf.Len() != 0 {
		t.Errorf("expected INFO to be filtered at WARN, got %q", buf.String())
	}
}
