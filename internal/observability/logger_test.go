package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger("recordstore", &buf, slog.LevelDebug)

	log.Info("items loaded", "count", 3)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if line["component"] != "recordstore" {
		t.Errorf("component = %v", line["component"])
	}
	if line["msg"] != "items loaded" {
		t.Errorf("msg = %v", line["msg"])
	}
	if line["count"] != float64(3) {
		t.Errorf("count = %v", line["count"])
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger("api", &buf, slog.LevelWarn)

	log.Debug("hidden")
	log.Info("hidden too")
	log.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("below-level lines leaked: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger("root", &buf, slog.LevelInfo)
	sub := log.WithComponent("journal")

	sub.Info("hello")

	if !strings.Contains(buf.String(), `"component":"journal"`) {
		t.Errorf("component not rewritten: %q", buf.String())
	}
	if log.Component() != "root" {
		t.Errorf("parent component changed: %q", log.Component())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
