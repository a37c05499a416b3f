package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        Info,
		"debug":   Debug,
		" WARN ":  Warn,
		"warning": Warn,
		"error":   Error,
		"bogus":   Info,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestNew_JSONIncludesAppAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "regimen-tracker", Output: &buf})

	l.With(map[string]any{"patient_id": "p-1"}).Info("checked", map[string]any{"count": 2, "": "skip"})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid json line %q: %v", buf.String(), err)
	}
	if entry["app"] != "regimen-tracker" {
		t.Fatalf("expected app field, got %#v", entry)
	}
	if entry["patient_id"] != "p-1" {
		t.Fatalf("expected patient_id field, got %#v", entry)
	}
	if entry["count"] != float64(2) {
		t.Fatalf("expected count=2, got %#v", entry["count"])
	}
	if entry["msg"] != "checked" {
		t.Fatalf("expected msg=checked, got %#v", entry["msg"])
	}
}

func TestNew_LevelFiltersBelowThreshold(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Warn, Format: FormatText, Output: &buf})

	l.Info("hidden", nil)
	l.Warn("shown", nil)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("warn line missing: %q", out)
	}
}
