package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestSetup_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := Setup(&buf)

	l.Info("hello", slog.String("user_id", "u1"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["msg"] != "hello" {
		t.Errorf("msg = %v, want hello", entry["msg"])
	}
	if entry["user_id"] != "u1" {
		t.Errorf("user_id = %v, want u1", entry["user_id"])
	}
}

func TestSetup_DebugIsFiltered(t *testing.T) {
	var buf bytes.Buffer
	l := Setup(&buf)

	l.Debug("noise")

	if buf.Len() != 0 {
		t.Errorf("debug output should be filtered, got %q", buf.String())
	}
}
