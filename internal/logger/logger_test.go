package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestConfigureJSON(t *testing.T) {
	var buf bytes.Buffer
	Configure("debug", "JSON", &buf)

	Component("battle").WithField("round", 3).Debug("turn resolved")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["component"] != "battle" {
		t.Errorf("component = %v, want battle", entry["component"])
	}
	if entry["round"] != float64(3) {
		t.Errorf("round = %v, want 3", entry["round"])
	}
	if entry["msg"] != "turn resolved" {
		t.Errorf("msg = %v, want %q", entry["msg"], "turn resolved")
	}
}

func TestConfigureLevelFallback(t *testing.T) {
	var buf bytes.Buffer
	Configure("not-a-level", "text", &buf)

	if Log.GetLevel() != logrus.InfoLevel {
		t.Errorf("level = %v, want info", Log.GetLevel())
	}

	Log.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug line should be filtered at info level, got %q", buf.String())
	}
}
