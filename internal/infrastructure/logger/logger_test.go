package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/vocnote/internal/infrastructure/config"
)

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{Log: config.LogConfig{Level: "debug", Format: "json"}}
	logger, err := newLogger(cfg, &buf)
	if err != nil {
		t.Fatalf("newLogger returned error: %v", err)
	}
	if logger.GetLevel() != logrus.DebugLevel {
		t.Fatalf("expected debug level, got %s", logger.GetLevel())
	}

	logger.WithField("word_id", "abc").Debug("entry added")

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("expected json log line, got %q: %v", buf.String(), err)
	}
	if line["msg"] != "entry added" || line["word_id"] != "abc" {
		t.Fatalf("unexpected log fields: %v", line)
	}
}

func TestNewLoggerText(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{Log: config.LogConfig{Level: "info", Format: "text"}}
	logger, err := newLogger(cfg, &buf)
	if err != nil {
		t.Fatalf("newLogger returned error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestNewLoggerErrors(t *testing.T) {
	if _, err := newLogger(&config.Config{Log: config.LogConfig{Level: "loud"}}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for invalid level")
	}
	if _, err := newLogger(&config.Config{Log: config.LogConfig{Level: "info", Format: "xml"}}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for invalid format")
	}
}
