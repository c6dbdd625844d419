package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewParsesLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestNewDefaultsToInfo(t *testing.T) {
	logger, err := New(&bytes.Buffer{}, "")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if logger.GetLevel() != logrus.InfoLevel {
		t.Fatalf("expected info level, got %s", logger.GetLevel())
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "chatty"); err == nil {
		t.Fatalf("expected invalid level error")
	}
}

func TestFileWritesEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "fitlife.log")
	logger, closer, err := File(path, "debug")
	if err != nil {
		t.Fatalf("file logger: %v", err)
	}
	logger.WithField("endpoint", "/api/get-progress").Error("API Request Error")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "endpoint=/api/get-progress") {
		t.Fatalf("unexpected log content: %q", data)
	}
}
