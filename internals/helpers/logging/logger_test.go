package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hrportal_backend/internals/helpers/logging"
)

func TestNewWritesJSON(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "app.log")

	logger, err := logging.New(logging.Options{Level: "info", Format: "json", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("swipe handled")
	logger.Debug("hidden")
	_ = logger.Sync()

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), `"msg":"swipe handled"`) {
		t.Fatalf("expected json message, got %q", content)
	}
	if strings.Contains(string(content), "hidden") {
		t.Fatalf("debug entry should be filtered at info level, got %q", content)
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	if _, err := logging.New(logging.Options{Level: "loud"}); err == nil {
		t.Fatal("expected error for invalid level")
	}
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for invalid format")
	}
}

func TestMustNewFallsBack(t *testing.T) {
	if logging.MustNew(logging.Options{Level: "loud"}) == nil {
		t.Fatal("expected fallback logger")
	}
}
