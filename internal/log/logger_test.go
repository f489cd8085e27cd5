package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestWithComponentSingleAttribute(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:   slog.LevelInfo,
		Handler: slog.NewTextHandler(&buf, nil),
	}).WithComponent("http")

	logger.InfoContext(context.Background(), "Request handled", "status", 200)

	line := buf.String()
	if got := strings.Count(line, "component=http"); got != 1 {
		t.Errorf("component attribute appears %d times, want 1:\n%s", got, line)
	}
	if !strings.Contains(line, "status=200") {
		t.Errorf("caller attributes missing:\n%s", line)
	}
}

func TestComponentName(t *testing.T) {
	logger := New(DefaultConfig()).WithComponent("worker")
	if logger.Component() != "worker" {
		t.Errorf("Component() = %q, want worker", logger.Component())
	}
}
