// ABOUTME: Tests for logger construction.
// ABOUTME: Checks that verbosity gates debug output.
package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewVerbose(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true)
	logger.Debug("loaded log", "meals", 3)

	if !strings.Contains(buf.String(), "loaded log") {
		t.Errorf("expected debug output, got %q", buf.String())
	}
}

func TestNewQuiet(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)
	logger.Debug("loaded log")
	logger.Info("still quiet")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}

	logger.Warn("read-only store")
	if !strings.Contains(buf.String(), "read-only store") {
		t.Errorf("expected warning output, got %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("ignored")
}
