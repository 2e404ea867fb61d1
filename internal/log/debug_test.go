package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func resetSink(t *testing.T) {
	t.Helper()

	debugSink.mu.Lock()
	prevFile := debugSink.file
	prevPath := debugSink.path
	prevPending := append([]byte(nil), debugSink.pending...)
	prevDiscard := debugSink.discard
	debugSink.file = nil
	debugSink.path = ""
	debugSink.pending = nil
	debugSink.discard = false
	debugSink.mu.Unlock()

	t.Cleanup(func() {
		debugSink.mu.Lock()
		if debugSink.file != nil {
			_ = debugSink.file.Close()
		}
		debugSink.file = prevFile
		debugSink.path = prevPath
		debugSink.pending = prevPending
		debugSink.discard = prevDiscard
		debugSink.mu.Unlock()
	})
}

func TestPendingLinesFlushOnSetFile(t *testing.T) {
	resetSink(t)

	Printf("before file: %d", 42)

	logPath := filepath.Join(t.TempDir(), "debug.log")
	if err := SetFile(logPath); err != nil {
		t.Fatalf("SetFile: %v", err)
	}
	t.Cleanup(func() { _ = Close() })

	data, err := os.ReadFile(logPath) //nolint:gosec
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "before file: 42") {
		t.Fatalf("expected buffered line in %q, got %q", logPath, data)
	}
	if Path() != logPath {
		t.Fatalf("expected Path %q, got %q", logPath, Path())
	}
}

func TestSetFileFailureDiscardsLogs(t *testing.T) {
	resetSink(t)

	unwritableDir := t.TempDir()
	if err := os.Chmod(unwritableDir, 0o500); err != nil { //nolint:gosec
		t.Fatalf("set directory permissions: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chmod(unwritableDir, 0o700) //nolint:gosec
	})

	logPath := filepath.Join(unwritableDir, "debug.log")
	if err := SetFile(logPath); err == nil {
		t.Fatalf("expected SetFile to fail for %q", logPath)
	}

	debugSink.mu.Lock()
	discard := debugSink.discard
	pendingLen := len(debugSink.pending)
	debugSink.mu.Unlock()

	if !discard {
		t.Fatalf("expected discard to be enabled after SetFile failure")
	}
	if pendingLen != 0 {
		t.Fatalf("expected pending buffer to be cleared after SetFile failure")
	}

	Printf("should be discarded")

	debugSink.mu.Lock()
	pendingLen = len(debugSink.pending)
	debugSink.mu.Unlock()

	if pendingLen != 0 {
		t.Fatalf("expected pending buffer to remain empty after logging")
	}
	if Path() != "" {
		t.Fatalf("expected empty Path after failure, got %q", Path())
	}
}
