// Package log provides the opt-in debug log. Messages written before a file
// is configured are buffered in memory and flushed once SetFile succeeds, so
// early startup lines are not lost.
package log

import (
	"log"
	"os"
	"sync"
)

type sink struct {
	mu      sync.Mutex
	file    *os.File
	path    string
	pending []byte
	discard bool
}

var (
	debugSink = &sink{}
	stdLogger = log.New(debugSink, "", log.LstdFlags|log.Lmicroseconds)
)

// Write implements io.Writer for the standard logger. Output goes to the
// configured file, or into the pending buffer until one is set.
func (s *sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.discard {
		return len(p), nil
	}
	if s.file != nil {
		n, err := s.file.Write(p)
		// Sync so a crash right after the write still leaves the line on disk.
		_ = s.file.Sync()
		return n, err
	}
	s.pending = append(s.pending, p...)
	return len(p), nil
}

// SetFile directs debug output to path, creating the file if needed and
// flushing anything buffered so far. An empty path disables logging and
// drops the buffer.
func SetFile(path string) error {
	debugSink.mu.Lock()
	defer debugSink.mu.Unlock()

	if debugSink.file != nil {
		_ = debugSink.file.Close()
		debugSink.file = nil
		debugSink.path = ""
	}

	if path == "" {
		debugSink.discard = true
		debugSink.pending = nil
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
	if err != nil {
		debugSink.discard = true
		debugSink.pending = nil
		return err
	}

	debugSink.file = f
	debugSink.path = path
	debugSink.discard = false
	if len(debugSink.pending) > 0 {
		_, _ = f.Write(debugSink.pending)
		_ = f.Sync()
		debugSink.pending = nil
	}
	return nil
}

// Path returns the active debug log path, or "" when logging is disabled.
func Path() string {
	debugSink.mu.Lock()
	defer debugSink.mu.Unlock()
	return debugSink.path
}

// Printf writes a formatted debug message.
func Printf(format string, args ...any) {
	stdLogger.Printf(format, args...)
}

// Println writes a debug message.
func Println(v ...any) {
	stdLogger.Println(v...)
}

// Close closes the debug log file if open.
func Close() error {
	debugSink.mu.Lock()
	defer debugSink.mu.Unlock()

	if debugSink.file == nil {
		return nil
	}
	err := debugSink.file.Close()
	debugSink.file = nil
	debugSink.path = ""
	return err
}
