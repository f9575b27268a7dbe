package tui

import (
	"strings"
	"sync"
)

// LogBuffer is an io.Writer the engine's narration logger can share with the
// TUI's log pane. Writes happen from install/uninstall commands while the
// view reads, hence the lock.
type LogBuffer struct {
	mu  sync.Mutex
	buf strings.Builder
}

// NewLogBuffer creates an empty buffer.
func NewLogBuffer() *LogBuffer {
	return &LogBuffer{}
}

// Write implements io.Writer.
func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns everything written so far.
func (b *LogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
