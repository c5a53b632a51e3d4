package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// LogEntry is one captured log record, already flattened to a message line.
type LogEntry struct {
	Time    time.Time
	Level   slog.Level
	Message string
}

func (e LogEntry) String() string {
	var level string
	switch {
	case e.Level >= slog.LevelError:
		level = "ERR"
	case e.Level >= slog.LevelWarn:
		level = "WRN"
	case e.Level >= slog.LevelInfo:
		level = "INF"
	default:
		level = "DBG"
	}
	return fmt.Sprintf("%s [%s] %s", e.Time.Format("15:04:05"), level, e.Message)
}

// LogBuffer is a fixed size ring of log entries, safe for concurrent use.
type LogBuffer struct {
	mu      sync.RWMutex
	entries []LogEntry
	next    int
	count   int
}

func NewLogBuffer(size int) *LogBuffer {
	if size < 1 {
		size = 1
	}
	return &LogBuffer{entries: make([]LogEntry, size)}
}

func (b *LogBuffer) Add(entry LogEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries[b.next] = entry
	b.next = (b.next + 1) % len(b.entries)
	if b.count < len(b.entries) {
		b.count++
	}
}

// Recent returns up to n entries, newest first. n <= 0 returns everything.
func (b *LogBuffer) Recent(n int) []LogEntry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if n <= 0 || n > b.count {
		n = b.count
	}
	out := make([]LogEntry, n)
	for i := range out {
		out[i] = b.entries[(b.next-1-i+len(b.entries))%len(b.entries)]
	}
	return out
}

func (b *LogBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.count
}

// LogHandler is an slog.Handler feeding a LogBuffer, so that log output ends
// up in the side panel instead of garbling the screen.
type LogHandler struct {
	buffer *LogBuffer
	level  slog.Leveler
	attrs  string
	group  string
}

func NewLogHandler(buffer *LogBuffer, level slog.Leveler) *LogHandler {
	return &LogHandler{buffer: buffer, level: level}
}

func (h *LogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *LogHandler) Handle(_ context.Context, record slog.Record) error {
	var sb strings.Builder
	sb.WriteString(record.Message)
	sb.WriteString(h.attrs)
	record.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&sb, a)
		return true
	})

	h.buffer.Add(LogEntry{Time: record.Time, Level: record.Level, Message: sb.String()})
	return nil
}

func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var sb strings.Builder
	sb.WriteString(h.attrs)
	for _, a := range attrs {
		h.appendAttr(&sb, a)
	}
	clone := *h
	clone.attrs = sb.String()
	return &clone
}

func (h *LogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.group = h.group + name + "."
	return &clone
}

func (h *LogHandler) appendAttr(sb *strings.Builder, a slog.Attr) {
	fmt.Fprintf(sb, " %s%s=%v", h.group, a.Key, a.Value)
}
