// Package audit keeps a bounded in-memory record of kiosk session activity
// using the same event vocabulary the production site logs server-side.
// Nothing is persisted; the buffer is replayed to the logger on exit.
package audit

import (
	"sync"
	"time"

	"github.com/pagelight/pagelight/internal/logger"
)

const defaultBufferLimit = 1000

// Event names one kind of recorded activity.
type Event string

const (
	EventPageView          Event = "page_view"
	EventViewerOpen        Event = "viewer_open"
	EventViewerClose       Event = "viewer_close"
	EventZoomChange        Event = "zoom_change"
	EventSubscribeAttempt  Event = "subscribe_attempt"
	EventSubscribeOK       Event = "subscribe_ok"
	EventSubscribeRejected Event = "subscribe_rejected"
	EventClientError       Event = "client_error"
)

// Entry is one recorded activity with its context fields.
type Entry struct {
	At     time.Time
	Event  Event
	Fields map[string]any
}

// Buffer stores the most recent entries, dropping the oldest past the limit.
type Buffer struct {
	mu      sync.Mutex
	limit   int
	entries []Entry
	now     func() time.Time
}

// NewBuffer creates a buffer with the provided capacity (defaults to 1000).
func NewBuffer(limit int) *Buffer {
	if limit <= 0 {
		limit = defaultBufferLimit
	}
	return &Buffer{
		limit:   limit,
		entries: make([]Entry, 0, limit),
		now:     time.Now,
	}
}

// Record appends one entry, evicting the oldest when full. A nil buffer
// records nothing.
func (b *Buffer) Record(event Event, fields map[string]any) {
	if b == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	entry := Entry{At: b.now(), Event: event, Fields: fields}
	if len(b.entries) == b.limit {
		copy(b.entries, b.entries[1:])
		b.entries[len(b.entries)-1] = entry
		return
	}
	b.entries = append(b.entries, entry)
}

// Len reports how many entries are held.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Recent returns up to n entries, newest last.
func (b *Buffer) Recent(n int) []Entry {
	if b == nil || n <= 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	start := len(b.entries) - n
	if start < 0 {
		start = 0
	}
	out := make([]Entry, len(b.entries)-start)
	copy(out, b.entries[start:])
	return out
}

// Flush replays the buffered entries to the provided logger in order and
// empties the buffer. Client errors replay as warnings, everything else as
// informational entries.
func (b *Buffer) Flush(log *logger.Logger) {
	if b == nil || log == nil {
		return
	}

	b.mu.Lock()
	entries := make([]Entry, len(b.entries))
	copy(entries, b.entries)
	b.entries = b.entries[:0]
	b.mu.Unlock()

	for _, entry := range entries {
		fields := map[string]any{"event": string(entry.Event), "at": entry.At}
		for key, value := range entry.Fields {
			fields[key] = value
		}
		scoped := log.WithFields(fields)
		if entry.Event == EventClientError {
			scoped.Warn("session activity")
			continue
		}
		scoped.Info("session activity")
	}
}
