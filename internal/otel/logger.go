package otel

// The drain goroutine is the only reader of l.ch and the only writer to l.w.
// l.mu guards the ring pointer and the closed flag; Emit holds the read
// side while sending so Close cannot close the channel underneath it.

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// writerChanSize is the capacity of the async write channel.
const writerChanSize = 2048

type logEntry struct {
	data    []byte
	ev      Event
	flushed chan struct{} // set only on Flush markers
}

// Logger serializes events as JSONL on a background goroutine.
// Safe for concurrent use. Emit never blocks: when the queue is full the
// event is counted as dropped.
type Logger struct {
	mu        sync.RWMutex
	ring      *RingBuffer
	closed    bool
	sessionID string
	ch        chan logEntry
	w         io.Writer
	closer    io.Closer
	dropped   atomic.Uint64
	done      chan struct{}
	closeOnce sync.Once
}

// NewLogger writes JSONL to w.
func NewLogger(w io.Writer) *Logger {
	l := &Logger{
		sessionID: uuid.NewString(),
		ch:        make(chan logEntry, writerChanSize),
		w:         w,
		done:      make(chan struct{}),
	}
	go l.drain()
	return l
}

// NewNullLogger discards output but still feeds an attached ring buffer.
func NewNullLogger() *Logger {
	return NewLogger(io.Discard)
}

// OpenFile appends to dir/events/events-YYYY-MM-DD.jsonl. Close also
// closes the file.
func OpenFile(dir string, day time.Time) (*Logger, error) {
	eventsDir := filepath.Join(dir, "events")
	if err := os.MkdirAll(eventsDir, 0755); err != nil {
		return nil, fmt.Errorf("create events dir: %w", err)
	}
	path := filepath.Join(eventsDir, fmt.Sprintf("events-%s.jsonl", day.Format("2006-01-02")))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}
	l := NewLogger(f)
	l.closer = f
	return l, nil
}

func (l *Logger) drain() {
	defer close(l.done)
	for entry := range l.ch {
		if entry.flushed != nil {
			close(entry.flushed)
			continue
		}
		if _, err := l.w.Write(entry.data); err != nil {
			l.dropped.Add(1)
		}

		l.mu.RLock()
		rb := l.ring
		l.mu.RUnlock()

		if rb != nil {
			rb.Push(entry.ev)
		}
	}
}

// SessionID identifies this run; every event carries it.
func (l *Logger) SessionID() string { return l.sessionID }

// Emit queues e. Time defaults to now and SessionID is always set.
func (l *Logger) Emit(e Event) {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	e.SessionID = l.sessionID

	data, err := json.Marshal(e)
	if err != nil {
		l.dropped.Add(1)
		return
	}
	data = append(data, '\n')

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		l.dropped.Add(1)
		return
	}
	select {
	case l.ch <- logEntry{data: data, ev: e}:
	default:
		l.dropped.Add(1)
	}
}

// Flush blocks until every event queued before the call has been written
// and pushed to the ring buffer.
func (l *Logger) Flush() {
	done := make(chan struct{})
	l.mu.RLock()
	if l.closed {
		l.mu.RUnlock()
		return
	}
	l.ch <- logEntry{flushed: done}
	l.mu.RUnlock()
	<-done
}

// Info emits an info-level event.
func (l *Logger) Info(kind EventKind, comp, msg string) {
	l.Emit(Event{Level: LevelInfo, Kind: kind, Comp: comp, Msg: msg})
}

// Warn emits a warn-level event.
func (l *Logger) Warn(kind EventKind, comp, msg string) {
	l.Emit(Event{Level: LevelWarn, Kind: kind, Comp: comp, Msg: msg})
}

// Error emits an error-level event. A nil err is logged as "".
func (l *Logger) Error(kind EventKind, comp string, err error) {
	var s string
	if err != nil {
		s = err.Error()
	}
	l.Emit(Event{Level: LevelError, Kind: kind, Comp: comp, Err: s})
}

// SetRingBuffer attaches a ring buffer for live inspection.
func (l *Logger) SetRingBuffer(buf *RingBuffer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ring = buf
}

// Dropped returns the number of events dropped since creation.
func (l *Logger) Dropped() uint64 {
	return l.dropped.Load()
}

// Close flushes pending events and stops the writer. Later Emits are
// dropped. Returns the total drop count.
func (l *Logger) Close() uint64 {
	l.closeOnce.Do(func() {
		l.mu.Lock()
		l.closed = true
		close(l.ch)
		l.mu.Unlock()

		<-l.done
		if l.closer != nil {
			l.closer.Close()
		}
	})
	return l.dropped.Load()
}
