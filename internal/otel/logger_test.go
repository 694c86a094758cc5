package otel

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestEmitWritesJSONL(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	l.Emit(Event{Kind: KindPublish, Level: LevelInfo, Comp: "app", PostID: "p_1"})
	l.Close()

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	got := lines[0]
	if got["kind"] != "post.publish" || got["level"] != "info" || got["comp"] != "app" || got["post_id"] != "p_1" {
		t.Errorf("decoded = %v", got)
	}
}

func TestEmitSetsTimeAndSession(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	before := time.Now()
	l.Emit(Event{Kind: KindStartup})
	l.Emit(Event{Kind: KindShutdown})
	l.Close()

	var evs []Event
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var ev Event
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatal(err)
		}
		evs = append(evs, ev)
	}
	if evs[0].Time.Before(before) {
		t.Errorf("time %v before emit", evs[0].Time)
	}
	if evs[0].SessionID == "" || evs[0].SessionID != evs[1].SessionID || evs[0].SessionID != l.SessionID() {
		t.Errorf("session ids = %q, %q", evs[0].SessionID, evs[1].SessionID)
	}
}

func TestDurToMs(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)
	l.Emit(Event{Kind: KindMsgReceived, Dur: 1500 * time.Millisecond})
	l.Close()

	if got := decodeLines(t, &buf)[0]["dur_ms"]; got != float64(1500) {
		t.Errorf("dur_ms = %v, want 1500", got)
	}
}

func TestOmitempty(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)
	l.Emit(Event{Kind: KindStartup})
	l.Close()

	line := buf.String()
	for _, field := range []string{"dur_ms", "count", "delta", "post_id", "tab", "mode", "err", "msg", "extra"} {
		if strings.Contains(line, `"`+field+`"`) {
			t.Errorf("field %q should be omitted: %s", field, line)
		}
	}
}

func TestConcurrentEmit(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Emit(Event{Kind: KindView})
		}()
	}
	wg.Wait()
	l.Close()

	if n := len(decodeLines(t, &buf)); n != 100 {
		t.Errorf("got %d lines, want 100", n)
	}
}

func TestEmitAfterCloseIsDropped(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)
	l.Emit(Event{Kind: KindStartup})
	if dropped := l.Close(); dropped != 0 {
		t.Errorf("dropped = %d before any late emit", dropped)
	}

	l.Emit(Event{Kind: KindShutdown})
	if l.Dropped() != 1 {
		t.Errorf("Dropped = %d, want 1", l.Dropped())
	}
	l.Close() // idempotent
	if n := len(decodeLines(t, &buf)); n != 1 {
		t.Errorf("got %d lines, want 1", n)
	}
}

func TestDropWhenQueueFull(t *testing.T) {
	bw := &blockingWriter{started: make(chan struct{}), block: make(chan struct{})}
	l := NewLogger(bw)

	l.Emit(Event{Kind: KindView})
	<-bw.started

	for i := 0; i < writerChanSize+10; i++ {
		l.Emit(Event{Kind: KindView})
	}
	if l.Dropped() == 0 {
		t.Error("expected drops with a full queue")
	}

	close(bw.block)
	l.Close()
}

type blockingWriter struct {
	started chan struct{}
	block   chan struct{}
	once    sync.Once
}

func (w *blockingWriter) Write(p []byte) (int, error) {
	w.once.Do(func() {
		close(w.started)
		<-w.block
	})
	return len(p), nil
}

func TestHelpers(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)
	l.Info(KindStartup, "main", "starting")
	l.Warn(KindLiveDenied, "app", "unverified")
	l.Error(KindError, "coord", errors.New("boom"))
	l.Error(KindError, "coord", nil)
	l.Close()

	lines := decodeLines(t, &buf)
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}
	tests := []struct{ level, kind string }{
		{"info", "sys.startup"},
		{"warn", "live.denied"},
		{"error", "sys.error"},
		{"error", "sys.error"},
	}
	for i, tt := range tests {
		if lines[i]["level"] != tt.level || lines[i]["kind"] != tt.kind {
			t.Errorf("line %d = %v, want %s/%s", i, lines[i], tt.level, tt.kind)
		}
	}
	if lines[2]["err"] != "boom" {
		t.Errorf("err = %v", lines[2]["err"])
	}
}

func TestLoggerFeedsRing(t *testing.T) {
	ring := NewRingBuffer(4)
	l := NewNullLogger()
	l.SetRingBuffer(ring)

	l.Emit(Event{Kind: KindLiveStart, Dur: time.Second})
	l.Emit(Event{Kind: KindLiveEnd})
	l.Close()

	last := ring.Last(2)
	if len(last) != 2 || last[0].Kind != KindLiveStart || last[1].Kind != KindLiveEnd {
		t.Fatalf("ring = %+v", last)
	}
	if last[0].Dur != time.Second {
		t.Error("ring copy should keep Dur")
	}
}

func TestOpenFile(t *testing.T) {
	dir := t.TempDir()
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	l, err := OpenFile(dir, day)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	l.Info(KindStartup, "main", "hi")
	l.Close()

	data, err := os.ReadFile(filepath.Join(dir, "events", "events-2025-06-01.jsonl"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), `"sys.startup"`) {
		t.Errorf("file = %s", data)
	}
}

func TestFlush(t *testing.T) {
	ring := NewRingBuffer(8)
	l := NewNullLogger()
	l.SetRingBuffer(ring)
	defer l.Close()

	for i := 0; i < 5; i++ {
		l.Emit(Event{Kind: KindView, Count: i})
	}
	l.Flush()
	if ring.Len() != 5 {
		t.Errorf("ring has %d events after Flush, want 5", ring.Len())
	}

	l.Close()
	l.Flush() // no-op after Close
}
