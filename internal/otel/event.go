// Package otel records what the app did as typed events.
//
// Events are serialized as JSONL by a background writer. An optional
// RingBuffer keeps the most recent ones in memory for the debug overlay.
package otel

import (
	"encoding/json"
	"time"
)

// Level defines event severity for filtering.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// EventKind identifies the category of an event.
// Dot-delimited: "<subsystem>.<action>".
type EventKind string

const (
	// Posts
	KindPublish       EventKind = "post.publish"
	KindPublishDenied EventKind = "post.rejected"
	KindView          EventKind = "post.view"
	KindSeedImport    EventKind = "post.seed"

	// Live session
	KindLiveStart  EventKind = "live.start"
	KindLiveDenied EventKind = "live.denied"
	KindLiveEnd    EventKind = "live.end"
	KindAmbient    EventKind = "ambient.tick"

	// Navigation
	KindTab    EventKind = "nav.tab"
	KindSwipe  EventKind = "nav.swipe"
	KindChrome EventKind = "nav.chrome"

	// Feed and ticker
	KindFeedMode   EventKind = "feed.mode"
	KindTickerMode EventKind = "ticker.mode"

	// Account
	KindProfile EventKind = "account.update"

	// Media
	KindMediaCancel EventKind = "media.cancel"
	KindMediaError  EventKind = "media.error"

	// System
	KindStartup  EventKind = "sys.startup"
	KindShutdown EventKind = "sys.shutdown"
	KindReset    EventKind = "sys.reset"
	KindError    EventKind = "sys.error"

	// Set only when PEOPLESNEWS_TRACE is on
	KindMsgReceived EventKind = "trace.msg_received"
)

// Event is the universal record. Every field except Kind and Time is
// optional.
type Event struct {
	Time      time.Time      `json:"t"`
	Level     Level          `json:"level,omitempty"`
	Kind      EventKind      `json:"kind"`
	Comp      string         `json:"comp,omitempty"` // "app", "ui", "coord", "main"
	SessionID string         `json:"session_id,omitempty"`
	PostID    string         `json:"post_id,omitempty"`
	Tab       string         `json:"tab,omitempty"`
	Mode      string         `json:"mode,omitempty"`
	Dur       time.Duration  `json:"-"`
	DurMs     float64        `json:"dur_ms,omitempty"`
	Count     int            `json:"count,omitempty"`
	Delta     int            `json:"delta,omitempty"`
	Err       string         `json:"err,omitempty"`
	Msg       string         `json:"msg,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// MarshalJSON converts Dur to DurMs.
func (e Event) MarshalJSON() ([]byte, error) {
	type Alias Event
	a := struct {
		Alias
	}{Alias: Alias(e)}
	if e.Dur > 0 {
		a.DurMs = float64(e.Dur) / float64(time.Millisecond)
	}
	return json.Marshal(a)
}
