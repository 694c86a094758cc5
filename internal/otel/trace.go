package otel

import (
	"os"
	"sync/atomic"
)

// traceEnabled is read on the UI goroutine and flipped by tests.
var traceEnabled atomic.Bool

func init() {
	traceEnabled.Store(os.Getenv("PEOPLESNEWS_TRACE") != "")
}

// TraceEnabled reports whether PEOPLESNEWS_TRACE is set. When it is, the
// UI records every message it receives.
func TraceEnabled() bool {
	return traceEnabled.Load()
}

func setTraceEnabled(v bool) {
	traceEnabled.Store(v)
}
