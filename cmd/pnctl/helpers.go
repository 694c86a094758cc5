package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/abelbrown/peoplesnews/internal/config"
)

// eventLogPath returns the event log for day under the data directory.
func eventLogPath(day time.Time) string {
	return filepath.Join(config.Dir(), "events", fmt.Sprintf("events-%s.jsonl", day.Format("2006-01-02")))
}

// parseDay reads a YYYY-MM-DD flag value; "" means today.
func parseDay(s string) time.Time {
	if s == "" {
		return time.Now()
	}
	day, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: bad -day %q (want YYYY-MM-DD)\n", s)
		os.Exit(1)
	}
	return day
}

// openEventLog opens path or exits with a hint.
func openEventLog(path string) *os.File {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		fmt.Fprintf(os.Stderr, "  Event log not found at %s\n", path)
		fmt.Fprintf(os.Stderr, "  Run peoplesnews first to generate events.\n")
		os.Exit(1)
	}
	return f
}

// truncate shortens a string to max runes, appending "..." if truncated.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
