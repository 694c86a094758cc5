package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"time"
)

// eventStats summarizes an event log.
type eventStats struct {
	Total    int
	Kinds    map[string]int
	Sessions map[string]int
	Errors   int
	First    time.Time
	Last     time.Time
}

// collectStats tallies every decodable line in r.
func collectStats(r io.Reader) eventStats {
	st := eventStats{Kinds: map[string]int{}, Sessions: map[string]int{}}
	scanEvents(r, func(ev eventRecord, _ []byte) {
		st.Total++
		st.Kinds[ev.Kind]++
		st.Sessions[ev.SessionID]++
		if ev.Level == "error" || ev.Err != "" {
			st.Errors++
		}
		if st.First.IsZero() || ev.Time.Before(st.First) {
			st.First = ev.Time
		}
		if ev.Time.After(st.Last) {
			st.Last = ev.Time
		}
	})
	return st
}

// sortedCounts returns the keys of m ordered by descending count, then name.
func sortedCounts(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if m[keys[i]] != m[keys[j]] {
			return m[keys[i]] > m[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

func runStats() {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	day := fs.String("day", "", "Log day as YYYY-MM-DD (default today)")
	fs.Parse(os.Args[1:])

	f := openEventLog(eventLogPath(parseDay(*day)))
	defer f.Close()

	st := collectStats(f)
	fmt.Printf("Events:                %d\n", st.Total)
	fmt.Printf("With errors:           %d\n", st.Errors)
	fmt.Printf("Sessions:              %d\n", len(st.Sessions))
	if st.Total > 0 {
		fmt.Printf("Span:                  %s - %s\n", st.First.Format("15:04:05"), st.Last.Format("15:04:05"))
	}

	fmt.Printf("\nKinds (%d):\n", len(st.Kinds))
	for _, k := range sortedCounts(st.Kinds) {
		fmt.Printf("  %-22s %d\n", k, st.Kinds[k])
	}

	fmt.Printf("\nSessions:\n")
	for _, s := range sortedCounts(st.Sessions) {
		fmt.Printf("  %-12s %d\n", truncate(s, 12), st.Sessions[s])
	}
}
