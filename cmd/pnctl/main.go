// Command pnctl is the debugging and maintenance CLI for People's News.
//
// Usage:
//
//	pnctl                   Show help
//	pnctl events            JSONL event log viewer
//	pnctl stats             Event counts per kind and session
//	pnctl seed <file>       Preview the posts an RSS/Atom file would add
//	pnctl config            Print the effective configuration
package main

import (
	"fmt"
	"os"
)

const usage = `pnctl - People's News debug & maintenance CLI

Usage:
  pnctl <command> [flags]

Commands:
  events      JSONL event log viewer
  stats       Event counts per kind and session
  seed        Preview the posts an RSS/Atom file would add to the feed
  config      Print the effective configuration (-init writes defaults)

Environment:
  PEOPLESNEWS_*      Configuration overrides, see 'pnctl config'

Run 'pnctl <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	cmd := os.Args[1]
	// Strip the program name + subcommand so flag sets see only their flags
	os.Args = os.Args[1:]

	switch cmd {
	case "events":
		runEvents()
	case "stats":
		runStats()
	case "seed":
		runSeed()
	case "config":
		runConfig()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "pnctl: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}
