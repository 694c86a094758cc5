package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/abelbrown/peoplesnews/internal/seed"
)

func runSeed() {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	limit := fs.Int("n", 0, "Show at most N posts (0 = all)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pnctl seed [flags] <file>\n\nPreview the posts an RSS/Atom file would add to the feed.\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	path := fs.Arg(0)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	posts, err := seed.FromFile(ctx, path, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	shown := posts
	if *limit > 0 && len(shown) > *limit {
		shown = shown[:*limit]
	}
	for _, p := range shown {
		fmt.Printf("%-24s  %-9s  %-18s  %s\n",
			truncate(p.ID, 24), p.Category.OrDefault(), truncate(p.Author, 18), truncate(p.Text, 60))
	}
	fmt.Printf("\n%d posts from %s", len(posts), path)
	if len(shown) < len(posts) {
		fmt.Printf(" (%d shown)", len(shown))
	}
	fmt.Println()
}
