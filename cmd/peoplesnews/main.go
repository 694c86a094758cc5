// Command peoplesnews runs the People's News demo client in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/peoplesnews/internal/app"
	"github.com/abelbrown/peoplesnews/internal/config"
	"github.com/abelbrown/peoplesnews/internal/coord"
	"github.com/abelbrown/peoplesnews/internal/logging"
	"github.com/abelbrown/peoplesnews/internal/otel"
	"github.com/abelbrown/peoplesnews/internal/seed"
	"github.com/abelbrown/peoplesnews/internal/store"
	"github.com/abelbrown/peoplesnews/internal/ui"
)

func main() {
	configPath := flag.String("config", config.ConfigPath(), "Path to config.json")
	envFile := flag.String("env", ".env", "Optional .env file with PEOPLESNEWS_* overrides")
	seedFeed := flag.String("seed", "", "RSS or Atom file whose items join the demo feed")
	reload := flag.Duration("reload", 0, "Re-import the seed feed at this interval (0 = only at startup)")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	if err := run(*configPath, *envFile, *seedFeed, *reload, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "peoplesnews: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, envFile, seedFeed string, reload time.Duration, verbose bool) error {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}
	if err := cfg.LoadEnvFile(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", envFile, err)
	}
	if seedFeed != "" {
		cfg.SeedFeed = seedFeed
	}

	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	if err := logging.Init(config.Dir(), level); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
	defer logging.Close()

	events := otel.NewNullLogger()
	if cfg.EventLog {
		if fileEvents, err := otel.OpenFile(config.Dir(), time.Now()); err != nil {
			logging.Warn("event log disabled", "error", err)
		} else {
			events = fileEvents
		}
	}
	ring := otel.NewRingBuffer(otel.DefaultRingSize)
	events.SetRingBuffer(ring)
	defer func() {
		events.Info(otel.KindShutdown, "main", "")
		if dropped := events.Close(); dropped > 0 {
			logging.Warn("events dropped", "count", dropped)
		}
	}()
	events.Info(otel.KindStartup, "main", "")

	st, err := store.New()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	now := time.Now()
	engine, err := app.New(st, app.Options{
		Events:          events,
		User:            cfg.DemoUser(now),
		Seed:            seed.Posts(now),
		Live:            cfg.LiveRules(),
		Nav:             cfg.NavRules(),
		Ticker:          cfg.TickerRules(),
		FeedMode:        cfg.StartFeedMode(),
		TopN:            cfg.ProfileTopN,
		DarkMode:        cfg.UI.DarkMode,
		ScrollPerSecond: cfg.Nav.ScrollPerSecond,
		ScrollBurst:     cfg.Nav.ScrollBurst,
	})
	if err != nil {
		return fmt.Errorf("start engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.SeedFeed != "" {
		posts, err := seed.FromFile(ctx, cfg.SeedFeed, now)
		if err != nil {
			logging.Warn("seed feed skipped", "path", cfg.SeedFeed, "error", err)
		} else if n, err := engine.Import(posts); err != nil {
			logging.Warn("seed import failed", "path", cfg.SeedFeed, "error", err)
		} else {
			logging.Info("seed feed imported", "path", cfg.SeedFeed, "posts", n)
		}
	}

	program := tea.NewProgram(
		ui.NewApp(engine, ui.AppConfig{Events: events, Ring: ring}),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	g, gctx := errgroup.WithContext(ctx)

	coordinator := coord.New(coord.Config{
		AmbientInterval: cfg.AmbientInterval(),
		MaxDelta:        cfg.Live.AmbientMaxDelta,
		SeedFeed:        cfg.SeedFeed,
		SeedInterval:    reload,
	})
	coordinator.Start(gctx, program)

	// Run UI (blocks until quit); leaving it stops the coordinator.
	g.Go(func() error {
		defer stop()
		if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("run ui: %w", err)
		}
		return nil
	})

	err = g.Wait()
	coordinator.Wait()
	return err
}
