// Package coord runs the app's background timers.
//
// Timers never touch client state. Each tick is sent to the UI program as a
// message and applied inside the bubbletea event loop, so the Engine keeps a
// single writer.
package coord

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/peoplesnews/internal/live"
	"github.com/abelbrown/peoplesnews/internal/logging"
	"github.com/abelbrown/peoplesnews/internal/seed"
	"github.com/abelbrown/peoplesnews/internal/ui"
)

// DefaultAmbientInterval is the time between ambient counter ticks.
const DefaultAmbientInterval = 6 * time.Second

// seedLoadTimeout bounds a single seed feed import.
const seedLoadTimeout = 10 * time.Second

// Sender delivers messages to the UI. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Config configures a Coordinator.
type Config struct {
	AmbientInterval time.Duration
	MaxDelta        int
	Rand            live.Rand // nil uses a time-seeded PCG

	// SeedFeed is reloaded every SeedInterval when both are set.
	SeedFeed     string
	SeedInterval time.Duration
	Now          func() time.Time
}

// Coordinator owns the background goroutines.
// Uses context cancellation as the ONLY stop mechanism.
type Coordinator struct {
	cfg Config
	wg  sync.WaitGroup

	// rand is only touched by the ambient goroutine
	rand live.Rand
}

// New creates a Coordinator. Zero fields fall back to defaults.
func New(cfg Config) *Coordinator {
	if cfg.AmbientInterval <= 0 {
		cfg.AmbientInterval = DefaultAmbientInterval
	}
	if cfg.MaxDelta <= 0 {
		cfg.MaxDelta = live.DefaultConfig().AmbientMaxDelta
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	r := cfg.Rand
	if r == nil {
		ns := uint64(time.Now().UnixNano())
		r = rand.New(rand.NewPCG(ns, ns>>1|1))
	}
	return &Coordinator{cfg: cfg, rand: r}
}

// Start launches the ambient ticker and, when configured, the seed feed
// reloader. Cancel ctx to stop them, then call Wait.
func (c *Coordinator) Start(ctx context.Context, program Sender) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.runAmbient(ctx, program)
	}()

	if c.cfg.SeedFeed != "" && c.cfg.SeedInterval > 0 {
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			c.runSeedReload(ctx, program)
		}()
	}
}

// Wait blocks until every background goroutine exits.
// Call after canceling the context passed to Start.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

func (c *Coordinator) runAmbient(ctx context.Context, program Sender) {
	ticker := time.NewTicker(c.cfg.AmbientInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			delta := live.AmbientDelta(c.rand, c.cfg.MaxDelta)
			if program != nil {
				program.Send(ui.AmbientTick{Delta: delta})
			}
		}
	}
}

func (c *Coordinator) runSeedReload(ctx context.Context, program Sender) {
	ticker := time.NewTicker(c.cfg.SeedInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.loadSeed(ctx, program)
		}
	}
}

// loadSeed imports the seed feed once and hands the posts to the UI.
func (c *Coordinator) loadSeed(ctx context.Context, program Sender) {
	loadCtx, cancel := context.WithTimeout(ctx, seedLoadTimeout)
	defer cancel()

	posts, err := seed.FromFile(loadCtx, c.cfg.SeedFeed, c.cfg.Now())
	if err != nil {
		logging.Warn("seed reload failed", "path", c.cfg.SeedFeed, "error", err)
	}
	if ctx.Err() != nil {
		return
	}
	if program != nil {
		program.Send(ui.SeedLoaded{Source: c.cfg.SeedFeed, Posts: posts, Err: err})
	}
}
