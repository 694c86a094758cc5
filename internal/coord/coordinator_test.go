package coord

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/peoplesnews/internal/ui"
)

// mockSender records every message it receives.
type mockSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (m *mockSender) Send(msg tea.Msg) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgs = append(m.msgs, msg)
}

func (m *mockSender) snapshot() []tea.Msg {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]tea.Msg, len(m.msgs))
	copy(out, m.msgs)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within 2s")
}

func TestAmbientTicksAreSent(t *testing.T) {
	sender := &mockSender{}
	c := New(Config{
		AmbientInterval: 10 * time.Millisecond,
		MaxDelta:        3,
		Rand:            rand.New(rand.NewPCG(7, 9)),
	})

	ctx, cancel := context.WithCancel(context.Background())
	c.Start(ctx, sender)
	waitFor(t, func() bool { return len(sender.snapshot()) >= 3 })
	cancel()
	c.Wait()

	for _, msg := range sender.snapshot() {
		tick, ok := msg.(ui.AmbientTick)
		if !ok {
			t.Fatalf("unexpected message %T", msg)
		}
		if tick.Delta < -3 || tick.Delta > 3 {
			t.Errorf("delta %d out of range", tick.Delta)
		}
	}
}

func TestCancelStopsTicks(t *testing.T) {
	sender := &mockSender{}
	c := New(Config{AmbientInterval: 5 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	c.Start(ctx, sender)
	waitFor(t, func() bool { return len(sender.snapshot()) >= 1 })
	cancel()
	c.Wait()

	n := len(sender.snapshot())
	time.Sleep(30 * time.Millisecond)
	if got := len(sender.snapshot()); got != n {
		t.Errorf("received %d messages after Wait returned", got-n)
	}
}

func TestWaitWithoutTicks(t *testing.T) {
	c := New(Config{AmbientInterval: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	c.Start(ctx, nil)
	cancel()

	done := make(chan struct{})
	go func() {
		c.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after cancel")
	}
}

func TestDefaults(t *testing.T) {
	c := New(Config{})
	if c.cfg.AmbientInterval != DefaultAmbientInterval || c.cfg.MaxDelta != 3 || c.rand == nil {
		t.Errorf("defaults = %+v", c.cfg)
	}
}

const feedXML = `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Wire</title>
<item><title>Bridge reopened</title><guid>b1</guid></item>
</channel></rss>`

func TestSeedReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.xml")
	if err := os.WriteFile(path, []byte(feedXML), 0o644); err != nil {
		t.Fatal(err)
	}

	sender := &mockSender{}
	c := New(Config{
		AmbientInterval: time.Hour,
		SeedFeed:        path,
		SeedInterval:    10 * time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	c.Start(ctx, sender)
	waitFor(t, func() bool { return len(sender.snapshot()) >= 1 })
	cancel()
	c.Wait()

	loaded, ok := sender.snapshot()[0].(ui.SeedLoaded)
	if !ok {
		t.Fatalf("first message = %T", sender.snapshot()[0])
	}
	if loaded.Err != nil || len(loaded.Posts) != 1 || loaded.Posts[0].Text != "Bridge reopened" {
		t.Errorf("SeedLoaded = %+v", loaded)
	}
}

func TestSeedReloadReportsErrors(t *testing.T) {
	sender := &mockSender{}
	c := New(Config{SeedFeed: filepath.Join(t.TempDir(), "missing.xml")})
	c.loadSeed(context.Background(), sender)

	msgs := sender.snapshot()
	if len(msgs) != 1 {
		t.Fatalf("got %d messages", len(msgs))
	}
	if loaded := msgs[0].(ui.SeedLoaded); loaded.Err == nil {
		t.Error("missing seed file should report an error")
	}
}
