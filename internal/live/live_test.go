package live

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/abelbrown/peoplesnews/internal/model"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func userJoined(ago time.Duration, verified bool) model.User {
	return model.User{DisplayName: "DemoUser", JoinedAt: now.Add(-ago), Verified: verified}
}

func TestInitialState(t *testing.T) {
	c := NewController(DefaultConfig())
	s := c.Snapshot()
	if s.Status != Offline || s.SessionViewers != 0 || s.AmbientLive != 42 {
		t.Errorf("initial snapshot = %+v", s)
	}
}

func TestGoLiveUnverified(t *testing.T) {
	c := NewController(DefaultConfig())

	// Unverified wins even when the account is also too new.
	for _, age := range []time.Duration{time.Hour, 45 * 24 * time.Hour} {
		err := c.GoLive(userJoined(age, false), now)
		if !errors.Is(err, model.ErrNotVerified) {
			t.Errorf("GoLive(age %v) = %v, want ErrNotVerified", age, err)
		}
		if c.Status() != Offline || c.SessionViewers() != 0 {
			t.Errorf("failed GoLive changed state: %+v", c.Snapshot())
		}
	}
}

func TestGoLiveAccountAgeBoundary(t *testing.T) {
	tests := []struct {
		name string
		age  time.Duration
		want error
	}{
		{"6 days 23 hours", 6*24*time.Hour + 23*time.Hour, model.ErrAccountTooNew},
		{"one nanosecond short", 7*24*time.Hour - 1, model.ErrAccountTooNew},
		{"exactly 7 days", 7 * 24 * time.Hour, nil},
		{"45 days", 45 * 24 * time.Hour, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(DefaultConfig())
			err := c.GoLive(userJoined(tt.age, true), now)
			if !errors.Is(err, tt.want) {
				t.Fatalf("GoLive = %v, want %v", err, tt.want)
			}
			if tt.want != nil {
				if c.Status() != Offline || c.SessionViewers() != 0 {
					t.Errorf("failed GoLive changed state: %+v", c.Snapshot())
				}
				return
			}
			if c.Status() != Live || c.SessionViewers() != 1 {
				t.Errorf("after GoLive: %+v, want Live with 1 viewer", c.Snapshot())
			}
		})
	}
}

func TestGoLiveTwiceDoesNotDoubleCount(t *testing.T) {
	c := NewController(DefaultConfig())
	u := userJoined(30*24*time.Hour, true)

	if err := c.GoLive(u, now); err != nil {
		t.Fatalf("GoLive failed: %v", err)
	}
	if err := c.GoLive(u, now); err != nil {
		t.Fatalf("second GoLive failed: %v", err)
	}
	if c.SessionViewers() != 1 {
		t.Errorf("viewers = %d after two GoLive calls, want 1", c.SessionViewers())
	}
}

func TestEndLive(t *testing.T) {
	c := NewController(DefaultConfig())
	u := userJoined(30*24*time.Hour, true)

	if err := c.GoLive(u, now); err != nil {
		t.Fatalf("GoLive failed: %v", err)
	}
	c.EndLive()
	if c.Status() != Offline || c.SessionViewers() != 0 {
		t.Errorf("after EndLive: %+v", c.Snapshot())
	}

	// Ending while offline keeps the floor.
	c.EndLive()
	c.EndLive()
	if c.Status() != Offline || c.SessionViewers() != 0 {
		t.Errorf("EndLive below floor: %+v", c.Snapshot())
	}

	// Restartable.
	if err := c.GoLive(u, now); err != nil || c.Status() != Live {
		t.Errorf("restart failed: %v %+v", err, c.Snapshot())
	}
}

func TestEndLiveRespectsConfiguredFloor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SessionFloor = 1
	c := NewController(cfg)
	c.EndLive()
	if c.SessionViewers() != 1 {
		t.Errorf("viewers = %d, want floor 1", c.SessionViewers())
	}
}

func TestAmbientIsIndependentOfSession(t *testing.T) {
	c := NewController(DefaultConfig())
	u := userJoined(30*24*time.Hour, true)

	if err := c.GoLive(u, now); err != nil {
		t.Fatalf("GoLive failed: %v", err)
	}
	if c.AmbientLive() != 42 {
		t.Errorf("GoLive touched ambient counter: %d", c.AmbientLive())
	}
	c.ApplyAmbient(3)
	if c.SessionViewers() != 1 {
		t.Errorf("ambient tick touched session viewers: %d", c.SessionViewers())
	}
}

func TestApplyAmbientFloor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AmbientInitial = 2
	c := NewController(cfg)

	if got := c.ApplyAmbient(-3); got != 1 {
		t.Errorf("ApplyAmbient(-3) from 2 = %d, want 1", got)
	}
	if got := c.ApplyAmbient(-3); got != 1 {
		t.Errorf("ApplyAmbient(-3) at floor = %d, want 1", got)
	}
	if got := c.ApplyAmbient(2); got != 3 {
		t.Errorf("ApplyAmbient(+2) = %d, want 3", got)
	}
}

func TestAmbientDeltaRange(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		d := AmbientDelta(r, 3)
		if d < -3 || d > 3 {
			t.Fatalf("delta %d out of [-3, 3]", d)
		}
		seen[d] = true
	}
	if len(seen) != 7 {
		t.Errorf("expected all 7 deltas, saw %v", seen)
	}
	if AmbientDelta(r, 0) != 0 {
		t.Error("maxDelta 0 should give 0")
	}
}

func TestCheck(t *testing.T) {
	c := NewController(DefaultConfig())

	e := c.Check(userJoined(3*24*time.Hour, true), now)
	if e.CanGoLive || !errors.Is(e.Reason, model.ErrAccountTooNew) || e.AccountAgeDays != 3 || !e.Verified {
		t.Errorf("Check(new verified) = %+v", e)
	}

	e = c.Check(userJoined(10*24*time.Hour, true), now)
	if !e.CanGoLive || e.Reason != nil {
		t.Errorf("Check(eligible) = %+v", e)
	}
}

func TestReset(t *testing.T) {
	c := NewController(DefaultConfig())
	_ = c.GoLive(userJoined(30*24*time.Hour, true), now)
	c.ApplyAmbient(3)
	c.Reset()
	if s := c.Snapshot(); s != (Snapshot{Status: Offline, SessionViewers: 0, AmbientLive: 42}) {
		t.Errorf("after Reset: %+v", s)
	}
}
