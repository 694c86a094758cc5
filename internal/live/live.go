// Package live gates and tracks the user's live broadcast.
//
// Two counters are kept apart. SessionViewers belongs
// to the user's own broadcast (the broadcaster counts as its first viewer),
// while AmbientLive is the simulated "users live right now" figure in the
// header, nudged by a periodic tick whether or not the user is live.
package live

import (
	"fmt"
	"time"

	"github.com/abelbrown/peoplesnews/internal/model"
)

// Status is the broadcast state.
type Status int

const (
	Offline Status = iota
	Live
)

func (s Status) String() string {
	switch s {
	case Offline:
		return "OFF"
	case Live:
		return "LIVE"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Config holds the session rules and the ambient counter bounds.
type Config struct {
	MinAccountAge   time.Duration
	SessionFloor    int
	AmbientInitial  int
	AmbientFloor    int
	AmbientMaxDelta int
}

// DefaultConfig returns the rules the app ships with.
func DefaultConfig() Config {
	return Config{
		MinAccountAge:   7 * 24 * time.Hour,
		SessionFloor:    0,
		AmbientInitial:  42,
		AmbientFloor:    1,
		AmbientMaxDelta: 3,
	}
}

// OtherStreamers are the mock broadcasts listed under "Currently Live".
var OtherStreamers = []string{"ReporterA", "SkyCam 4", "NJ Weather Watch", "Studio Live"}

// Snapshot is a read-only copy of the controller state.
type Snapshot struct {
	Status         Status
	SessionViewers int
	AmbientLive    int
}

// Controller is the broadcast state machine. Not safe for concurrent use;
// callers funnel every mutation through one event loop.
type Controller struct {
	cfg     Config
	status  Status
	viewers int
	ambient int
}

// NewController starts Offline with the ambient counter at its initial value.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}
	c.Reset()
	return c
}

// Reset returns to the startup state.
func (c *Controller) Reset() {
	c.status = Offline
	c.viewers = c.cfg.SessionFloor
	c.ambient = max(c.cfg.AmbientInitial, c.cfg.AmbientFloor)
}

// Config returns the rules in effect.
func (c *Controller) Config() Config { return c.cfg }

// Status returns the broadcast state.
func (c *Controller) Status() Status { return c.status }

// SessionViewers returns the viewer count of the user's own broadcast.
func (c *Controller) SessionViewers() int { return c.viewers }

// AmbientLive returns the simulated number of users live.
func (c *Controller) AmbientLive() int { return c.ambient }

// Snapshot copies the current state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{Status: c.status, SessionViewers: c.viewers, AmbientLive: c.ambient}
}

// Eligibility explains whether user may go live at now.
type Eligibility struct {
	Verified       bool
	AccountAgeDays int
	CanGoLive      bool
	Reason         error // nil when CanGoLive
}

// Check evaluates the go-live preconditions in order: identity
// verification first, then account age.
func (c *Controller) Check(user model.User, now time.Time) Eligibility {
	e := Eligibility{
		Verified:       user.Verified,
		AccountAgeDays: user.AccountAgeDays(now),
	}
	switch {
	case !user.Verified:
		e.Reason = model.ErrNotVerified
	case user.AccountAge(now) < c.cfg.MinAccountAge:
		e.Reason = model.ErrAccountTooNew
	default:
		e.CanGoLive = true
	}
	return e
}

// GoLive moves Offline to Live and counts the broadcaster as a viewer.
// Fails with model.ErrNotVerified or model.ErrAccountTooNew and leaves the
// state untouched. Calling it while already Live changes nothing.
func (c *Controller) GoLive(user model.User, now time.Time) error {
	if e := c.Check(user, now); !e.CanGoLive {
		return e.Reason
	}
	if c.status == Live {
		return nil
	}
	c.status = Live
	c.viewers++
	return nil
}

// EndLive moves to Offline from any state and drops one viewer, never
// below the session floor.
func (c *Controller) EndLive() {
	c.status = Offline
	c.viewers = max(c.viewers-1, c.cfg.SessionFloor)
}

// ApplyAmbient adds delta to the ambient counter, floored, and returns the
// new value.
func (c *Controller) ApplyAmbient(delta int) int {
	c.ambient = max(c.ambient+delta, c.cfg.AmbientFloor)
	return c.ambient
}

// Rand is the random source for ambient deltas. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// AmbientDelta draws a delta uniformly from [-maxDelta, +maxDelta].
func AmbientDelta(r Rand, maxDelta int) int {
	if maxDelta <= 0 {
		return 0
	}
	return r.IntN(2*maxDelta+1) - maxDelta
}
