// Package app is the single owner of all client state.
//
// The Engine sits between the UI and the domain controllers. Every UI
// event becomes one Engine call; the call mutates exactly one owner and the
// UI then re-reads View().
//
//	┌────┐  Tap/Swipe/Publish/…  ┌────────┐   ┌──────────────────────────┐
//	│ UI │ ────────────────────> │ Engine │ ─>│ store, live, nav, ticker │
//	│    │ <──────────────────── │        │   └──────────────────────────┘
//	└────┘       View()          └────────┘
//
// # Concurrency
//
// The Engine is not safe for concurrent use. The bubbletea event loop is
// its only caller; background work (the ambient timer, media capture)
// hands results back as messages instead of touching the Engine.
package app

import (
	"fmt"
	"time"

	"github.com/abelbrown/peoplesnews/internal/feed"
	"github.com/abelbrown/peoplesnews/internal/live"
	"github.com/abelbrown/peoplesnews/internal/logging"
	"github.com/abelbrown/peoplesnews/internal/model"
	"github.com/abelbrown/peoplesnews/internal/nav"
	"github.com/abelbrown/peoplesnews/internal/otel"
	"github.com/abelbrown/peoplesnews/internal/profile"
	"github.com/abelbrown/peoplesnews/internal/store"
	"github.com/abelbrown/peoplesnews/internal/ticker"
)

// Options configures an Engine. Zero values fall back to defaults.
type Options struct {
	Now    func() time.Time
	NewID  func() string // suffix for uploaded post ids
	Events *otel.Logger

	User model.User
	Seed []model.Post

	Live     live.Config
	Nav      nav.Config
	Ticker   ticker.Config
	FeedMode feed.Mode
	TopN     int
	DarkMode bool

	ScrollPerSecond float64
	ScrollBurst     int
}

func (o *Options) fill() {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = shortID
	}
	if o.Events == nil {
		o.Events = otel.NewNullLogger()
	}
	if o.Live == (live.Config{}) {
		o.Live = live.DefaultConfig()
	}
	if o.Nav == (nav.Config{}) {
		o.Nav = nav.DefaultConfig()
	}
	if o.Ticker == (ticker.Config{}) {
		o.Ticker = ticker.DefaultConfig()
	}
	if o.TopN <= 0 {
		o.TopN = profile.DefaultTopN
	}
	if o.ScrollPerSecond <= 0 {
		o.ScrollPerSecond = 30
	}
	if o.ScrollBurst < 1 {
		o.ScrollBurst = 4
	}
}

// Engine owns the post store, the user and every controller.
type Engine struct {
	opts Options
	now  func() time.Time
	log  *otel.Logger

	store    *store.Store
	user     model.User
	live     *live.Controller
	nav      *nav.Controller
	scroll   *nav.ScrollThrottle
	ticker   *ticker.Controller
	feedMode feed.Mode
	darkMode bool
}

// New builds an Engine over st and seeds it.
func New(st *store.Store, opts Options) (*Engine, error) {
	opts.fill()
	e := &Engine{
		opts:  opts,
		now:   opts.Now,
		log:   opts.Events,
		store: st,
	}
	e.live = live.NewController(opts.Live)
	e.nav = nav.NewController(opts.Nav)
	e.scroll = nav.NewScrollThrottle(e.nav, opts.ScrollPerSecond, opts.ScrollBurst)
	e.ticker = ticker.NewController(opts.Ticker)

	if err := e.Reset(); err != nil {
		return nil, err
	}
	return e, nil
}

// Reset reinitialises every owner to its startup state and reseeds the
// store. The in-memory owners are reset even when reseeding fails; the
// store is then left empty rather than partly seeded.
func (e *Engine) Reset() error {
	e.user = e.opts.User.Clone()
	e.live.Reset()
	e.nav.Reset()
	e.scroll = nav.NewScrollThrottle(e.nav, e.opts.ScrollPerSecond, e.opts.ScrollBurst)
	e.ticker.Reset()
	e.feedMode = e.opts.FeedMode
	e.darkMode = e.opts.DarkMode

	if err := e.store.Reset(); err != nil {
		return fmt.Errorf("reset store: %w", err)
	}
	if err := e.store.Seed(e.opts.Seed); err != nil {
		if rerr := e.store.Reset(); rerr != nil {
			logging.Warn("clear partly seeded store", "error", rerr)
		}
		e.log.Error(otel.KindReset, "app", err)
		return fmt.Errorf("seed store: %w", err)
	}

	e.log.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindReset, Comp: "app", Count: len(e.opts.Seed)})
	return nil
}

// User returns a copy of the signed-in user.
func (e *Engine) User() model.User { return e.user.Clone() }

// Store exposes the post store for read-only callers.
func (e *Engine) Store() *store.Store { return e.store }

// ---- navigation ----

// Tap selects tab directly.
func (e *Engine) Tap(tab nav.Tab) {
	if e.nav.ActiveTab() == tab {
		return
	}
	e.nav.SetTab(tab)
	e.log.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindTab, Comp: "app", Tab: tab.String()})
}

// Swipe pages by a released gesture and reports whether the tab changed.
func (e *Engine) Swipe(g nav.Gesture) bool {
	from := e.nav.ActiveTab()
	if !e.nav.Swipe(g) {
		return false
	}
	e.log.Emit(otel.Event{
		Level: otel.LevelDebug,
		Kind:  otel.KindSwipe,
		Comp:  "app",
		Tab:   e.nav.ActiveTab().String(),
		Msg:   "from " + from.String(),
	})
	return true
}

// Scroll offers a feed scroll sample. Samples beyond the throttle rate are
// dropped. Returns whether the chrome is visible afterwards.
func (e *Engine) Scroll(y float64) bool {
	before := e.nav.ChromeVisible()
	_, visible := e.scroll.Sample(y, e.now())
	if visible != before {
		e.log.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindChrome, Comp: "app", Msg: fmt.Sprintf("visible=%t", visible)})
	}
	return visible
}

// ---- feed & ticker ----

// SetFeedMode switches between Interested and Following.
func (e *Engine) SetFeedMode(m feed.Mode) {
	if m == e.feedMode {
		return
	}
	e.feedMode = m
	e.log.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindFeedMode, Comp: "app", Mode: m.String()})
}

// SetTickerMode switches the ticker content.
func (e *Engine) SetTickerMode(m ticker.Mode) {
	if e.ticker.SetMode(m) {
		e.log.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindTickerMode, Comp: "app", Mode: m.String()})
	}
}

// SetTickerText replaces the custom ticker text.
func (e *Engine) SetTickerText(s string) {
	e.ticker.SetCustomText(s)
}

// ToggleTicker flips ticker visibility and returns the new value.
func (e *Engine) ToggleTicker() bool {
	return e.ticker.ToggleVisible()
}

// ToggleDarkMode flips the theme and returns the new value.
func (e *Engine) ToggleDarkMode() bool {
	e.darkMode = !e.darkMode
	return e.darkMode
}

// OpenPost records a view on id and returns the updated post.
func (e *Engine) OpenPost(id string) (model.Post, error) {
	if err := e.store.RecordView(id); err != nil {
		return model.Post{}, fmt.Errorf("open post %s: %w", id, err)
	}
	p, err := e.store.Get(id)
	if err != nil {
		return model.Post{}, fmt.Errorf("open post %s: %w", id, err)
	}
	e.log.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindView, Comp: "app", PostID: id, Count: p.Views})
	return p, nil
}

// ---- live ----

// Eligibility reports whether the user may go live right now.
func (e *Engine) Eligibility() live.Eligibility {
	return e.live.Check(e.user, e.now())
}

// GoLive starts the user's broadcast.
func (e *Engine) GoLive() error {
	if err := e.live.GoLive(e.user, e.now()); err != nil {
		e.log.Emit(otel.Event{Level: otel.LevelWarn, Kind: otel.KindLiveDenied, Comp: "app", Err: err.Error()})
		logging.Debug("go live denied", "error", err)
		return err
	}
	e.log.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindLiveStart, Comp: "app", Count: e.live.SessionViewers()})
	return nil
}

// EndLive stops the broadcast.
func (e *Engine) EndLive() {
	wasLive := e.live.Status() == live.Live
	e.live.EndLive()
	if wasLive {
		e.log.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindLiveEnd, Comp: "app", Count: e.live.SessionViewers()})
	}
}

// AmbientTick applies one ambient counter delta and returns the new value.
func (e *Engine) AmbientTick(delta int) int {
	v := e.live.ApplyAmbient(delta)
	e.log.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindAmbient, Comp: "app", Delta: delta, Count: v})
	return v
}

// ---- account ----

// EditProfile changes the display name and bio.
func (e *Engine) EditProfile(displayName, bio string) error {
	if err := e.user.Edit(displayName, bio); err != nil {
		return err
	}
	e.log.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindProfile, Comp: "app", Msg: "profile edited"})
	return nil
}

// VerifyIdentity marks the user verified. One-way.
func (e *Engine) VerifyIdentity() {
	e.user.Verify()
	e.log.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindProfile, Comp: "app", Msg: "identity verified"})
}

// VerifyAddress marks the user's address verified. One-way.
func (e *Engine) VerifyAddress() {
	e.user.VerifyAddress()
	e.log.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindProfile, Comp: "app", Msg: "address verified"})
}

// ApplyMonetization enrolls the user. One-way.
func (e *Engine) ApplyMonetization() {
	e.user.ApplyMonetization()
	e.log.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindProfile, Comp: "app", Msg: "monetization applied"})
}
