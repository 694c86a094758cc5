// Package nav tracks the active tab and interprets swipe and scroll gestures.
//
// Two gesture interpreters feed the controller independently:
//
//   - Swipe paging moves one tab left or right through PagingOrder when a
//     horizontal release displacement crosses SwipeThreshold.
//   - Scroll samples hide the navigation chrome when the feed moves down by
//     more than ScrollHysteresis and show it again when it moves up by more
//     than that.
package nav

import (
	"fmt"
	"strings"
)

// Tab identifies a top-level screen.
type Tab int

const (
	Feed Tab = iota
	Upload
	Camera
	Live
	Account
	Settings
	Map
)

var tabNames = [...]string{"Feed", "Upload", "Camera", "Live", "Account", "Settings", "Map"}

func (t Tab) String() string {
	if t < 0 || int(t) >= len(tabNames) {
		return fmt.Sprintf("Tab(%d)", int(t))
	}
	return tabNames[t]
}

// ParseTab matches s case-insensitively against the tab names.
func ParseTab(s string) (Tab, bool) {
	for i, name := range tabNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return Tab(i), true
		}
	}
	return Feed, false
}

// Tabs lists every tab in bar order.
var Tabs = []Tab{Feed, Upload, Camera, Live, Account, Settings, Map}

// PagingOrder is the order swipes move through. Map is reachable only by
// direct selection.
var PagingOrder = []Tab{Feed, Upload, Camera, Live, Account, Settings}

const (
	// SwipeThreshold is the horizontal travel a swipe needs to page.
	SwipeThreshold = 60
	// ScrollHysteresis is the dead band for chrome show/hide.
	ScrollHysteresis = 12
)

// Gesture is a touch displacement measured from start to release.
type Gesture struct {
	DX, DY float64
}

// Config sets the gesture thresholds.
type Config struct {
	SwipeThreshold   float64
	ScrollHysteresis float64
}

// DefaultConfig returns the shipped thresholds.
func DefaultConfig() Config {
	return Config{SwipeThreshold: SwipeThreshold, ScrollHysteresis: ScrollHysteresis}
}

// State is a read-only copy of the navigation state.
type State struct {
	ActiveTab     Tab
	ChromeVisible bool
}

// Controller owns the active tab and chrome visibility.
// Not safe for concurrent use.
type Controller struct {
	cfg        Config
	active     Tab
	chrome     bool
	lastScroll float64
}

// NewController starts on Feed with the chrome shown.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}
	c.Reset()
	return c
}

// Reset returns to the startup state.
func (c *Controller) Reset() {
	c.active = Feed
	c.chrome = true
	c.lastScroll = 0
}

// State copies the current state.
func (c *Controller) State() State {
	return State{ActiveTab: c.active, ChromeVisible: c.chrome}
}

// ActiveTab returns the selected tab.
func (c *Controller) ActiveTab() Tab { return c.active }

// ChromeVisible reports whether the navigation bar is shown.
func (c *Controller) ChromeVisible() bool { return c.chrome }

// LastScrollY returns the previous scroll sample.
func (c *Controller) LastScrollY() float64 { return c.lastScroll }

// SetTab selects t unconditionally.
func (c *Controller) SetTab(t Tab) {
	c.active = t
}

// Swipe pages by a released gesture and reports whether the tab changed.
//
// Only the start-to-release displacement is considered. A gesture whose
// vertical travel exceeds its horizontal travel is a scroll and is ignored.
// Positive DX (finger moved right) goes to the previous tab, negative DX
// to the next. Swiping past either end, or from a tab outside
// PagingOrder, does nothing.
func (c *Controller) Swipe(g Gesture) bool {
	if abs(g.DY) > abs(g.DX) {
		return false
	}

	idx := pagingIndex(c.active)
	if idx < 0 {
		return false
	}

	switch {
	case g.DX > c.cfg.SwipeThreshold:
		idx--
	case g.DX < -c.cfg.SwipeThreshold:
		idx++
	default:
		return false
	}

	if idx < 0 || idx >= len(PagingOrder) {
		return false
	}
	c.active = PagingOrder[idx]
	return true
}

// Scroll applies a scroll position sample and returns the chrome visibility.
// The sample always becomes the new reference position.
func (c *Controller) Scroll(y float64) bool {
	switch {
	case y > c.lastScroll+c.cfg.ScrollHysteresis:
		c.chrome = false
	case y < c.lastScroll-c.cfg.ScrollHysteresis:
		c.chrome = true
	}
	c.lastScroll = y
	return c.chrome
}

func pagingIndex(t Tab) int {
	for i, p := range PagingOrder {
		if p == t {
			return i
		}
	}
	return -1
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
