// Package ticker builds the scrolling banner text shown above the feed.
package ticker

import (
	"fmt"
	"strings"
)

// Mode selects which fragments the ticker shows.
type Mode int

const (
	Stocks Mode = iota
	Breaking
	Weather
	Traffic
	Local
	All
	Custom
)

var modeNames = [...]string{"Stocks", "Breaking", "Weather", "Traffic", "Local", "All", "Custom"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Modes lists every mode in menu order.
var Modes = []Mode{Stocks, Breaking, Weather, Traffic, Local, All, Custom}

// ParseMode matches s case-insensitively against the mode names.
func ParseMode(s string) (Mode, bool) {
	for i, name := range modeNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return Mode(i), true
		}
	}
	return All, false
}

// Separator joins fragments.
const Separator = " | "

var (
	stockFragments = []string{
		"AAPL +1.2%",
		"TSLA -0.8%",
		"MSFT +0.4%",
		"AMZN +2.1%",
		"SPY +0.3%",
	}
	breakingFragment = "BREAKING: Water main break closes Broad St. between 4th and 6th"
	weatherFragment  = "WEATHER: 72°F partly cloudy, storms possible after 6 PM"
	trafficFragment  = "TRAFFIC: Rt. 10 eastbound delays near exit 7"
	localFragment    = "LOCAL: Farmers market returns to Main St. this Saturday"
)

// fragments returns the fixed fragments for a non-custom mode. All is the
// concatenation of the other modes in menu order.
func fragments(m Mode) []string {
	switch m {
	case Stocks:
		return stockFragments
	case Breaking:
		return []string{breakingFragment}
	case Weather:
		return []string{weatherFragment}
	case Traffic:
		return []string{trafficFragment}
	case Local:
		return []string{localFragment}
	case All:
		var out []string
		for _, sub := range []Mode{Stocks, Breaking, Weather, Traffic, Local} {
			out = append(out, fragments(sub)...)
		}
		return out
	default:
		return nil
	}
}

// Generate returns the ticker text for mode. Custom returns customText
// verbatim, including the empty string. Unknown modes yield "".
func Generate(mode Mode, customText string) string {
	if mode == Custom {
		return customText
	}
	return strings.Join(fragments(mode), Separator)
}

// Config is the ticker's user-facing settings.
type Config struct {
	Mode       Mode
	CustomText string
	Visible    bool
}

// DefaultConfig shows every fragment.
func DefaultConfig() Config {
	return Config{Mode: All, Visible: true}
}

// Controller owns the ticker settings and caches the generated text.
// The text is rebuilt only when the mode or custom text changes.
type Controller struct {
	initial Config
	cfg     Config
	text    string
	builds  int
}

// NewController applies cfg and generates the first text.
func NewController(cfg Config) *Controller {
	c := &Controller{initial: cfg}
	c.Reset()
	return c
}

// Reset restores the construction-time settings.
func (c *Controller) Reset() {
	c.cfg = c.initial
	c.regenerate()
}

func (c *Controller) regenerate() {
	c.text = Generate(c.cfg.Mode, c.cfg.CustomText)
	c.builds++
}

// Config returns the current settings.
func (c *Controller) Config() Config { return c.cfg }

// Text returns the cached ticker text.
func (c *Controller) Text() string { return c.text }

// Visible reports whether the ticker is shown.
func (c *Controller) Visible() bool { return c.cfg.Visible }

// SetMode switches mode and reports whether it changed.
func (c *Controller) SetMode(m Mode) bool {
	if m == c.cfg.Mode {
		return false
	}
	c.cfg.Mode = m
	c.regenerate()
	return true
}

// SetCustomText replaces the custom text. The cached text is rebuilt only
// when the custom mode is active.
func (c *Controller) SetCustomText(s string) {
	if s == c.cfg.CustomText {
		return
	}
	c.cfg.CustomText = s
	if c.cfg.Mode == Custom {
		c.regenerate()
	}
}

// SetVisible shows or hides the ticker without regenerating.
func (c *Controller) SetVisible(v bool) { c.cfg.Visible = v }

// ToggleVisible flips visibility and returns the new value.
func (c *Controller) ToggleVisible() bool {
	c.cfg.Visible = !c.cfg.Visible
	return c.cfg.Visible
}
