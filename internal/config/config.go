package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/abelbrown/peoplesnews/internal/feed"
	"github.com/abelbrown/peoplesnews/internal/live"
	"github.com/abelbrown/peoplesnews/internal/model"
	"github.com/abelbrown/peoplesnews/internal/nav"
	"github.com/abelbrown/peoplesnews/internal/seed"
	"github.com/abelbrown/peoplesnews/internal/ticker"
)

// Config is the persistent application configuration
type Config struct {
	// Live session rules and the ambient counter
	Live LiveConfig `json:"live"`

	// Gesture thresholds
	Nav NavConfig `json:"nav"`

	// UI Preferences
	UI UIConfig `json:"ui"`

	// The signed-in demo user
	User UserConfig `json:"user"`

	// ProfileTopN is how many top posts the account tab shows
	ProfileTopN int `json:"profile_top_n"`

	// SeedFeed is an optional RSS/Atom file whose items are added to the demo feed
	SeedFeed string `json:"seed_feed,omitempty"`

	// EventLog enables the JSONL event log under ~/.peoplesnews/events
	EventLog bool `json:"event_log"`
}

// LiveConfig holds go-live rules and ambient counter settings
type LiveConfig struct {
	MinAccountAgeDays int `json:"min_account_age_days"`
	AmbientIntervalMs int `json:"ambient_interval_ms"`
	AmbientInitial    int `json:"ambient_initial"`
	AmbientFloor      int `json:"ambient_floor"`
	AmbientMaxDelta   int `json:"ambient_max_delta"`
}

// NavConfig holds gesture thresholds
type NavConfig struct {
	SwipeThreshold   float64 `json:"swipe_threshold"`
	ScrollHysteresis float64 `json:"scroll_hysteresis"`
	ScrollPerSecond  float64 `json:"scroll_per_second"` // Scroll samples admitted per second
	ScrollBurst      int     `json:"scroll_burst"`
}

// UIConfig holds UI preferences
type UIConfig struct {
	DarkMode      bool   `json:"dark_mode"`
	FeedMode      string `json:"feed_mode"`   // "interested" or "following"
	TickerMode    string `json:"ticker_mode"` // Stocks, Breaking, Weather, Traffic, Local, All, Custom
	TickerText    string `json:"ticker_text,omitempty"`
	TickerVisible bool   `json:"ticker_visible"`
}

// UserConfig describes the demo user
type UserConfig struct {
	DisplayName   string `json:"display_name"`
	Bio           string `json:"bio"`
	JoinedDaysAgo int    `json:"joined_days_ago"`
	Verified      bool   `json:"verified"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Live: LiveConfig{
			MinAccountAgeDays: 7,
			AmbientIntervalMs: 6000,
			AmbientInitial:    42,
			AmbientFloor:      1,
			AmbientMaxDelta:   3,
		},
		Nav: NavConfig{
			SwipeThreshold:   nav.SwipeThreshold,
			ScrollHysteresis: nav.ScrollHysteresis,
			ScrollPerSecond:  30,
			ScrollBurst:      4,
		},
		UI: UIConfig{
			DarkMode:      false,
			FeedMode:      "interested",
			TickerMode:    "All",
			TickerVisible: true,
		},
		User: UserConfig{
			DisplayName:   "DemoUser",
			Bio:           "Local reporter. Coffee lover.",
			JoinedDaysAgo: 45,
		},
		ProfileTopN: 3,
		EventLog:    true,
	}
}

// Dir returns the per-user data directory
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".peoplesnews")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(Dir(), "config.json")
}

// Load reads config from the default path, or returns defaults
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads config from path. A missing file yields defaults with
// environment overrides applied. Fields absent from the file keep their
// defaults. A malformed file returns defaults along with the error.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.AutoPopulateFromEnv()
			cfg.normalize()
			return cfg, nil
		}
		return cfg, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.AutoPopulateFromEnv()
	cfg.normalize()
	return cfg, nil
}

// Save writes config to path
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// AutoPopulateFromEnv applies PEOPLESNEWS_* overrides from the process environment
func (c *Config) AutoPopulateFromEnv() {
	c.applyEnv(os.LookupEnv)
}

// LoadEnvFile reads a .env file and applies its PEOPLESNEWS_* entries.
// Keys already set in the process environment win, as with godotenv.Load.
// The process environment is left untouched.
func (c *Config) LoadEnvFile(path string) error {
	vars, err := godotenv.Read(path)
	if err != nil {
		return err
	}
	c.applyEnv(func(key string) (string, bool) {
		if _, set := os.LookupEnv(key); set {
			return "", false
		}
		v, ok := vars[key]
		return v, ok
	})
	c.normalize()
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				*dst = n
			}
		}
	}
	flag := func(key string, dst *bool) {
		if v, ok := lookup(key); ok {
			if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				*dst = b
			}
		}
	}

	str("PEOPLESNEWS_DISPLAY_NAME", &c.User.DisplayName)
	str("PEOPLESNEWS_BIO", &c.User.Bio)
	num("PEOPLESNEWS_JOINED_DAYS_AGO", &c.User.JoinedDaysAgo)
	flag("PEOPLESNEWS_VERIFIED", &c.User.Verified)

	num("PEOPLESNEWS_MIN_ACCOUNT_AGE_DAYS", &c.Live.MinAccountAgeDays)
	num("PEOPLESNEWS_AMBIENT_INTERVAL_MS", &c.Live.AmbientIntervalMs)

	flag("PEOPLESNEWS_DARK_MODE", &c.UI.DarkMode)
	str("PEOPLESNEWS_FEED_MODE", &c.UI.FeedMode)
	str("PEOPLESNEWS_TICKER_MODE", &c.UI.TickerMode)
	str("PEOPLESNEWS_TICKER_TEXT", &c.UI.TickerText)

	str("PEOPLESNEWS_SEED_FEED", &c.SeedFeed)
	flag("PEOPLESNEWS_EVENT_LOG", &c.EventLog)
}

// normalize replaces out-of-range values with defaults
func (c *Config) normalize() {
	d := DefaultConfig()
	if c.Live.MinAccountAgeDays < 0 {
		c.Live.MinAccountAgeDays = d.Live.MinAccountAgeDays
	}
	if c.Live.AmbientIntervalMs <= 0 {
		c.Live.AmbientIntervalMs = d.Live.AmbientIntervalMs
	}
	if c.Live.AmbientFloor < 0 {
		c.Live.AmbientFloor = d.Live.AmbientFloor
	}
	if c.Live.AmbientMaxDelta < 0 {
		c.Live.AmbientMaxDelta = d.Live.AmbientMaxDelta
	}
	if c.Nav.SwipeThreshold <= 0 {
		c.Nav.SwipeThreshold = d.Nav.SwipeThreshold
	}
	if c.Nav.ScrollHysteresis < 0 {
		c.Nav.ScrollHysteresis = d.Nav.ScrollHysteresis
	}
	if c.Nav.ScrollPerSecond <= 0 {
		c.Nav.ScrollPerSecond = d.Nav.ScrollPerSecond
	}
	if c.Nav.ScrollBurst < 1 {
		c.Nav.ScrollBurst = d.Nav.ScrollBurst
	}
	if c.ProfileTopN <= 0 {
		c.ProfileTopN = d.ProfileTopN
	}
	if strings.TrimSpace(c.User.DisplayName) == "" {
		c.User.DisplayName = d.User.DisplayName
	}
	if c.User.JoinedDaysAgo < 0 {
		c.User.JoinedDaysAgo = 0
	}
}

// LiveRules converts the live settings for live.NewController
func (c *Config) LiveRules() live.Config {
	rules := live.DefaultConfig()
	rules.MinAccountAge = time.Duration(c.Live.MinAccountAgeDays) * 24 * time.Hour
	rules.AmbientInitial = c.Live.AmbientInitial
	rules.AmbientFloor = c.Live.AmbientFloor
	rules.AmbientMaxDelta = c.Live.AmbientMaxDelta
	return rules
}

// AmbientInterval is the period of the ambient counter tick
func (c *Config) AmbientInterval() time.Duration {
	return time.Duration(c.Live.AmbientIntervalMs) * time.Millisecond
}

// NavRules converts the gesture settings for nav.NewController
func (c *Config) NavRules() nav.Config {
	return nav.Config{
		SwipeThreshold:   c.Nav.SwipeThreshold,
		ScrollHysteresis: c.Nav.ScrollHysteresis,
	}
}

// TickerRules converts the ticker preferences for ticker.NewController.
// An unknown mode falls back to All.
func (c *Config) TickerRules() ticker.Config {
	mode, _ := ticker.ParseMode(c.UI.TickerMode)
	return ticker.Config{Mode: mode, CustomText: c.UI.TickerText, Visible: c.UI.TickerVisible}
}

// StartFeedMode is the feed mode selected at startup
func (c *Config) StartFeedMode() feed.Mode {
	mode, _ := feed.ParseMode(c.UI.FeedMode)
	return mode
}

// DemoUser builds the signed-in user as of now
func (c *Config) DemoUser(now time.Time) model.User {
	u := seed.DemoUser(now)
	u.DisplayName = c.User.DisplayName
	u.Bio = c.User.Bio
	u.JoinedAt = now.AddDate(0, 0, -c.User.JoinedDaysAgo)
	u.Verified = c.User.Verified
	return u
}
