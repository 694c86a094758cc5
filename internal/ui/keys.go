package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists every binding. Tab-local bindings share letters; the active
// tab decides which one applies.
type keyMap struct {
	Quit   key.Binding
	Help   key.Binding
	Debug  key.Binding
	Reset  key.Binding
	Escape key.Binding

	Tab       [7]key.Binding
	PrevTab   key.Binding
	NextTab   key.Binding
	Down      key.Binding
	Up        key.Binding
	Open      key.Binding
	FeedMode  key.Binding
	Ticker    key.Binding
	TickerVis key.Binding

	// Upload
	Describe key.Binding
	Pick     key.Binding
	Category key.Binding
	Post     key.Binding

	// Camera
	Shutter key.Binding

	// Live
	GoLive  key.Binding
	EndLive key.Binding

	// Account
	EditName key.Binding
	EditBio  key.Binding

	// Settings
	Monetize      key.Binding
	Verify        key.Binding
	VerifyAddress key.Binding
	Dark          key.Binding
	TickerText    key.Binding
}

var keys = keyMap{
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Debug:  key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "debug")),
	Reset:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset demo")),
	Escape: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),

	Tab: [7]key.Binding{
		key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "feed")),
		key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "upload")),
		key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "camera")),
		key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "live")),
		key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "account")),
		key.NewBinding(key.WithKeys("6"), key.WithHelp("6", "settings")),
		key.NewBinding(key.WithKeys("7"), key.WithHelp("7", "map")),
	},
	PrevTab:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "swipe back")),
	NextTab:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "swipe on")),
	Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
	Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
	Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	FeedMode:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "interested/following")),
	Ticker:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "ticker mode")),
	TickerVis: key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "ticker on/off")),

	Describe: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "describe")),
	Pick:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pick media")),
	Category: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
	Post:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "post")),

	Shutter: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "take photo")),

	GoLive:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "go live")),
	EndLive: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "end live")),

	EditName: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "edit name")),
	EditBio:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "edit bio")),

	Monetize:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "apply for monetization")),
	Verify:        key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "verify identity")),
	VerifyAddress: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "verify address")),
	Dark:          key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dark mode")),
	TickerText:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "ticker text")),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevTab, k.NextTab, k.Down, k.Open, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.Tab[:],
		{k.PrevTab, k.NextTab, k.Down, k.Up, k.Open, k.FeedMode, k.Ticker, k.TickerVis},
		{k.Describe, k.Pick, k.Category, k.Post, k.Shutter, k.GoLive, k.EndLive},
		{k.EditName, k.EditBio, k.Monetize, k.Verify, k.VerifyAddress, k.Dark, k.TickerText},
		{k.Escape, k.Reset, k.Debug, k.Help, k.Quit},
	}
}
