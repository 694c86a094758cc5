package ui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/peoplesnews/internal/app"
	"github.com/abelbrown/peoplesnews/internal/live"
	"github.com/abelbrown/peoplesnews/internal/media"
	"github.com/abelbrown/peoplesnews/internal/model"
	"github.com/abelbrown/peoplesnews/internal/nav"
	"github.com/abelbrown/peoplesnews/internal/otel"
	"github.com/abelbrown/peoplesnews/internal/ticker"
)

// Terminal cells are converted to the pixel distances the navigation rules
// are written in.
const (
	pxPerCol     = 8
	pxPerRow     = 16
	postHeightPx = 120
	postLines    = 4  // rendered lines per feed entry
	swipeKeyPx   = 80 // arrow keys act as a swipe this long
	frameRate    = time.Second / 60

	defaultMediaTimeout = 30 * time.Second
)

type inputMode int

const (
	inputNone inputMode = iota
	inputDescription
	inputMediaPath
	inputDisplayName
	inputBio
	inputTickerText
)

// AppConfig wires the App to its collaborators. Zero fields get defaults.
type AppConfig struct {
	Events *otel.Logger
	Ring   *otel.RingBuffer // shown by the debug overlay

	Camera       media.Source
	Picker       func(path string) media.Source
	MediaTimeout time.Duration
	Now          func() time.Time
}

// App is the root Bubble Tea model.
// All state changes go through the Engine; App keeps only presentation
// state and the last ViewModel.
type App struct {
	engine *app.Engine
	events *otel.Logger
	ring   *otel.RingBuffer

	camera       media.Source
	picker       func(path string) media.Source
	mediaTimeout time.Duration
	now          func() time.Time

	vm     app.ViewModel
	cursor int
	modal  *model.Post

	// Upload and camera drafts
	draftText string
	draftRef  model.MediaRef
	draftCat  int // index into model.Categories, -1 = unset
	captured  model.MediaRef

	input     textinput.Model
	inputMode inputMode

	spinner  spinner.Model
	busy     bool
	help     help.Model
	viewport viewport.Model

	// Chrome slides with a spring; 1 is fully shown.
	spring    harmonica.Spring
	chromePos float64
	chromeVel float64
	animating bool

	pressing       bool
	pressX, pressY int

	status       string
	err          error
	width        int
	height       int
	ready        bool
	debugVisible bool
}

// NewApp creates the root model over engine.
func NewApp(engine *app.Engine, cfg AppConfig) App {
	if cfg.Events == nil {
		cfg.Events = otel.NewNullLogger()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Camera == nil {
		cfg.Camera = &media.MockCamera{Now: cfg.Now}
	}
	if cfg.Picker == nil {
		cfg.Picker = func(path string) media.Source {
			return media.FilePicker{Path: func() string { return path }}
		}
	}
	if cfg.MediaTimeout <= 0 {
		cfg.MediaTimeout = defaultMediaTimeout
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorHighlight)

	in := textinput.New()
	in.CharLimit = 280
	in.Width = 50

	a := App{
		engine:       engine,
		events:       cfg.Events,
		ring:         cfg.Ring,
		camera:       cfg.Camera,
		picker:       cfg.Picker,
		mediaTimeout: cfg.MediaTimeout,
		now:          cfg.Now,
		draftCat:     -1,
		input:        in,
		spinner:      s,
		help:         help.New(),
		viewport:     viewport.New(80, 20),
		spring:       harmonica.NewSpring(harmonica.FPS(60), 6.0, 0.8),
	}
	a.sync()
	a.animating = false
	if a.vm.Nav.ChromeVisible {
		a.chromePos = 1
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.SetWindowTitle("People's News")
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if otel.TraceEnabled() {
		a.events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindMsgReceived, Comp: "ui", Msg: fmt.Sprintf("%T", msg)})
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.help.Width = msg.Width
		a.input.Width = max(msg.Width-24, 10)
		a.viewport.Width = msg.Width
		return a, a.sync()

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.MouseMsg:
		return a.handleMouseMsg(msg)

	case AmbientTick:
		a.engine.AmbientTick(msg.Delta)
		return a, a.sync()

	case SeedLoaded:
		if msg.Err != nil {
			a.err = fmt.Errorf("seed feed %s: %w", filepath.Base(msg.Source), msg.Err)
			return a, a.sync()
		}
		n, err := a.engine.Import(msg.Posts)
		if err != nil {
			a.err = err
		}
		if n > 0 {
			a.status = fmt.Sprintf("%d new posts from %s", n, filepath.Base(msg.Source))
		}
		return a, a.sync()

	case MediaPicked:
		a.busy = false
		if a.mediaFailed(msg.Err) {
			return a, a.sync()
		}
		a.draftRef = msg.Ref
		a.status = "Attached " + string(msg.Ref.Kind)
		return a, a.sync()

	case PhotoCaptured:
		a.busy = false
		if a.mediaFailed(msg.Err) {
			return a, a.sync()
		}
		a.captured = msg.Ref
		a.status = "Photo ready"
		return a, a.sync()

	case spinner.TickMsg:
		if !a.busy {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case chromeFrame:
		return a, a.stepChrome()
	}

	if a.inputMode != inputNone {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

// mediaFailed reports a picker or camera error. Cancelling is not an error.
func (a *App) mediaFailed(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, media.ErrCancelled):
		a.status = "No media selected"
		a.events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindMediaCancel, Comp: "ui"})
	default:
		a.err = err
		a.events.Emit(otel.Event{Level: otel.LevelWarn, Kind: otel.KindMediaError, Comp: "ui", Err: err.Error()})
	}
	return true
}

// handleKeyMsg processes keyboard input.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.inputMode != inputNone {
		return a.handleInputKey(msg)
	}

	// Clear any existing error on key press
	a.err = nil

	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, keys.Debug):
		a.debugVisible = !a.debugVisible
		return a, nil
	case key.Matches(msg, keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		return a, a.sync()
	case key.Matches(msg, keys.Escape):
		a.modal = nil
		return a, a.sync()
	case key.Matches(msg, keys.Reset):
		if err := a.engine.Reset(); err != nil {
			a.err = err
		}
		a.clearDrafts()
		a.cursor = 0
		a.modal = nil
		a.status = "Demo reset"
		return a, a.sync()
	}

	if a.modal != nil {
		if key.Matches(msg, keys.Open) {
			a.modal = nil
		}
		return a, a.sync()
	}

	for i, b := range keys.Tab {
		if key.Matches(msg, b) {
			a.engine.Tap(nav.Tabs[i])
			return a, a.sync()
		}
	}

	switch {
	case key.Matches(msg, keys.PrevTab):
		a.engine.Swipe(nav.Gesture{DX: swipeKeyPx})
	case key.Matches(msg, keys.NextTab):
		a.engine.Swipe(nav.Gesture{DX: -swipeKeyPx})
	case key.Matches(msg, keys.Ticker):
		a.engine.SetTickerMode(nextTickerMode(a.vm.TickerMode))
	case key.Matches(msg, keys.TickerVis):
		a.engine.ToggleTicker()
	default:
		return a.handleTabKey(msg)
	}
	return a, a.sync()
}

// handleTabKey applies bindings that belong to the active tab.
func (a App) handleTabKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.vm.Nav.ActiveTab {
	case nav.Feed:
		switch {
		case key.Matches(msg, keys.Down):
			a.moveCursor(1)
		case key.Matches(msg, keys.Up):
			a.moveCursor(-1)
		case key.Matches(msg, keys.Open):
			if a.cursor < len(a.vm.Feed) {
				p, err := a.engine.OpenPost(a.vm.Feed[a.cursor].ID)
				if err != nil {
					a.err = err
				} else {
					a.modal = &p
				}
			}
		case key.Matches(msg, keys.FeedMode):
			a.engine.SetFeedMode(a.vm.FeedMode.Toggle())
			a.cursor = 0
		}

	case nav.Upload:
		switch {
		case key.Matches(msg, keys.Describe):
			cmd = a.startInput(inputDescription, "What's happening?", a.draftText)
		case key.Matches(msg, keys.Pick):
			cmd = a.startInput(inputMediaPath, "Path to a photo or video", "")
		case key.Matches(msg, keys.Category):
			a.draftCat++
			if a.draftCat >= len(model.Categories) {
				a.draftCat = -1
			}
		case key.Matches(msg, keys.Post):
			if _, err := a.engine.Publish(a.draftText, a.draftRef, a.draftCategory()); err != nil {
				a.err = err
				break
			}
			a.clearDrafts()
			a.afterPublish("Posted")
		}

	case nav.Camera:
		switch {
		case key.Matches(msg, keys.Shutter):
			if !a.busy {
				a.busy = true
				cmd = tea.Batch(a.captureCmd(), a.spinner.Tick)
			}
		case key.Matches(msg, keys.Post):
			if _, err := a.engine.Capture(a.captured); err != nil {
				a.err = err
				break
			}
			a.captured = model.MediaRef{}
			a.afterPublish("Photo posted")
		}

	case nav.Live:
		a.handleLiveKey(msg)

	case nav.Account:
		u := a.vm.Profile.User
		switch {
		case key.Matches(msg, keys.EditName):
			cmd = a.startInput(inputDisplayName, "Display name", u.DisplayName)
		case key.Matches(msg, keys.EditBio):
			cmd = a.startInput(inputBio, "Bio", u.Bio)
		}

	case nav.Settings:
		u := a.vm.Profile.User
		switch {
		case key.Matches(msg, keys.Monetize):
			a.engine.ApplyMonetization()
		case key.Matches(msg, keys.Verify), key.Matches(msg, keys.VerifyAddress):
			if !u.Monetized {
				a.status = "Apply for monetization first"
				break
			}
			if key.Matches(msg, keys.Verify) {
				a.engine.VerifyIdentity()
			} else {
				a.engine.VerifyAddress()
			}
		case key.Matches(msg, keys.Dark):
			a.engine.ToggleDarkMode()
		case key.Matches(msg, keys.TickerText):
			cmd = a.startInput(inputTickerText, "Ticker text", "")
		default:
			a.handleLiveKey(msg)
		}
	}

	return a, tea.Batch(cmd, a.sync())
}

// handleLiveKey starts or ends a broadcast. The live and settings tabs
// both offer it.
func (a *App) handleLiveKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, keys.GoLive):
		if err := a.engine.GoLive(); err != nil {
			a.err = err
		}
	case key.Matches(msg, keys.EndLive):
		a.engine.EndLive()
	}
}

func (a *App) afterPublish(status string) {
	a.engine.Tap(nav.Feed)
	a.cursor = 0
	a.status = status
}

func (a *App) clearDrafts() {
	a.draftText = ""
	a.draftRef = model.MediaRef{}
	a.draftCat = -1
	a.captured = model.MediaRef{}
}

func (a App) draftCategory() model.Category {
	if a.draftCat < 0 || a.draftCat >= len(model.Categories) {
		return ""
	}
	return model.Categories[a.draftCat]
}

// moveCursor steps the feed selection and reports the new offset to the
// engine as a scroll sample.
func (a *App) moveCursor(delta int) {
	if len(a.vm.Feed) == 0 {
		return
	}
	a.cursor = min(max(a.cursor+delta, 0), len(a.vm.Feed)-1)
	a.engine.Scroll(float64(a.cursor * postHeightPx))
}

func (a *App) startInput(mode inputMode, placeholder, value string) tea.Cmd {
	a.inputMode = mode
	a.input.Placeholder = placeholder
	a.input.SetValue(value)
	a.input.CursorEnd()
	return tea.Batch(a.input.Focus(), textinput.Blink)
}

func (a App) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.inputMode = inputNone
		a.input.Blur()
		return a, a.sync()
	case tea.KeyEnter:
		mode, value := a.inputMode, a.input.Value()
		a.inputMode = inputNone
		a.input.Blur()
		cmd := a.commitInput(mode, value)
		return a, tea.Batch(cmd, a.sync())
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) commitInput(mode inputMode, value string) tea.Cmd {
	u := a.vm.Profile.User
	switch mode {
	case inputDescription:
		a.draftText = value
	case inputMediaPath:
		a.busy = true
		return tea.Batch(a.pickCmd(value), a.spinner.Tick)
	case inputDisplayName:
		if err := a.engine.EditProfile(value, u.Bio); err != nil {
			a.err = err
		}
	case inputBio:
		if err := a.engine.EditProfile(u.DisplayName, value); err != nil {
			a.err = err
		}
	case inputTickerText:
		a.engine.SetTickerText(value)
		a.engine.SetTickerMode(ticker.Custom)
	}
	return nil
}

func (a App) pickCmd(path string) tea.Cmd {
	src, timeout := a.picker(path), a.mediaTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		ref, err := src.PickMedia(ctx)
		return MediaPicked{Ref: ref, Err: err}
	}
}

func (a App) captureCmd() tea.Cmd {
	cam, timeout := a.camera, a.mediaTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		ref, err := cam.CapturePhoto(ctx)
		return PhotoCaptured{Ref: ref, Err: err}
	}
}

// handleMouseMsg turns a press/release pair into a swipe gesture and the
// wheel into feed scrolling.
func (a App) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelDown:
		if a.vm.Nav.ActiveTab != nav.Feed {
			var cmd tea.Cmd
			a.viewport, cmd = a.viewport.Update(msg)
			return a, cmd
		}
		a.moveCursor(1)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelUp:
		if a.vm.Nav.ActiveTab != nav.Feed {
			var cmd tea.Cmd
			a.viewport, cmd = a.viewport.Update(msg)
			return a, cmd
		}
		a.moveCursor(-1)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		a.pressing = true
		a.pressX, a.pressY = msg.X, msg.Y
		return a, nil
	case msg.Action == tea.MouseActionRelease && a.pressing:
		a.pressing = false
		a.engine.Swipe(nav.Gesture{
			DX: float64((msg.X - a.pressX) * pxPerCol),
			DY: float64((msg.Y - a.pressY) * pxPerRow),
		})
	default:
		return a, nil
	}
	return a, a.sync()
}

// sync re-reads the ViewModel and refreshes everything derived from it.
// Returns the first animation frame when the chrome has somewhere to go.
func (a *App) sync() tea.Cmd {
	vm, err := a.engine.View()
	if err != nil {
		a.err = err
		return nil
	}
	if vm.Nav.ActiveTab != a.vm.Nav.ActiveTab {
		a.viewport.GotoTop()
		a.modal = nil
	}
	a.vm = vm
	if a.cursor >= len(vm.Feed) {
		a.cursor = max(len(vm.Feed)-1, 0)
	}

	a.viewport.Height = a.bodyHeight()
	a.viewport.SetContent(a.renderBody())
	if vm.Nav.ActiveTab == nav.Feed {
		a.keepCursorVisible()
	}

	if a.animating || math.Abs(a.chromePos-a.chromeTarget()) < 0.01 {
		return nil
	}
	a.animating = true
	return animate()
}

func (a *App) keepCursorVisible() {
	top := a.cursor * postLines
	switch {
	case top < a.viewport.YOffset:
		a.viewport.SetYOffset(top)
	case top+postLines > a.viewport.YOffset+a.viewport.Height:
		a.viewport.SetYOffset(top + postLines - a.viewport.Height)
	}
}

func (a App) chromeTarget() float64 {
	if a.vm.Nav.ChromeVisible {
		return 1
	}
	return 0
}

func animate() tea.Cmd {
	return tea.Tick(frameRate, func(time.Time) tea.Msg { return chromeFrame{} })
}

func (a *App) stepChrome() tea.Cmd {
	target := a.chromeTarget()
	a.chromePos, a.chromeVel = a.spring.Update(a.chromePos, a.chromeVel, target)
	if math.Abs(a.chromePos-target) < 0.01 && math.Abs(a.chromeVel) < 0.01 {
		a.chromePos, a.chromeVel = target, 0
		a.animating = false
	}
	a.viewport.Height = a.bodyHeight()
	if !a.animating {
		return nil
	}
	return animate()
}

// chromeLines is how many of the tab bar and ticker rows are on screen.
func (a App) chromeLines() int {
	full := 1
	if a.vm.TickerVisible {
		full++
	}
	n := int(math.Round(a.chromePos * float64(full)))
	return min(max(n, 0), full)
}

func (a App) bodyHeight() int {
	h := a.height - a.chromeLines() - 1 // status bar
	h -= lipgloss.Height(a.help.View(keys))
	if a.err != nil {
		h--
	}
	if a.inputMode != inputNone {
		h--
	}
	return max(h, 1)
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}
	if a.debugVisible {
		return debugOverlay(a.ring, a.vm.ScrollDropped, a.width, a.height-1) + "\n" + debugStatusBar(a.width)
	}

	var parts []string
	if chrome := a.renderChrome(); chrome != "" {
		parts = append(parts, chrome)
	}

	if a.modal != nil {
		parts = append(parts, lipgloss.Place(a.width, a.viewport.Height, lipgloss.Center, lipgloss.Center,
			renderModal(*a.modal, a.width, a.now())))
	} else {
		parts = append(parts, a.viewport.View())
	}

	if a.inputMode != inputNone {
		parts = append(parts, InputBar.Width(a.width).Render(a.input.View()))
	}
	if a.err != nil {
		parts = append(parts, ErrorStyle.Width(a.width).Render("Error: "+a.err.Error()+" (press any key to dismiss)"))
	}
	parts = append(parts, a.help.View(keys), a.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a App) renderChrome() string {
	n := a.chromeLines()
	if n == 0 {
		return ""
	}
	rows := []string{renderTabBar(a.vm.Nav.ActiveTab, a.width)}
	if a.vm.TickerVisible {
		rows = append(rows, renderTicker(a.vm.TickerText, a.width))
	}
	return strings.Join(rows[:n], "\n")
}

func (a App) renderStatusBar() string {
	left := a.vm.Nav.ActiveTab.String()
	if a.busy {
		left += " " + a.spinner.View()
	}
	if a.status != "" {
		left += " · " + a.status
	}
	if a.vm.Live.Status == live.Live {
		left += " " + LiveBadge.Render("LIVE")
	}
	hints := StatusBarKey.Render("?") + StatusBarText.Render(":help ") +
		StatusBarKey.Render("q") + StatusBarText.Render(":quit")
	return StatusBar.Width(a.width).Render(left + "  " + hints)
}

// nextTickerMode cycles through ticker.Modes.
func nextTickerMode(m ticker.Mode) ticker.Mode {
	for i, mode := range ticker.Modes {
		if mode == m {
			return ticker.Modes[(i+1)%len(ticker.Modes)]
		}
	}
	return ticker.Modes[0]
}

// Cursor returns the current feed cursor (for testing).
func (a App) Cursor() int {
	return a.cursor
}

// ViewModel returns the last ViewModel read from the engine (for testing).
func (a App) ViewModel() app.ViewModel {
	return a.vm
}
