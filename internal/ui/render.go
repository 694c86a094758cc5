package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/abelbrown/peoplesnews/internal/app"
	"github.com/abelbrown/peoplesnews/internal/live"
	"github.com/abelbrown/peoplesnews/internal/model"
	"github.com/abelbrown/peoplesnews/internal/nav"
)

// truncateRunes cuts s to at most n display cells, ending in "…" when cut.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return runewidth.Truncate(s, n, "…")
}

// relTime formats t relative to now: "just now", "5m", "3h", "2d".
func relTime(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

func checkmark(ok bool) string {
	if ok {
		return VerifiedBadge.Render("✓")
	}
	return ErrorStyle.UnsetPadding().Render("✗")
}

func renderTabBar(active nav.Tab, width int) string {
	var cells []string
	for i, t := range nav.Tabs {
		label := fmt.Sprintf("%d %s", i+1, t)
		if t == active {
			cells = append(cells, TabActive.Render(label))
		} else {
			cells = append(cells, TabInactive.Render(label))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	if width > 0 && lipgloss.Width(bar) > width {
		// Narrow terminals get the active tab only.
		return TabActive.Render(active.String())
	}
	return bar
}

func renderTicker(text string, width int) string {
	if width <= 2 {
		return TickerBar.Render(text)
	}
	return TickerBar.Width(width).Render(truncateRunes(text, width-2))
}

// renderBody renders the active tab into the viewport content.
func (a App) renderBody() string {
	th := themeFor(a.vm.DarkMode)
	now := a.now()
	w := a.viewport.Width

	switch a.vm.Nav.ActiveTab {
	case nav.Feed:
		return renderFeed(a.vm, a.cursor, th, w, now)
	case nav.Upload:
		return a.renderUpload(th)
	case nav.Camera:
		return a.renderCamera(th)
	case nav.Live:
		return renderLive(a.vm.Live, th)
	case nav.Account:
		return renderAccount(a.vm, th, w, now)
	case nav.Settings:
		return renderSettings(a.vm, th)
	case nav.Map:
		return renderMap(a.vm.Map, th, w)
	}
	return ""
}

// renderFeed draws exactly postLines lines per entry so the cursor can be
// located by arithmetic.
func renderFeed(vm app.ViewModel, cursor int, th theme, width int, now time.Time) string {
	if len(vm.Feed) == 0 {
		return th.Dim.Render("  Nothing here yet. Press f to switch feeds.") + "\n"
	}

	textWidth := max(width-4, 10)
	var b strings.Builder
	for i, p := range vm.Feed {
		marker := "  "
		if i == cursor {
			marker = th.Selected.Render(">")
		}

		var head, meta string
		if p.IsAd() {
			head = AdBadge.Render("Sponsored") + " " + th.Base.Bold(true).Render(p.Brand)
			meta = th.Dim.Render("ad")
		} else {
			head = CategoryBadge(p.Category) + " " + th.Base.Bold(true).Render(p.Author)
			if p.Live {
				head += " " + LiveBadge.Render("LIVE")
			}
			meta = fmt.Sprintf("%d views · %s", p.Views, relTime(now, p.CreatedAt))
			if !p.Media.IsZero() {
				meta += " · " + string(p.Media.Kind)
			}
			meta = th.Dim.Render(meta)
		}

		fmt.Fprintf(&b, "%s %s\n", marker, head)
		fmt.Fprintf(&b, "   %s\n", th.Base.Render(truncateRunes(p.Text, textWidth)))
		fmt.Fprintf(&b, "   %s\n", meta)
		b.WriteString("\n")
	}
	return b.String()
}

func (a App) renderUpload(th theme) string {
	var b strings.Builder
	b.WriteString(SectionHeader.Render("New report") + "\n")

	desc := a.draftText
	if desc == "" {
		desc = th.Dim.Render("(empty)")
	}
	ref := a.draftRef.URI
	if ref == "" {
		ref = th.Dim.Render("(none)")
	}
	cat := string(a.draftCategory())
	if cat == "" {
		cat = th.Dim.Render(string(model.CategoryOther) + " (default)")
	}

	fmt.Fprintf(&b, "  Description  %s\n", desc)
	fmt.Fprintf(&b, "  Media        %s\n", ref)
	fmt.Fprintf(&b, "  Category     %s\n\n", cat)
	b.WriteString(th.Dim.Render("  e describe · p pick media · c category · s post"))
	return b.String()
}

func (a App) renderCamera(th theme) string {
	var b strings.Builder
	b.WriteString(SectionHeader.Render("Camera") + "\n")
	if a.captured.IsZero() {
		b.WriteString(th.Dim.Render("  Viewfinder ready") + "\n\n")
		b.WriteString(th.Dim.Render("  space take photo"))
		return b.String()
	}
	fmt.Fprintf(&b, "  Photo  %s\n\n", a.captured.URI)
	b.WriteString(th.Dim.Render("  space retake · s post"))
	return b.String()
}

func renderLive(lv app.LiveView, th theme) string {
	var b strings.Builder
	b.WriteString(SectionHeader.Render("Live") + "\n")

	if lv.Status == live.Live {
		fmt.Fprintf(&b, "  %s  %d watching\n", LiveBadge.Render("LIVE"), lv.SessionViewers)
	} else {
		b.WriteString("  Offline\n")
	}
	fmt.Fprintf(&b, "  %d people live near you\n\n", lv.AmbientLive)

	fmt.Fprintf(&b, "  %s identity verified\n", checkmark(lv.Eligibility.Verified))
	fmt.Fprintf(&b, "  %s account age %d days\n", checkmark(lv.Eligibility.AccountAgeDays >= 7), lv.Eligibility.AccountAgeDays)
	if lv.Eligibility.Reason != nil {
		fmt.Fprintf(&b, "  %s\n", th.Dim.Render(lv.Eligibility.Reason.Error()))
	}

	b.WriteString("\n" + SectionHeader.Render("Streaming now") + "\n")
	for _, s := range lv.OtherStreamers {
		fmt.Fprintf(&b, "  • %s\n", s)
	}
	b.WriteString("\n" + th.Dim.Render("  g go live · x end"))
	return b.String()
}

func renderAccount(vm app.ViewModel, th theme, width int, now time.Time) string {
	p := vm.Profile
	u := p.User

	var b strings.Builder
	name := th.Base.Bold(true).Render(u.DisplayName)
	if u.Verified {
		name += " " + VerifiedBadge.Render("✓ verified")
	}
	b.WriteString(name + "\n")
	if u.Bio != "" {
		b.WriteString("  " + th.Base.Render(truncateRunes(u.Bio, max(width-4, 10))) + "\n")
	}
	fmt.Fprintf(&b, "  %d posts · %d followers · %d following · joined %dd ago\n\n",
		p.PostCount, u.Followers, u.Following, u.AccountAgeDays(now))

	b.WriteString(SectionHeader.Render("Top posts") + "\n")
	if !p.HasRealPosts {
		b.WriteString(th.Dim.Render("  Sample posts. Publish a report to build your profile.") + "\n")
	}
	for _, post := range p.Top {
		fmt.Fprintf(&b, "  %s %s %s\n", CategoryBadge(post.Category),
			truncateRunes(post.Text, max(width-30, 10)), th.Dim.Render(fmt.Sprintf("%d views", post.Views)))
	}
	b.WriteString("\n" + th.Dim.Render("  n edit name · b edit bio"))
	return b.String()
}

func renderSettings(vm app.ViewModel, th theme) string {
	u := vm.Profile.User
	onOff := func(v bool) string {
		if v {
			return "on"
		}
		return "off"
	}

	var b strings.Builder
	b.WriteString(SectionHeader.Render("Appearance") + "\n")
	fmt.Fprintf(&b, "  Dark mode   %s\n", onOff(vm.DarkMode))
	fmt.Fprintf(&b, "  Ticker      %s (%s)\n\n", vm.TickerMode, onOff(vm.TickerVisible))

	b.WriteString(SectionHeader.Render("Monetization") + "\n")
	if !u.Monetized {
		b.WriteString("  Not enrolled. Press m to apply.\n")
	} else {
		fmt.Fprintf(&b, "  %s enrolled\n", checkmark(true))
		fmt.Fprintf(&b, "  %s identity verified\n", checkmark(u.Verified))
		fmt.Fprintf(&b, "  %s address verified\n", checkmark(u.AddressVerified))
	}

	b.WriteString("\n" + SectionHeader.Render("Live Access") + "\n")
	el := vm.Live.Eligibility
	switch {
	case vm.Live.Status == live.Live:
		fmt.Fprintf(&b, "  %s  %d watching\n", LiveBadge.Render("LIVE"), vm.Live.SessionViewers)
	case el.CanGoLive:
		fmt.Fprintf(&b, "  %s ready to go live\n", checkmark(true))
	default:
		b.WriteString("  Verify + Wait 7 Days to Go Live\n")
	}

	b.WriteString("\n" + SectionHeader.Render("Earnings") + "\n")
	fmt.Fprintf(&b, "  $%.2f · %d views · %d uploads\n\n", vm.Stats.Earnings, vm.Stats.Views, vm.Stats.Uploads)
	b.WriteString(th.Dim.Render("  m monetize · v verify id · a verify address · g go live · x end · d dark · e ticker text"))
	return b.String()
}

func renderMap(mv app.MapView, th theme, width int) string {
	var b strings.Builder
	b.WriteString(SectionHeader.Render("Map") + "\n")
	fmt.Fprintf(&b, "  Centered on %.4f, %.4f\n\n", mv.Center.Lat, mv.Center.Lng)
	if len(mv.Pins) == 0 {
		b.WriteString(th.Dim.Render("  No geotagged reports."))
		return b.String()
	}
	for _, p := range mv.Pins {
		fmt.Fprintf(&b, "  📍 %.4f, %.4f  %s %s\n", p.Geo.Lat, p.Geo.Lng, CategoryBadge(p.Category),
			truncateRunes(p.Text, max(width-40, 10)))
	}
	return b.String()
}

func renderModal(p model.Post, width int, now time.Time) string {
	w := min(max(width-4, 20), 70)

	var b strings.Builder
	if p.IsAd() {
		b.WriteString(AdBadge.Render("Sponsored") + " " + p.Brand + "\n\n")
	} else {
		b.WriteString(CategoryBadge(p.Category) + " " + p.Author + "\n\n")
	}
	b.WriteString(lipgloss.NewStyle().Width(w-6).Render(p.Text) + "\n\n")
	if !p.Media.IsZero() {
		fmt.Fprintf(&b, "%s: %s\n", p.Media.Kind, truncateRunes(p.Media.URI, w-14))
	}
	fmt.Fprintf(&b, "%d views · %s", p.Views, relTime(now, p.CreatedAt))
	return Modal.Width(w).Render(b.String())
}
