package nav

import (
	"testing"
	"time"
)

func TestSwipe(t *testing.T) {
	tests := []struct {
		name    string
		from    Tab
		g       Gesture
		want    Tab
		changed bool
	}{
		{"right swipe goes back", Upload, Gesture{DX: 80}, Feed, true},
		{"left swipe goes forward", Feed, Gesture{DX: -80}, Upload, true},
		{"below threshold", Upload, Gesture{DX: 30}, Upload, false},
		{"exactly threshold", Upload, Gesture{DX: 60}, Upload, false},
		{"past first tab", Feed, Gesture{DX: 80}, Feed, false},
		{"past last tab", Settings, Gesture{DX: -80}, Settings, false},
		{"vertical dominant", Upload, Gesture{DX: 80, DY: 200}, Upload, false},
		{"diagonal mostly horizontal", Camera, Gesture{DX: -90, DY: 40}, Live, true},
		{"from map", Map, Gesture{DX: -120}, Map, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(DefaultConfig())
			c.SetTab(tt.from)
			changed := c.Swipe(tt.g)
			if changed != tt.changed {
				t.Errorf("Swipe changed = %v, want %v", changed, tt.changed)
			}
			if c.ActiveTab() != tt.want {
				t.Errorf("ActiveTab = %v, want %v", c.ActiveTab(), tt.want)
			}
		})
	}
}

func TestSwipeWalksWholeOrder(t *testing.T) {
	c := NewController(DefaultConfig())
	for i := 1; i < len(PagingOrder); i++ {
		c.Swipe(Gesture{DX: -100})
		if c.ActiveTab() != PagingOrder[i] {
			t.Fatalf("step %d: ActiveTab = %v, want %v", i, c.ActiveTab(), PagingOrder[i])
		}
	}
	for i := len(PagingOrder) - 2; i >= 0; i-- {
		c.Swipe(Gesture{DX: 100})
		if c.ActiveTab() != PagingOrder[i] {
			t.Fatalf("back step %d: ActiveTab = %v, want %v", i, c.ActiveTab(), PagingOrder[i])
		}
	}
}

func TestScrollHysteresis(t *testing.T) {
	c := NewController(DefaultConfig())

	var got []bool
	for _, y := range []float64{0, 20, 5} {
		got = append(got, c.Scroll(y))
	}
	want := []bool{true, false, true}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d: visible = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScrollDeadBand(t *testing.T) {
	c := NewController(DefaultConfig())

	// Small moves never cross the band, but each one updates the reference.
	for _, y := range []float64{10, 20, 30, 40} {
		if !c.Scroll(y) {
			t.Fatalf("Scroll(%v) hid chrome inside dead band", y)
		}
	}
	if c.LastScrollY() != 40 {
		t.Errorf("LastScrollY = %v, want 40", c.LastScrollY())
	}

	if c.Scroll(53) {
		t.Error("Scroll(53) from 40 should hide chrome")
	}
	if c.Scroll(45) {
		t.Error("Scroll(45) from 53 is inside the band and should keep chrome hidden")
	}
	if !c.Scroll(30) {
		t.Error("Scroll(30) from 45 should show chrome")
	}
}

func TestReset(t *testing.T) {
	c := NewController(DefaultConfig())
	c.SetTab(Account)
	c.Scroll(100)
	c.Reset()
	if s := c.State(); s != (State{ActiveTab: Feed, ChromeVisible: true}) {
		t.Errorf("after Reset: %+v", s)
	}
	if c.LastScrollY() != 0 {
		t.Errorf("LastScrollY = %v after Reset", c.LastScrollY())
	}
}

func TestParseTab(t *testing.T) {
	for _, tab := range Tabs {
		got, ok := ParseTab(tab.String())
		if !ok || got != tab {
			t.Errorf("ParseTab(%q) = %v, %v", tab.String(), got, ok)
		}
	}
	if got, ok := ParseTab(" settings "); !ok || got != Settings {
		t.Errorf("ParseTab(settings) = %v, %v", got, ok)
	}
	if _, ok := ParseTab("inbox"); ok {
		t.Error("ParseTab(inbox) should fail")
	}
	if Tab(42).String() != "Tab(42)" {
		t.Errorf("unknown tab String = %q", Tab(42).String())
	}
}

func TestScrollThrottle(t *testing.T) {
	c := NewController(DefaultConfig())
	th := NewScrollThrottle(c, 10, 1)
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if applied, visible := th.Sample(0, start); !applied || !visible {
		t.Fatalf("first sample: applied=%v visible=%v", applied, visible)
	}

	// Same instant: the single burst token is spent.
	applied, visible := th.Sample(50, start)
	if applied {
		t.Error("second sample at the same instant should be dropped")
	}
	if !visible || c.LastScrollY() != 0 {
		t.Errorf("dropped sample changed state: visible=%v last=%v", visible, c.LastScrollY())
	}
	if th.Dropped() != 1 {
		t.Errorf("Dropped = %d, want 1", th.Dropped())
	}

	// 100ms later a token is available again.
	applied, visible = th.Sample(50, start.Add(100*time.Millisecond))
	if !applied || visible {
		t.Errorf("sample after refill: applied=%v visible=%v", applied, visible)
	}
}
