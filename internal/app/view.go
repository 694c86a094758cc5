package app

import (
	"fmt"

	"github.com/abelbrown/peoplesnews/internal/feed"
	"github.com/abelbrown/peoplesnews/internal/live"
	"github.com/abelbrown/peoplesnews/internal/model"
	"github.com/abelbrown/peoplesnews/internal/nav"
	"github.com/abelbrown/peoplesnews/internal/profile"
	"github.com/abelbrown/peoplesnews/internal/ticker"
)

// Stats are the lifetime numbers on the settings screen.
type Stats struct {
	Earnings float64
	Views    int
	Uploads  int
}

// DemoStats are shown until a real earnings backend exists.
var DemoStats = Stats{Earnings: 152.75, Views: 12840, Uploads: 42}

// LiveView is what the live tab renders.
type LiveView struct {
	live.Snapshot
	Eligibility    live.Eligibility
	OtherStreamers []string
}

// MapView is what the map tab renders.
type MapView struct {
	Center model.Geo
	Pins   []model.Post
}

// ViewModel is everything the UI reads. It is rebuilt after every event
// and shares no memory with the Engine.
type ViewModel struct {
	Nav           nav.State
	ScrollDropped int // samples rejected by the scroll throttle

	FeedMode  feed.Mode
	Feed      []model.Post
	PostCount int // regular posts in Feed

	TickerMode    ticker.Mode
	TickerText    string
	TickerVisible bool

	Live    LiveView
	Profile profile.Profile
	Map     MapView

	DarkMode bool
	Stats    Stats
}

// View derives the current ViewModel.
func (e *Engine) View() (ViewModel, error) {
	posts, err := e.store.All()
	if err != nil {
		return ViewModel{}, fmt.Errorf("load posts: %w", err)
	}

	composed := feed.Compose(posts, e.feedMode)
	pins := feed.Geotagged(posts)
	tc := e.ticker.Config()

	return ViewModel{
		Nav:           e.nav.State(),
		ScrollDropped: e.scroll.Dropped(),

		FeedMode:  e.feedMode,
		Feed:      composed,
		PostCount: feed.CountPosts(composed),

		TickerMode:    tc.Mode,
		TickerText:    e.ticker.Text(),
		TickerVisible: tc.Visible,

		Live: LiveView{
			Snapshot:       e.live.Snapshot(),
			Eligibility:    e.live.Check(e.user, e.now()),
			OtherStreamers: append([]string(nil), live.OtherStreamers...),
		},
		Profile: profile.Build(posts, e.user.Clone(), e.opts.TopN),
		Map: MapView{
			Center: feed.MapCenter(posts),
			Pins:   pins,
		},

		DarkMode: e.darkMode,
		Stats:    DemoStats,
	}, nil
}
