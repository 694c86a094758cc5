// Package seed provides the demo feed and imports extra posts from RSS or
// Atom files.
package seed

import (
	"time"

	"github.com/abelbrown/peoplesnews/internal/model"
)

// DemoUserAge is how long ago the demo user joined.
const DemoUserAge = 45 * 24 * time.Hour

// DemoUser returns the signed-in user the app starts with.
func DemoUser(now time.Time) model.User {
	return model.User{
		ID:          "demo_user",
		DisplayName: "DemoUser",
		Bio:         "Local reporter. Coffee lover.",
		JoinedAt:    now.Add(-DemoUserAge),
		Followers:   120,
		Following:   56,
	}
}

// Posts returns the demo feed, newest first.
func Posts(now time.Time) []model.Post {
	img := func(uri string) model.MediaRef {
		return model.MediaRef{URI: uri, Kind: model.MediaImage}
	}

	p1 := model.NewPost("p1", "Alex", model.CategoryEvent,
		"Street festival on Main — lots of people!",
		img("https://placekitten.com/400/300"), now.Add(-20*time.Minute))
	p1.Views = 120

	p2 := model.NewPost("p2", "Maria", model.CategoryAccident,
		"Two-car accident on Rt. 10. Expect delays.",
		img("https://placebear.com/400/300"), now.Add(-45*time.Minute))
	p2.Views = 500

	ad1 := model.NewAd("ad1", "Beep Boop",
		"Beep Boop — delivering joy to your door.",
		img("https://picsum.photos/seed/ad1/600/240"), now.Add(-time.Hour))

	p3 := model.NewPost("p3", "Jordan", model.CategoryWeather,
		"Sudden hailstorm downtown!",
		img("https://picsum.photos/seed/wx1/400/300"), now.Add(-2*time.Hour))
	p3.Views = 78

	return []model.Post{p1, p2, ad1, p3}
}
