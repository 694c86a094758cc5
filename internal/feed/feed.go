// Package feed derives the displayed feed from the post collection.
// All functions are pure: []model.Post in, []model.Post out. No side effects.
package feed

import (
	"fmt"
	"strings"

	"github.com/abelbrown/peoplesnews/internal/model"
)

// Mode selects which regular posts the feed shows.
type Mode int

const (
	// Interested shows every post.
	Interested Mode = iota
	// Following shows a deterministic subset standing in for followed accounts.
	Following
)

func (m Mode) String() string {
	switch m {
	case Interested:
		return "Interested"
	case Following:
		return "Following"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode matches s case-insensitively.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "interested":
		return Interested, true
	case "following":
		return Following, true
	}
	return Interested, false
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == Following {
		return Interested
	}
	return Following
}

// Compose returns the feed for mode.
//
// Ads are always kept at their position. With Interested every regular post
// is kept. With Following only regular posts at an even index of the
// regular-post subsequence (0, 2, 4, ...) are kept. There is no follow
// graph; the alternating rule is a fixed placeholder for one.
func Compose(posts []model.Post, mode Mode) []model.Post {
	if len(posts) == 0 {
		return []model.Post{}
	}

	result := make([]model.Post, 0, len(posts))
	regular := 0
	for _, p := range posts {
		if p.IsAd() {
			result = append(result, p)
			continue
		}
		if mode == Interested || regular%2 == 0 {
			result = append(result, p)
		}
		regular++
	}
	return result
}

// CountPosts returns the number of regular posts in posts.
func CountPosts(posts []model.Post) int {
	n := 0
	for _, p := range posts {
		if !p.IsAd() {
			n++
		}
	}
	return n
}

// FallbackCenter is the map centre used when no post carries a position.
var FallbackCenter = model.Geo{Lat: 40.7357, Lng: -74.1724}

// Geotagged keeps the regular posts that carry a position.
func Geotagged(posts []model.Post) []model.Post {
	result := make([]model.Post, 0, len(posts))
	for _, p := range posts {
		if !p.IsAd() && p.Geo != nil {
			result = append(result, p)
		}
	}
	return result
}

// MapCenter returns the position of the first geotagged post, or FallbackCenter.
func MapCenter(posts []model.Post) model.Geo {
	for _, p := range posts {
		if !p.IsAd() && p.Geo != nil {
			return *p.Geo
		}
	}
	return FallbackCenter
}
