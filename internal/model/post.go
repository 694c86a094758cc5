// Package model defines the data shared by every People's News component:
// posts and advertisements, the signed-in user, and the error taxonomy.
//
// # Posts
//
// A Post is a tagged variant. Kind says whether it is a regular post or an
// advertisement; constructors and Validate enforce the fields each kind
// must (and must not) carry, so callers switch on Kind instead of probing
// optional fields.
//
// Posts are values. The only field that changes after creation is Views,
// and only the post store changes it.
package model

import (
	"fmt"
	"strings"
	"time"
)

// SelfAuthor is the handle stamped on posts published from this client.
const SelfAuthor = "You"

// Kind discriminates the Post variant.
type Kind int

const (
	KindPost Kind = iota
	KindAd
)

func (k Kind) String() string {
	switch k {
	case KindPost:
		return "post"
	case KindAd:
		return "ad"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Category is the subject tag of a regular post.
type Category string

const (
	CategoryEvent    Category = "Event"
	CategoryAccident Category = "Accident"
	CategoryWeather  Category = "Weather"
	CategoryTraffic  Category = "Traffic"
	CategoryPolice   Category = "Police"
	CategoryUpdate   Category = "Update"
	CategoryOther    Category = "Other"
)

// Categories lists every known category in display order.
var Categories = []Category{
	CategoryEvent,
	CategoryAccident,
	CategoryWeather,
	CategoryTraffic,
	CategoryPolice,
	CategoryUpdate,
	CategoryOther,
}

// OrDefault returns c, or Update when c is empty.
func (c Category) OrDefault() Category {
	if c == "" {
		return CategoryUpdate
	}
	return c
}

// ParseCategory matches s case-insensitively against the known categories.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, true
		}
	}
	return "", false
}

// MediaKind distinguishes image and video attachments.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// MediaRef is an opaque handle to captured or picked media.
// The core never reads the bytes behind it.
type MediaRef struct {
	URI  string
	Kind MediaKind
}

// IsZero reports whether no media is attached.
func (m MediaRef) IsZero() bool { return m.URI == "" }

// Geo is the position a post was reported from.
type Geo struct {
	Lat float64
	Lng float64
}

// Post is a feed entry: a regular post or an advertisement.
type Post struct {
	ID        string
	Kind      Kind
	Text      string
	Media     MediaRef
	Views     int
	CreatedAt time.Time
	Geo       *Geo

	// Regular posts only.
	Author   string
	Category Category
	Live     bool

	// Advertisements only.
	Brand string
}

// NewPost builds a regular post with zero views.
func NewPost(id, author string, cat Category, text string, media MediaRef, at time.Time) Post {
	return Post{
		ID:        id,
		Kind:      KindPost,
		Author:    author,
		Category:  cat,
		Text:      text,
		Media:     media,
		CreatedAt: at,
	}
}

// NewAd builds an advertisement with zero views.
func NewAd(id, brand, text string, media MediaRef, at time.Time) Post {
	return Post{
		ID:        id,
		Kind:      KindAd,
		Brand:     brand,
		Text:      text,
		Media:     media,
		CreatedAt: at,
	}
}

// IsAd reports whether p is an advertisement.
func (p Post) IsAd() bool { return p.Kind == KindAd }

// Validate checks the fields required by p's kind.
// The returned error wraps ErrInvalidPost.
func (p Post) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidPost)
	}
	if p.Views < 0 {
		return fmt.Errorf("%w: %s has negative view count", ErrInvalidPost, p.ID)
	}
	if p.CreatedAt.IsZero() {
		return fmt.Errorf("%w: %s has no creation time", ErrInvalidPost, p.ID)
	}
	switch p.Kind {
	case KindPost:
		if strings.TrimSpace(p.Author) == "" {
			return fmt.Errorf("%w: post %s has no author", ErrInvalidPost, p.ID)
		}
		if p.Brand != "" {
			return fmt.Errorf("%w: post %s carries an ad brand", ErrInvalidPost, p.ID)
		}
	case KindAd:
		if strings.TrimSpace(p.Brand) == "" {
			return fmt.Errorf("%w: ad %s has no brand", ErrInvalidPost, p.ID)
		}
		if p.Author != "" {
			return fmt.Errorf("%w: ad %s has an author", ErrInvalidPost, p.ID)
		}
	default:
		return fmt.Errorf("%w: %s has unknown kind %v", ErrInvalidPost, p.ID, p.Kind)
	}
	return nil
}
