// Package profile derives the account page: the user's own posts and their
// most-viewed ranking.
package profile

import (
	"sort"

	"github.com/abelbrown/peoplesnews/internal/model"
)

// DefaultTopN is how many posts the "most viewed" strip shows.
const DefaultTopN = 3

// OwnPosts returns the regular posts written by user, in store order.
// A post counts when its author is the user's handle or display name, or
// when its id is in the user's own-post set. Ids in that set that name no
// post are ignored.
func OwnPosts(posts []model.Post, user model.User) []model.Post {
	result := make([]model.Post, 0)
	for _, p := range posts {
		if p.IsAd() {
			continue
		}
		if user.IsSelf(p.Author) || user.OwnsPost(p.ID) {
			result = append(result, p)
		}
	}
	return result
}

// TopN returns at most n posts ordered by views, highest first.
// Equal view counts keep their input order. posts is not modified.
func TopN(posts []model.Post, n int) []model.Post {
	if n <= 0 || len(posts) == 0 {
		return []model.Post{}
	}

	ranked := make([]model.Post, len(posts))
	copy(ranked, posts)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Views > ranked[j].Views
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Profile is the account page view model.
//
// When the user has not published anything, Posts and Top hold the
// placeholder set and HasRealPosts is false. PostCount always counts real
// posts only.
type Profile struct {
	User         model.User
	Posts        []model.Post
	Top          []model.Post
	HasRealPosts bool
	PostCount    int
}

// Build assembles the profile for user from the full post collection.
func Build(posts []model.Post, user model.User, n int) Profile {
	own := OwnPosts(posts, user)
	p := Profile{
		User:         user,
		HasRealPosts: len(own) > 0,
		PostCount:    len(own),
	}
	if !p.HasRealPosts {
		own = Placeholders()
	}
	p.Posts = own
	p.Top = TopN(own, n)
	return p
}

// Placeholders returns the sample posts shown on an empty profile.
// They are presentation filler and never enter the store.
func Placeholders() []model.Post {
	return []model.Post{
		{ID: "placeholder-1", Kind: model.KindPost, Author: model.SelfAuthor, Category: model.CategoryUpdate, Text: "Your first report will show up here."},
		{ID: "placeholder-2", Kind: model.KindPost, Author: model.SelfAuthor, Category: model.CategoryEvent, Text: "Share what is happening around you."},
		{ID: "placeholder-3", Kind: model.KindPost, Author: model.SelfAuthor, Category: model.CategoryWeather, Text: "Posts with the most views rise to the top."},
	}
}
