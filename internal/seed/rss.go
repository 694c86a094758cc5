package seed

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/abelbrown/peoplesnews/internal/model"
)

// maxImportText caps the body of an imported post, in runes.
const maxImportText = 280

// FromFeed parses an RSS, Atom or JSON feed and converts each item into a
// regular post. Items without a title or description are skipped.
func FromFeed(ctx context.Context, r io.Reader, fetched time.Time) ([]model.Post, error) {
	parser := gofeed.NewParser()
	feed, err := parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	posts := make([]model.Post, 0, len(feed.Items))
	for _, item := range feed.Items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, ok := convertItem(item, feed.Title, fetched)
		if !ok {
			continue
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// FromFile opens path and imports it with FromFeed.
func FromFile(ctx context.Context, path string, fetched time.Time) ([]model.Post, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed feed: %w", err)
	}
	defer f.Close()

	posts, err := FromFeed(ctx, f, fetched)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return posts, nil
}

func convertItem(item *gofeed.Item, feedTitle string, fetched time.Time) (model.Post, bool) {
	text := strings.TrimSpace(item.Title)
	if text == "" {
		text = strings.TrimSpace(item.Description)
	}
	if text == "" {
		return model.Post{}, false
	}

	created := itemTime(item, fetched)

	author := strings.TrimSpace(feedTitle)
	if item.Author != nil && strings.TrimSpace(item.Author.Name) != "" {
		author = strings.TrimSpace(item.Author.Name)
	}
	if author == "" {
		author = "Newsroom"
	}

	cat := model.CategoryUpdate
	for _, c := range item.Categories {
		if parsed, ok := model.ParseCategory(c); ok {
			cat = parsed
			break
		}
	}

	return model.NewPost(itemID(item), author, cat, truncate(text, maxImportText), itemMedia(item), created), true
}

// maxClockSkew is how far past the fetch time an item date may lie.
const maxClockSkew = 24 * time.Hour

var earliestItem = time.Unix(0, 0)

// itemTime returns the item's published (or updated) date, or fetched
// when the feed gives none or one outside [1970, fetched+maxClockSkew].
func itemTime(item *gofeed.Item, fetched time.Time) time.Time {
	for _, t := range []*time.Time{item.PublishedParsed, item.UpdatedParsed} {
		if t == nil {
			continue
		}
		if t.Before(earliestItem) || t.After(fetched.Add(maxClockSkew)) {
			return fetched
		}
		return *t
	}
	return fetched
}

func itemMedia(item *gofeed.Item) model.MediaRef {
	if item.Image != nil && item.Image.URL != "" {
		return model.MediaRef{URI: item.Image.URL, Kind: model.MediaImage}
	}
	for _, enc := range item.Enclosures {
		if enc == nil || enc.URL == "" {
			continue
		}
		switch {
		case strings.HasPrefix(enc.Type, "video/"):
			return model.MediaRef{URI: enc.URL, Kind: model.MediaVideo}
		case strings.HasPrefix(enc.Type, "image/"):
			return model.MediaRef{URI: enc.URL, Kind: model.MediaImage}
		}
	}
	return model.MediaRef{}
}

// itemID derives a stable id from the GUID, falling back to the link and
// then the title.
func itemID(item *gofeed.Item) string {
	key := item.GUID
	if key == "" {
		key = item.Link
	}
	if key == "" {
		key = item.Title
		if item.PublishedParsed != nil {
			key += item.PublishedParsed.String()
		}
	}
	h := sha256.Sum256([]byte(key))
	return "rss_" + hex.EncodeToString(h[:6])
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
