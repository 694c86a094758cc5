package seed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abelbrown/peoplesnews/internal/model"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestPostsAreValid(t *testing.T) {
	posts := Posts(now)
	if len(posts) != 4 {
		t.Fatalf("got %d demo posts, want 4", len(posts))
	}
	seen := map[string]bool{}
	for _, p := range posts {
		if err := p.Validate(); err != nil {
			t.Errorf("demo post %s invalid: %v", p.ID, err)
		}
		if seen[p.ID] {
			t.Errorf("duplicate id %s", p.ID)
		}
		seen[p.ID] = true
	}
	if !posts[2].IsAd() || posts[2].Brand != "Beep Boop" {
		t.Errorf("third post should be the Beep Boop ad: %+v", posts[2])
	}
	if posts[1].Views != 500 {
		t.Errorf("p2 views = %d, want 500", posts[1].Views)
	}
}

func TestDemoUser(t *testing.T) {
	u := DemoUser(now)
	if u.Verified || u.AccountAgeDays(now) != 45 {
		t.Errorf("demo user = %+v", u)
	}
	if u.Followers != 120 || u.Following != 56 {
		t.Errorf("counts = %d/%d", u.Followers, u.Following)
	}
}

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Township Wire</title>
  <item>
    <title>Road closed on Elm St.</title>
    <guid>elm-1</guid>
    <category>traffic</category>
    <pubDate>Sun, 01 Jun 2025 10:00:00 GMT</pubDate>
  </item>
  <item>
    <title>Drone footage of the parade</title>
    <guid>parade-2</guid>
    <author>pat@example.com (Pat)</author>
    <category>Local</category>
    <enclosure url="https://example.com/parade.mp4" length="1000" type="video/mp4"/>
  </item>
  <item>
    <guid>empty-3</guid>
  </item>
</channel>
</rss>`

func TestFromFeed(t *testing.T) {
	posts, err := FromFeed(context.Background(), strings.NewReader(sampleRSS), now)
	if err != nil {
		t.Fatalf("FromFeed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("got %d posts, want 2 (empty item skipped)", len(posts))
	}

	road := posts[0]
	if road.Text != "Road closed on Elm St." || road.Category != model.CategoryTraffic {
		t.Errorf("first post = %+v", road)
	}
	if road.Author != "Township Wire" {
		t.Errorf("author fallback = %q, want feed title", road.Author)
	}
	if !road.CreatedAt.Equal(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("CreatedAt = %v", road.CreatedAt)
	}
	if !strings.HasPrefix(road.ID, "rss_") {
		t.Errorf("ID = %q", road.ID)
	}

	parade := posts[1]
	if parade.Category != model.CategoryUpdate {
		t.Errorf("unknown category should default to Update, got %s", parade.Category)
	}
	if parade.Media.Kind != model.MediaVideo || parade.Media.URI != "https://example.com/parade.mp4" {
		t.Errorf("media = %+v", parade.Media)
	}
	if !parade.CreatedAt.Equal(now) {
		t.Errorf("missing pubDate should use fetch time, got %v", parade.CreatedAt)
	}

	for _, p := range posts {
		if err := p.Validate(); err != nil {
			t.Errorf("imported post invalid: %v", err)
		}
	}
}

func TestFromFeedStableIDs(t *testing.T) {
	a, _ := FromFeed(context.Background(), strings.NewReader(sampleRSS), now)
	b, _ := FromFeed(context.Background(), strings.NewReader(sampleRSS), now.Add(time.Hour))
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Errorf("id changed between imports: %s vs %s", a[i].ID, b[i].ID)
		}
	}
	if a[0].ID == a[1].ID {
		t.Error("distinct items share an id")
	}
}

func TestFromFeedInvalid(t *testing.T) {
	if _, err := FromFeed(context.Background(), strings.NewReader("not a feed"), now); err == nil {
		t.Error("FromFeed(garbage) should fail")
	}
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.xml")
	if err := os.WriteFile(path, []byte(sampleRSS), 0o644); err != nil {
		t.Fatal(err)
	}
	posts, err := FromFile(context.Background(), path, now)
	if err != nil || len(posts) != 2 {
		t.Fatalf("FromFile = %d posts, %v", len(posts), err)
	}

	if _, err := FromFile(context.Background(), filepath.Join(t.TempDir(), "missing.xml"), now); err == nil {
		t.Error("FromFile(missing) should fail")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("héllo wörld", 8); got != "héllo..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
}

func TestFromFeedImplausibleDates(t *testing.T) {
	const feed = `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Wire</title>
  <item><title>From the future</title><guid>f1</guid><pubDate>Mon, 01 Jan 2300 00:00:00 GMT</pubDate></item>
  <item><title>From the past</title><guid>f2</guid><pubDate>Sat, 01 Jan 1600 00:00:00 GMT</pubDate></item>
  <item><title>Recent</title><guid>f3</guid><pubDate>Sun, 01 Jun 2025 10:00:00 GMT</pubDate></item>
</channel></rss>`

	posts, err := FromFeed(context.Background(), strings.NewReader(feed), now)
	if err != nil {
		t.Fatalf("FromFeed: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("got %d posts, want 3", len(posts))
	}
	for _, p := range posts[:2] {
		if !p.CreatedAt.Equal(now) {
			t.Errorf("%q CreatedAt = %v, want fetch time", p.Text, p.CreatedAt)
		}
	}
	if want := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC); !posts[2].CreatedAt.Equal(want) {
		t.Errorf("recent CreatedAt = %v, want %v", posts[2].CreatedAt, want)
	}
}
