package store

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/abelbrown/peoplesnews/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func testPost(id string) model.Post {
	return model.NewPost(id, "Alex", model.CategoryEvent, "text "+id, model.MediaRef{}, time.Now())
}

func TestNewStoreIsEmpty(t *testing.T) {
	st := newTestStore(t)

	posts, err := st.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("expected empty store, got %d posts", len(posts))
	}
	if posts == nil {
		t.Error("All should return an empty slice, not nil")
	}
}

func TestStoresAreIsolated(t *testing.T) {
	a := newTestStore(t)
	b := newTestStore(t)

	if err := a.Insert(testPost("p1")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	n, err := b.Len()
	if err != nil {
		t.Fatalf("Len failed: %v", err)
	}
	if n != 0 {
		t.Errorf("second store sees %d posts from the first", n)
	}
}

func TestInsertPrepends(t *testing.T) {
	st := newTestStore(t)

	for _, id := range []string{"p1", "p2", "p3"} {
		if err := st.Insert(testPost(id)); err != nil {
			t.Fatalf("Insert(%s) failed: %v", id, err)
		}
	}

	posts, err := st.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	want := []string{"p3", "p2", "p1"}
	if len(posts) != len(want) {
		t.Fatalf("got %d posts, want %d", len(posts), len(want))
	}
	for i, id := range want {
		if posts[i].ID != id {
			t.Errorf("posts[%d] = %s, want %s", i, posts[i].ID, id)
		}
	}
}

func TestInsertRoundTripsFields(t *testing.T) {
	st := newTestStore(t)
	at := time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)

	post := model.NewPost("p1", "Maria", model.CategoryAccident, "Two-car accident",
		model.MediaRef{URI: "file:///tmp/a.jpg", Kind: model.MediaImage}, at)
	post.Views = 500
	post.Live = true
	post.Geo = &model.Geo{Lat: 40.73, Lng: -74.17}
	ad := model.NewAd("ad1", "Beep Boop", "Delivering joy", model.MediaRef{}, at)

	if err := st.Insert(post); err != nil {
		t.Fatalf("Insert post failed: %v", err)
	}
	if err := st.Insert(ad); err != nil {
		t.Fatalf("Insert ad failed: %v", err)
	}

	got, err := st.Get("p1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Kind != model.KindPost || got.Author != "Maria" || got.Category != model.CategoryAccident {
		t.Errorf("post fields not preserved: %+v", got)
	}
	if got.Media != post.Media {
		t.Errorf("media = %+v, want %+v", got.Media, post.Media)
	}
	if got.Views != 500 || !got.Live {
		t.Errorf("views/live = %d/%v", got.Views, got.Live)
	}
	if got.Geo == nil || got.Geo.Lat != 40.73 || got.Geo.Lng != -74.17 {
		t.Errorf("geo = %+v", got.Geo)
	}
	if !got.CreatedAt.Equal(at) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, at)
	}

	gotAd, err := st.Get("ad1")
	if err != nil {
		t.Fatalf("Get ad failed: %v", err)
	}
	if !gotAd.IsAd() || gotAd.Brand != "Beep Boop" || gotAd.Author != "" || gotAd.Geo != nil {
		t.Errorf("ad fields not preserved: %+v", gotAd)
	}
}

func TestInsertRejectsDuplicateID(t *testing.T) {
	st := newTestStore(t)

	if err := st.Insert(testPost("p1")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	err := st.Insert(testPost("p1"))
	if !errors.Is(err, model.ErrInvalidPost) {
		t.Fatalf("duplicate insert = %v, want ErrInvalidPost", err)
	}

	n, _ := st.Len()
	if n != 1 {
		t.Errorf("duplicate insert changed the store: %d posts", n)
	}
}

func TestInsertRejectsMalformed(t *testing.T) {
	st := newTestStore(t)

	bad := []model.Post{
		testPost(""),
		model.NewPost("p2", "", model.CategoryEvent, "x", model.MediaRef{}, time.Now()),
		model.NewAd("ad1", "", "x", model.MediaRef{}, time.Now()),
		model.NewPost("p3", "Alex", model.CategoryEvent, "x", model.MediaRef{}, time.Time{}),
	}
	for _, p := range bad {
		if err := st.Insert(p); !errors.Is(err, model.ErrInvalidPost) {
			t.Errorf("Insert(%+v) = %v, want ErrInvalidPost", p, err)
		}
	}
	n, _ := st.Len()
	if n != 0 {
		t.Errorf("malformed inserts stored %d posts", n)
	}
}

func TestCreatedAtRoundTripsOutsideNanoRange(t *testing.T) {
	st := newTestStore(t)

	tests := []struct {
		id string
		at time.Time
	}{
		{"far-future", time.Date(2300, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"far-past", time.Date(1600, 6, 15, 8, 0, 0, 0, time.UTC)},
		{"year-one", time.Date(1, 1, 1, 0, 0, 1, 0, time.UTC)},
		{"sub-second", time.Date(2025, 6, 1, 12, 0, 0, 123456789, time.UTC)},
	}
	for _, tt := range tests {
		if err := st.Insert(model.NewPost(tt.id, "Alex", model.CategoryEvent, "x", model.MediaRef{}, tt.at)); err != nil {
			t.Fatalf("Insert %s failed: %v", tt.id, err)
		}
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := st.Get(tt.id)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if !got.CreatedAt.Equal(tt.at) {
				t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, tt.at)
			}
		})
	}
}

func TestRecordView(t *testing.T) {
	st := newTestStore(t)
	if err := st.Insert(testPost("p1")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	const k = 7
	for i := 0; i < k; i++ {
		if err := st.RecordView("p1"); err != nil {
			t.Fatalf("RecordView failed: %v", err)
		}
	}

	got, err := st.Get("p1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Views != k {
		t.Errorf("views = %d, want %d", got.Views, k)
	}
}

func TestRecordViewUnknownID(t *testing.T) {
	st := newTestStore(t)

	err := st.RecordView("missing")
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("RecordView(missing) = %v, want ErrNotFound", err)
	}
	if _, err := st.Get("missing"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Get(missing) = %v, want ErrNotFound", err)
	}
}

func TestRecordViewConcurrent(t *testing.T) {
	st := newTestStore(t)
	if err := st.Insert(testPost("p1")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	const workers, perWorker = 8, 25
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if err := st.RecordView("p1"); err != nil {
					t.Errorf("RecordView failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	got, _ := st.Get("p1")
	if got.Views != workers*perWorker {
		t.Errorf("views = %d, want %d", got.Views, workers*perWorker)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	st := newTestStore(t)
	if err := st.Insert(testPost("p1")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	posts, _ := st.All()
	posts[0].Views = 999
	posts[0].Text = "changed"

	got, _ := st.Get("p1")
	if got.Views != 0 || got.Text != "text p1" {
		t.Errorf("mutating All() result leaked into store: %+v", got)
	}
}

func TestSeedKeepsGivenOrder(t *testing.T) {
	st := newTestStore(t)

	var seed []model.Post
	for i := 1; i <= 4; i++ {
		seed = append(seed, testPost(fmt.Sprintf("p%d", i)))
	}
	if err := st.Seed(seed); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	posts, _ := st.All()
	for i := range seed {
		if posts[i].ID != seed[i].ID {
			t.Errorf("posts[%d] = %s, want %s", i, posts[i].ID, seed[i].ID)
		}
	}

	// A later insert still lands on top.
	if err := st.Insert(testPost("p5")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	posts, _ = st.All()
	if posts[0].ID != "p5" {
		t.Errorf("new post at %s, want p5 first", posts[0].ID)
	}
}

func TestReset(t *testing.T) {
	st := newTestStore(t)
	if err := st.Seed([]model.Post{testPost("p1"), testPost("p2")}); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if err := st.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	n, _ := st.Len()
	if n != 0 {
		t.Errorf("Len after Reset = %d", n)
	}
	// Ids are free again after reset.
	if err := st.Insert(testPost("p1")); err != nil {
		t.Errorf("Insert after Reset failed: %v", err)
	}
}
