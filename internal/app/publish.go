package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/abelbrown/peoplesnews/internal/model"
	"github.com/abelbrown/peoplesnews/internal/otel"
)

const (
	// EmptyUploadText replaces a blank description on a media-only upload.
	EmptyUploadText = "(no description)"
	// CaptureText is the body of every camera post.
	CaptureText = "Captured via camera"
)

// shortID is the first group of a random UUID: 8 hex characters.
func shortID() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}

// Publish creates an upload from the form. It needs a description or media.
// A blank category becomes Other.
func (e *Engine) Publish(text string, ref model.MediaRef, cat model.Category) (model.Post, error) {
	text = strings.TrimSpace(text)
	if text == "" && ref.IsZero() {
		err := fmt.Errorf("%w: add a description or media", model.ErrInvalidPost)
		e.log.Emit(otel.Event{Level: otel.LevelWarn, Kind: otel.KindPublishDenied, Comp: "app", Err: err.Error()})
		return model.Post{}, err
	}
	if text == "" {
		text = EmptyUploadText
	}
	if cat == "" {
		cat = model.CategoryOther
	}

	p := model.NewPost("p_"+e.opts.NewID(), model.SelfAuthor, cat, text, ref, e.now())
	return p, e.insertOwn(p)
}

// Capture publishes a camera photo. It needs a captured ref.
// The id is cam_<unix ms>; a second capture in the same millisecond gets
// a random suffix.
func (e *Engine) Capture(ref model.MediaRef) (model.Post, error) {
	if ref.IsZero() {
		err := fmt.Errorf("%w: take a photo first", model.ErrInvalidPost)
		e.log.Emit(otel.Event{Level: otel.LevelWarn, Kind: otel.KindPublishDenied, Comp: "app", Err: err.Error()})
		return model.Post{}, err
	}

	at := e.now()
	id := "cam_" + strconv.FormatInt(at.UnixMilli(), 10)
	if _, err := e.store.Get(id); err == nil {
		id += "_" + e.opts.NewID()
	}
	p := model.NewPost(id, model.SelfAuthor, model.CategoryOther, CaptureText, ref, at)
	return p, e.insertOwn(p)
}

func (e *Engine) insertOwn(p model.Post) error {
	if err := e.store.Insert(p); err != nil {
		e.log.Emit(otel.Event{Level: otel.LevelError, Kind: otel.KindPublishDenied, Comp: "app", PostID: p.ID, Err: err.Error()})
		return fmt.Errorf("publish: %w", err)
	}
	e.user.AddOwnPost(p.ID)
	e.log.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindPublish, Comp: "app", PostID: p.ID, Mode: string(p.Category)})
	return nil
}

// Import inserts posts from a seed feed, skipping ids already in the store.
// Returns how many were added.
func (e *Engine) Import(posts []model.Post) (int, error) {
	added := 0
	for _, p := range posts {
		if _, err := e.store.Get(p.ID); err == nil {
			continue
		}
		if err := e.store.Insert(p); err != nil {
			return added, fmt.Errorf("import %s: %w", p.ID, err)
		}
		added++
	}
	if added > 0 {
		e.log.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindSeedImport, Comp: "app", Count: added})
	}
	return added, nil
}
