// Package media picks and captures attachments for new posts.
//
// Both operations may block on the user, so callers run them off the UI
// loop (as a tea.Cmd) and hand the result back as a message.
package media

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abelbrown/peoplesnews/internal/model"
)

// ErrCancelled means the user backed out. It is a normal outcome, not a
// failure.
var ErrCancelled = errors.New("media: cancelled")

// Source yields media references.
type Source interface {
	PickMedia(ctx context.Context) (model.MediaRef, error)
	CapturePhoto(ctx context.Context) (model.MediaRef, error)
}

var videoExts = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".m4v":  true,
	".webm": true,
	".mkv":  true,
	".avi":  true,
}

// KindOf guesses the media kind from a path or URL extension.
func KindOf(path string) model.MediaKind {
	if videoExts[strings.ToLower(filepath.Ext(path))] {
		return model.MediaVideo
	}
	return model.MediaImage
}

// FilePicker resolves a path typed into the upload form.
type FilePicker struct {
	// Path returns the chosen path; "" means the user cancelled.
	Path func() string
	// Camera backs CapturePhoto. Nil means no camera is available.
	Camera *MockCamera
}

// PickMedia validates the chosen path and returns a file:// reference.
func (f FilePicker) PickMedia(ctx context.Context) (model.MediaRef, error) {
	if err := ctx.Err(); err != nil {
		return model.MediaRef{}, err
	}
	var path string
	if f.Path != nil {
		path = strings.TrimSpace(f.Path())
	}
	if path == "" {
		return model.MediaRef{}, ErrCancelled
	}

	abs, err := filepath.Abs(expandHome(path))
	if err != nil {
		return model.MediaRef{}, fmt.Errorf("resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return model.MediaRef{}, fmt.Errorf("pick media: %w", err)
	}
	if info.IsDir() {
		return model.MediaRef{}, fmt.Errorf("pick media: %s is a directory", abs)
	}

	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return model.MediaRef{URI: u.String(), Kind: KindOf(abs)}, nil
}

// CapturePhoto delegates to the configured camera.
func (f FilePicker) CapturePhoto(ctx context.Context) (model.MediaRef, error) {
	if f.Camera == nil {
		return model.MediaRef{}, errors.New("capture photo: no camera available")
	}
	return f.Camera.CapturePhoto(ctx)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// MockCamera stands in for a device camera with a placeholder photo
// seeded by the capture time.
type MockCamera struct {
	Now func() time.Time
}

// CapturePhoto returns a placeholder photo URL.
func (c *MockCamera) CapturePhoto(ctx context.Context) (model.MediaRef, error) {
	if err := ctx.Err(); err != nil {
		return model.MediaRef{}, err
	}
	now := time.Now
	if c != nil && c.Now != nil {
		now = c.Now
	}
	uri := fmt.Sprintf("https://picsum.photos/seed/cam%d/600/800", now().UnixMilli())
	return model.MediaRef{URI: uri, Kind: model.MediaImage}, nil
}

// PickMedia is unsupported on a bare camera.
func (c *MockCamera) PickMedia(context.Context) (model.MediaRef, error) {
	return model.MediaRef{}, ErrCancelled
}
