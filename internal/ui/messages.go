// Package ui provides the Bubble Tea TUI for People's News.
package ui

import "github.com/abelbrown/peoplesnews/internal/model"

// AmbientTick carries one random step for the ambient live counter.
type AmbientTick struct {
	Delta int
}

// SeedLoaded is sent when a seed feed has been parsed in the background.
type SeedLoaded struct {
	Source string
	Posts  []model.Post
	Err    error
}

// MediaPicked is sent when the upload picker resolves.
type MediaPicked struct {
	Ref model.MediaRef
	Err error
}

// PhotoCaptured is sent when the camera returns.
type PhotoCaptured struct {
	Ref model.MediaRef
	Err error
}

// chromeFrame advances the chrome spring by one animation frame.
type chromeFrame struct{}
