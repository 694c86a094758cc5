package model

import "errors"

// Failures returned to the presentation layer. Wrapped errors keep these
// as their root, so callers test with errors.Is.
var (
	ErrInvalidPost    = errors.New("invalid post")
	ErrNotFound       = errors.New("post not found")
	ErrNotVerified    = errors.New("verify identity to go live")
	ErrAccountTooNew  = errors.New("account must be at least 7 days old")
	ErrInvalidProfile = errors.New("invalid profile")
)
