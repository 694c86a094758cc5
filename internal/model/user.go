package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// User is the signed-in account.
//
// Verified, AddressVerified and Monetized only ever move from false to true.
// The own-post set is a weak reference: ids may name posts the store does
// not hold, and readers must tolerate that.
type User struct {
	ID              string
	DisplayName     string
	Bio             string
	JoinedAt        time.Time
	Verified        bool
	AddressVerified bool
	Monetized       bool
	Followers       int
	Following       int

	own map[string]struct{}
}

// Clone returns a deep copy of u.
func (u User) Clone() User {
	c := u
	c.own = make(map[string]struct{}, len(u.own))
	for id := range u.own {
		c.own[id] = struct{}{}
	}
	return c
}

// AddOwnPost records id as published by u.
func (u *User) AddOwnPost(id string) {
	if u.own == nil {
		u.own = make(map[string]struct{})
	}
	u.own[id] = struct{}{}
}

// OwnsPost reports whether id is in u's own-post set.
func (u User) OwnsPost(id string) bool {
	_, ok := u.own[id]
	return ok
}

// OwnPostIDs returns the own-post set, sorted.
func (u User) OwnPostIDs() []string {
	ids := make([]string, 0, len(u.own))
	for id := range u.own {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IsSelf reports whether author names this user.
func (u User) IsSelf(author string) bool {
	if author == "" {
		return false
	}
	return author == SelfAuthor || author == u.DisplayName
}

// Edit replaces the display name and bio. The name must not be blank.
func (u *User) Edit(displayName, bio string) error {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return fmt.Errorf("%w: display name is required", ErrInvalidProfile)
	}
	u.DisplayName = displayName
	u.Bio = strings.TrimSpace(bio)
	return nil
}

// Verify marks the identity as verified.
func (u *User) Verify() { u.Verified = true }

// VerifyAddress marks the postal address as verified.
func (u *User) VerifyAddress() { u.AddressVerified = true }

// ApplyMonetization enrolls the user in monetization.
func (u *User) ApplyMonetization() { u.Monetized = true }

// AccountAge returns how long the account has existed at now.
func (u User) AccountAge(now time.Time) time.Duration {
	if now.Before(u.JoinedAt) {
		return 0
	}
	return now.Sub(u.JoinedAt)
}

// AccountAgeDays returns the account age in whole days.
func (u User) AccountAgeDays(now time.Time) int {
	return int(u.AccountAge(now) / (24 * time.Hour))
}
