package models

import (
	"slices"
	"strings"
	"time"
)

// User is a registered member profile.
type User struct {
	ID           string     `json:"id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	PasswordHash []byte     `json:"-"`
	DateOfBirth  string     `json:"date_of_birth,omitempty"`
	Nationality  string     `json:"nationality,omitempty"`
	Gender       string     `json:"gender,omitempty"`
	Religion     Religion   `json:"religion"`
	Visibility   Visibility `json:"visibility"`
	Language     Language   `json:"language"`
	AvatarURL    string     `json:"avatar_url"`
	IsPremium    bool       `json:"is_premium"`
	CircleIDs    []string   `json:"circle_ids,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Name is the display name shown on posts and comments.
func (u *User) Name() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// InCircle reports whether id belongs to the user's circle.
func (u *User) InCircle(id string) bool {
	return slices.Contains(u.CircleIDs, id)
}

// Clone returns a deep copy, so cached sessions never share slices.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.CircleIDs = slices.Clone(u.CircleIDs)
	c.PasswordHash = slices.Clone(u.PasswordHash)
	return &c
}

// ProfileUpdate carries the optional fields of a profile edit. Nil fields
// are left untouched.
type ProfileUpdate struct {
	FirstName  *string     `json:"first_name,omitempty"`
	LastName   *string     `json:"last_name,omitempty"`
	Religion   *Religion   `json:"religion,omitempty"`
	Visibility *Visibility `json:"visibility,omitempty"`
	Language   *Language   `json:"language,omitempty"`
	AvatarURL  *string     `json:"avatar_url,omitempty"`
}

// Apply copies the set fields onto u.
func (p ProfileUpdate) Apply(u *User) {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Religion != nil {
		u.Religion = *p.Religion
	}
	if p.Visibility != nil {
		u.Visibility = *p.Visibility
	}
	if p.Language != nil {
		u.Language = *p.Language
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
}
