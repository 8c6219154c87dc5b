package database

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account.
// The username is unique and immutable after registration.
// Read state is normalized into ReadPoem rows so a poem rename or
// deletion is an indexed update instead of a scan over every user.
type User struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Notes        string
	IsAdmin      bool
	PinnedTitle  *string
	ShowAllTab   bool
	ReadPoems    []ReadPoem `gorm:"constraint:OnDelete:CASCADE"`
}

// ReadPoem marks a single poem as read by a single user.
type ReadPoem struct {
	UserID    uint   `gorm:"primaryKey;autoIncrement:false"`
	PoemTitle string `gorm:"primaryKey;size:512"`
	CreatedAt time.Time
}

// HasRead reports whether the user has marked the given title as read.
// ReadPoems must be preloaded.
func (u *User) HasRead(title string) bool {
	for _, r := range u.ReadPoems {
		if r.PoemTitle == title {
			return true
		}
	}
	return false
}

// ReadTitles returns the titles of all poems the user has marked as read.
func (u *User) ReadTitles() []string {
	titles := make([]string, 0, len(u.ReadPoems))
	for _, r := range u.ReadPoems {
		titles = append(titles, r.PoemTitle)
	}
	return titles
}

// Poem is a single anthology entry. The title doubles as the primary key,
// so a rename is a delete and recreate under the new key plus a cascade
// into the dependent user state.
type Poem struct {
	Title     string `gorm:"primaryKey;size:512"`
	Author    string `gorm:"not null"`
	Text      string `gorm:"not null"`
	Position  int    `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
