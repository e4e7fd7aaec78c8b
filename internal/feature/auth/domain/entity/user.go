// Package entity defines the domain entities for the auth feature.
package entity

import (
	"crypto/md5"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserLevel grades a user's privileges.
type UserLevel string

const (
	// LevelFriend is a user invited by another user, without an account.
	LevelFriend UserLevel = "FRIEND"

	// LevelInvestor is a regular player. New signups start here.
	LevelInvestor UserLevel = "INVESTOR"

	// LevelAdministrator may change system settings such as the
	// commission schedules.
	LevelAdministrator UserLevel = "ADMINISTRATOR"
)

// User represents a registered user in the system.
// It contains authentication credentials and metadata for user management.
type User struct {
	// ID is the unique identifier for the user.
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	// DisplayName is the public name shown on the leaderboard.
	DisplayName string `gorm:"size:100;not null"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the hashed password for the user.
	// This should never store plaintext passwords.
	Password string `gorm:"size:255;not null"`

	// Level grades the user's privileges.
	Level UserLevel `gorm:"size:20;not null;default:INVESTOR"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}

// GravatarURL returns the Gravatar image URL derived from the user's email.
func (u *User) GravatarURL() string {
	normalized := strings.ToLower(strings.TrimSpace(u.Email))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x", md5.Sum([]byte(normalized)))
}
