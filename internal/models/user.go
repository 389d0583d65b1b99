// Package models contains data structures for the application's domain models.
package models

import "time"

// Names of the identifier counters handed to the sequence repository.
const (
	UserSequence  = "user"
	TweetSequence = "tweet"
)

// User represents a registered account in the user directory. Identifiers are
// issued by the sequence generator, never by the database, so the primary key
// carries no autoincrement.
type User struct {
	ID      uint   `gorm:"primaryKey;autoIncrement:false" json:"id"`
	LoginID string `gorm:"uniqueIndex;not null" json:"login_id"`
	Email   string `gorm:"uniqueIndex;not null" json:"email"`
	// Password is stored as provided and never serialized outward.
	Password string `gorm:"not null" json:"-"`
	// ConfirmPassword only exists on inbound registration and reset bodies.
	ConfirmPassword string    `gorm:"-" json:"confirm_password,omitempty"`
	ContactNumber   string    `json:"contact_number"`
	DisplayName     string    `json:"display_name"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
