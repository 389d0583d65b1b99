package models

import "time"

// Tweet represents a posted message. A non-nil ParentID marks it as a reply
// in a thread rooted at the referenced tweet. Deletion is hard: no soft-delete
// column, and the like relations go in the same transaction.
type Tweet struct {
	ID       uint   `gorm:"primaryKey;autoIncrement:false" json:"id"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	Body     string `gorm:"type:text;not null" json:"body"`
	ParentID *uint  `gorm:"index" json:"parent_id,omitempty"`
	// LikesCount is not persisted; computed at query time
	LikesCount int       `gorm:"->" json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
