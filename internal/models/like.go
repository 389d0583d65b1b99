package models

import "time"

// Like is the relation between a user and a tweet they liked. The composite
// unique index makes the like toggle idempotent under concurrent requests.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_tweet" json:"user_id"`
	TweetID   uint      `gorm:"not null;uniqueIndex:idx_user_tweet" json:"tweet_id"`
	CreatedAt time.Time `json:"created_at"`
}
