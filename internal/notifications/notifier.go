// Package notifications publishes domain events to Redis channels for
// downstream consumers.
package notifications

import (
	"context"
	"encoding/json"
	"time"

	"tweetapp/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TweetCreatedChannel is the channel new-tweet events are published on.
const TweetCreatedChannel = "tweets:created"

// TweetEvent is the payload published when a tweet is created.
type TweetEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	TweetID    uint      `json:"tweet_id"`
	UserID     uint      `json:"user_id"`
	ParentID   *uint     `json:"parent_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Notifier provides helpers to publish domain events into Redis channels.
// A nil Redis client turns every publish into a no-op.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishTweetCreated sends a tweet-created event. Callers treat this as
// fire-and-forget; a publish failure never fails the originating operation.
func (n *Notifier) PublishTweetCreated(ctx context.Context, tweet *models.Tweet) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	event := TweetEvent{
		EventID:    uuid.NewString(),
		Type:       "tweet.created",
		TweetID:    tweet.ID,
		UserID:     tweet.UserID,
		ParentID:   tweet.ParentID,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return n.rdb.Publish(ctx, TweetCreatedChannel, payload).Err()
}
