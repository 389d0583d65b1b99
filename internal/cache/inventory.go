package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	userKeyPrefix  = "user:login:%s"
	tweetKeyPrefix = "tweet:%d"
)

const (
	// UserTTL bounds staleness of cached user records.
	UserTTL = 5 * time.Minute
	// TweetTTL is short because like counts are computed at read time.
	TweetTTL = 1 * time.Minute
)

// UserKey returns the cache key for a user looked up by login id.
func UserKey(loginID string) string {
	return fmt.Sprintf(userKeyPrefix, loginID)
}

// TweetKey returns the cache key for a tweet looked up by id.
func TweetKey(tweetID uint) string {
	return fmt.Sprintf(tweetKeyPrefix, tweetID)
}

// Invalidate removes a key, best-effort.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateUser drops the cached record for the given login id.
func InvalidateUser(ctx context.Context, loginID string) {
	Invalidate(ctx, UserKey(loginID))
}
