package service

import (
	"context"
	"log/slog"

	"tweetapp/internal/middleware"
	"tweetapp/internal/models"
	"tweetapp/internal/repository"
)

// Messages carried on tweet engine envelopes.
const (
	MsgTweetsFound   = "Tweets retrieved successfully"
	MsgTweetPosted   = "Tweet posted successfully"
	MsgTweetUpdated  = "Tweet updated successfully"
	MsgTweetDeleted  = "Tweet deleted successfully"
	MsgLikeToggled   = "Like status updated"
	MsgReplyPosted   = "Reply posted successfully"
	MsgNoTweetsFound = "No tweets found"
	MsgTweetNotFound = "Tweet does not exist"
)

// TweetPublisher is the messaging side-channel notified when a tweet is
// created. Publish failures are logged, never surfaced to the caller.
type TweetPublisher interface {
	PublishTweetCreated(ctx context.Context, tweet *models.Tweet) error
}

// TweetService owns the tweet lifecycle: posting, updating, deleting,
// like/unlike toggling and reply threading. It reads user records by login id
// to resolve ownership but never writes them.
type TweetService struct {
	tweets    repository.TweetRepository
	users     repository.UserRepository
	seq       repository.SequenceRepository
	publisher TweetPublisher
}

// NewTweetService returns a new TweetService. publisher may be nil.
func NewTweetService(
	tweets repository.TweetRepository,
	users repository.UserRepository,
	seq repository.SequenceRepository,
	publisher TweetPublisher,
) *TweetService {
	return &TweetService{tweets: tweets, users: users, seq: seq, publisher: publisher}
}

func (s *TweetService) failTweet(ctx context.Context, op string, err error) *models.TweetResponse {
	middleware.Logger.ErrorContext(ctx, "tweet engine operation failed",
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
	return models.TweetFailure(models.StatusInternalError, MsgInternalError)
}

func (s *TweetService) publish(ctx context.Context, tweet *models.Tweet) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishTweetCreated(ctx, tweet); err != nil {
		middleware.Logger.WarnContext(ctx, "tweet event publish failed",
			slog.Any("tweet_id", tweet.ID),
			slog.String("error", err.Error()),
		)
	}
}

// GetAllTweets returns every tweet with its current like count.
func (s *TweetService) GetAllTweets(ctx context.Context) *models.TweetResponse {
	tweets, err := s.tweets.List(ctx)
	if err != nil {
		return s.failTweet(ctx, "get_all_tweets", err)
	}
	if len(tweets) == 0 {
		return models.TweetFailure(models.StatusNotFound, MsgNoTweetsFound)
	}
	return models.TweetSuccess(MsgTweetsFound, tweets...)
}

// GetAllTweetsOfUser returns the tweets owned by the user with the login id.
func (s *TweetService) GetAllTweetsOfUser(ctx context.Context, loginID string) *models.TweetResponse {
	user, err := s.users.GetByLoginID(ctx, loginID)
	if err != nil {
		return s.failTweet(ctx, "get_all_tweets_of_user", err)
	}
	if user == nil {
		return models.TweetFailure(models.StatusNotFound, MsgUserNotFound)
	}

	tweets, err := s.tweets.GetByUserID(ctx, user.ID)
	if err != nil {
		return s.failTweet(ctx, "get_all_tweets_of_user", err)
	}
	if len(tweets) == 0 {
		return models.TweetFailure(models.StatusNotFound, MsgNoTweetsFound)
	}
	return models.TweetSuccess(MsgTweetsFound, tweets...)
}

// PostNewTweet persists a root tweet for the named user.
func (s *TweetService) PostNewTweet(ctx context.Context, loginID, body string) *models.TweetResponse {
	user, err := s.users.GetByLoginID(ctx, loginID)
	if err != nil {
		return s.failTweet(ctx, "post_new_tweet", err)
	}
	if user == nil {
		return models.TweetFailure(models.StatusNotFound, MsgUserNotFound)
	}

	id, err := s.seq.Next(ctx, models.TweetSequence)
	if err != nil {
		return s.failTweet(ctx, "post_new_tweet", err)
	}

	tweet := models.Tweet{ID: id, UserID: user.ID, Body: body}
	if err := s.tweets.Create(ctx, &tweet); err != nil {
		return s.failTweet(ctx, "post_new_tweet", err)
	}
	s.publish(ctx, &tweet)

	return models.TweetSuccess(MsgTweetPosted, tweet)
}

// UpdateTweet overwrites the body of an existing tweet. The named user must
// exist but is not required to be the tweet's owner; tightening that check is
// an open contract question, not decided here.
func (s *TweetService) UpdateTweet(ctx context.Context, loginID string, tweetID uint, newBody string) *models.TweetResponse {
	user, err := s.users.GetByLoginID(ctx, loginID)
	if err != nil {
		return s.failTweet(ctx, "update_tweet", err)
	}
	if user == nil {
		return models.TweetFailure(models.StatusNotFound, MsgUserNotFound)
	}

	tweet, err := s.tweets.GetByID(ctx, tweetID)
	if err != nil {
		return s.failTweet(ctx, "update_tweet", err)
	}
	if tweet == nil {
		return models.TweetFailure(models.StatusNotFound, MsgTweetNotFound)
	}

	tweet.Body = newBody
	if err := s.tweets.Update(ctx, tweet); err != nil {
		return s.failTweet(ctx, "update_tweet", err)
	}
	return models.TweetSuccess(MsgTweetUpdated, *tweet)
}

// DeleteTweet removes the tweet and every like relation attached to it.
// Like UpdateTweet, it requires the named user to exist but does not verify
// ownership.
func (s *TweetService) DeleteTweet(ctx context.Context, loginID string, tweetID uint) *models.TweetResponse {
	user, err := s.users.GetByLoginID(ctx, loginID)
	if err != nil {
		return s.failTweet(ctx, "delete_tweet", err)
	}
	if user == nil {
		return models.TweetFailure(models.StatusNotFound, MsgUserNotFound)
	}

	tweet, err := s.tweets.GetByID(ctx, tweetID)
	if err != nil {
		return s.failTweet(ctx, "delete_tweet", err)
	}
	if tweet == nil {
		return models.TweetFailure(models.StatusNotFound, MsgTweetNotFound)
	}

	if err := s.tweets.Delete(ctx, tweetID); err != nil {
		return s.failTweet(ctx, "delete_tweet", err)
	}
	return models.TweetSuccess(MsgTweetDeleted)
}

// LikeTweet toggles the like relation for (user, tweet): it creates the
// relation when absent and removes it when present. The toggle itself has no
// failure mode once both user and tweet resolve.
func (s *TweetService) LikeTweet(ctx context.Context, loginID string, tweetID uint) *models.TweetResponse {
	user, err := s.users.GetByLoginID(ctx, loginID)
	if err != nil {
		return s.failTweet(ctx, "like_tweet", err)
	}
	if user == nil {
		return models.TweetFailure(models.StatusNotFound, MsgUserNotFound)
	}

	tweet, err := s.tweets.GetByID(ctx, tweetID)
	if err != nil {
		return s.failTweet(ctx, "like_tweet", err)
	}
	if tweet == nil {
		return models.TweetFailure(models.StatusNotFound, MsgTweetNotFound)
	}

	like, err := s.tweets.GetLike(ctx, user.ID, tweetID)
	if err != nil {
		return s.failTweet(ctx, "like_tweet", err)
	}
	if like != nil {
		err = s.tweets.Unlike(ctx, user.ID, tweetID)
	} else {
		err = s.tweets.Like(ctx, user.ID, tweetID)
	}
	if err != nil {
		return s.failTweet(ctx, "like_tweet", err)
	}

	count, err := s.tweets.CountLikes(ctx, tweetID)
	if err != nil {
		return s.failTweet(ctx, "like_tweet", err)
	}
	tweet.LikesCount = int(count)
	return models.TweetSuccess(MsgLikeToggled, *tweet)
}

// ReplyToTweet persists a new tweet whose parent reference is the given
// tweet. The parent is resolved before the replying user.
func (s *TweetService) ReplyToTweet(ctx context.Context, loginID string, parentTweetID uint, body string) *models.TweetResponse {
	parent, err := s.tweets.GetByID(ctx, parentTweetID)
	if err != nil {
		return s.failTweet(ctx, "reply_to_tweet", err)
	}
	if parent == nil {
		return models.TweetFailure(models.StatusNotFound, MsgTweetNotFound)
	}

	user, err := s.users.GetByLoginID(ctx, loginID)
	if err != nil {
		return s.failTweet(ctx, "reply_to_tweet", err)
	}
	if user == nil {
		return models.TweetFailure(models.StatusNotFound, MsgUserNotFound)
	}

	id, err := s.seq.Next(ctx, models.TweetSequence)
	if err != nil {
		return s.failTweet(ctx, "reply_to_tweet", err)
	}

	reply := models.Tweet{ID: id, UserID: user.ID, Body: body, ParentID: &parent.ID}
	if err := s.tweets.Create(ctx, &reply); err != nil {
		return s.failTweet(ctx, "reply_to_tweet", err)
	}
	s.publish(ctx, &reply)

	return models.TweetSuccess(MsgReplyPosted, reply)
}
