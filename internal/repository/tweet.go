package repository

import (
	"context"
	"errors"

	"tweetapp/internal/models"
	"tweetapp/internal/observability"

	"gorm.io/gorm"
)

// TweetRepository defines persistence operations for tweets and their likes.
// GetByID and GetLike return (nil, nil) when no row matches.
type TweetRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Tweet, error)
	GetByUserID(ctx context.Context, userID uint) ([]models.Tweet, error)
	List(ctx context.Context) ([]models.Tweet, error)
	Create(ctx context.Context, tweet *models.Tweet) error
	Update(ctx context.Context, tweet *models.Tweet) error
	Delete(ctx context.Context, id uint) error
	GetLike(ctx context.Context, userID, tweetID uint) (*models.Like, error)
	Like(ctx context.Context, userID, tweetID uint) error
	Unlike(ctx context.Context, userID, tweetID uint) error
	CountLikes(ctx context.Context, tweetID uint) (int64, error)
}

type tweetRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewTweetRepository returns a new TweetRepository implementation.
func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db, log: observability.NewRepoLogger("tweets")}
}

// applyTweetDetails adds a subquery to fetch the like count in a single query.
func (r *tweetRepository) applyTweetDetails(db *gorm.DB) *gorm.DB {
	return db.Select("tweets.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.tweet_id = tweets.id) AS likes_count")
}

func (r *tweetRepository) GetByID(ctx context.Context, id uint) (*models.Tweet, error) {
	var tweet models.Tweet
	err := r.applyTweetDetails(r.db.WithContext(ctx)).First(&tweet, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &tweet, nil
}

func (r *tweetRepository) GetByUserID(ctx context.Context, userID uint) ([]models.Tweet, error) {
	var tweets []models.Tweet
	err := r.applyTweetDetails(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Find(&tweets).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return tweets, nil
}

func (r *tweetRepository) List(ctx context.Context) ([]models.Tweet, error) {
	var tweets []models.Tweet
	err := r.applyTweetDetails(r.db.WithContext(ctx)).Find(&tweets).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return tweets, nil
}

func (r *tweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	if err := r.db.WithContext(ctx).Create(tweet).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.log.LogWrite(ctx, "create", map[string]interface{}{"tweet_id": tweet.ID, "user_id": tweet.UserID})
	return nil
}

func (r *tweetRepository) Update(ctx context.Context, tweet *models.Tweet) error {
	err := r.db.WithContext(ctx).Model(&models.Tweet{ID: tweet.ID}).
		Update("body", tweet.Body).Error
	if err != nil {
		r.log.LogError(ctx, err, "update")
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the tweet and all its like relations in one transaction.
func (r *tweetRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tweet_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tweet{}, id).Error
	})
	if err != nil {
		r.log.LogError(ctx, err, "delete")
		return models.NewInternalError(err)
	}
	r.log.LogWrite(ctx, "delete", map[string]interface{}{"tweet_id": id})
	return nil
}

func (r *tweetRepository) GetLike(ctx context.Context, userID, tweetID uint) (*models.Like, error) {
	var like models.Like
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &like, nil
}

func (r *tweetRepository) Like(ctx context.Context, userID, tweetID uint) error {
	like := models.Like{UserID: userID, TweetID: tweetID}
	if err := r.db.WithContext(ctx).Create(&like).Error; err != nil {
		// A concurrent like of the same pair hits the unique index; the
		// relation exists either way, so the toggle outcome is unchanged.
		if isUniqueConstraintError(err) {
			return nil
		}
		r.log.LogError(ctx, err, "like")
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tweetRepository) Unlike(ctx context.Context, userID, tweetID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Delete(&models.Like{}).Error
	if err != nil {
		r.log.LogError(ctx, err, "unlike")
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tweetRepository) CountLikes(ctx context.Context, tweetID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("tweet_id = ?", tweetID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
