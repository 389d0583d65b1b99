// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"tweetapp/internal/models"
	"tweetapp/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Seeder populates the database with fake users, tweets, replies and likes.
// Ids are issued through the sequence counters so seeded data and live
// traffic never collide.
type Seeder struct {
	db    *gorm.DB
	users repository.UserRepository
	seq   repository.SequenceRepository
	rng   *rand.Rand
}

// NewSeeder creates a new Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:    db,
		users: repository.NewUserRepository(db),
		seq:   repository.NewSequenceRepository(db),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll truncates all seeded tables, counters included.
func (s *Seeder) ClearAll() error {
	for _, model := range []any{&models.Like{}, &models.Tweet{}, &models.User{}, &models.SequenceCounter{}} {
		if err := s.db.Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// BuildUser constructs an unpersisted fake user.
func (s *Seeder) BuildUser() *models.User {
	name := gofakeit.Username()
	return &models.User{
		LoginID:       strings.ToLower(name),
		Email:         gofakeit.Email(),
		Password:      gofakeit.Password(true, true, true, false, false, 12),
		ContactNumber: gofakeit.Phone(),
		DisplayName:   gofakeit.Name(),
	}
}

// SeedUsers creates n users with sequence-issued ids.
func (s *Seeder) SeedUsers(ctx context.Context, n int) ([]models.User, error) {
	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		user := s.BuildUser()
		// Usernames can collide; suffix keeps login ids unique.
		user.LoginID = fmt.Sprintf("%s%d", user.LoginID, i)

		id, err := s.seq.Next(ctx, models.UserSequence)
		if err != nil {
			return nil, err
		}
		user.ID = id
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}

// SeedTweets creates n root tweets spread across the given users, plus a
// reply and a handful of likes for roughly every third tweet.
func (s *Seeder) SeedTweets(ctx context.Context, users []models.User, n int) error {
	if len(users) == 0 {
		return nil
	}
	tweets := repository.NewTweetRepository(s.db)

	for i := 0; i < n; i++ {
		owner := users[s.rng.Intn(len(users))]
		id, err := s.seq.Next(ctx, models.TweetSequence)
		if err != nil {
			return err
		}
		tweet := models.Tweet{
			ID:     id,
			UserID: owner.ID,
			Body:   gofakeit.Sentence(8 + s.rng.Intn(10)),
		}
		if err := tweets.Create(ctx, &tweet); err != nil {
			return err
		}

		if i%3 != 0 {
			continue
		}

		replier := users[s.rng.Intn(len(users))]
		replyID, err := s.seq.Next(ctx, models.TweetSequence)
		if err != nil {
			return err
		}
		reply := models.Tweet{
			ID:       replyID,
			UserID:   replier.ID,
			Body:     gofakeit.Sentence(5 + s.rng.Intn(8)),
			ParentID: &tweet.ID,
		}
		if err := tweets.Create(ctx, &reply); err != nil {
			return err
		}

		for _, fan := range s.pickUsers(users, 1+s.rng.Intn(4)) {
			if err := tweets.Like(ctx, fan.ID, tweet.ID); err != nil {
				return err
			}
		}
	}

	log.Printf("Seeded %d tweets for %d users", n, len(users))
	return nil
}

// pickUsers samples up to n distinct users.
func (s *Seeder) pickUsers(users []models.User, n int) []models.User {
	if n >= len(users) {
		return users
	}
	picked := make([]models.User, 0, n)
	seen := map[uint]struct{}{}
	for len(picked) < n {
		u := users[s.rng.Intn(len(users))]
		if _, ok := seen[u.ID]; ok {
			continue
		}
		seen[u.ID] = struct{}{}
		picked = append(picked, u)
	}
	return picked
}
