// Command seed populates a development database with fake data.
package main

import (
	"context"
	"flag"
	"log"

	"tweetapp/internal/config"
	"tweetapp/internal/database"
	"tweetapp/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numTweets := flag.Int("tweets", 100, "Number of root tweets to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)
	ctx := context.Background()

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	users, err := s.SeedUsers(ctx, *numUsers)
	if err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}
	if err := s.SeedTweets(ctx, users, *numTweets); err != nil {
		log.Fatalf("Tweet seeding failed: %v", err)
	}

	log.Printf("Done: %d users, %d tweets", len(users), *numTweets)
}
