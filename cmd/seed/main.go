package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oreoluwa212/movie-recommendation-api/config"
	"github.com/oreoluwa212/movie-recommendation-api/internal/domain/entity"
	"github.com/oreoluwa212/movie-recommendation-api/internal/infrastructure/mongodb"
	"github.com/oreoluwa212/movie-recommendation-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	db, err := mongodb.NewMongoDB(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoConnTimeout)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = db.Close(context.Background()) }()

	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatalf("failed to ensure indexes: %v", err)
	}

	email := "demo@example.com"
	password := "password123"
	username := "demoUser"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	now := time.Now().UTC()
	users := db.Collection("users")
	res, err := users.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{
			"$set": bson.M{
				"username":        username,
				"password":        hash,
				"isEmailVerified": true,
				"updatedAt":       now,
			},
			"$setOnInsert": bson.M{
				"preferences": entity.Preferences{Theme: "light", Genres: []int{}},
				"favorites":   []entity.FavoriteMovie{},
				"watched":     []entity.WatchedMovie{},
				"createdAt":   now,
			},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}

	var userID interface{}
	if res.UpsertedID != nil {
		userID = res.UpsertedID
	} else {
		var u entity.User
		if err := users.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
			log.Fatalf("failed to load seeded user: %v", err)
		}
		userID = u.ID
	}
	fmt.Printf("seeded user: id=%v email=%s username=%s password=%s\n", userID, email, username, password)

	// A public starter list so the share-by-link flow has something to show
	watchlists := db.Collection("watchlists")
	_, err = watchlists.UpdateOne(ctx,
		bson.M{"userId": userID, "name": "Staff Picks"},
		bson.M{
			"$set": bson.M{
				"description": "A public list seeded for demos",
				"isPublic":    true,
				"updatedAt":   now,
			},
			"$setOnInsert": bson.M{
				"movies": []entity.WatchlistMovie{
					{MovieID: 278, Title: "The Shawshank Redemption", PosterPath: "/9cqNxx0GxF0bflZmeSMuL5tnGzr.jpg", AddedAt: now},
					{MovieID: 238, Title: "The Godfather", PosterPath: "/3bhkrj58Vtu7enYsRolD1fZdja1.jpg", AddedAt: now},
					{MovieID: 550, Title: "Fight Club", PosterPath: "/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg", AddedAt: now},
				},
				"createdAt": now,
			},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		log.Fatalf("failed to seed watchlist: %v", err)
	}
	fmt.Println("seeded public watchlist: Staff Picks")
}
