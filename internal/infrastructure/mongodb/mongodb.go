package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection      = "users"
	watchlistsCollection = "watchlists"
	reviewsCollection    = "reviews"
)

// MongoDB wraps a connected client and the application database.
type MongoDB struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoDB(ctx context.Context, uri, dbName string, connTimeout time.Duration) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(ctx, connTimeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}
	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return &MongoDB{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

func (m *MongoDB) Collection(name string) *mongo.Collection {
	return m.db.Collection(name)
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// EnsureIndexes creates the unique indexes the data model depends on:
// username and email per account, and one review per (user, movie).
// Uniqueness of these fields is enforced here, atomically, rather than by
// application-level checks alone.
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	users := m.Collection(usersCollection)
	_, err := users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return err
	}

	watchlists := m.Collection(watchlistsCollection)
	_, err = watchlists.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
	})
	if err != nil {
		return err
	}

	reviews := m.Collection(reviewsCollection)
	_, err = reviews.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "movieId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "movieId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	})
	return err
}
