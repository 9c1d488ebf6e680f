package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oreoluwa212/movie-recommendation-api/internal/domain/entity"
	"github.com/oreoluwa212/movie-recommendation-api/internal/domain/repository"
)

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *MongoDB) *UserRepository {
	return &UserRepository{collection: db.Collection(usersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.Favorites == nil {
		u.Favorites = []entity.FavoriteMovie{}
	}
	if u.Watched == nil {
		u.Watched = []entity.WatchedMovie{}
	}
	res, err := r.collection.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var u entity.User
	err := r.collection.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Update replaces the stored document. Verification and reset token fields are
// part of the document, so clearing them on the entity clears them in the store.
func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now().UTC()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) AddFavorite(ctx context.Context, userID string, m entity.FavoriteMovie) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return repository.ErrNotFound
	}
	// Guard in the filter: the push only matches when movieId is absent, so a
	// concurrent double-add cannot create a duplicate entry.
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid, "favorites.movieId": bson.M{"$ne": m.MovieID}},
		bson.M{
			"$push": bson.M{"favorites": m},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrDuplicate
	}
	return nil
}

func (r *UserRepository) RemoveFavorite(ctx context.Context, userID string, movieID int) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return repository.ErrNotFound
	}
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$pull": bson.M{"favorites": bson.M{"movieId": movieID}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) AddWatched(ctx context.Context, userID string, m entity.WatchedMovie) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return repository.ErrNotFound
	}
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid, "watched.movieId": bson.M{"$ne": m.MovieID}},
		bson.M{
			"$push": bson.M{"watched": m},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrDuplicate
	}
	return nil
}

func (r *UserRepository) RemoveWatched(ctx context.Context, userID string, movieID int) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return repository.ErrNotFound
	}
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$pull": bson.M{"watched": bson.M{"movieId": movieID}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
