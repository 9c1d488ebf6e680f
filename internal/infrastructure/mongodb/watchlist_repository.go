package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oreoluwa212/movie-recommendation-api/internal/domain/entity"
	"github.com/oreoluwa212/movie-recommendation-api/internal/domain/repository"
)

type WatchlistRepository struct {
	collection *mongo.Collection
}

func NewWatchlistRepository(db *MongoDB) *WatchlistRepository {
	return &WatchlistRepository{collection: db.Collection(watchlistsCollection)}
}

func (r *WatchlistRepository) Create(ctx context.Context, w *entity.Watchlist) error {
	now := time.Now().UTC()
	w.CreatedAt = now
	w.UpdatedAt = now
	if w.Movies == nil {
		w.Movies = []entity.WatchlistMovie{}
	}
	res, err := r.collection.InsertOne(ctx, w)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		w.ID = oid
	}
	return nil
}

func (r *WatchlistRepository) GetByID(ctx context.Context, id string) (*entity.Watchlist, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	var w entity.Watchlist
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&w)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WatchlistRepository) ListByUser(ctx context.Context, userID string) ([]entity.Watchlist, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": oid}, opts)
	if err != nil {
		return nil, err
	}
	var lists []entity.Watchlist
	if err = cursor.All(ctx, &lists); err != nil {
		return nil, err
	}
	if lists == nil {
		lists = []entity.Watchlist{}
	}
	return lists, nil
}

// Update rewrites name, description and visibility. The filter carries the
// owner id, so updating someone else's list matches nothing.
func (r *WatchlistRepository) Update(ctx context.Context, w *entity.Watchlist) error {
	w.UpdatedAt = time.Now().UTC()
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": w.ID, "userId": w.UserID},
		bson.M{"$set": bson.M{
			"name":        w.Name,
			"description": w.Description,
			"isPublic":    w.IsPublic,
			"updatedAt":   w.UpdatedAt,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *WatchlistRepository) Delete(ctx context.Context, id, userID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return repository.ErrNotFound
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid, "userId": uid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *WatchlistRepository) AddMovie(ctx context.Context, id, userID string, m entity.WatchlistMovie) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return repository.ErrNotFound
	}
	// Ownership, per-list uniqueness and the size cap are all part of the
	// filter, so the push is atomic under concurrent requests.
	res, err := r.collection.UpdateOne(ctx,
		bson.M{
			"_id":            oid,
			"userId":         uid,
			"movies.movieId": bson.M{"$ne": m.MovieID},
			"$expr":          bson.M{"$lt": bson.A{bson.M{"$size": "$movies"}, entity.MaxWatchlistMovies}},
		},
		bson.M{
			"$push": bson.M{"movies": m},
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

func (r *WatchlistRepository) RemoveMovie(ctx context.Context, id, userID string, movieID int) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return repository.ErrNotFound
	}
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid, "userId": uid},
		bson.M{
			"$pull": bson.M{"movies": bson.M{"movieId": movieID}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 || res.ModifiedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.WatchlistRepository = (*WatchlistRepository)(nil)
