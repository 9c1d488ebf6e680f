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

type ReviewRepository struct {
	collection *mongo.Collection
}

func NewReviewRepository(db *MongoDB) *ReviewRepository {
	return &ReviewRepository{collection: db.Collection(reviewsCollection)}
}

// Upsert writes the review for (userId, movieId), updating the existing
// document when one exists. The unique compound index makes the one-review-
// per-user-per-movie rule hold even under concurrent submissions.
func (r *ReviewRepository) Upsert(ctx context.Context, rev *entity.Review) error {
	now := time.Now().UTC()
	rev.UpdatedAt = now

	filter := bson.M{"userId": rev.UserID, "movieId": rev.MovieID}
	update := bson.M{
		"$set": bson.M{
			"rating":           rev.Rating,
			"body":             rev.Body,
			"containsSpoilers": rev.ContainsSpoilers,
			"movieTitle":       rev.MovieTitle,
			"posterPath":       rev.PosterPath,
			"updatedAt":        now,
		},
		"$setOnInsert": bson.M{
			"userId":    rev.UserID,
			"movieId":   rev.MovieID,
			"likes":     []primitive.ObjectID{},
			"reports":   []entity.ReviewReport{},
			"createdAt": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(rev)
	if mongo.IsDuplicateKeyError(err) {
		// Lost a race with a concurrent insert for the same pair; retry as an update.
		return r.Upsert(ctx, rev)
	}
	return err
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	var rev entity.Review
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&rev)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *ReviewRepository) GetByUserAndMovie(ctx context.Context, userID string, movieID int) (*entity.Review, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	var rev entity.Review
	err = r.collection.FindOne(ctx, bson.M{"userId": uid, "movieId": movieID}).Decode(&rev)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *ReviewRepository) ListByMovie(ctx context.Context, movieID int, page, limit int) ([]entity.Review, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	filter := bson.M{"movieId": movieID}
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	var reviews []entity.Review
	if err = cursor.All(ctx, &reviews); err != nil {
		return nil, 0, err
	}
	if reviews == nil {
		reviews = []entity.Review{}
	}
	return reviews, total, nil
}

func (r *ReviewRepository) ListByUser(ctx context.Context, userID string) ([]entity.Review, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": uid}, opts)
	if err != nil {
		return nil, err
	}
	var reviews []entity.Review
	if err = cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []entity.Review{}
	}
	return reviews, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id, userID string) error {
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

func (r *ReviewRepository) AddLike(ctx context.Context, id, userID string) error {
	oid, uid, err := reviewIDs(id, userID)
	if err != nil {
		return err
	}
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$addToSet": bson.M{"likes": uid}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ReviewRepository) RemoveLike(ctx context.Context, id, userID string) error {
	oid, uid, err := reviewIDs(id, userID)
	if err != nil {
		return err
	}
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$pull": bson.M{"likes": uid}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ReviewRepository) AddReport(ctx context.Context, id, userID string, report entity.ReviewReport) error {
	oid, uid, err := reviewIDs(id, userID)
	if err != nil {
		return err
	}
	// The reporter id is part of the filter, so a concurrent double-submission
	// cannot create two reports from the same user.
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid, "reports.userId": bson.M{"$ne": uid}},
		bson.M{"$push": bson.M{"reports": report}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrDuplicate
	}
	return nil
}

func reviewIDs(id, userID string) (primitive.ObjectID, primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, repository.ErrNotFound
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, repository.ErrNotFound
	}
	return oid, uid, nil
}

// Stats aggregates review count, average rating and the per-rating
// distribution for a movie in a single pipeline.
func (r *ReviewRepository) Stats(ctx context.Context, movieID int) (*entity.ReviewStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"movieId": movieID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$rating",
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var buckets []struct {
		Rating int `bson:"_id"`
		Count  int `bson:"count"`
	}
	if err = cursor.All(ctx, &buckets); err != nil {
		return nil, err
	}

	stats := &entity.ReviewStats{MovieID: movieID, Distribution: map[int]int{}}
	sum := 0
	for _, b := range buckets {
		stats.Distribution[b.Rating] = b.Count
		stats.ReviewCount += b.Count
		sum += b.Rating * b.Count
	}
	if stats.ReviewCount > 0 {
		stats.AverageRating = float64(sum) / float64(stats.ReviewCount)
	}
	return stats, nil
}

var _ repository.ReviewRepository = (*ReviewRepository)(nil)
