package repository

import (
	"context"

	"github.com/oreoluwa212/movie-recommendation-api/internal/domain/entity"
)

// ReviewRepository persists reviews. The (userId, movieId) pair is unique at
// the store level; Upsert relies on it so a second submission for the same
// pair updates in place instead of inserting.
type ReviewRepository interface {
	Upsert(ctx context.Context, r *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	GetByUserAndMovie(ctx context.Context, userID string, movieID int) (*entity.Review, error)
	ListByMovie(ctx context.Context, movieID int, page, limit int) ([]entity.Review, int64, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Review, error)
	Delete(ctx context.Context, id, userID string) error

	AddLike(ctx context.Context, id, userID string) error
	RemoveLike(ctx context.Context, id, userID string) error
	// AddReport is guarded so a reporter can file at most one report;
	// returns ErrDuplicate on a repeat.
	AddReport(ctx context.Context, id, userID string, report entity.ReviewReport) error

	Stats(ctx context.Context, movieID int) (*entity.ReviewStats, error)
}
