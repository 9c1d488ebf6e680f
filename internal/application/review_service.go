package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oreoluwa212/movie-recommendation-api/internal/domain/entity"
	repo "github.com/oreoluwa212/movie-recommendation-api/internal/domain/repository"
)

// ReviewService manages reviews, their likes and abuse reports. One review
// per (account, movie): submitting again updates the existing review.
type ReviewService struct {
	Repo   repo.ReviewRepository
	Logger *logrus.Logger
}

func NewReviewService(r repo.ReviewRepository, logger *logrus.Logger) *ReviewService {
	return &ReviewService{Repo: r, Logger: logger}
}

type ReviewInput struct {
	Rating           int
	Body             string
	ContainsSpoilers bool
	MovieTitle       string
	PosterPath       string
}

// Submit upserts the requester's review for a movie.
func (s *ReviewService) Submit(ctx context.Context, userID string, movieID int, in ReviewInput) (*entity.Review, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFoundOrForbidden
	}
	rev := &entity.Review{
		UserID:           uid,
		MovieID:          movieID,
		Rating:           in.Rating,
		Body:             in.Body,
		ContainsSpoilers: in.ContainsSpoilers,
		MovieTitle:       in.MovieTitle,
		PosterPath:       in.PosterPath,
	}
	if err := s.Repo.Upsert(ctx, rev); err != nil {
		return nil, err
	}
	return rev, nil
}

func (s *ReviewService) ListByMovie(ctx context.Context, movieID, page, limit int) ([]entity.Review, int64, error) {
	return s.Repo.ListByMovie(ctx, movieID, page, limit)
}

func (s *ReviewService) ListOwn(ctx context.Context, userID string) ([]entity.Review, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s *ReviewService) Stats(ctx context.Context, movieID int) (*entity.ReviewStats, error) {
	return s.Repo.Stats(ctx, movieID)
}

func (s *ReviewService) Delete(ctx context.Context, id, userID string) error {
	if err := s.Repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFoundOrForbidden
		}
		return err
	}
	return nil
}

// ToggleLike flips the requester's membership in the likers set and reports
// the resulting state.
func (s *ReviewService) ToggleLike(ctx context.Context, id, userID string) (liked bool, err error) {
	rev, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return false, ErrNotFoundOrForbidden
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return false, ErrNotFoundOrForbidden
	}
	if rev.LikedBy(uid) {
		if err := s.Repo.RemoveLike(ctx, id, userID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.Repo.AddLike(ctx, id, userID); err != nil {
		return false, err
	}
	return true, nil
}

// Report files an abuse report; at most one per reporting account. The
// uniqueness is guarded in the store update filter, so even a concurrent
// double-submission admits a single report.
func (s *ReviewService) Report(ctx context.Context, id, userID, reason string) error {
	rev, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return ErrNotFoundOrForbidden
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrNotFoundOrForbidden
	}
	if rev.ReportedBy(uid) {
		return ErrAlreadyReported
	}
	report := entity.ReviewReport{
		UserID:     uid,
		Reason:     reason,
		ReportedAt: time.Now().UTC(),
	}
	if err := s.Repo.AddReport(ctx, id, userID, report); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return ErrAlreadyReported
		}
		return err
	}
	return nil
}
