package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oreoluwa212/movie-recommendation-api/config"
	"github.com/oreoluwa212/movie-recommendation-api/internal/application"
	"github.com/oreoluwa212/movie-recommendation-api/internal/domain/entity"
	"github.com/oreoluwa212/movie-recommendation-api/internal/domain/repository"
	"github.com/oreoluwa212/movie-recommendation-api/internal/interface/middleware"
)

// memReviewRepo is just enough of a ReviewRepository for handler-level tests.
type memReviewRepo struct {
	reviews map[string]*entity.Review
}

func newMemReviewRepo() *memReviewRepo {
	return &memReviewRepo{reviews: make(map[string]*entity.Review)}
}

func (m *memReviewRepo) Upsert(_ context.Context, r *entity.Review) error {
	for _, e := range m.reviews {
		if e.UserID == r.UserID && e.MovieID == r.MovieID {
			r.ID = e.ID
			cp := *r
			m.reviews[e.ID.Hex()] = &cp
			return nil
		}
	}
	r.ID = primitive.NewObjectID()
	cp := *r
	m.reviews[r.ID.Hex()] = &cp
	return nil
}

func (m *memReviewRepo) GetByID(_ context.Context, id string) (*entity.Review, error) {
	if r, ok := m.reviews[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memReviewRepo) GetByUserAndMovie(_ context.Context, userID string, movieID int) (*entity.Review, error) {
	for _, r := range m.reviews {
		if r.UserID.Hex() == userID && r.MovieID == movieID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memReviewRepo) ListByMovie(_ context.Context, _ int, _, _ int) ([]entity.Review, int64, error) {
	return []entity.Review{}, 0, nil
}

func (m *memReviewRepo) ListByUser(_ context.Context, _ string) ([]entity.Review, error) {
	return []entity.Review{}, nil
}

func (m *memReviewRepo) Delete(_ context.Context, _, _ string) error { return repository.ErrNotFound }

func (m *memReviewRepo) AddLike(_ context.Context, _, _ string) error { return repository.ErrNotFound }

func (m *memReviewRepo) RemoveLike(_ context.Context, _, _ string) error {
	return repository.ErrNotFound
}

func (m *memReviewRepo) AddReport(_ context.Context, _, _ string, _ entity.ReviewReport) error {
	return repository.ErrNotFound
}

func (m *memReviewRepo) Stats(_ context.Context, movieID int) (*entity.ReviewStats, error) {
	return &entity.ReviewStats{MovieID: movieID, Distribution: map[int]int{}}, nil
}

func newReviewRouter(t *testing.T, uid string) (*gin.Engine, *memReviewRepo) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := &config.Config{Env: "test"}

	r := newMemReviewRepo()
	svc := application.NewReviewService(r, logger)
	h := NewReviewHandler(svc, logger, cfg)

	e := gin.New()
	e.POST("/api/movies/:movieId/reviews", func(c *gin.Context) {
		c.Set(middleware.CtxUserIDKey, uid)
	}, h.Submit)
	return e, r
}

func TestSubmitReview_BodyAtLimit(t *testing.T) {
	uid := primitive.NewObjectID().Hex()
	e, r := newReviewRouter(t, uid)

	w := postJSON(t, e, "/api/movies/550/reviews", gin.H{
		"rating":     9,
		"body":       strings.Repeat("a", 1000),
		"movieTitle": "Fight Club",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, r.reviews, 1)
	for _, rev := range r.reviews {
		assert.Len(t, rev.Body, 1000)
	}
}

func TestSubmitReview_BodyTooLong(t *testing.T) {
	uid := primitive.NewObjectID().Hex()
	e, r := newReviewRouter(t, uid)

	w := postJSON(t, e, "/api/movies/550/reviews", gin.H{
		"rating":     9,
		"body":       strings.Repeat("a", 1001),
		"movieTitle": "Fight Club",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.False(t, env.Success)
	assert.Contains(t, env.Errors, "body")
	assert.Empty(t, r.reviews)
}
