package repository

import (
	"context"

	"github.com/oreoluwa212/movie-recommendation-api/internal/domain/entity"
)

// WatchlistRepository persists watchlists. Mutations that carry both id and
// userID only match documents owned by that user, so a non-owner update
// surfaces as ErrNotFound rather than leaking existence.
type WatchlistRepository interface {
	Create(ctx context.Context, w *entity.Watchlist) error
	GetByID(ctx context.Context, id string) (*entity.Watchlist, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Watchlist, error)
	Update(ctx context.Context, w *entity.Watchlist) error
	Delete(ctx context.Context, id, userID string) error

	AddMovie(ctx context.Context, id, userID string, m entity.WatchlistMovie) error
	RemoveMovie(ctx context.Context, id, userID string, movieID int) error
}
