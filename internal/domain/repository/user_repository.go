package repository

import (
	"context"

	"github.com/oreoluwa212/movie-recommendation-api/internal/domain/entity"
)

// UserRepository defines the interface for account persistence.
// Username and email uniqueness is enforced by the store (unique indexes);
// Create returns ErrDuplicate when either collides.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error

	// Embedded collection mutations. The add methods are guarded server-side
	// (no entry is pushed when movieId is already present) and return
	// ErrDuplicate in that case; removes return ErrNotFound when absent.
	AddFavorite(ctx context.Context, userID string, m entity.FavoriteMovie) error
	RemoveFavorite(ctx context.Context, userID string, movieID int) error
	AddWatched(ctx context.Context, userID string, m entity.WatchedMovie) error
	RemoveWatched(ctx context.Context, userID string, movieID int) error
}
