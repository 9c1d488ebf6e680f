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

// WatchlistService enforces ownership and per-list uniqueness over watchlists.
// Every mutation checks ownership before touching the store; a list that does
// not exist and a list owned by someone else fail identically.
type WatchlistService struct {
	Repo   repo.WatchlistRepository
	Logger *logrus.Logger
}

func NewWatchlistService(r repo.WatchlistRepository, logger *logrus.Logger) *WatchlistService {
	return &WatchlistService{Repo: r, Logger: logger}
}

type WatchlistInput struct {
	Name        string
	Description string
	IsPublic    bool
}

func (s *WatchlistService) Create(ctx context.Context, userID string, in WatchlistInput) (*entity.Watchlist, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFoundOrForbidden
	}
	w := &entity.Watchlist{
		UserID:      uid,
		Name:        in.Name,
		Description: in.Description,
		IsPublic:    in.IsPublic,
	}
	if err := s.Repo.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *WatchlistService) ListOwn(ctx context.Context, userID string) ([]entity.Watchlist, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// Get returns a list the requester may see: their own, or any public one.
// requesterID may be empty for unauthenticated reads of public lists.
func (s *WatchlistService) Get(ctx context.Context, id, requesterID string) (*entity.Watchlist, error) {
	w, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFoundOrForbidden
	}
	if !w.IsPublic && w.UserID.Hex() != requesterID {
		return nil, ErrNotFoundOrForbidden
	}
	return w, nil
}

func (s *WatchlistService) Update(ctx context.Context, id, userID string, in WatchlistInput) (*entity.Watchlist, error) {
	w, err := s.owned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	w.Name = in.Name
	w.Description = in.Description
	w.IsPublic = in.IsPublic
	if err := s.Repo.Update(ctx, w); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFoundOrForbidden
		}
		return nil, err
	}
	return w, nil
}

func (s *WatchlistService) Delete(ctx context.Context, id, userID string) error {
	if err := s.Repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFoundOrForbidden
		}
		return err
	}
	return nil
}

// AddMovie appends a catalog reference. The uniqueness check runs here, in the
// mutation path, and again in the store filter so concurrent adds stay unique.
func (s *WatchlistService) AddMovie(ctx context.Context, id, userID string, m MovieRef) (*entity.Watchlist, error) {
	w, err := s.owned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if w.HasMovie(m.MovieID) {
		return nil, ErrDuplicateEntry
	}
	if len(w.Movies) >= entity.MaxWatchlistMovies {
		return nil, ErrWatchlistFull
	}
	entry := entity.WatchlistMovie{
		MovieID:    m.MovieID,
		Title:      m.Title,
		PosterPath: m.PosterPath,
		AddedAt:    time.Now().UTC(),
	}
	if err := s.Repo.AddMovie(ctx, id, userID, entry); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateEntry
		}
		return nil, err
	}
	w.Movies = append(w.Movies, entry)
	return w, nil
}

func (s *WatchlistService) RemoveMovie(ctx context.Context, id, userID string, movieID int) error {
	w, err := s.owned(ctx, id, userID)
	if err != nil {
		return err
	}
	if !w.HasMovie(movieID) {
		return ErrEntryNotFound
	}
	if err := s.Repo.RemoveMovie(ctx, id, userID, movieID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrEntryNotFound
		}
		return err
	}
	return nil
}

// owned loads the list and verifies ownership, collapsing "missing" and
// "not yours" into the same error.
func (s *WatchlistService) owned(ctx context.Context, id, userID string) (*entity.Watchlist, error) {
	w, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFoundOrForbidden
	}
	if w.UserID.Hex() != userID {
		return nil, ErrNotFoundOrForbidden
	}
	return w, nil
}
