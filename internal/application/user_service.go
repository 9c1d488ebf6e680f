package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oreoluwa212/movie-recommendation-api/internal/domain/entity"
	repo "github.com/oreoluwa212/movie-recommendation-api/internal/domain/repository"
	"github.com/oreoluwa212/movie-recommendation-api/pkg/helpers"
)

// UserService manages profile data and the embedded favorites / watch-history
// collections of an authenticated account.
type UserService struct {
	Repo      repo.UserRepository
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewUserService(r repo.UserRepository, gcs *storage.Client, gcsBucket string, logger *logrus.Logger) *UserService {
	return &UserService{Repo: r, GCS: gcs, GCSBucket: gcsBucket, Logger: logger}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrNotFoundOrForbidden
	}
	return u, nil
}

type UpdateProfileInput struct {
	Username string
	Bio      *string
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrNotFoundOrForbidden
	}
	if in.Username != "" {
		u.Username = strings.TrimSpace(in.Username)
	}
	if in.Bio != nil {
		u.Bio = *in.Bio
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateAccount
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) UpdatePreferences(ctx context.Context, userID string, p entity.Preferences) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrNotFoundOrForbidden
	}
	if p.Genres == nil {
		p.Genres = []int{}
	}
	u.Preferences = p
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UploadAvatar stores the image in GCS and saves the durable URL on the profile.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return "", ErrNotFoundOrForbidden
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("avatar storage not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	u.AvatarURL = url
	if err := s.Repo.Update(ctx, u); err != nil {
		return "", err
	}
	return url, nil
}

// MovieRef identifies a catalog movie being added to a collection.
type MovieRef struct {
	MovieID    int
	Title      string
	PosterPath string
}

// AddFavorite appends to the favorites list; movieId is unique per account.
// The duplicate check runs here and again, atomically, in the store filter.
func (s *UserService) AddFavorite(ctx context.Context, userID string, m MovieRef) error {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return ErrNotFoundOrForbidden
	}
	if u.HasFavorite(m.MovieID) {
		return ErrDuplicateEntry
	}
	fav := entity.FavoriteMovie{
		MovieID:    m.MovieID,
		Title:      m.Title,
		PosterPath: m.PosterPath,
		AddedAt:    time.Now().UTC(),
	}
	if err := s.Repo.AddFavorite(ctx, userID, fav); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return ErrDuplicateEntry
		}
		return err
	}
	return nil
}

func (s *UserService) RemoveFavorite(ctx context.Context, userID string, movieID int) error {
	if err := s.Repo.RemoveFavorite(ctx, userID, movieID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrEntryNotFound
		}
		return err
	}
	return nil
}

func (s *UserService) ListFavorites(ctx context.Context, userID string) ([]entity.FavoriteMovie, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrNotFoundOrForbidden
	}
	return u.Favorites, nil
}

// AddWatched records watch history with an optional 1-10 rating.
func (s *UserService) AddWatched(ctx context.Context, userID string, m MovieRef, rating *int) error {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return ErrNotFoundOrForbidden
	}
	if u.HasWatched(m.MovieID) {
		return ErrDuplicateEntry
	}
	w := entity.WatchedMovie{
		MovieID:    m.MovieID,
		Title:      m.Title,
		PosterPath: m.PosterPath,
		WatchedAt:  time.Now().UTC(),
		Rating:     rating,
	}
	if err := s.Repo.AddWatched(ctx, userID, w); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return ErrDuplicateEntry
		}
		return err
	}
	return nil
}

func (s *UserService) RemoveWatched(ctx context.Context, userID string, movieID int) error {
	if err := s.Repo.RemoveWatched(ctx, userID, movieID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrEntryNotFound
		}
		return err
	}
	return nil
}

func (s *UserService) ListWatched(ctx context.Context, userID string) ([]entity.WatchedMovie, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrNotFoundOrForbidden
	}
	return u.Watched, nil
}
