package application

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oreoluwa212/movie-recommendation-api/internal/infrastructure/tmdb"
	"github.com/oreoluwa212/movie-recommendation-api/pkg/helpers"
)

const genreCacheKey = "tmdb:genres"

// MovieService proxies the external catalog. The genre list changes rarely,
// so it is cached in redis; everything else passes straight through.
type MovieService struct {
	Catalog *tmdb.Client
	Redis   *redis.Client
	Logger  *logrus.Logger
}

func NewMovieService(catalog *tmdb.Client, rdb *redis.Client, logger *logrus.Logger) *MovieService {
	return &MovieService{Catalog: catalog, Redis: rdb, Logger: logger}
}

func (s *MovieService) Search(ctx context.Context, query string, page int) (*tmdb.MoviePage, error) {
	return s.Catalog.Search(ctx, query, page)
}

func (s *MovieService) Popular(ctx context.Context, page int) (*tmdb.MoviePage, error) {
	return s.Catalog.Popular(ctx, page)
}

func (s *MovieService) TopRated(ctx context.Context, page int) (*tmdb.MoviePage, error) {
	return s.Catalog.TopRated(ctx, page)
}

func (s *MovieService) Discover(ctx context.Context, f tmdb.DiscoverFilter) (*tmdb.MoviePage, error) {
	return s.Catalog.Discover(ctx, f)
}

func (s *MovieService) Details(ctx context.Context, movieID int) (*tmdb.MovieDetails, error) {
	return s.Catalog.Details(ctx, movieID)
}

func (s *MovieService) Recommendations(ctx context.Context, movieID, page int) (*tmdb.MoviePage, error) {
	return s.Catalog.Recommendations(ctx, movieID, page)
}

func (s *MovieService) Genres(ctx context.Context) ([]tmdb.Genre, error) {
	if s.Redis != nil {
		var cached []tmdb.Genre
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, genreCacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}
	genres, err := s.Catalog.Genres(ctx)
	if err != nil {
		return nil, err
	}
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, genreCacheKey, genres, 24*time.Hour); err != nil {
			s.Logger.WithError(err).Warn("genre cache write failed")
		}
	}
	return genres, nil
}
