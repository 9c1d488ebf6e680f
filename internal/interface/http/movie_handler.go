package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oreoluwa212/movie-recommendation-api/config"
	"github.com/oreoluwa212/movie-recommendation-api/internal/application"
	"github.com/oreoluwa212/movie-recommendation-api/internal/infrastructure/tmdb"
	"github.com/oreoluwa212/movie-recommendation-api/pkg/response"
)

type MovieHandler struct {
	Svc    *application.MovieService
	Logger *logrus.Logger
	Cfg    *config.Config
}

func NewMovieHandler(svc *application.MovieService, logger *logrus.Logger, cfg *config.Config) *MovieHandler {
	return &MovieHandler{Svc: svc, Logger: logger, Cfg: cfg}
}

func queryPage(c *gin.Context) int {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	return page
}

func pageMeta(p *tmdb.MoviePage) gin.H {
	return gin.H{
		"page":         p.Page,
		"totalPages":   p.TotalPages,
		"totalResults": p.TotalResults,
	}
}

// Search GET /api/movies/search?query=...&page=1
func (h *MovieHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		response.Error[any](c, http.StatusBadRequest, "query is required", nil)
		return
	}
	p, err := h.Svc.Search(c.Request.Context(), query, queryPage(c))
	if err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": p.Results}, "search results", pageMeta(p))
}

// Popular GET /api/movies/popular
func (h *MovieHandler) Popular(c *gin.Context) {
	p, err := h.Svc.Popular(c.Request.Context(), queryPage(c))
	if err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": p.Results}, "popular movies", pageMeta(p))
}

// TopRated GET /api/movies/top-rated
func (h *MovieHandler) TopRated(c *gin.Context) {
	p, err := h.Svc.TopRated(c.Request.Context(), queryPage(c))
	if err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": p.Results}, "top rated movies", pageMeta(p))
}

// Discover GET /api/movies/discover?genre=&year=&minRating=&sortBy=&page=
func (h *MovieHandler) Discover(c *gin.Context) {
	var f tmdb.DiscoverFilter
	f.Page = queryPage(c)
	if v := c.Query("genre"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil || id <= 0 {
			response.Error[any](c, http.StatusBadRequest, "invalid genre", nil)
			return
		}
		f.GenreID = id
	}
	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1870 {
			response.Error[any](c, http.StatusBadRequest, "invalid year", nil)
			return
		}
		f.Year = y
	}
	if v := c.Query("minRating"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil || r < 0 || r > 10 {
			response.Error[any](c, http.StatusBadRequest, "invalid minRating", nil)
			return
		}
		f.MinRating = r
	}
	f.SortBy = c.Query("sortBy")

	p, err := h.Svc.Discover(c.Request.Context(), f)
	if err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": p.Results}, "discovered movies", pageMeta(p))
}

// Genres GET /api/movies/genres
func (h *MovieHandler) Genres(c *gin.Context) {
	genres, err := h.Svc.Genres(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"genres": genres}, "genres", nil)
}

// Details GET /api/movies/:movieId
func (h *MovieHandler) Details(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("movieId"))
	if err != nil || movieID <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid movie id", nil)
		return
	}
	d, err := h.Svc.Details(c.Request.Context(), movieID)
	if err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"movie": d}, "movie details", nil)
}

// Recommendations GET /api/movies/:movieId/recommendations
func (h *MovieHandler) Recommendations(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("movieId"))
	if err != nil || movieID <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid movie id", nil)
		return
	}
	p, err := h.Svc.Recommendations(c.Request.Context(), movieID, queryPage(c))
	if err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": p.Results}, "recommendations", pageMeta(p))
}
