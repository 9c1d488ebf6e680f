package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oreoluwa212/movie-recommendation-api/config"
	"github.com/oreoluwa212/movie-recommendation-api/internal/application"
	"github.com/oreoluwa212/movie-recommendation-api/internal/interface/middleware"
	"github.com/oreoluwa212/movie-recommendation-api/pkg/response"
	"github.com/oreoluwa212/movie-recommendation-api/pkg/validation"
)

type WatchlistHandler struct {
	Svc    *application.WatchlistService
	Logger *logrus.Logger
	Cfg    *config.Config
}

func NewWatchlistHandler(svc *application.WatchlistService, logger *logrus.Logger, cfg *config.Config) *WatchlistHandler {
	return &WatchlistHandler{Svc: svc, Logger: logger, Cfg: cfg}
}

type watchlistRequest struct {
	Name        string `json:"name" binding:"required,listname"`
	Description string `json:"description" binding:"omitempty,max=500"`
	IsPublic    bool   `json:"isPublic"`
}

// Create POST /api/watchlists
func (h *WatchlistHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req watchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	w, err := h.Svc.Create(c.Request.Context(), uid, application.WatchlistInput{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"watchlist": w}, "watchlist created", nil)
}

// List GET /api/watchlists
func (h *WatchlistHandler) List(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	lists, err := h.Svc.ListOwn(c.Request.Context(), uid)
	if err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"watchlists": lists}, "watchlists", gin.H{"count": len(lists)})
}

// Get GET /api/watchlists/:id
//
// Sits behind OptionalAuth: owners see their private lists, everyone else
// only public ones.
func (h *WatchlistHandler) Get(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	w, err := h.Svc.Get(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"watchlist": w}, "watchlist", nil)
}

// Update PUT /api/watchlists/:id
func (h *WatchlistHandler) Update(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req watchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	w, err := h.Svc.Update(c.Request.Context(), c.Param("id"), uid, application.WatchlistInput{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"watchlist": w}, "watchlist updated", nil)
}

// Delete DELETE /api/watchlists/:id
func (h *WatchlistHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), uid); err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "watchlist deleted", nil)
}

// AddMovie POST /api/watchlists/:id/movies
func (h *WatchlistHandler) AddMovie(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req movieRefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	w, err := h.Svc.AddMovie(c.Request.Context(), c.Param("id"), uid, application.MovieRef{
		MovieID:    req.MovieID,
		Title:      req.Title,
		PosterPath: req.PosterPath,
	})
	if err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"watchlist": w}, "movie added", nil)
}

// RemoveMovie DELETE /api/watchlists/:id/movies/:movieId
func (h *WatchlistHandler) RemoveMovie(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	movieID, err := strconv.Atoi(c.Param("movieId"))
	if err != nil || movieID <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid movie id", nil)
		return
	}
	if err := h.Svc.RemoveMovie(c.Request.Context(), c.Param("id"), uid, movieID); err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "movie removed", nil)
}
