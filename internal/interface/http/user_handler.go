package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oreoluwa212/movie-recommendation-api/config"
	"github.com/oreoluwa212/movie-recommendation-api/internal/application"
	"github.com/oreoluwa212/movie-recommendation-api/internal/domain/entity"
	"github.com/oreoluwa212/movie-recommendation-api/internal/interface/middleware"
	"github.com/oreoluwa212/movie-recommendation-api/pkg/response"
	"github.com/oreoluwa212/movie-recommendation-api/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
	Cfg    *config.Config
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger, cfg *config.Config) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger, Cfg: cfg}
}

// GetProfile GET /api/users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u}, "profile", nil)
}

type updateProfileRequest struct {
	Username string  `json:"username" binding:"omitempty,username"`
	Bio      *string `json:"bio" binding:"omitempty,max=500"`
}

// UpdateProfile PUT /api/users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), uid, application.UpdateProfileInput{
		Username: req.Username,
		Bio:      req.Bio,
	})
	if err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u}, "profile updated", nil)
}

type preferencesRequest struct {
	Theme  string `json:"theme" binding:"required,theme"`
	Genres []int  `json:"genres" binding:"omitempty,dive,gt=0"`
}

// UpdatePreferences PUT /api/users/preferences
func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req preferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdatePreferences(c.Request.Context(), uid, entity.Preferences{
		Theme:  req.Theme,
		Genres: req.Genres,
	})
	if err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"preferences": u.Preferences}, "preferences updated", nil)
}

// UploadAvatar POST /api/users/avatar (multipart field "avatar")
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "avatar file is required", nil)
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	defer func() { _ = f.Close() }()

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := h.Svc.UploadAvatar(c.Request.Context(), uid, f, fileHeader.Filename, contentType)
	if err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"avatarUrl": url}, "avatar uploaded", nil)
}

type movieRefRequest struct {
	MovieID    int    `json:"movieId" binding:"required,gt=0"`
	Title      string `json:"title" binding:"required"`
	PosterPath string `json:"posterPath"`
}

// ListFavorites GET /api/users/favorites
func (h *UserHandler) ListFavorites(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	favs, err := h.Svc.ListFavorites(c.Request.Context(), uid)
	if err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"favorites": favs}, "favorites", gin.H{"count": len(favs)})
}

// AddFavorite POST /api/users/favorites
func (h *UserHandler) AddFavorite(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req movieRefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	err := h.Svc.AddFavorite(c.Request.Context(), uid, application.MovieRef{
		MovieID:    req.MovieID,
		Title:      req.Title,
		PosterPath: req.PosterPath,
	})
	if err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success[any](c, http.StatusCreated, nil, "added to favorites", nil)
}

// RemoveFavorite DELETE /api/users/favorites/:movieId
func (h *UserHandler) RemoveFavorite(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	movieID, err := strconv.Atoi(c.Param("movieId"))
	if err != nil || movieID <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid movie id", nil)
		return
	}
	if err := h.Svc.RemoveFavorite(c.Request.Context(), uid, movieID); err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "removed from favorites", nil)
}

type addWatchedRequest struct {
	MovieID    int    `json:"movieId" binding:"required,gt=0"`
	Title      string `json:"title" binding:"required"`
	PosterPath string `json:"posterPath"`
	Rating     *int   `json:"rating" binding:"omitempty,gte=1,lte=10"`
}

// ListWatched GET /api/users/watched
func (h *UserHandler) ListWatched(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	watched, err := h.Svc.ListWatched(c.Request.Context(), uid)
	if err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"watched": watched}, "watch history", gin.H{"count": len(watched)})
}

// AddWatched POST /api/users/watched
func (h *UserHandler) AddWatched(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req addWatchedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	err := h.Svc.AddWatched(c.Request.Context(), uid, application.MovieRef{
		MovieID:    req.MovieID,
		Title:      req.Title,
		PosterPath: req.PosterPath,
	}, req.Rating)
	if err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success[any](c, http.StatusCreated, nil, "added to watch history", nil)
}

// RemoveWatched DELETE /api/users/watched/:movieId
func (h *UserHandler) RemoveWatched(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	movieID, err := strconv.Atoi(c.Param("movieId"))
	if err != nil || movieID <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid movie id", nil)
		return
	}
	if err := h.Svc.RemoveWatched(c.Request.Context(), uid, movieID); err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "removed from watch history", nil)
}
