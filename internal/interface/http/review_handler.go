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

type ReviewHandler struct {
	Svc    *application.ReviewService
	Logger *logrus.Logger
	Cfg    *config.Config
}

func NewReviewHandler(svc *application.ReviewService, logger *logrus.Logger, cfg *config.Config) *ReviewHandler {
	return &ReviewHandler{Svc: svc, Logger: logger, Cfg: cfg}
}

type reviewRequest struct {
	Rating           int    `json:"rating" binding:"required,gte=1,lte=10"`
	Body             string `json:"body" binding:"omitempty,max=1000"`
	ContainsSpoilers bool   `json:"containsSpoilers"`
	MovieTitle       string `json:"movieTitle" binding:"required"`
	PosterPath       string `json:"posterPath"`
}

// Submit POST /api/movies/:movieId/reviews
//
// Upserts: a second submission for the same movie replaces the first.
func (h *ReviewHandler) Submit(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	movieID, err := strconv.Atoi(c.Param("movieId"))
	if err != nil || movieID <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid movie id", nil)
		return
	}
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	rev, err := h.Svc.Submit(c.Request.Context(), uid, movieID, application.ReviewInput{
		Rating:           req.Rating,
		Body:             req.Body,
		ContainsSpoilers: req.ContainsSpoilers,
		MovieTitle:       req.MovieTitle,
		PosterPath:       req.PosterPath,
	})
	if err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"review": rev}, "review saved", nil)
}

// ListByMovie GET /api/movies/:movieId/reviews?page=1&limit=20
func (h *ReviewHandler) ListByMovie(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("movieId"))
	if err != nil || movieID <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid movie id", nil)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	reviews, total, err := h.Svc.ListByMovie(c.Request.Context(), movieID, page, limit)
	if err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reviews": reviews}, "reviews", gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
	})
}

// Stats GET /api/movies/:movieId/reviews/stats
func (h *ReviewHandler) Stats(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("movieId"))
	if err != nil || movieID <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid movie id", nil)
		return
	}
	stats, err := h.Svc.Stats(c.Request.Context(), movieID)
	if err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats}, "review stats", nil)
}

// ListOwn GET /api/reviews
func (h *ReviewHandler) ListOwn(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	reviews, err := h.Svc.ListOwn(c.Request.Context(), uid)
	if err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reviews": reviews}, "your reviews", gin.H{"count": len(reviews)})
}

// Delete DELETE /api/reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), uid); err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "review deleted", nil)
}

// ToggleLike POST /api/reviews/:id/like
func (h *ReviewHandler) ToggleLike(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	liked, err := h.Svc.ToggleLike(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	msg := "review unliked"
	if liked {
		msg = "review liked"
	}
	response.Success(c, http.StatusOK, gin.H{"liked": liked}, msg, nil)
}

type reportRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// Report POST /api/reviews/:id/report
func (h *ReviewHandler) Report(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.Report(c.Request.Context(), c.Param("id"), uid, req.Reason); err != nil {
		respondError(c, h.Logger, h.Cfg.Env, err)
		return
	}
	response.Success[any](c, http.StatusCreated, nil, "report filed", nil)
}
