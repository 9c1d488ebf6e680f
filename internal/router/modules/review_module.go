package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oreoluwa212/movie-recommendation-api/internal/container"
	handlers "github.com/oreoluwa212/movie-recommendation-api/internal/interface/http"
	"github.com/oreoluwa212/movie-recommendation-api/internal/interface/middleware"
	"github.com/oreoluwa212/movie-recommendation-api/pkg/helpers"
)

type ReviewModule struct {
	Handler *handlers.ReviewHandler
	JWT     *helpers.JWTManager
}

func NewReviewModule(h *handlers.ReviewHandler, jwt *helpers.JWTManager) *ReviewModule {
	return &ReviewModule{Handler: h, JWT: jwt}
}

func (m *ReviewModule) Register(rg *gin.RouterGroup) {
	// Review reads for a movie are public.
	readLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/movies/:movieId/reviews", readLimiter, m.Handler.ListByMovie)
	rg.GET("/movies/:movieId/reviews/stats", readLimiter, m.Handler.Stats)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/movies/:movieId/reviews", m.Handler.Submit)
		auth.GET("/reviews", m.Handler.ListOwn)
		auth.DELETE("/reviews/:id", m.Handler.Delete)
		auth.POST("/reviews/:id/like", m.Handler.ToggleLike)
		auth.POST("/reviews/:id/report", m.Handler.Report)
	}
}
