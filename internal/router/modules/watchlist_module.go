package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oreoluwa212/movie-recommendation-api/internal/container"
	handlers "github.com/oreoluwa212/movie-recommendation-api/internal/interface/http"
	"github.com/oreoluwa212/movie-recommendation-api/internal/interface/middleware"
	"github.com/oreoluwa212/movie-recommendation-api/pkg/helpers"
)

type WatchlistModule struct {
	Handler *handlers.WatchlistHandler
	JWT     *helpers.JWTManager
}

func NewWatchlistModule(h *handlers.WatchlistHandler, jwt *helpers.JWTManager) *WatchlistModule {
	return &WatchlistModule{Handler: h, JWT: jwt}
}

func (m *WatchlistModule) Register(rg *gin.RouterGroup) {
	// Single-list read is optionally authenticated so public lists stay
	// shareable by link while owners can still open their private ones.
	rg.GET("/watchlists/:id", middleware.OptionalAuth(m.JWT), m.Handler.Get)

	auth := rg.Group("/watchlists")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("", m.Handler.Create)
		auth.GET("", m.Handler.List)
		auth.PUT("/:id", m.Handler.Update)
		auth.DELETE("/:id", m.Handler.Delete)
		auth.POST("/:id/movies", m.Handler.AddMovie)
		auth.DELETE("/:id/movies/:movieId", m.Handler.RemoveMovie)
	}
}
