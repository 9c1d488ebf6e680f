package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oreoluwa212/movie-recommendation-api/internal/container"
	handlers "github.com/oreoluwa212/movie-recommendation-api/internal/interface/http"
	"github.com/oreoluwa212/movie-recommendation-api/internal/interface/middleware"
)

// MovieModule exposes the catalog proxy. All routes are public reads; the
// per-IP limiter keeps the upstream API quota safe.
type MovieModule struct {
	Handler *handlers.MovieHandler
}

func NewMovieModule(h *handlers.MovieHandler) *MovieModule {
	return &MovieModule{Handler: h}
}

func (m *MovieModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	movies := rg.Group("/movies")
	movies.Use(limiter)
	{
		movies.GET("/search", m.Handler.Search)
		movies.GET("/popular", m.Handler.Popular)
		movies.GET("/top-rated", m.Handler.TopRated)
		movies.GET("/discover", m.Handler.Discover)
		movies.GET("/genres", m.Handler.Genres)
		movies.GET("/:movieId", m.Handler.Details)
		movies.GET("/:movieId/recommendations", m.Handler.Recommendations)
	}
}
