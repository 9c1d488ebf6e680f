package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oreoluwa212/movie-recommendation-api/internal/container"
	handlers "github.com/oreoluwa212/movie-recommendation-api/internal/interface/http"
	"github.com/oreoluwa212/movie-recommendation-api/internal/interface/middleware"
	"github.com/oreoluwa212/movie-recommendation-api/pkg/helpers"
)

// UserModule wires profile, preferences, avatar and the favorites / watched
// collections. Everything here requires an authenticated session.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/users")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.PUT("/preferences", m.Handler.UpdatePreferences)
		auth.POST("/avatar", m.Handler.UploadAvatar)

		auth.GET("/favorites", m.Handler.ListFavorites)
		auth.POST("/favorites", m.Handler.AddFavorite)
		auth.DELETE("/favorites/:movieId", m.Handler.RemoveFavorite)

		auth.GET("/watched", m.Handler.ListWatched)
		auth.POST("/watched", m.Handler.AddWatched)
		auth.DELETE("/watched/:movieId", m.Handler.RemoveWatched)
	}
}
