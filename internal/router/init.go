package router

import (
	"github.com/oreoluwa212/movie-recommendation-api/internal/application"
	"github.com/oreoluwa212/movie-recommendation-api/internal/container"
	"github.com/oreoluwa212/movie-recommendation-api/internal/infrastructure/mongodb"
	handlers "github.com/oreoluwa212/movie-recommendation-api/internal/interface/http"
	"github.com/oreoluwa212/movie-recommendation-api/internal/router/modules"
)

type Deps struct {
	AuthHandler      *handlers.AuthHandler
	UserHandler      *handlers.UserHandler
	MovieHandler     *handlers.MovieHandler
	WatchlistHandler *handlers.WatchlistHandler
	ReviewHandler    *handlers.ReviewHandler
}

func buildDeps() Deps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	db := container.GetMongo()

	userRepo := mongodb.NewUserRepository(db)
	watchlistRepo := mongodb.NewWatchlistRepository(db)
	reviewRepo := mongodb.NewReviewRepository(db)

	// The publisher is optional; a typed nil pointer must not end up inside
	// the interface or the service's nil check stops working.
	var pub application.EmailPublisher
	if rp := container.GetRabbitPub(); rp != nil {
		pub = rp
	}

	authSvc := application.NewAuthService(userRepo, container.GetJWT(), pub, logger, cfg)
	userSvc := application.NewUserService(userRepo, container.GetGCS(), cfg.GCSBucket, logger)
	movieSvc := application.NewMovieService(container.GetTMDB(), container.GetRedis(), logger)
	watchlistSvc := application.NewWatchlistService(watchlistRepo, logger)
	reviewSvc := application.NewReviewService(reviewRepo, logger)

	return Deps{
		AuthHandler:      handlers.NewAuthHandler(authSvc, logger, cfg),
		UserHandler:      handlers.NewUserHandler(userSvc, logger, cfg),
		MovieHandler:     handlers.NewMovieHandler(movieSvc, logger, cfg),
		WatchlistHandler: handlers.NewWatchlistHandler(watchlistSvc, logger, cfg),
		ReviewHandler:    handlers.NewReviewHandler(reviewSvc, logger, cfg),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	deps := buildDeps()
	jwt := container.GetJWT()

	r.Add(modules.NewAuthModule(deps.AuthHandler, jwt))
	r.Add(modules.NewUserModule(deps.UserHandler, jwt))
	r.Add(modules.NewMovieModule(deps.MovieHandler))
	r.Add(modules.NewWatchlistModule(deps.WatchlistHandler, jwt))
	r.Add(modules.NewReviewModule(deps.ReviewHandler, jwt))
}
