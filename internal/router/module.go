package router

import "github.com/gin-gonic/gin"

// Module is one feature area (auth, users, movies, watchlists, reviews)
// registering its routes and per-route middleware on the shared group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
