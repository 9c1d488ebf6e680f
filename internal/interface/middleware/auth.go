package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oreoluwa212/movie-recommendation-api/pkg/helpers"
	"github.com/oreoluwa212/movie-recommendation-api/pkg/response"
)

const CtxUserIDKey = "userID"

// Auth validates the bearer session token and injects the user id into the
// Gin context. Sessions are stateless: the signed token is the whole session.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

// OptionalAuth injects the user id when a valid bearer token is present but
// lets unauthenticated requests through. Used for endpoints that serve both
// public and owner views.
func OptionalAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := jwt.ParseToken(token); err == nil {
				c.Set(CtxUserIDKey, claims.UserID)
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
