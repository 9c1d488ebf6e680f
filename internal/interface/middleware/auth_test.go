package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oreoluwa212/movie-recommendation-api/pkg/helpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authTestRouter(jwt *helpers.JWTManager, optional bool) *gin.Engine {
	r := gin.New()
	mw := Auth(jwt)
	if optional {
		mw = OptionalAuth(jwt)
	}
	r.GET("/whoami", mw, func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxUserIDKey))
	})
	return r
}

func TestAuth_ValidToken(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	tok, _, err := jwt.GenerateToken("user-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	authTestRouter(jwt, false).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", w.Body.String())
}

func TestAuth_MissingHeader(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	authTestRouter(jwt, false).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)

	for _, header := range []string{"Bearer", "Token abc", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		authTestRouter(jwt, false).ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuth_WrongSecret(t *testing.T) {
	issuer := helpers.NewJWTManager("other-secret", time.Hour)
	tok, _, err := issuer.GenerateToken("user-1")
	require.NoError(t, err)

	jwt := helpers.NewJWTManager("secret", time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	authTestRouter(jwt, false).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuth_PassesThroughWithoutToken(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	authTestRouter(jwt, true).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestOptionalAuth_InjectsUserWhenValid(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	tok, _, err := jwt.GenerateToken("user-9")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	authTestRouter(jwt, true).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-9", w.Body.String())
}

func TestOptionalAuth_IgnoresInvalidToken(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	authTestRouter(jwt, true).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}
