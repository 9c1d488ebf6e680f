package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oreoluwa212/movie-recommendation-api/internal/application"
	"github.com/oreoluwa212/movie-recommendation-api/pkg/response"
)

// respondError maps business-rule errors onto stable 4xx responses. Anything
// unrecognized is logged in full and returned as an opaque 500; the detail is
// echoed to the client only in development.
func respondError(c *gin.Context, logger *logrus.Logger, env string, err error) {
	switch {
	case errors.Is(err, application.ErrDuplicateAccount):
		response.Error[any](c, http.StatusConflict, application.ErrDuplicateAccount.Error(), nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, application.ErrInvalidCredentials.Error(), nil)
	case errors.Is(err, application.ErrEmailNotVerified):
		response.Error[any](c, http.StatusForbidden, application.ErrEmailNotVerified.Error(), nil)
	case errors.Is(err, application.ErrAlreadyVerified):
		response.Error[any](c, http.StatusBadRequest, application.ErrAlreadyVerified.Error(), nil)
	case errors.Is(err, application.ErrInvalidOrExpiredCode):
		response.Error[any](c, http.StatusBadRequest, application.ErrInvalidOrExpiredCode.Error(), nil)
	case errors.Is(err, application.ErrNotFoundOrForbidden):
		response.Error[any](c, http.StatusNotFound, application.ErrNotFoundOrForbidden.Error(), nil)
	case errors.Is(err, application.ErrDuplicateEntry):
		response.Error[any](c, http.StatusConflict, application.ErrDuplicateEntry.Error(), nil)
	case errors.Is(err, application.ErrWatchlistFull):
		response.Error[any](c, http.StatusBadRequest, application.ErrWatchlistFull.Error(), nil)
	case errors.Is(err, application.ErrEntryNotFound):
		response.Error[any](c, http.StatusNotFound, application.ErrEntryNotFound.Error(), nil)
	case errors.Is(err, application.ErrAlreadyReported):
		response.Error[any](c, http.StatusConflict, application.ErrAlreadyReported.Error(), nil)
	case errors.Is(err, application.ErrDeliveryFailed):
		response.Error[any](c, http.StatusInternalServerError, application.ErrDeliveryFailed.Error(), nil)
	default:
		if logger != nil {
			logger.WithError(err).WithField("path", c.FullPath()).Error("unexpected error")
		}
		if env == "development" {
			response.Error[any](c, http.StatusInternalServerError, "internal error", err.Error())
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}
