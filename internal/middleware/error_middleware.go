package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekindev/coursesearch/internal/app/models/dto"
	"github.com/ekindev/coursesearch/internal/pkg/apperrors"
	"github.com/ekindev/coursesearch/internal/pkg/dberrors"
	"github.com/ekindev/coursesearch/internal/pkg/logger"
)

// HandleAPIError maps application errors to HTTP responses. Store internals
// never leak: only a sanitized Postgres message may surface as detail.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))

	case errors.Is(err, apperrors.ErrSchemaNotInitialized):
		logger.Error().Err(err).Msg("Database tables missing during request")
		c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(
			"Course data not initialised. Run the ingestion pipeline and retry."))

	case errors.Is(err, apperrors.ErrDatabase):
		logger.Error().Err(err).Msg("Database error during request")
		if detail := dberrors.SafeDetail(err); detail != "" {
			c.JSON(http.StatusInternalServerError, dto.NewErrorResponseWithDetail(
				"Search failed due to a database error.", detail))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			"Search failed due to a database error."))

	default:
		logger.Error().Err(err).Msg("Unhandled error during request")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			"Search failed due to an unexpected error."))
	}
}
