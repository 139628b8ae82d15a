package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/agency-admin-api/internal/apierr"
)

// respondError translates a service error into the error envelope.
// Only the stable code and message cross the boundary; causes are
// logged, never echoed.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	apiErr := apierr.From(err)
	if apiErr.Code == apierr.CodeInternal || apiErr.Code == apierr.CodeUpstream {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
	}
	c.JSON(apiErr.Status(), gin.H{
		"error": gin.H{"code": apiErr.Code, "message": apiErr.Message},
	})
}
