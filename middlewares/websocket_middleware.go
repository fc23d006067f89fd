package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/kitsu-storefront/utils"
)

// WebSocketOriginMiddleware rejects upgrades from pages other than the
// storefront front end. Requests without an Origin header (CLI tools) pass.
func WebSocketOriginMiddleware(allowed string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && origin != allowed {
			utils.ErrorLogger.WithField("origin", origin).Warn("Rejected websocket origin")
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}
