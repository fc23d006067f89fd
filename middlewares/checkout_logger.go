package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/kitsu-storefront/utils"
)

// CheckoutLoggerMiddleware logs each checkout attempt and its outcome.
func CheckoutLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.InfoLogger.WithField("client", c.ClientIP()).Info("Checkout submitted")

		c.Next()

		status := c.Writer.Status()
		if status == http.StatusCreated || status == http.StatusOK {
			utils.InfoLogger.WithField("status", status).Info("Checkout completed")
		} else {
			utils.ErrorLogger.WithField("status", status).Warn("Checkout did not complete")
		}
	}
}
