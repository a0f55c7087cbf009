package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ValidateFulfillmentKey protects the order status endpoints used by the
// external fulfillment process. Customers never hit these routes.
func ValidateFulfillmentKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" || c.GetHeader("X-API-KEY") != key {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing API key"})
			c.Abort()
			return
		}
		c.Next()
	}
}
