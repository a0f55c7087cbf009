package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feliperosa-dev/storefront-api/auth"
	"github.com/feliperosa-dev/storefront-api/models"
)

// ValidateToken rejects requests without a valid bearer token and stores
// the caller's identity in the context for the handlers downstream.
func ValidateToken(tokens *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := auth.BearerClaims(c.GetHeader("Authorization"), tokens)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_role", claims.Role)

		c.Next()
	}
}

// RequireRole runs after ValidateToken and gates the route on the role
// encoded in the token.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		got, exists := c.Get("user_role")
		current, ok := got.(models.Role)
		if !exists || !ok || current != role {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
			c.Abort()
			return
		}
		c.Next()
	}
}
