package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/feliperosa-dev/storefront-api/auth"
)

// SetupStorefrontRoutes is the single entry-point that wires up the
// catalog and order route groups on the storefront server.
func SetupStorefrontRoutes(r *gin.Engine, db *gorm.DB, tokens *auth.Service, fulfillKey string) {
	SetupProductRoutes(r, db, tokens)
	SetupOrderRoutes(r, db, tokens, fulfillKey)
}
