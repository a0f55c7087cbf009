package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/feliperosa-dev/storefront-api/auth"
	authControllers "github.com/feliperosa-dev/storefront-api/controllers/auth"
)

// SetupAuthRoutes registers all "/auth/*" endpoints on the auth service.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, tokens *auth.Service) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", authControllers.Login(db, tokens))       // POST /auth/login
		authGroup.POST("/register", authControllers.Register(db))        // POST /auth/register
		authGroup.GET("/validate", authControllers.Validate(db, tokens)) // GET /auth/validate
	}
}
