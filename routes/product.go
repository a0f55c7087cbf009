package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/feliperosa-dev/storefront-api/auth"
	productControllers "github.com/feliperosa-dev/storefront-api/controllers/product"
	"github.com/feliperosa-dev/storefront-api/middleware"
	"github.com/feliperosa-dev/storefront-api/models"
)

// SetupProductRoutes registers the public catalog endpoints and the
// JWT-protected seller endpoints.
func SetupProductRoutes(r *gin.Engine, db *gorm.DB, tokens *auth.Service) {
	// ──────────────── Public Catalog ────────────────
	r.GET("/products", productControllers.GetProducts(db))        // GET /products
	r.GET("/products/:id", productControllers.GetProductByID(db)) // GET /products/:id

	// ──────────────── Seller Management ────────────────
	sellerGroup := r.Group("/products")
	sellerGroup.Use(middleware.ValidateToken(tokens), middleware.RequireRole(models.RoleSeller))
	{
		sellerGroup.POST("", productControllers.CreateProduct(db))       // POST /products
		sellerGroup.PUT("/:id", productControllers.UpdateProduct(db))    // PUT /products/:id
		sellerGroup.DELETE("/:id", productControllers.DeleteProduct(db)) // DELETE /products/:id
	}

	// Catalog export lives off the /products tree to keep the GET router
	// free of static/param siblings.
	exportGroup := r.Group("/seller")
	exportGroup.Use(middleware.ValidateToken(tokens), middleware.RequireRole(models.RoleSeller))
	{
		exportGroup.GET("/products/export", productControllers.ExportProductsToExcel(db)) // GET /seller/products/export
	}
}
