package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/feliperosa-dev/storefront-api/auth"
	orderControllers "github.com/feliperosa-dev/storefront-api/controllers/order"
	"github.com/feliperosa-dev/storefront-api/middleware"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, tokens *auth.Service, fulfillKey string) {
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken(tokens))
	{
		// Create a new order from a cart snapshot
		orders.POST("", orderControllers.PlaceOrderHandler(db))

		// Fetch orders for the calling user
		orders.GET("", orderControllers.GetUserOrdersHandler(db))

		// Fetch a single order
		orders.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))
	}

	// websocket endpoint for real-time order updates
	r.GET("/ws/orders", orderControllers.OrderWebSocketHandler)

	// Status updates come from the fulfillment process, not customers.
	fulfillment := r.Group("/orders")
	fulfillment.Use(middleware.ValidateFulfillmentKey(fulfillKey))
	{
		fulfillment.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
	}
}
