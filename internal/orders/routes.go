package orders

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Routes configures all order-related routes. Only creation requires an
// authenticated caller.
func Routes(router *gin.RouterGroup, service OrderService, logger *zap.Logger, auth gin.HandlerFunc) {
	handler := NewHandler(service, logger)

	group := router.Group("/orders")
	{
		group.POST("", auth, handler.CreateOrderHandler)
		group.GET("", handler.ListOrdersHandler)
		group.GET("/:id", handler.GetOrderHandler)
		group.PUT("/:id", handler.UpdateOrderHandler)
		group.PATCH("/:id", handler.UpdateOrderHandler)
		group.DELETE("/:id", handler.DeleteOrderHandler)
	}
}
