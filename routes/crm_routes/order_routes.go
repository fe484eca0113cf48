package crm_routes

import (
	"github.com/Vantage-CRM/vantage-crm-backend/controllers/crm/order_controller"
	"github.com/gin-gonic/gin"
)

func SetupOrderRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")

	orders.GET("", order_controller.GetOrders)
	orders.GET("/stats", order_controller.GetOrderStats)
	orders.GET("/:id", order_controller.GetOrderDetailsByID)

	orders.PATCH("/:id/status", order_controller.UpdateOrderStatus)
	orders.POST("/:id/invoice", order_controller.SendOrderInvoicePDF)
}
