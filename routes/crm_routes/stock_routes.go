package crm_routes

import (
	"github.com/Vantage-CRM/vantage-crm-backend/controllers/crm/stock_controller"
	"github.com/gin-gonic/gin"
)

func SetupStockRoutes(rg *gin.RouterGroup) {
	stock := rg.Group("/stock")

	stock.GET("", stock_controller.GetStock)
	stock.GET("/stats", stock_controller.GetStockStats)
}
