package crm_routes

import (
	"github.com/Vantage-CRM/vantage-crm-backend/controllers/crm/analytics_controller"
	"github.com/gin-gonic/gin"
)

func SetupAnalyticsRoutes(rg *gin.RouterGroup) {
	analytics := rg.Group("/analytics")

	analytics.GET("/monthly-revenue", analytics_controller.GetMonthlyRevenue)
	analytics.GET("/sales-metrics", analytics_controller.GetSalesMetrics)
}
