package crm_routes

import (
	"github.com/Vantage-CRM/vantage-crm-backend/controllers/crm/opportunity_controller"
	"github.com/gin-gonic/gin"
)

func SetupOpportunityRoutes(rg *gin.RouterGroup) {
	opportunities := rg.Group("/opportunities")

	opportunities.GET("", opportunity_controller.GetOpportunities)
	opportunities.GET("/stats", opportunity_controller.GetOpportunityStats)
	opportunities.GET("/:id", opportunity_controller.GetOpportunityByID)

	opportunities.PATCH("/:id/stage", opportunity_controller.UpdateOpportunityStage)
	opportunities.DELETE("/:id", opportunity_controller.DeleteOpportunity)
}
