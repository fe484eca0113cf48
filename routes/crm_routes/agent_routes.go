package crm_routes

import (
	"github.com/Vantage-CRM/vantage-crm-backend/controllers/crm/agent_controller"
	"github.com/gin-gonic/gin"
)

func SetupAgentRoutes(rg *gin.RouterGroup) {
	agents := rg.Group("/agents")

	agents.GET("", agent_controller.GetAgents)
	agents.GET("/stats", agent_controller.GetAgentStats)
	agents.GET("/:id", agent_controller.GetAgentByID)
	agents.GET("/:id/commissions", agent_controller.GetAgentCommissions)
}
