package crm_routes

import (
	"github.com/Vantage-CRM/vantage-crm-backend/controllers/crm/lead_controller"
	"github.com/gin-gonic/gin"
)

func SetupLeadRoutes(rg *gin.RouterGroup) {
	leads := rg.Group("/leads")

	leads.GET("", lead_controller.GetLeads)
	leads.GET("/stats", lead_controller.GetLeadStats)
	leads.GET("/:id", lead_controller.GetLeadByID)
	leads.GET("/:id/products", lead_controller.GetLeadProducts)
	leads.GET("/:id/activities", lead_controller.GetLeadActivities)

	leads.POST("", lead_controller.CreateLead)
	leads.PUT("/:id", lead_controller.UpdateLead)
	leads.DELETE("/:id", lead_controller.DeleteLead)
}
