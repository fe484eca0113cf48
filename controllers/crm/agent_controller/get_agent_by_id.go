package agent_controller

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Vantage-CRM/vantage-crm-backend/config"
	"github.com/Vantage-CRM/vantage-crm-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAgentByID godoc
// @Summary Get agent by ID (CRM)
// @Description Retrieve a single sales agent.
// @Tags CRM - Agents
// @Accept json
// @Produce json
// @Param id path string true "Agent ID (UUID)"
// @Success 200 {object} models.ApiResponse{data=models.Agent}
// @Failure 400 {object} models.ApiResponse "Invalid agent ID"
// @Failure 404 {object} models.ApiResponse "Agent not found"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /crm/agents/{id} [get]
func GetAgentByID(c *gin.Context) {
	idStr := strings.TrimSpace(c.Param("id"))
	agentID, err := uuid.Parse(idStr)
	if err != nil {
		log.Printf("[crm.agent.detail] bad request: invalid agent id %q", idStr)
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid agent ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var agent models.Agent
	err = config.CrmGorm.WithContext(ctx).
		Table("agents").
		Where("id = ?", agentID).
		First(&agent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[crm.agent.detail] agent not found id=%s", agentID)
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Agent not found"))
		return
	}
	if err != nil {
		log.Printf("[crm.agent.detail] ERROR query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch agent"))
		return
	}

	log.Printf("[crm.agent.detail] success id=%s status=%s", agent.ID, agent.Status)

	c.JSON(http.StatusOK, models.SuccessResponse(
		c,
		"Agent retrieved successfully",
		agent,
	))
}
