package agent_controller

import (
	"log"
	"net/http"
	"strings"

	"github.com/Vantage-CRM/vantage-crm-backend/config"
	"github.com/Vantage-CRM/vantage-crm-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetAgentCommissions godoc
// @Summary Get agent commissions (CRM)
// @Description Returns an agent's commission entries in the currency each deal closed in, newest first, optionally filtered by status.
// @Tags CRM - Agents
// @Accept json
// @Produce json
// @Param id path string true "Agent ID (UUID)"
// @Param status query string false "Filter by status (pending, approved, paid)"
// @Success 200 {object} models.ApiResponse{data=[]models.AgentCommission}
// @Failure 400 {object} models.ApiResponse "Invalid agent ID"
// @Failure 404 {object} models.ApiResponse "Agent not found"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /crm/agents/{id}/commissions [get]
func GetAgentCommissions(c *gin.Context) {
	idStr := strings.TrimSpace(c.Param("id"))
	agentID, err := uuid.Parse(idStr)
	if err != nil {
		log.Printf("[crm.agent.commissions] bad request: invalid agent id %q", idStr)
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid agent ID"))
		return
	}

	status := strings.TrimSpace(c.Query("status"))

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var exists bool
	if err := config.CrmDB.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM agents WHERE id = $1)", agentID,
	).Scan(&exists); err != nil {
		log.Printf("[crm.agent.commissions] ERROR existence check failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch commissions"))
		return
	}
	if !exists {
		log.Printf("[crm.agent.commissions] agent not found id=%s", agentID)
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Agent not found"))
		return
	}

	db := config.CrmGorm.WithContext(ctx).
		Table("agent_commissions").
		Where("agent_id = ?", agentID)
	if status != "" {
		db = db.Where("status = ?", status)
	}

	commissions := make([]models.AgentCommission, 0, 16)
	if err := db.Order("created_at DESC").Find(&commissions).Error; err != nil {
		log.Printf("[crm.agent.commissions] ERROR query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch commissions"))
		return
	}

	log.Printf("[crm.agent.commissions] success id=%s status=%q rows=%d", agentID, status, len(commissions))

	c.JSON(http.StatusOK, models.SuccessResponse(
		c,
		"Agent commissions retrieved successfully",
		commissions,
	))
}
