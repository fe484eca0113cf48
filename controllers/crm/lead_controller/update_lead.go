package lead_controller

import (
	"log"
	"net/http"
	"strings"

	stats_cache "github.com/Vantage-CRM/vantage-crm-backend/cache"
	"github.com/Vantage-CRM/vantage-crm-backend/config"
	"github.com/Vantage-CRM/vantage-crm-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UpdateLead godoc
// @Summary Update lead (CRM)
// @Description Partially update a lead. Only provided fields change. Status values are canonicalized, so legacy aliases like QUOTE_SENT are accepted and stored as CONVERTED_TO_OPPORTUNITY.
// @Tags CRM - Leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID (UUID)"
// @Param payload body models.UpdateLeadRequest true "Update payload"
// @Success 200 {object} models.ApiResponse{data=models.Lead}
// @Failure 400 {object} models.ApiResponse "Bad request"
// @Failure 404 {object} models.ApiResponse "Lead not found"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /crm/leads/{id} [put]
func UpdateLead(c *gin.Context) {
	idStr := strings.TrimSpace(c.Param("id"))
	leadID, err := uuid.Parse(idStr)
	if err != nil {
		log.Printf("[crm.lead.update] bad request: invalid lead id %q", idStr)
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid lead ID"))
		return
	}

	var req models.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[crm.lead.update] bad request: bind json err=%v", err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Company != nil {
		updates["company"] = *req.Company
	}
	markConverted := false
	if req.Status != nil {
		canonical := models.CanonicalLeadStatus(*req.Status)
		updates["status"] = canonical
		markConverted = canonical == models.LeadStatusConverted
	}
	if req.Source != nil {
		updates["source"] = *req.Source
	}
	if req.AssignedTo != nil {
		updates["assigned_to"] = *req.AssignedTo
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.Interactions != nil {
		updates["interactions"] = *req.Interactions
	}

	if len(updates) == 0 {
		log.Printf("[crm.lead.update] bad request: no fields to update")
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "No fields to update"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	setClauses := make([]string, 0, len(updates)+2)
	args := make([]interface{}, 0, len(updates)+1)
	for column, value := range updates {
		setClauses = append(setClauses, column+" = ?")
		args = append(args, value)
	}
	if markConverted {
		// First conversion wins; re-converting keeps the original timestamp.
		setClauses = append(setClauses, "converted_at = COALESCE(converted_at, NOW())")
	}
	setClauses = append(setClauses, "updated_at = NOW()")

	q := "UPDATE leads SET " + strings.Join(setClauses, ", ") + " WHERE id = ? RETURNING *"
	args = append(args, leadID)

	var lead models.Lead
	if err := config.CrmGorm.WithContext(ctx).Raw(q, args...).Scan(&lead).Error; err != nil {
		log.Printf("[crm.lead.update] ERROR update failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update lead"))
		return
	}
	if lead.ID == "" {
		log.Printf("[crm.lead.update] lead not found id=%s", leadID)
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Lead not found"))
		return
	}

	stats_cache.InvalidateLeadStats()
	log.Printf("[crm.lead.update] success id=%s fields=%d status=%s", lead.ID, len(updates), lead.Status)

	c.JSON(http.StatusOK, models.SuccessResponse(
		c,
		"Lead updated successfully",
		lead,
	))
}
