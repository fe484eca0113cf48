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

// DeleteLead godoc
// @Summary Delete lead (CRM)
// @Description Delete a lead and its associated product interest rows and activities.
// @Tags CRM - Leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID (UUID)"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse "Invalid lead ID"
// @Failure 404 {object} models.ApiResponse "Lead not found"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /crm/leads/{id} [delete]
func DeleteLead(c *gin.Context) {
	idStr := strings.TrimSpace(c.Param("id"))
	leadID, err := uuid.Parse(idStr)
	if err != nil {
		log.Printf("[crm.lead.delete] bad request: invalid lead id %q", idStr)
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid lead ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// lead_products and lead_activities cascade via FK; a single delete is
	// enough.
	tag, err := config.CrmDB.Exec(ctx, "DELETE FROM leads WHERE id = $1", leadID)
	if err != nil {
		log.Printf("[crm.lead.delete] ERROR delete failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete lead"))
		return
	}
	if tag.RowsAffected() == 0 {
		log.Printf("[crm.lead.delete] lead not found id=%s", leadID)
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Lead not found"))
		return
	}

	stats_cache.InvalidateLeadStats()
	log.Printf("[crm.lead.delete] success id=%s", leadID)

	c.JSON(http.StatusOK, models.SuccessResponse(
		c,
		"Lead deleted successfully",
		nil,
	))
}
