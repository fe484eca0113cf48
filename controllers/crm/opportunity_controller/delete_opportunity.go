package opportunity_controller

import (
	"log"
	"net/http"
	"strings"

	"github.com/Vantage-CRM/vantage-crm-backend/config"
	"github.com/Vantage-CRM/vantage-crm-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DeleteOpportunity godoc
// @Summary Delete opportunity (CRM)
// @Description Delete a single opportunity. Bulk deletion is performed client-side as independent per-ID requests so one failure never blocks the rest.
// @Tags CRM - Opportunities
// @Accept json
// @Produce json
// @Param id path string true "Opportunity ID (UUID)"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse "Invalid opportunity ID"
// @Failure 404 {object} models.ApiResponse "Opportunity not found"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /crm/opportunities/{id} [delete]
func DeleteOpportunity(c *gin.Context) {
	idStr := strings.TrimSpace(c.Param("id"))
	oppID, err := uuid.Parse(idStr)
	if err != nil {
		log.Printf("[crm.opportunity.delete] bad request: invalid id %q", idStr)
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid opportunity ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	tag, err := config.CrmDB.Exec(ctx, "DELETE FROM opportunities WHERE id = $1", oppID)
	if err != nil {
		log.Printf("[crm.opportunity.delete] ERROR delete failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete opportunity"))
		return
	}
	if tag.RowsAffected() == 0 {
		log.Printf("[crm.opportunity.delete] not found id=%s", oppID)
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Opportunity not found"))
		return
	}

	log.Printf("[crm.opportunity.delete] success id=%s", oppID)

	c.JSON(http.StatusOK, models.SuccessResponse(
		c,
		"Opportunity deleted successfully",
		nil,
	))
}
