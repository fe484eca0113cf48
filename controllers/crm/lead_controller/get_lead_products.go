package lead_controller

import (
	"log"
	"net/http"
	"strings"

	"github.com/Vantage-CRM/vantage-crm-backend/config"
	"github.com/Vantage-CRM/vantage-crm-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetLeadProducts godoc
// @Summary Get lead product interests (CRM)
// @Description Returns the product interest rows recorded for a lead through the lead products association. Interests embedded on the lead record itself are returned by the lead detail endpoint; clients merge the two collections.
// @Tags CRM - Leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID (UUID)"
// @Success 200 {object} models.ApiResponse{data=[]models.LeadProductInterest}
// @Failure 400 {object} models.ApiResponse "Invalid lead ID"
// @Failure 404 {object} models.ApiResponse "Lead not found"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /crm/leads/{id}/products [get]
func GetLeadProducts(c *gin.Context) {
	idStr := strings.TrimSpace(c.Param("id"))
	leadID, err := uuid.Parse(idStr)
	if err != nil {
		log.Printf("[crm.lead.products] bad request: invalid lead id %q", idStr)
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid lead ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var exists bool
	if err := config.CrmDB.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM leads WHERE id = $1)", leadID,
	).Scan(&exists); err != nil {
		log.Printf("[crm.lead.products] ERROR existence check failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch lead products"))
		return
	}
	if !exists {
		log.Printf("[crm.lead.products] lead not found id=%s", leadID)
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Lead not found"))
		return
	}

	q := `
		SELECT
			product_id::text AS product_id,
			product_name,
			quantity,
			interest_level,
			notes,
			created_at,
			updated_at
		FROM lead_products
		WHERE lead_id = ?
		ORDER BY created_at ASC
	`

	interests := make([]models.LeadProductInterest, 0, 8)
	if err := config.CrmGorm.WithContext(ctx).Raw(q, leadID).Scan(&interests).Error; err != nil {
		log.Printf("[crm.lead.products] ERROR query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch lead products"))
		return
	}

	log.Printf("[crm.lead.products] success id=%s rows=%d", leadID, len(interests))

	c.JSON(http.StatusOK, models.SuccessResponse(
		c,
		"Lead products retrieved successfully",
		interests,
	))
}
