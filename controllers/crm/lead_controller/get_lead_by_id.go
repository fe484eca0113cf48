package lead_controller

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

// GetLeadByID godoc
// @Summary Get lead by ID (CRM)
// @Description Retrieve a single lead including its embedded product interests blob.
// @Tags CRM - Leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID (UUID)"
// @Success 200 {object} models.ApiResponse{data=models.Lead}
// @Failure 400 {object} models.ApiResponse "Invalid lead ID"
// @Failure 404 {object} models.ApiResponse "Lead not found"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /crm/leads/{id} [get]
func GetLeadByID(c *gin.Context) {
	idStr := strings.TrimSpace(c.Param("id"))
	leadID, err := uuid.Parse(idStr)
	if err != nil {
		log.Printf("[crm.lead.detail] bad request: invalid lead id %q", idStr)
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid lead ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var lead models.Lead
	err = config.CrmGorm.WithContext(ctx).
		Table("leads").
		Where("id = ?", leadID).
		First(&lead).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[crm.lead.detail] lead not found id=%s", leadID)
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Lead not found"))
		return
	}
	if err != nil {
		log.Printf("[crm.lead.detail] ERROR query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch lead"))
		return
	}

	log.Printf("[crm.lead.detail] success id=%s status=%s", lead.ID, lead.Status)

	c.JSON(http.StatusOK, models.SuccessResponse(
		c,
		"Lead retrieved successfully",
		lead,
	))
}
