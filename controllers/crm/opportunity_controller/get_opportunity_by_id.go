package opportunity_controller

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

// GetOpportunityByID godoc
// @Summary Get opportunity by ID (CRM)
// @Description Retrieve a single opportunity.
// @Tags CRM - Opportunities
// @Accept json
// @Produce json
// @Param id path string true "Opportunity ID (UUID)"
// @Success 200 {object} models.ApiResponse{data=models.Opportunity}
// @Failure 400 {object} models.ApiResponse "Invalid opportunity ID"
// @Failure 404 {object} models.ApiResponse "Opportunity not found"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /crm/opportunities/{id} [get]
func GetOpportunityByID(c *gin.Context) {
	idStr := strings.TrimSpace(c.Param("id"))
	oppID, err := uuid.Parse(idStr)
	if err != nil {
		log.Printf("[crm.opportunity.detail] bad request: invalid id %q", idStr)
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid opportunity ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var opp models.Opportunity
	err = config.CrmGorm.WithContext(ctx).
		Table("opportunities").
		Where("id = ?", oppID).
		First(&opp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[crm.opportunity.detail] not found id=%s", oppID)
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Opportunity not found"))
		return
	}
	if err != nil {
		log.Printf("[crm.opportunity.detail] ERROR query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch opportunity"))
		return
	}

	log.Printf("[crm.opportunity.detail] success id=%s stage=%s", opp.ID, opp.Stage)

	c.JSON(http.StatusOK, models.SuccessResponse(
		c,
		"Opportunity retrieved successfully",
		opp,
	))
}
