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

// GetLeadActivities godoc
// @Summary Get lead activities (CRM)
// @Description Returns a lead's full timeline - comments, emails, SMS, tasks, meetings and files - as one chronologically ordered collection, optionally filtered by kind.
// @Tags CRM - Leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID (UUID)"
// @Param kind query string false "Filter by activity kind (comment, email, sms, task, meeting, file)"
// @Success 200 {object} models.ApiResponse{data=[]models.LeadActivity}
// @Failure 400 {object} models.ApiResponse "Invalid lead ID"
// @Failure 404 {object} models.ApiResponse "Lead not found"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /crm/leads/{id}/activities [get]
func GetLeadActivities(c *gin.Context) {
	idStr := strings.TrimSpace(c.Param("id"))
	leadID, err := uuid.Parse(idStr)
	if err != nil {
		log.Printf("[crm.lead.activities] bad request: invalid lead id %q", idStr)
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid lead ID"))
		return
	}

	kind := strings.TrimSpace(c.Query("kind"))

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var exists bool
	if err := config.CrmDB.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM leads WHERE id = $1)", leadID,
	).Scan(&exists); err != nil {
		log.Printf("[crm.lead.activities] ERROR existence check failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch lead activities"))
		return
	}
	if !exists {
		log.Printf("[crm.lead.activities] lead not found id=%s", leadID)
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Lead not found"))
		return
	}

	db := config.CrmGorm.WithContext(ctx).
		Table("lead_activities").
		Where("lead_id = ?", leadID)
	if kind != "" {
		db = db.Where("kind = ?", kind)
	}

	activities := make([]models.LeadActivity, 0, 16)
	if err := db.Order("created_at DESC").Find(&activities).Error; err != nil {
		log.Printf("[crm.lead.activities] ERROR query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch lead activities"))
		return
	}

	log.Printf("[crm.lead.activities] success id=%s kind=%q rows=%d", leadID, kind, len(activities))

	c.JSON(http.StatusOK, models.SuccessResponse(
		c,
		"Lead activities retrieved successfully",
		activities,
	))
}
