package lead_controller

import (
	"encoding/json"
	"log"
	"net/http"

	stats_cache "github.com/Vantage-CRM/vantage-crm-backend/cache"
	"github.com/Vantage-CRM/vantage-crm-backend/config"
	"github.com/Vantage-CRM/vantage-crm-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateLead godoc
// @Summary Create lead (CRM)
// @Description Create a new lead. Product interests captured on the form are stored on the lead record; they can later be merged with rows added through the lead products association.
// @Tags CRM - Leads
// @Accept json
// @Produce json
// @Param payload body models.CreateLeadRequest true "Lead payload"
// @Success 201 {object} models.ApiResponse{data=models.Lead}
// @Failure 400 {object} models.ApiResponse "Bad request"
// @Failure 409 {object} models.ApiResponse "Email already exists"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /crm/leads [post]
func CreateLead(c *gin.Context) {
	var req models.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[crm.lead.create] bad request: bind json err=%v", err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var exists bool
	if err := config.CrmGorm.WithContext(ctx).
		Raw("SELECT EXISTS (SELECT 1 FROM leads WHERE email = ?)", req.Email).
		Scan(&exists).Error; err != nil {
		log.Printf("[crm.lead.create] ERROR email check failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create lead"))
		return
	}
	if exists {
		log.Printf("[crm.lead.create] conflict: email already exists")
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "A lead with this email already exists"))
		return
	}

	var interests *string
	if len(req.ProductInterests) > 0 {
		encoded, err := json.Marshal(req.ProductInterests)
		if err != nil {
			log.Printf("[crm.lead.create] ERROR encode interests err=%v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create lead"))
			return
		}
		s := string(encoded)
		interests = &s
	}

	id := uuid.Must(uuid.NewV7()).String()
	q := `
		INSERT INTO leads (id, name, email, phone, company, status, source, product_interests, interactions, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?::jsonb, 0, ?, NOW(), NOW())
		RETURNING *
	`

	var lead models.Lead
	if err := config.CrmGorm.WithContext(ctx).Raw(
		q,
		id,
		req.Name,
		req.Email,
		req.Phone,
		req.Company,
		models.LeadStatusNew,
		req.Source,
		interests,
		req.Notes,
	).Scan(&lead).Error; err != nil {
		log.Printf("[crm.lead.create] ERROR insert failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create lead"))
		return
	}

	stats_cache.InvalidateLeadStats()
	log.Printf("[crm.lead.create] success id=%s interests=%d", lead.ID, len(req.ProductInterests))

	c.JSON(http.StatusCreated, models.SuccessResponse(
		c,
		"Lead created successfully",
		lead,
	))
}
