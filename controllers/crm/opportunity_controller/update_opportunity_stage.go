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

// UpdateOpportunityStage godoc
// @Summary Update opportunity stage (CRM)
// @Description Move a deal to a new pipeline stage. Probability is optional; when omitted, WON snaps to 100 and LOST to 0, other stages keep their current value. Closing a WON deal records the owning agent's commission.
// @Tags CRM - Opportunities
// @Accept json
// @Produce json
// @Param id path string true "Opportunity ID (UUID)"
// @Param payload body models.UpdateOpportunityStageRequest true "Stage payload"
// @Success 200 {object} models.ApiResponse{data=models.Opportunity}
// @Failure 400 {object} models.ApiResponse "Bad request"
// @Failure 404 {object} models.ApiResponse "Opportunity not found"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /crm/opportunities/{id}/stage [patch]
func UpdateOpportunityStage(c *gin.Context) {
	idStr := strings.TrimSpace(c.Param("id"))
	oppID, err := uuid.Parse(idStr)
	if err != nil {
		log.Printf("[crm.opportunity.stage] bad request: invalid id %q", idStr)
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid opportunity ID"))
		return
	}

	var req models.UpdateOpportunityStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[crm.opportunity.stage] bad request: bind json err=%v", err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	q := `
		UPDATE opportunities
		SET
			stage = ?::text,
			probability = CASE
				WHEN ?::int IS NOT NULL THEN ?::int
				WHEN ?::text = 'WON' THEN 100
				WHEN ?::text = 'LOST' THEN 0
				ELSE probability
			END,
			close_date = CASE
				WHEN ?::text IN ('WON', 'LOST') AND close_date IS NULL THEN NOW()
				ELSE close_date
			END,
			updated_at = NOW()
		WHERE id = ?
		RETURNING *
	`

	log.Printf("[crm.opportunity.stage] id=%s newStage=%s probabilityProvided=%v", oppID, req.Stage, req.Probability != nil)

	var opp models.Opportunity
	err = config.CrmGorm.WithContext(ctx).Raw(
		q,
		req.Stage,
		req.Probability,
		req.Probability,
		req.Stage,
		req.Stage,
		req.Stage,
		oppID,
	).Scan(&opp).Error
	if err != nil {
		log.Printf("[crm.opportunity.stage] ERROR update failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update opportunity"))
		return
	}
	if opp.ID == "" {
		log.Printf("[crm.opportunity.stage] not found id=%s", oppID)
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Opportunity not found"))
		return
	}

	if req.Stage == models.StageWon {
		recordCommission(opp)
	}

	log.Printf("[crm.opportunity.stage] success id=%s stage=%s probability=%d", opp.ID, opp.Stage, opp.Probability)

	c.JSON(http.StatusOK, models.SuccessResponse(
		c,
		"Opportunity updated successfully",
		opp,
	))
}

// recordCommission writes the owning agent's commission for a freshly won
// deal. Failure is logged but never blocks the stage update - the books can
// be reconciled, the pipeline cannot wait.
func recordCommission(opp models.Opportunity) {
	if opp.OwnerID == nil {
		log.Printf("[crm.opportunity.stage] no owner on won deal id=%s, skipping commission", opp.ID)
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	q := `
		INSERT INTO agent_commissions (id, agent_id, opportunity_id, amount, currency, status, created_at)
		SELECT ?, a.id, ?, ? * a.commission_rate, ?, 'pending', NOW()
		FROM agents a
		WHERE a.id = ?
		ON CONFLICT (opportunity_id) DO NOTHING
	`

	id := uuid.Must(uuid.NewV7()).String()
	if err := config.CrmGorm.WithContext(ctx).Exec(
		q, id, opp.ID, opp.Value, opp.Currency, *opp.OwnerID,
	).Error; err != nil {
		log.Printf("[crm.opportunity.stage] ERROR commission insert failed opp=%s agent=%s err=%v", opp.ID, *opp.OwnerID, err)
		return
	}

	log.Printf("[crm.opportunity.stage] commission recorded opp=%s agent=%s", opp.ID, *opp.OwnerID)
}
