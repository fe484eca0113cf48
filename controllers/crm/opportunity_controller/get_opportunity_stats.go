package opportunity_controller

import (
	"log"
	"math"
	"net/http"
	"strings"

	"github.com/Vantage-CRM/vantage-crm-backend/config"
	"github.com/Vantage-CRM/vantage-crm-backend/models"
	"github.com/gin-gonic/gin"
)

// GetOpportunityStats godoc
// @Summary Get opportunity stats (CRM)
// @Description Whole-table pipeline aggregates: open deal count, probability-weighted pipeline value, closed revenue, per-stage breakdown and win rate.
// @Tags CRM - Opportunities
// @Accept json
// @Produce json
// @Success 200 {object} models.ApiResponse{data=models.OpportunityStats}
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /crm/opportunities/stats [get]
func GetOpportunityStats(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	q := `
		WITH
		totals AS (
			SELECT
				COUNT(*)::int AS total,
				COALESCE(SUM(CASE WHEN stage NOT IN ('WON', 'LOST') THEN 1 ELSE 0 END), 0)::int AS open,
				COALESCE(SUM(CASE WHEN stage NOT IN ('WON', 'LOST') THEN value * probability / 100.0 ELSE 0 END), 0) AS pipeline_value,
				COALESCE(SUM(CASE WHEN stage = 'WON' THEN value ELSE 0 END), 0) AS closed_revenue,
				COALESCE(SUM(CASE WHEN stage = 'WON' THEN 1 ELSE 0 END), 0)::int AS won,
				COALESCE(SUM(CASE WHEN stage = 'LOST' THEN 1 ELSE 0 END), 0)::int AS lost
			FROM opportunities
		),
		monthly AS (
			SELECT COUNT(*)::int AS won_this_month
			FROM opportunities
			WHERE stage = 'WON'
			  AND close_date >= date_trunc('month', NOW())
			  AND close_date <  date_trunc('month', NOW()) + INTERVAL '1 month'
		)
		SELECT totals.total, totals.open, totals.pipeline_value, totals.closed_revenue, totals.won, totals.lost, monthly.won_this_month
		FROM totals, monthly;
	`

	log.Printf("[crm.opportunity.stats] sql=%s", strings.ReplaceAll(q, "\n", " "))

	var total, open, won, lost, wonThisMonth int
	var pipelineValue, closedRevenue float64
	err := config.CrmGorm.WithContext(ctx).Raw(q).Row().Scan(
		&total,
		&open,
		&pipelineValue,
		&closedRevenue,
		&won,
		&lost,
		&wonThisMonth,
	)
	if err != nil {
		log.Printf("[crm.opportunity.stats] ERROR totals query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch opportunity stats"))
		return
	}

	rows, err := config.CrmDB.Query(ctx, "SELECT stage, COUNT(*)::int FROM opportunities GROUP BY stage")
	if err != nil {
		log.Printf("[crm.opportunity.stats] ERROR breakdown query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch opportunity stats"))
		return
	}
	defer rows.Close()

	byStage := make(map[string]int)
	for rows.Next() {
		var stage string
		var count int
		if err := rows.Scan(&stage, &count); err != nil {
			log.Printf("[crm.opportunity.stats] ERROR breakdown scan failed err=%v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch opportunity stats"))
			return
		}
		byStage[stage] = count
	}

	var winRate float64
	if won+lost > 0 {
		winRate = math.Round(float64(won)/float64(won+lost)*1000) / 10
	}

	stats := models.OpportunityStats{
		TotalOpportunities: total,
		OpenOpportunities:  open,
		PipelineValue:      math.Round(pipelineValue*100) / 100,
		ClosedRevenue:      math.Round(closedRevenue*100) / 100,
		ByStage:            byStage,
		WonThisMonth:       wonThisMonth,
		WinRate:            winRate,
	}

	log.Printf("[crm.opportunity.stats] done total=%d open=%d pipeline=%.2f closed=%.2f winRate=%.1f",
		total, open, stats.PipelineValue, stats.ClosedRevenue, winRate)

	c.JSON(http.StatusOK, models.SuccessResponse(
		c,
		"Opportunity stats retrieved successfully",
		stats,
	))
}
