package lead_controller

import (
	"log"
	"math"
	"net/http"
	"strings"

	stats_cache "github.com/Vantage-CRM/vantage-crm-backend/cache"
	"github.com/Vantage-CRM/vantage-crm-backend/config"
	"github.com/Vantage-CRM/vantage-crm-backend/models"
	"github.com/gin-gonic/gin"
)

// GetLeadStats godoc
// @Summary Get lead stats (CRM)
// @Description Returns whole-table lead aggregates: totals, per-status breakdown, monthly growth and conversion rate. Cached for a few minutes; any lead mutation invalidates the cache.
// @Tags CRM - Leads
// @Accept json
// @Produce json
// @Success 200 {object} models.ApiResponse{data=models.LeadStats}
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /crm/leads/stats [get]
func GetLeadStats(c *gin.Context) {
	if stats, ok := stats_cache.GetLeadStats(); ok {
		log.Printf("[crm.lead.stats] cache hit total=%d", stats.TotalLeads)
		c.JSON(http.StatusOK, models.SuccessResponse(c, "Lead stats retrieved successfully", stats))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	q := `
		WITH
		totals AS (
			SELECT
				COUNT(*)::int AS total,
				COALESCE(SUM(interactions), 0)::int AS interactions,
				COALESCE(SUM(CASE WHEN status = 'CONVERTED_TO_OPPORTUNITY' THEN 1 ELSE 0 END), 0)::int AS converted
			FROM leads
		),
		cur AS (
			SELECT
				COUNT(*)::int AS total,
				COALESCE(SUM(CASE WHEN status = 'CONVERTED_TO_OPPORTUNITY' THEN 1 ELSE 0 END), 0)::int AS converted
			FROM leads
			WHERE created_at >= date_trunc('month', NOW())
			  AND created_at <  date_trunc('month', NOW()) + INTERVAL '1 month'
		),
		prev AS (
			SELECT COUNT(*)::int AS total
			FROM leads
			WHERE created_at >= date_trunc('month', NOW()) - INTERVAL '1 month'
			  AND created_at <  date_trunc('month', NOW())
		)
		SELECT totals.total, totals.interactions, totals.converted, cur.total, cur.converted, prev.total
		FROM totals, cur, prev;
	`

	log.Printf("[crm.lead.stats] sql=%s", strings.ReplaceAll(q, "\n", " "))

	var total, interactions, converted, curTotal, curConverted, prevTotal int
	err := config.CrmGorm.WithContext(ctx).Raw(q).Row().Scan(
		&total,
		&interactions,
		&converted,
		&curTotal,
		&curConverted,
		&prevTotal,
	)
	if err != nil {
		log.Printf("[crm.lead.stats] ERROR totals query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch lead stats"))
		return
	}

	byStatusSQL := `SELECT status, COUNT(*)::int AS count FROM leads GROUP BY status`
	rows, err := config.CrmDB.Query(ctx, byStatusSQL)
	if err != nil {
		log.Printf("[crm.lead.stats] ERROR breakdown query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch lead stats"))
		return
	}
	defer rows.Close()

	byStatus := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			log.Printf("[crm.lead.stats] ERROR breakdown scan failed err=%v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch lead stats"))
			return
		}
		// Legacy rows may carry alias statuses; fold them into the canon.
		byStatus[models.CanonicalLeadStatus(status)] += count
	}

	var growth float64
	if prevTotal > 0 {
		growth = math.Round(float64(curTotal-prevTotal)/float64(prevTotal)*1000) / 10
	}
	var conversionRate float64
	if total > 0 {
		conversionRate = math.Round(float64(converted)/float64(total)*1000) / 10
	}
	var avgInteractions float64
	if total > 0 {
		avgInteractions = math.Round(float64(interactions)/float64(total)*10) / 10
	}

	stats := models.LeadStats{
		TotalLeads:             total,
		NewThisMonth:           curTotal,
		GrowthPercentage:       growth,
		ByStatus:               byStatus,
		ConvertedThisMonth:     curConverted,
		ConversionRate:         conversionRate,
		AvgInteractionsPerLead: avgInteractions,
	}

	stats_cache.SetLeadStats(stats)
	log.Printf("[crm.lead.stats] done total=%d newThisMonth=%d converted=%d growth=%.1f", total, curTotal, converted, growth)

	c.JSON(http.StatusOK, models.SuccessResponse(
		c,
		"Lead stats retrieved successfully",
		stats,
	))
}
