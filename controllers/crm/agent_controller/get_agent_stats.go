package agent_controller

import (
	"log"
	"math"
	"net/http"
	"strings"

	"github.com/Vantage-CRM/vantage-crm-backend/config"
	"github.com/Vantage-CRM/vantage-crm-backend/models"
	"github.com/Vantage-CRM/vantage-crm-backend/services"
	"github.com/gin-gonic/gin"
)

// GetAgentStats godoc
// @Summary Get agent stats (CRM)
// @Description Agent dashboard cards: headcount plus pending and this-month-paid commission totals. Commissions are recorded per deal currency and converted into the base currency before summing; entries with no known rate are counted at face value.
// @Tags CRM - Agents
// @Accept json
// @Produce json
// @Success 200 {object} models.ApiResponse{data=models.AgentStats}
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /crm/agents/stats [get]
func GetAgentStats(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	var totalAgents, activeAgents int
	err := config.CrmGorm.WithContext(ctx).Raw(`
		SELECT
			COUNT(*)::int,
			COALESCE(SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END), 0)::int
		FROM agents
	`).Row().Scan(&totalAgents, &activeAgents)
	if err != nil {
		log.Printf("[crm.agent.stats] ERROR headcount query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch agent stats"))
		return
	}

	// Per-currency sums; conversion happens in Go so the rate table stays in
	// one place.
	q := `
		SELECT
			currency,
			COALESCE(SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END), 0) AS pending,
			COALESCE(SUM(CASE
				WHEN status = 'paid'
				 AND paid_at >= date_trunc('month', NOW())
				 AND paid_at <  date_trunc('month', NOW()) + INTERVAL '1 month'
				THEN amount ELSE 0 END), 0) AS paid_month
		FROM agent_commissions
		GROUP BY currency
	`

	log.Printf("[crm.agent.stats] sql=%s", strings.ReplaceAll(q, "\n", " "))

	rows, err := config.CrmDB.Query(ctx, q)
	if err != nil {
		log.Printf("[crm.agent.stats] ERROR commission query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch agent stats"))
		return
	}
	defer rows.Close()

	rates := services.CachedRates{Upstream: services.StaticRates{}}

	var pendingTotal, paidMonthTotal float64
	for rows.Next() {
		var currency string
		var pending, paidMonth float64
		if err := rows.Scan(&currency, &pending, &paidMonth); err != nil {
			log.Printf("[crm.agent.stats] ERROR commission scan failed err=%v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch agent stats"))
			return
		}

		convertedPending, err := services.Convert(rates, pending, currency, services.BaseCurrency)
		if err != nil {
			log.Printf("[crm.agent.stats] WARN no rate for %s, counting at face value: %v", currency, err)
			convertedPending = pending
		}
		convertedPaid, err := services.Convert(rates, paidMonth, currency, services.BaseCurrency)
		if err != nil {
			convertedPaid = paidMonth
		}

		pendingTotal += convertedPending
		paidMonthTotal += convertedPaid
	}

	stats := models.AgentStats{
		TotalAgents:          totalAgents,
		ActiveAgents:         activeAgents,
		PendingCommissions:   math.Round(pendingTotal*100) / 100,
		PaidCommissionsMonth: math.Round(paidMonthTotal*100) / 100,
		BaseCurrency:         services.BaseCurrency,
	}

	log.Printf("[crm.agent.stats] done total=%d active=%d pending=%.2f paidMonth=%.2f %s",
		totalAgents, activeAgents, stats.PendingCommissions, stats.PaidCommissionsMonth, services.BaseCurrency)

	c.JSON(http.StatusOK, models.SuccessResponse(
		c,
		"Agent stats retrieved successfully",
		stats,
	))
}
