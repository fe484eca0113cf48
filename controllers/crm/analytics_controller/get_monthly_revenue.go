package analytics_controller

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/Vantage-CRM/vantage-crm-backend/config"
	"github.com/Vantage-CRM/vantage-crm-backend/models"
	"github.com/gin-gonic/gin"
)

// GetMonthlyRevenue godoc
// @Summary Get monthly revenue (CRM)
// @Description Storefront revenue and order count per month for the trailing window (cancelled and refunded orders excluded). Months with no orders are omitted.
// @Tags CRM - Analytics
// @Accept json
// @Produce json
// @Param months query int false "Trailing window in months (max 36)" default(12)
// @Success 200 {object} models.ApiResponse{data=[]models.MonthlyRevenuePoint}
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /crm/analytics/monthly-revenue [get]
func GetMonthlyRevenue(c *gin.Context) {
	months, err := strconv.Atoi(c.DefaultQuery("months", "12"))
	if err != nil || months < 1 || months > 36 {
		log.Printf("[crm.analytics.revenue] WARN invalid months=%q -> default 12", c.Query("months"))
		months = 12
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	q := `
		SELECT
			to_char(date_trunc('month', created_at), 'YYYY-MM') AS month,
			COALESCE(SUM(total_amount), 0) AS revenue,
			COUNT(*)::int AS orders
		FROM orders
		WHERE status NOT IN ('cancelled', 'refunded')
		  AND created_at >= date_trunc('month', NOW()) - (?::int || ' months')::interval
		GROUP BY date_trunc('month', created_at)
		ORDER BY date_trunc('month', created_at) ASC
	`

	log.Printf("[crm.analytics.revenue] months=%d sql=%s", months, strings.ReplaceAll(q, "\n", " "))

	points := make([]models.MonthlyRevenuePoint, 0, months)
	if err := config.EcommerceGorm.WithContext(ctx).Raw(q, months-1).Scan(&points).Error; err != nil {
		log.Printf("[crm.analytics.revenue] ERROR query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch monthly revenue"))
		return
	}

	log.Printf("[crm.analytics.revenue] done points=%d", len(points))

	c.JSON(http.StatusOK, models.SuccessResponse(
		c,
		"Monthly revenue retrieved successfully",
		points,
	))
}
