package order_controller

import (
	"log"
	"math"
	"net/http"
	"strings"

	"github.com/Vantage-CRM/vantage-crm-backend/config"
	"github.com/Vantage-CRM/vantage-crm-backend/models"
	"github.com/gin-gonic/gin"
)

// GetOrderStats godoc
// @Summary Get order stats (CRM)
// @Description All-time order totals with per-status breakdown, month-over-month change and revenue to date (cancelled and refunded orders excluded from revenue).
// @Tags CRM - Orders
// @Accept json
// @Produce json
// @Success 200 {object} models.ApiResponse{data=models.OrderStats}
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /crm/orders/stats [get]
func GetOrderStats(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	q := `
		WITH
		all_time AS (
			SELECT
				COUNT(*)::int AS total,
				COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0)::int    AS pending,
				COALESCE(SUM(CASE WHEN status = 'processing' THEN 1 ELSE 0 END), 0)::int AS processing,
				COALESCE(SUM(CASE WHEN status = 'shipped' THEN 1 ELSE 0 END), 0)::int    AS shipped,
				COALESCE(SUM(CASE WHEN status = 'delivered' THEN 1 ELSE 0 END), 0)::int  AS delivered,
				COALESCE(SUM(CASE WHEN status = 'cancelled' THEN 1 ELSE 0 END), 0)::int  AS cancelled,
				COALESCE(SUM(CASE WHEN status NOT IN ('cancelled', 'refunded') THEN total_amount ELSE 0 END), 0) AS revenue
			FROM orders
		),
		cur AS (
			SELECT COUNT(*)::int AS total
			FROM orders
			WHERE created_at >= date_trunc('month', NOW())
			  AND created_at <  date_trunc('month', NOW()) + INTERVAL '1 month'
		),
		prev AS (
			SELECT COUNT(*)::int AS total
			FROM orders
			WHERE created_at >= date_trunc('month', NOW()) - INTERVAL '1 month'
			  AND created_at <  date_trunc('month', NOW())
		)
		SELECT
			all_time.total,
			all_time.pending,
			all_time.processing,
			all_time.shipped,
			all_time.delivered,
			all_time.cancelled,
			all_time.revenue,
			cur.total,
			prev.total
		FROM all_time, cur, prev;
	`

	log.Printf("[crm.order.stats] sql=%s", strings.ReplaceAll(q, "\n", " "))

	var total, pending, processing, shipped, delivered, cancelled, curTotal, prevTotal int
	var revenue float64

	err := config.EcommerceGorm.WithContext(ctx).Raw(q).Row().Scan(
		&total,
		&pending,
		&processing,
		&shipped,
		&delivered,
		&cancelled,
		&revenue,
		&curTotal,
		&prevTotal,
	)
	if err != nil {
		log.Printf("[crm.order.stats] ERROR query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch order stats"))
		return
	}

	var changePct float64
	if prevTotal > 0 {
		changePct = math.Round(float64(curTotal-prevTotal)/float64(prevTotal)*1000) / 10
	}

	stats := models.OrderStats{
		Total:         total,
		Pending:       pending,
		Processing:    processing,
		Shipped:       shipped,
		Delivered:     delivered,
		Cancelled:     cancelled,
		CurrentMonth:  curTotal,
		PreviousMonth: prevTotal,
		MonthlyChange: changePct,
		RevenueToDate: math.Round(revenue*100) / 100,
	}

	log.Printf("[crm.order.stats] done total=%d cur=%d prev=%d change=%.1f revenue=%.2f",
		total, curTotal, prevTotal, changePct, stats.RevenueToDate)

	c.JSON(http.StatusOK, models.SuccessResponse(
		c,
		"Order stats retrieved successfully",
		stats,
	))
}
