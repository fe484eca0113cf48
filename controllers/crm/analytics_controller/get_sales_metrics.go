package analytics_controller

import (
	"log"
	"math"
	"net/http"

	"github.com/Vantage-CRM/vantage-crm-backend/config"
	"github.com/Vantage-CRM/vantage-crm-backend/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// GetSalesMetrics godoc
// @Summary Get sales metrics (CRM)
// @Description Analytics overview combining both databases: storefront revenue figures next to CRM lead conversion and pipeline value. The two sides are queried concurrently.
// @Tags CRM - Analytics
// @Accept json
// @Produce json
// @Success 200 {object} models.ApiResponse{data=models.SalesMetrics}
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /crm/analytics/sales-metrics [get]
func GetSalesMetrics(c *gin.Context) {
	log.Printf("[crm.analytics.metrics] start")

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var metrics models.SalesMetrics

	// The revenue side lives in the ecommerce DB and the funnel side in the
	// CRM DB; neither depends on the other.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		q := `
			WITH
			totals AS (
				SELECT
					COALESCE(SUM(total_amount), 0) AS revenue,
					COALESCE(AVG(total_amount), 0) AS avg_order
				FROM orders
				WHERE status NOT IN ('cancelled', 'refunded')
			),
			cur AS (
				SELECT COALESCE(SUM(total_amount), 0) AS revenue
				FROM orders
				WHERE status NOT IN ('cancelled', 'refunded')
				  AND created_at >= date_trunc('month', NOW())
				  AND created_at <  date_trunc('month', NOW()) + INTERVAL '1 month'
			),
			prev AS (
				SELECT COALESCE(SUM(total_amount), 0) AS revenue
				FROM orders
				WHERE status NOT IN ('cancelled', 'refunded')
				  AND created_at >= date_trunc('month', NOW()) - INTERVAL '1 month'
				  AND created_at <  date_trunc('month', NOW())
			)
			SELECT totals.revenue, totals.avg_order, cur.revenue, prev.revenue
			FROM totals, cur, prev;
		`

		var prevRevenue float64
		if err := config.EcommerceGorm.WithContext(gctx).Raw(q).Row().Scan(
			&metrics.TotalRevenue,
			&metrics.AvgOrderValue,
			&metrics.RevenueThisMonth,
			&prevRevenue,
		); err != nil {
			log.Printf("[crm.analytics.metrics] ERROR revenue query failed err=%v", err)
			return err
		}

		if prevRevenue > 0 {
			metrics.RevenueChange = math.Round((metrics.RevenueThisMonth-prevRevenue)/prevRevenue*1000) / 10
		}
		return nil
	})

	g.Go(func() error {
		q := `
			SELECT
				(SELECT COUNT(*)::int FROM leads),
				(SELECT COUNT(*)::int FROM leads WHERE status = 'CONVERTED_TO_OPPORTUNITY'),
				(SELECT COALESCE(SUM(value * probability / 100.0), 0) FROM opportunities WHERE stage NOT IN ('WON', 'LOST'))
		`

		if err := config.CrmGorm.WithContext(gctx).Raw(q).Row().Scan(
			&metrics.TotalLeads,
			&metrics.ConvertedLeads,
			&metrics.PipelineValue,
		); err != nil {
			log.Printf("[crm.analytics.metrics] ERROR funnel query failed err=%v", err)
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch sales metrics"))
		return
	}

	if metrics.TotalLeads > 0 {
		metrics.LeadConversion = math.Round(float64(metrics.ConvertedLeads)/float64(metrics.TotalLeads)*1000) / 10
	}
	metrics.TotalRevenue = math.Round(metrics.TotalRevenue*100) / 100
	metrics.AvgOrderValue = math.Round(metrics.AvgOrderValue*100) / 100
	metrics.PipelineValue = math.Round(metrics.PipelineValue*100) / 100

	log.Printf("[crm.analytics.metrics] done revenue=%.2f leads=%d conversion=%.1f pipeline=%.2f",
		metrics.TotalRevenue, metrics.TotalLeads, metrics.LeadConversion, metrics.PipelineValue)

	c.JSON(http.StatusOK, models.SuccessResponse(
		c,
		"Sales metrics retrieved successfully",
		metrics,
	))
}
