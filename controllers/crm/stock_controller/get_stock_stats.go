package stock_controller

import (
	"log"
	"math"
	"net/http"
	"strings"

	"github.com/Vantage-CRM/vantage-crm-backend/config"
	"github.com/Vantage-CRM/vantage-crm-backend/models"
	"github.com/gin-gonic/gin"
)

// GetStockStats godoc
// @Summary Get stock stats (CRM)
// @Description Inventory dashboard cards: product counts per availability bucket and total inventory value (available units at current price).
// @Tags CRM - Stock
// @Accept json
// @Produce json
// @Success 200 {object} models.ApiResponse{data=models.StockStats}
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /crm/stock/stats [get]
func GetStockStats(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	q := `
		WITH availability AS (
			SELECT
				p.id,
				p.price,
				p.reorder_level,
				p.quantity - COALESCE(r.reserved, 0) AS available
			FROM products p
			LEFT JOIN (
				SELECT oi.product_id, COALESCE(SUM(oi.quantity), 0)::int AS reserved
				FROM order_items oi
				JOIN orders o ON o.id = oi.order_id
				WHERE o.status IN ('pending', 'confirmed', 'processing')
				GROUP BY oi.product_id
			) r ON r.product_id = p.id
		)
		SELECT
			COUNT(*)::int AS total,
			COALESCE(SUM(CASE WHEN available > reorder_level THEN 1 ELSE 0 END), 0)::int AS in_stock,
			COALESCE(SUM(CASE WHEN available > 0 AND available <= reorder_level THEN 1 ELSE 0 END), 0)::int AS low_stock,
			COALESCE(SUM(CASE WHEN available <= 0 THEN 1 ELSE 0 END), 0)::int AS out_of_stock,
			COALESCE(SUM(CASE WHEN available > 0 THEN available * price ELSE 0 END), 0) AS inventory_value
		FROM availability;
	`

	log.Printf("[crm.stock.stats] sql=%s", strings.ReplaceAll(q, "\n", " "))

	var stats models.StockStats
	err := config.EcommerceGorm.WithContext(ctx).Raw(q).Row().Scan(
		&stats.TotalProducts,
		&stats.InStock,
		&stats.LowStock,
		&stats.OutOfStock,
		&stats.InventoryValue,
	)
	if err != nil {
		log.Printf("[crm.stock.stats] ERROR query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch stock stats"))
		return
	}

	stats.InventoryValue = math.Round(stats.InventoryValue*100) / 100

	log.Printf("[crm.stock.stats] done total=%d inStock=%d lowStock=%d outOfStock=%d value=%.2f",
		stats.TotalProducts, stats.InStock, stats.LowStock, stats.OutOfStock, stats.InventoryValue)

	c.JSON(http.StatusOK, models.SuccessResponse(
		c,
		"Stock stats retrieved successfully",
		stats,
	))
}
