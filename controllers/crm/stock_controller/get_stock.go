package stock_controller

import (
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/Vantage-CRM/vantage-crm-backend/config"
	"github.com/Vantage-CRM/vantage-crm-backend/models"
	"github.com/gin-gonic/gin"
)

var stockSortColumns = map[string]string{
	"product_name": "p.name",
	"sku":          "p.sku",
	"available":    "available",
	"unit_price":   "p.price",
	"updated_at":   "p.updated_at",
}

// GetStock godoc
// @Summary Get stock levels (CRM)
// @Description Inventory view over the storefront catalog: on-hand quantity minus reservations with a derived availability bucket. Filterable by availability and category.
// @Tags CRM - Stock
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 50)" default(10)
// @Param q query string false "Search by product name or SKU"
// @Param status query string false "Filter by availability (in_stock, low_stock, out_of_stock)"
// @Param category query string false "Filter by category"
// @Param sortBy query string false "Sort column (product_name, sku, available, unit_price, updated_at)" default(product_name)
// @Param sortOrder query string false "Sort direction (asc, desc)" default(asc)
// @Success 200 {object} models.ApiResponse{data=[]models.StockRow,meta=models.Pagination}
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /crm/stock [get]
func GetStock(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		log.Printf("[crm.stock] WARN invalid page=%q -> default 1", c.Query("page"))
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 50 {
		log.Printf("[crm.stock] WARN invalid limit=%q -> default 10", c.Query("limit"))
		limit = 10
	}
	offset := (page - 1) * limit

	q := strings.TrimSpace(c.Query("q"))
	status := strings.TrimSpace(c.Query("status"))
	category := strings.TrimSpace(c.Query("category"))

	sortBy, ok := stockSortColumns[c.DefaultQuery("sortBy", "product_name")]
	if !ok {
		log.Printf("[crm.stock] WARN unknown sortBy=%q -> product_name", c.Query("sortBy"))
		sortBy = "p.name"
	}
	sortOrder := strings.ToLower(c.DefaultQuery("sortOrder", "asc"))
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "asc"
	}

	log.Printf("[crm.stock] params page=%d limit=%d offset=%d q=%q status=%q category=%q sort=%s %s",
		page, limit, offset, q, status, category, sortBy, sortOrder)

	whereConditions := []string{}
	whereArgs := []interface{}{}

	if q != "" {
		like := "%" + q + "%"
		whereConditions = append(whereConditions, "(p.name ILIKE ? OR p.sku ILIKE ?)")
		whereArgs = append(whereArgs, like, like)
	}
	if category != "" {
		whereConditions = append(whereConditions, "c.name = ?")
		whereArgs = append(whereArgs, category)
	}
	switch status {
	case models.StockStatusOutOfStock:
		whereConditions = append(whereConditions, "p.quantity - COALESCE(r.reserved, 0) <= 0")
	case models.StockStatusLowStock:
		whereConditions = append(whereConditions,
			"p.quantity - COALESCE(r.reserved, 0) > 0 AND p.quantity - COALESCE(r.reserved, 0) <= p.reorder_level")
	case models.StockStatusInStock:
		whereConditions = append(whereConditions, "p.quantity - COALESCE(r.reserved, 0) > p.reorder_level")
	case "":
	default:
		log.Printf("[crm.stock] WARN unknown status filter %q ignored", status)
	}

	whereSQL := ""
	if len(whereConditions) > 0 {
		whereSQL = " WHERE " + strings.Join(whereConditions, " AND ")
	}

	// Reservations: items of orders that are taken but not yet shipped.
	fromSQL := `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		LEFT JOIN (
			SELECT oi.product_id, COALESCE(SUM(oi.quantity), 0)::int AS reserved
			FROM order_items oi
			JOIN orders o ON o.id = oi.order_id
			WHERE o.status IN ('pending', 'confirmed', 'processing')
			GROUP BY oi.product_id
		) r ON r.product_id = p.id
	`

	var total int64
	if err := config.EcommerceGorm.Raw("SELECT COUNT(*)::int "+fromSQL+whereSQL, whereArgs...).Scan(&total).Error; err != nil {
		log.Printf("[crm.stock] ERROR count failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to count stock rows"))
		return
	}

	dataSQL := `
		SELECT
			p.id::text AS product_id,
			p.sku,
			p.name AS product_name,
			c.name AS category,
			p.quantity,
			COALESCE(r.reserved, 0) AS reserved,
			p.quantity - COALESCE(r.reserved, 0) AS available,
			p.reorder_level,
			p.price AS unit_price,
			p.updated_at
	` + fromSQL + whereSQL + `
		ORDER BY ` + sortBy + ` ` + sortOrder + `
		LIMIT ? OFFSET ?
	`
	dataArgs := append(append([]interface{}{}, whereArgs...), limit, offset)

	log.Printf("[crm.stock] dataSQL=%s", strings.ReplaceAll(dataSQL, "\n", " "))

	result := make([]models.StockRow, 0, limit)
	if err := config.EcommerceGorm.Raw(dataSQL, dataArgs...).Scan(&result).Error; err != nil {
		log.Printf("[crm.stock] ERROR data query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch stock"))
		return
	}

	for i := range result {
		result[i].Status = models.StockStatus(result[i].Available, result[i].ReorderLevel)
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	meta := &models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      int(total),
		TotalPages: totalPages,
	}

	log.Printf("[crm.stock] respond 200 rows=%d meta=%+v", len(result), *meta)

	c.JSON(http.StatusOK, models.PaginatedResponse(
		c,
		"Stock levels retrieved successfully",
		result,
		meta,
	))
}
