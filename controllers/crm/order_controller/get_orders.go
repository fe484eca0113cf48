package order_controller

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

var orderSortColumns = map[string]string{
	"created_at":   "o.created_at",
	"order_number": "o.order_number",
	"total_amount": "o.total_amount",
	"status":       "o.status",
}

// GetOrders godoc
// @Summary Get orders (CRM)
// @Description Retrieve storefront orders for the admin with customer details and per-order item aggregates. Supports filtering by status and free-text search.
// @Tags CRM - Orders
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 50)" default(10)
// @Param status query string false "Filter by order status (pending, confirmed, processing, shipped, delivered, cancelled, refunded)"
// @Param q query string false "Search by order number, customer email, or customer name"
// @Param sortBy query string false "Sort column (created_at, order_number, total_amount, status)" default(created_at)
// @Param sortOrder query string false "Sort direction (asc, desc)" default(desc)
// @Success 200 {object} models.ApiResponse{data=[]models.AdminOrderListRow,meta=models.Pagination}
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /crm/orders [get]
func GetOrders(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		log.Printf("[crm.orders] WARN invalid page=%q -> default 1", c.Query("page"))
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 50 {
		log.Printf("[crm.orders] WARN invalid limit=%q -> default 10", c.Query("limit"))
		limit = 10
	}
	offset := (page - 1) * limit

	status := strings.TrimSpace(c.Query("status"))
	q := strings.TrimSpace(c.Query("q"))

	sortBy, ok := orderSortColumns[c.DefaultQuery("sortBy", "created_at")]
	if !ok {
		log.Printf("[crm.orders] WARN unknown sortBy=%q -> created_at", c.Query("sortBy"))
		sortBy = "o.created_at"
	}
	sortOrder := strings.ToLower(c.DefaultQuery("sortOrder", "desc"))
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	log.Printf("[crm.orders] params page=%d limit=%d offset=%d status=%q q=%q sort=%s %s",
		page, limit, offset, status, q, sortBy, sortOrder)

	whereConditions := []string{}
	whereArgs := []interface{}{}

	if status != "" {
		whereConditions = append(whereConditions, "o.status = ?")
		whereArgs = append(whereArgs, status)
	}
	if q != "" {
		like := "%" + q + "%"
		whereConditions = append(whereConditions, "(o.order_number ILIKE ? OR u.email ILIKE ? OR u.name ILIKE ?)")
		whereArgs = append(whereArgs, like, like, like)
	}

	whereSQL := ""
	if len(whereConditions) > 0 {
		whereSQL = " WHERE " + strings.Join(whereConditions, " AND ")
	}

	countSQL := `
		SELECT COUNT(*)::int
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
	` + whereSQL

	var total int64
	if err := config.EcommerceGorm.Raw(countSQL, whereArgs...).Scan(&total).Error; err != nil {
		log.Printf("[crm.orders] ERROR count failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to count orders"))
		return
	}

	dataSQL := `
		SELECT
			o.id::text AS id,
			o.order_number,
			u.id::text AS customer_id,
			COALESCE(NULLIF(u.name, ''), u.email) AS customer_name,
			u.email AS customer_email,
			o.created_at,
			COUNT(oi.id)::int AS item_count,
			COALESCE(SUM(oi.quantity), 0)::int AS total_quantity,
			o.total_amount,
			o.status
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		LEFT JOIN order_items oi ON oi.order_id = o.id
	` + whereSQL + `
		GROUP BY o.id, o.order_number, u.id, u.name, u.email, o.created_at, o.total_amount, o.status
		ORDER BY ` + sortBy + ` ` + sortOrder + `
		LIMIT ? OFFSET ?
	`
	dataArgs := append(append([]interface{}{}, whereArgs...), limit, offset)

	log.Printf("[crm.orders] dataSQL=%s", strings.ReplaceAll(dataSQL, "\n", " "))

	result := make([]models.AdminOrderListRow, 0, limit)
	if err := config.EcommerceGorm.Raw(dataSQL, dataArgs...).Scan(&result).Error; err != nil {
		log.Printf("[crm.orders] ERROR data query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch orders"))
		return
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	meta := &models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      int(total),
		TotalPages: totalPages,
	}

	log.Printf("[crm.orders] respond 200 rows=%d meta=%+v", len(result), *meta)

	c.JSON(http.StatusOK, models.PaginatedResponse(
		c,
		"Orders retrieved successfully",
		result,
		meta,
	))
}
