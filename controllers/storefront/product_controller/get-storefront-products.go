package product_controller

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

// GetStorefrontProducts godoc
// @Summary Get storefront products
// @Description Retrieve active storefront products with optional search, category, availability and price-range filters.
// @Tags Storefront - Products
// @Produce json
// @Param q query string false "Search query (name or description)"
// @Param category query string false "Category name"
// @Param availability query string false "Availability filter (in_stock | out_of_stock)"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param sortBy query string false "Sort by field (newest, price, name)" default(newest)
// @Param sortOrder query string false "Sort order (asc | desc)" default(desc)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(12)
// @Success 200 {object} models.ApiResponse{data=[]models.StorefrontProduct,meta=models.Pagination}
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /store/products [get]
func GetStorefrontProducts(c *gin.Context) {
	page, limit := parsePagination(c)
	offset := (page - 1) * limit

	searchQuery := strings.TrimSpace(c.Query("q"))
	category := strings.TrimSpace(c.Query("category"))
	availability := strings.TrimSpace(c.Query("availability"))
	sortBy := c.DefaultQuery("sortBy", "newest")
	sortOrder := strings.ToLower(c.DefaultQuery("sortOrder", "desc"))

	conditions := []string{"p.status = 'Active'"}
	args := []interface{}{}

	if searchQuery != "" {
		conditions = append(conditions, "(p.name ILIKE ? OR p.description ILIKE ?)")
		args = append(args, "%"+searchQuery+"%", "%"+searchQuery+"%")
	}
	if category != "" {
		conditions = append(conditions, "LOWER(c.name) = LOWER(?)")
		args = append(args, category)
	}
	switch availability {
	case "in_stock":
		conditions = append(conditions, "p.quantity > 0")
	case "out_of_stock":
		conditions = append(conditions, "p.quantity <= 0")
	}
	if minPriceStr := c.Query("minPrice"); minPriceStr != "" {
		if minPrice, err := strconv.ParseFloat(minPriceStr, 64); err == nil {
			conditions = append(conditions, "p.price >= ?")
			args = append(args, minPrice)
		}
	}
	if maxPriceStr := c.Query("maxPrice"); maxPriceStr != "" {
		if maxPrice, err := strconv.ParseFloat(maxPriceStr, 64); err == nil {
			conditions = append(conditions, "p.price <= ?")
			args = append(args, maxPrice)
		}
	}

	orderSQL := "p.created_at"
	switch sortBy {
	case "price":
		orderSQL = "p.price"
	case "name":
		orderSQL = "p.name"
	case "newest":
	default:
		log.Printf("[store.products] WARN unknown sortBy=%q -> newest", sortBy)
	}
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	whereSQL := " WHERE " + strings.Join(conditions, " AND ")
	fromSQL := `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
	`

	log.Printf("[store.products] params page=%d limit=%d q=%q category=%q availability=%q sort=%s %s",
		page, limit, searchQuery, category, availability, orderSQL, sortOrder)

	var total int64
	if err := config.EcommerceGorm.Raw("SELECT COUNT(*)::int "+fromSQL+whereSQL, args...).Scan(&total).Error; err != nil {
		log.Printf("[store.products] ERROR count failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to count products"))
		return
	}

	dataSQL := `
		SELECT
			p.id::text AS id,
			p.name,
			p.description,
			p.price,
			c.name AS category,
			p.media,
			p.quantity > 0 AS in_stock,
			p.views,
			p.created_at,
			p.updated_at
	` + fromSQL + whereSQL + `
		ORDER BY ` + orderSQL + ` ` + sortOrder + `
		LIMIT ? OFFSET ?
	`
	dataArgs := append(append([]interface{}{}, args...), limit, offset)

	result := make([]models.StorefrontProduct, 0, limit)
	if err := config.EcommerceGorm.Raw(dataSQL, dataArgs...).Scan(&result).Error; err != nil {
		log.Printf("[store.products] ERROR data query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch products"))
		return
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	meta := &models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      int(total),
		TotalPages: totalPages,
	}

	log.Printf("[store.products] respond 200 rows=%d meta=%+v", len(result), *meta)

	c.JSON(http.StatusOK, models.PaginatedResponse(
		c,
		"Products fetched successfully",
		result,
		meta,
	))
}
