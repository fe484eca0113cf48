package product_controller

import (
	"log"
	"net/http"

	stats_cache "github.com/Vantage-CRM/vantage-crm-backend/cache"
	"github.com/Vantage-CRM/vantage-crm-backend/config"
	"github.com/Vantage-CRM/vantage-crm-backend/models"
	"github.com/gin-gonic/gin"
)

// GetStorefrontFilters godoc
// @Summary Get storefront filter metadata
// @Description Retrieve available categories, the catalog price range and availability counts for building the product filter UI.
// @Tags Storefront - Products
// @Produce json
// @Success 200 {object} models.ApiResponse{data=models.ProductFilters}
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /store/products/filters [get]
func GetStorefrontFilters(c *gin.Context) {
	if cached, ok := stats_cache.GetProductFilters(); ok {
		c.JSON(http.StatusOK, models.SuccessResponse(c, "Filters fetched successfully", cached))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	filters := models.ProductFilters{
		Categories:   []models.FilterOption{},
		Availability: []models.FilterOption{},
	}

	categoryQuery := `
		SELECT c.name AS label, LOWER(c.name) AS value, COUNT(p.id)::int AS count
		FROM categories c
		JOIN products p ON p.category_id = c.id AND p.status = 'Active'
		GROUP BY c.name
		ORDER BY c.name
	`
	if err := config.EcommerceGorm.WithContext(ctx).Raw(categoryQuery).Scan(&filters.Categories).Error; err != nil {
		log.Printf("[store.filters] ERROR category counts failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch filters"))
		return
	}

	rangeQuery := `
		SELECT COALESCE(MIN(price), 0) AS min, COALESCE(MAX(price), 0) AS max
		FROM products
		WHERE status = 'Active'
	`
	if err := config.EcommerceGorm.WithContext(ctx).Raw(rangeQuery).Scan(&filters.PriceRange).Error; err != nil {
		log.Printf("[store.filters] ERROR price range failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch filters"))
		return
	}

	availabilityQuery := `
		SELECT
			COUNT(*) FILTER (WHERE quantity > 0)::int  AS in_stock,
			COUNT(*) FILTER (WHERE quantity <= 0)::int AS out_of_stock
		FROM products
		WHERE status = 'Active'
	`
	var avail struct {
		InStock    int `gorm:"column:in_stock"`
		OutOfStock int `gorm:"column:out_of_stock"`
	}
	if err := config.EcommerceGorm.WithContext(ctx).Raw(availabilityQuery).Scan(&avail).Error; err != nil {
		log.Printf("[store.filters] ERROR availability counts failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch filters"))
		return
	}
	filters.Availability = []models.FilterOption{
		{Label: "In stock", Value: "in_stock", Count: avail.InStock},
		{Label: "Out of stock", Value: "out_of_stock", Count: avail.OutOfStock},
	}

	stats_cache.SetProductFilters(filters)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Filters fetched successfully", filters))
}
