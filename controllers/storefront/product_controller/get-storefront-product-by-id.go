package product_controller

import (
	"net/http"

	"github.com/Vantage-CRM/vantage-crm-backend/config"
	"github.com/Vantage-CRM/vantage-crm-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetStorefrontProductByID godoc
// @Summary Get single product details for storefront
// @Description Get detailed product information by ID
// @Tags Storefront - Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.ApiResponse{data=models.StorefrontProduct}
// @Failure 400 {object} models.ApiResponse "Invalid product ID"
// @Failure 404 {object} models.ApiResponse "Product not found"
// @Router /store/products/{id} [get]
func GetStorefrontProductByID(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	query := `
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
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = ? AND p.status = 'Active'
	`

	var product models.StorefrontProduct
	if err := config.EcommerceGorm.WithContext(ctx).Raw(query, productID).Scan(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
		return
	}
	if product.ID == "" {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
		return
	}

	// View counting is best-effort; the response never waits on it.
	go incrementProductViews(productID)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product fetched successfully", product))
}

func incrementProductViews(productID uuid.UUID) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	config.EcommerceGorm.WithContext(ctx).Exec(
		"UPDATE products SET views = COALESCE(views, 0) + 1 WHERE id = ?",
		productID,
	)
}
