package order_controller

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Vantage-CRM/vantage-crm-backend/config"
	"github.com/Vantage-CRM/vantage-crm-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderDetailsByID godoc
// @Summary Get order details (CRM)
// @Description Retrieve an order with all of its line items.
// @Tags CRM - Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID (UUID)"
// @Success 200 {object} models.ApiResponse{data=models.OrderWithItems}
// @Failure 400 {object} models.ApiResponse "Invalid order ID"
// @Failure 404 {object} models.ApiResponse "Order not found"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /crm/orders/{id} [get]
func GetOrderDetailsByID(c *gin.Context) {
	idStr := strings.TrimSpace(c.Param("id"))
	orderID, err := uuid.Parse(idStr)
	if err != nil {
		log.Printf("[crm.order.detail] bad request: invalid order id %q", idStr)
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid order ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var order models.Order
	err = config.EcommerceGorm.WithContext(ctx).
		Table("orders").
		Where("id = ?", orderID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[crm.order.detail] order not found id=%s", orderID)
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Order not found"))
		return
	}
	if err != nil {
		log.Printf("[crm.order.detail] ERROR order query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch order"))
		return
	}

	items := make([]models.OrderItem, 0, 8)
	if err := config.EcommerceGorm.WithContext(ctx).
		Table("order_items").
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		log.Printf("[crm.order.detail] ERROR items query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch order items"))
		return
	}

	log.Printf("[crm.order.detail] success id=%s items=%d total=%.2f", order.ID, len(items), order.TotalAmount)

	c.JSON(http.StatusOK, models.SuccessResponse(
		c,
		"Order retrieved successfully",
		models.OrderWithItems{Order: order, Items: items},
	))
}
