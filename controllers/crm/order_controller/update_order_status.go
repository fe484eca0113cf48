package order_controller

import (
	"log"
	"net/http"
	"strings"

	"github.com/Vantage-CRM/vantage-crm-backend/config"
	"github.com/Vantage-CRM/vantage-crm-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UpdateOrderStatus godoc
// @Summary Update order status (CRM)
// @Description Update an order's status. admin_notes is optional for all statuses but required when cancelling (the cancellation reason). Lifecycle timestamps (confirmed_at, shipped_at, delivered_at) are stamped on first entry into the matching status.
// @Tags CRM - Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID (UUID)"
// @Param payload body models.UpdateOrderStatusRequest true "Update payload"
// @Success 200 {object} models.ApiResponse{data=models.Order}
// @Failure 400 {object} models.ApiResponse "Bad request"
// @Failure 404 {object} models.ApiResponse "Order not found"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /crm/orders/{id}/status [patch]
func UpdateOrderStatus(c *gin.Context) {
	idStr := strings.TrimSpace(c.Param("id"))
	orderID, err := uuid.Parse(idStr)
	if err != nil {
		log.Printf("[crm.order.update] bad request: invalid order id %q", idStr)
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid order ID"))
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[crm.order.update] bad request: bind json err=%v", err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}

	req.Status = strings.TrimSpace(strings.ToLower(req.Status))

	if req.Status == "cancelled" {
		if req.AdminNotes == nil || strings.TrimSpace(*req.AdminNotes) == "" {
			log.Printf("[crm.order.update] bad request: cancelled without admin_notes")
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "admin_notes is required when cancelling an order"))
			return
		}
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	q := `
		UPDATE orders
		SET
			status = ?::text,
			admin_notes = CASE
				WHEN ?::text IS NULL THEN admin_notes
				ELSE ?::text
			END,
			updated_at = NOW(),
			confirmed_at = CASE
				WHEN ?::text = 'confirmed' AND confirmed_at IS NULL THEN NOW()
				ELSE confirmed_at
			END,
			shipped_at = CASE
				WHEN ?::text = 'shipped' AND shipped_at IS NULL THEN NOW()
				ELSE shipped_at
			END,
			delivered_at = CASE
				WHEN ?::text = 'delivered' AND delivered_at IS NULL THEN NOW()
				ELSE delivered_at
			END
		WHERE id = ?
		RETURNING *
	`

	log.Printf("[crm.order.update] orderID=%s newStatus=%s adminNotesProvided=%v", orderID, req.Status, req.AdminNotes != nil)

	var order models.Order
	err = config.EcommerceGorm.WithContext(ctx).Raw(
		q,
		req.Status,
		req.AdminNotes,
		req.AdminNotes,
		req.Status,
		req.Status,
		req.Status,
		orderID,
	).Scan(&order).Error
	if err != nil {
		log.Printf("[crm.order.update] ERROR update failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update order"))
		return
	}
	if order.OrderNumber == "" {
		log.Printf("[crm.order.update] order not found id=%s", orderID)
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Order not found"))
		return
	}

	log.Printf("[crm.order.update] success order_number=%s status=%s", order.OrderNumber, order.Status)

	c.JSON(http.StatusOK, models.SuccessResponse(
		c,
		"Order updated successfully",
		order,
	))
}
