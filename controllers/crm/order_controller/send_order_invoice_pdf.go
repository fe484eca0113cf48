package order_controller

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/Vantage-CRM/vantage-crm-backend/config"
	"github.com/Vantage-CRM/vantage-crm-backend/models"
	"github.com/Vantage-CRM/vantage-crm-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
	"gorm.io/gorm"
)

// SendOrderInvoicePDF godoc
// @Summary Send order invoice (CRM)
// @Description Generate the order's invoice PDF and email it to the customer. The send happens in the background; the endpoint answers as soon as the invoice is queued. The action is recorded in the activity log.
// @Tags CRM - Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID (UUID)"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse "Invalid order ID or missing customer email"
// @Failure 404 {object} models.ApiResponse "Order not found"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /crm/orders/{id}/invoice [post]
func SendOrderInvoicePDF(c *gin.Context) {
	idStr := strings.TrimSpace(c.Param("id"))
	orderID, err := uuid.Parse(idStr)
	if err != nil {
		log.Printf("[crm.order.invoice] bad request: invalid order id %q", idStr)
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
		log.Printf("[crm.order.invoice] order not found id=%s", orderID)
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Order not found"))
		return
	}
	if err != nil {
		log.Printf("[crm.order.invoice] ERROR order query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch order"))
		return
	}

	var items []models.OrderItem
	if err := config.EcommerceGorm.WithContext(ctx).
		Table("order_items").
		Where("order_id = ?", orderID).
		Find(&items).Error; err != nil {
		log.Printf("[crm.order.invoice] ERROR items query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch order items"))
		return
	}

	var customer struct {
		Email string
		Name  string
	}
	if err := config.EcommerceGorm.WithContext(ctx).
		Table("users").
		Select("email, name").
		Where("id = ?", order.UserID).
		Scan(&customer).Error; err != nil {
		log.Printf("[crm.order.invoice] ERROR customer query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch customer"))
		return
	}
	if customer.Email == "" {
		log.Printf("[crm.order.invoice] customer email missing for order=%s", orderID)
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Customer email not found"))
		return
	}

	pdfBuffer := generateOrderInvoicePDF(&order, items, customer.Name, customer.Email)

	serviceItems := make([]services.OrderInvoiceItem, len(items))
	for i, item := range items {
		serviceItems[i] = services.OrderInvoiceItem{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Subtotal:    item.Price * float64(item.Quantity),
		}
	}

	// The Resend round-trip is slow; answer now, send in the background.
	go func() {
		resendClient := services.NewResendClient()

		emailData := services.OrderInvoiceEmailData{
			CustomerName:  customer.Name,
			CustomerEmail: customer.Email,
			OrderNumber:   order.OrderNumber,
			OrderDate:     order.CreatedAt.Format("Jan 02, 2006"),
			DueDate:       order.CreatedAt.AddDate(0, 0, 14).Format("Jan 02, 2006"),
			Items:         serviceItems,
			Subtotal:      order.Subtotal,
			ShippingCost:  order.ShippingCost,
			Tax:           order.Tax,
			Discount:      order.Discount,
			TotalAmount:   order.TotalAmount,
			PDFContent:    pdfBuffer.Bytes(),
		}

		if err := resendClient.SendOrderInvoiceEmail(emailData); err != nil {
			log.Printf("[crm.order.invoice] ERROR email send failed order=%s err=%v", orderID, err)
		}
	}()

	actorEmail := strings.TrimSpace(c.GetHeader("X-Actor-Email"))
	services.LogActivity(services.LogActivityRequest{
		ActorEmail:   actorEmail,
		Action:       models.ActionSentOrderInvoice,
		ResourceType: models.ResourceTypeOrder,
		ResourceID:   order.ID,
		ResourceName: order.OrderNumber,
		Changes: services.CreateChanges(nil, map[string]interface{}{
			"order_number": order.OrderNumber,
			"sent_to":      customer.Email,
		}),
		Status:  services.StatusSuccess,
		Context: c,
	})

	log.Printf("[crm.order.invoice] queued order=%s to=%s items=%d", order.OrderNumber, customer.Email, len(items))

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Invoice email sent to customer", map[string]interface{}{
		"order_id":       order.ID,
		"customer_email": customer.Email,
	}))
}

// generateOrderInvoicePDF renders the invoice in memory.
func generateOrderInvoicePDF(order *models.Order, items []models.OrderItem, customerName, customerEmail string) *bytes.Buffer {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 20, 20)

	darkGray := color.Color{Red: 38, Green: 38, Blue: 34}
	mediumGray := color.Color{Red: 121, Green: 119, Blue: 109}

	m.Row(15, func() {
		m.Col(12, func() {
			m.Text("INVOICE", props.Text{
				Size:  24,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
	})

	m.Row(10, func() {
		m.Col(12, func() {
			m.Text("VANTAGE STORE", props.Text{
				Size:  16,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
	})

	m.Row(5, func() {
		m.Col(12, func() {
			m.Text("billing@vantage-crm.io", props.Text{
				Size:  9,
				Color: mediumGray,
			})
		})
	})

	m.Row(8, func() {})

	m.Row(5, func() {
		m.Col(6, func() {
			m.Text("BILL TO", props.Text{
				Size:  8,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
		m.Col(6, func() {
			m.Text("INVOICE DETAILS", props.Text{
				Size:  8,
				Style: consts.Bold,
				Color: darkGray,
				Align: consts.Right,
			})
		})
	})

	m.Row(5, func() {
		m.Col(6, func() {
			m.Text(customerName, props.Text{
				Size:  10,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
		m.Col(6, func() {
			m.Text(fmt.Sprintf("Invoice #%s", order.OrderNumber), props.Text{
				Size:  10,
				Color: darkGray,
				Align: consts.Right,
			})
		})
	})

	m.Row(5, func() {
		m.Col(6, func() {
			m.Text(customerEmail, props.Text{
				Size:  9,
				Color: mediumGray,
			})
		})
		m.Col(6, func() {
			m.Text(fmt.Sprintf("Date: %s", order.CreatedAt.Format("Jan 02, 2006")), props.Text{
				Size:  9,
				Color: mediumGray,
				Align: consts.Right,
			})
		})
	})

	m.Row(8, func() {})

	m.Row(6, func() {
		m.Col(6, func() {
			m.Text("Description", props.Text{
				Size:  8,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
		m.Col(2, func() {
			m.Text("Qty", props.Text{
				Size:  8,
				Style: consts.Bold,
				Color: darkGray,
				Align: consts.Right,
			})
		})
		m.Col(2, func() {
			m.Text("Price", props.Text{
				Size:  8,
				Style: consts.Bold,
				Color: darkGray,
				Align: consts.Right,
			})
		})
		m.Col(2, func() {
			m.Text("Total", props.Text{
				Size:  8,
				Style: consts.Bold,
				Color: darkGray,
				Align: consts.Right,
			})
		})
	})

	for _, item := range items {
		itemTotal := item.Price * float64(item.Quantity)
		m.Row(6, func() {
			m.Col(6, func() {
				m.Text(item.ProductName, props.Text{
					Size:  9,
					Color: darkGray,
				})
			})
			m.Col(2, func() {
				m.Text(fmt.Sprintf("%d", item.Quantity), props.Text{
					Size:  9,
					Color: darkGray,
					Align: consts.Right,
				})
			})
			m.Col(2, func() {
				m.Text(fmt.Sprintf("$%.2f", item.Price), props.Text{
					Size:  9,
					Color: darkGray,
					Align: consts.Right,
				})
			})
			m.Col(2, func() {
				m.Text(fmt.Sprintf("$%.2f", itemTotal), props.Text{
					Size:  9,
					Color: darkGray,
					Align: consts.Right,
				})
			})
		})
	}

	m.Row(8, func() {})

	summaryRow := func(label string, value string, size float64, style consts.Style) {
		m.Row(5, func() {
			m.Col(8, func() {})
			m.Col(2, func() {
				m.Text(label, props.Text{
					Size:  size,
					Style: style,
					Color: mediumGray,
					Align: consts.Right,
				})
			})
			m.Col(2, func() {
				m.Text(value, props.Text{
					Size:  size,
					Style: style,
					Color: darkGray,
					Align: consts.Right,
				})
			})
		})
	}

	summaryRow("Subtotal", fmt.Sprintf("$%.2f", order.Subtotal), 9, consts.Normal)
	summaryRow("Shipping", fmt.Sprintf("$%.2f", order.ShippingCost), 9, consts.Normal)
	summaryRow("Tax", fmt.Sprintf("$%.2f", order.Tax), 9, consts.Normal)
	if order.Discount > 0 {
		summaryRow("Discount", fmt.Sprintf("-$%.2f", order.Discount), 9, consts.Normal)
	}
	summaryRow("Total", fmt.Sprintf("$%.2f", order.TotalAmount), 12, consts.Bold)

	m.Row(12, func() {})

	m.Row(5, func() {
		m.Col(12, func() {
			m.Text("Thank you for your business!", props.Text{
				Size:  8,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
	})

	m.Row(5, func() {
		m.Col(12, func() {
			m.Text("© 2026 Vantage Store. All rights reserved.", props.Text{
				Size:  8,
				Color: mediumGray,
			})
		})
	})

	buf, err := m.Output()
	if err != nil {
		log.Printf("[crm.order.invoice] ERROR pdf generation failed err=%v", err)
		return bytes.NewBuffer(nil)
	}

	return &buf
}
