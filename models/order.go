package models

import "time"

// Order represents a complete customer order
type Order struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	OrderNumber   string     `json:"order_number"`
	Subtotal      float64    `json:"subtotal"`
	Tax           float64    `json:"tax"`
	ShippingCost  float64    `json:"shipping_cost"`
	Discount      float64    `json:"discount"`
	TotalAmount   float64    `json:"total_amount"`
	Status        string     `json:"status"`
	CustomerNotes *string    `json:"customer_notes,omitempty"`
	AdminNotes    *string    `json:"admin_notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	ConfirmedAt   *time.Time `json:"confirmed_at,omitempty"`
	ShippedAt     *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt   *time.Time `json:"delivered_at,omitempty"`
}

// OrderItem represents an individual product in an order
type OrderItem struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Subtotal    float64   `json:"subtotal"`
	CreatedAt   time.Time `json:"created_at"`
}

// OrderWithItems combines order and its items
type OrderWithItems struct {
	Order
	Items []OrderItem `json:"items"`
}

// AdminOrderListRow is the admin list projection: order columns joined with
// the customer and item aggregates.
type AdminOrderListRow struct {
	ID            string    `json:"id"`
	OrderNumber   string    `json:"order_number"`
	CustomerID    string    `json:"customer_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CreatedAt     time.Time `json:"created_at"`
	ItemCount     int       `json:"item_count"`
	TotalQuantity int       `json:"total_quantity"`
	TotalAmount   float64   `json:"total_amount"`
	Status        string    `json:"status"`
}

// UpdateOrderStatusRequest moves an order along its lifecycle.
type UpdateOrderStatusRequest struct {
	Status     string  `json:"status" binding:"required,oneof=pending confirmed processing shipped delivered cancelled refunded"`
	AdminNotes *string `json:"admin_notes"`
}

// OrderStats is the per-status breakdown plus month-over-month movement.
type OrderStats struct {
	Total         int     `json:"total"`
	Pending       int     `json:"pending"`
	Processing    int     `json:"processing"`
	Shipped       int     `json:"shipped"`
	Delivered     int     `json:"delivered"`
	Cancelled     int     `json:"cancelled"`
	CurrentMonth  int     `json:"current_month"`
	PreviousMonth int     `json:"previous_month"`
	MonthlyChange float64 `json:"monthly_change_percentage"`
	RevenueToDate float64 `json:"revenue_to_date"`
}
