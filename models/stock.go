package models

import "time"

// Stock availability buckets derived from quantity vs low-stock threshold.
const (
	StockStatusInStock    = "in_stock"
	StockStatusLowStock   = "low_stock"
	StockStatusOutOfStock = "out_of_stock"
)

// StockRow is the inventory list projection over the ecommerce products
// table: on-hand quantity minus reservations, with a derived availability.
type StockRow struct {
	ProductID    string    `json:"product_id"`
	SKU          string    `json:"sku"`
	ProductName  string    `json:"product_name"`
	Category     *string   `json:"category"`
	Quantity     int       `json:"quantity"`
	Reserved     int       `json:"reserved"`
	Available    int       `json:"available"`
	ReorderLevel int       `json:"reorder_level"`
	UnitPrice    float64   `json:"unit_price"`
	Status       string    `json:"status"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StockStatus derives the availability bucket for a row.
func StockStatus(available, reorderLevel int) string {
	switch {
	case available <= 0:
		return StockStatusOutOfStock
	case available <= reorderLevel:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

// StockStats backs the inventory dashboard cards.
type StockStats struct {
	TotalProducts  int     `json:"total_products"`
	InStock        int     `json:"in_stock"`
	LowStock       int     `json:"low_stock"`
	OutOfStock     int     `json:"out_of_stock"`
	InventoryValue float64 `json:"inventory_value"` // Σ available * unit_price
}
