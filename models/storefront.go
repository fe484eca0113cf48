package models

import (
	"encoding/json"
	"time"
)

// StorefrontProduct represents a product in the storefront (customer-facing)
type StorefrontProduct struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       float64         `json:"price"`
	Category    string          `json:"category,omitempty"` // Hidden if not set
	Media       json.RawMessage `json:"media,omitempty"`    // Hidden if not set
	InStock     bool            `json:"in_stock"`
	Views       int             `json:"views,omitempty"`      // Hidden if 0
	CreatedAt   time.Time       `json:"created_at,omitempty"` // Hidden if not set
	UpdatedAt   time.Time       `json:"updated_at,omitempty"` // Hidden if not set
}

// ProductFilters represents available filters for storefront products
type ProductFilters struct {
	Categories   []FilterOption `json:"categories"`
	PriceRange   PriceRange     `json:"price_range"`
	Availability []FilterOption `json:"availability"`
}

// FilterOption represents a single filter option
type FilterOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Count int    `json:"count"`
}

// PriceRange is the min/max price across the catalog
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}
