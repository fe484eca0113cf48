package models

// MonthlyRevenuePoint is one month of storefront revenue.
type MonthlyRevenuePoint struct {
	Month   string  `json:"month"` // YYYY-MM
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// SalesMetrics is the analytics overview: CRM and ecommerce headline
// figures juxtaposed.
type SalesMetrics struct {
	TotalRevenue     float64 `json:"total_revenue"`
	RevenueThisMonth float64 `json:"revenue_this_month"`
	RevenueChange    float64 `json:"revenue_change_percentage"`
	AvgOrderValue    float64 `json:"avg_order_value"`
	TotalLeads       int     `json:"total_leads"`
	ConvertedLeads   int     `json:"converted_leads"`
	LeadConversion   float64 `json:"lead_conversion_percentage"`
	PipelineValue    float64 `json:"pipeline_value"`
}
