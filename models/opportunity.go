package models

import "time"

// Opportunity is a qualified deal in the pipeline.
type Opportunity struct {
	ID          string     `json:"id"`
	LeadID      *string    `json:"lead_id,omitempty"`
	Name        string     `json:"name"`
	CompanyName *string    `json:"company_name,omitempty"`
	Stage       string     `json:"stage"`
	Value       float64    `json:"value"`
	Currency    string     `json:"currency"`
	Probability int        `json:"probability"` // 0-100
	OwnerID     *string    `json:"owner_id,omitempty"`
	CloseDate   *time.Time `json:"close_date,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// OpportunityListRow is the list-endpoint projection: opportunity columns
// plus the owning agent's name.
type OpportunityListRow struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	CompanyName *string    `json:"company_name"`
	Stage       string     `json:"stage"`
	Value       float64    `json:"value"`
	Currency    string     `json:"currency"`
	Probability int        `json:"probability"`
	OwnerName   *string    `json:"owner_name"`
	CloseDate   *time.Time `json:"close_date"`
	CreatedAt   time.Time  `json:"created_at"`
}

// UpdateOpportunityStageRequest moves a deal to a new stage.
type UpdateOpportunityStageRequest struct {
	Stage       string `json:"stage" binding:"required,oneof=QUALIFICATION PROPOSAL NEGOTIATION WON LOST"`
	Probability *int   `json:"probability" binding:"omitempty,min=0,max=100"`
}

// OpportunityStats is the server-side aggregate for the pipeline dashboard.
// Unlike the client-side page-scoped figures, these cover the whole table.
type OpportunityStats struct {
	TotalOpportunities int            `json:"total_opportunities"`
	OpenOpportunities  int            `json:"open_opportunities"`
	PipelineValue      float64        `json:"pipeline_value"` // Σ value*probability/100 over open stages
	ClosedRevenue      float64        `json:"closed_revenue"` // Σ value over WON
	ByStage            map[string]int `json:"by_stage"`
	WonThisMonth       int            `json:"won_this_month"`
	WinRate            float64        `json:"win_rate"`
}
