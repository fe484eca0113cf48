package models

import "time"

// Agent is a sales agent who owns leads and opportunities and earns
// commission on closed deals.
type Agent struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          *string   `json:"phone,omitempty"`
	Region         *string   `json:"region,omitempty"`
	CommissionRate float64   `json:"commission_rate"` // fraction, e.g. 0.05
	Status         string    `json:"status"`          // active, inactive
	JoinedAt       time.Time `json:"joined_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AgentListRow is the agents list projection with deal aggregates.
type AgentListRow struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Region          *string `json:"region"`
	Status          string  `json:"status"`
	OpenDeals       int     `json:"open_deals"`
	WonDeals        int     `json:"won_deals"`
	TotalCommission float64 `json:"total_commission"`
}

// AgentCommission is one commission entry, recorded in the deal's currency.
type AgentCommission struct {
	ID            string     `json:"id"`
	AgentID       string     `json:"agent_id"`
	OpportunityID string     `json:"opportunity_id"`
	Amount        float64    `json:"amount"`
	Currency      string     `json:"currency"`
	Status        string     `json:"status"` // pending, approved, paid
	CreatedAt     time.Time  `json:"created_at"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
}

// AgentStats backs the agents dashboard; money figures are converted into
// the base currency before summing.
type AgentStats struct {
	TotalAgents          int     `json:"total_agents"`
	ActiveAgents         int     `json:"active_agents"`
	PendingCommissions   float64 `json:"pending_commissions"`
	PaidCommissionsMonth float64 `json:"paid_commissions_month"`
	BaseCurrency         string  `json:"base_currency"`
}
