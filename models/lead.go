package models

import "time"

// Lead represents a sales lead in the CRM database.
type Lead struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      *string `json:"phone,omitempty"`
	Company    *string `json:"company,omitempty"`
	Status     string  `json:"status"`
	Source     *string `json:"source,omitempty"` // website, referral, cold_call, import
	AssignedTo *string `json:"assigned_to,omitempty"`
	// ProductInterests holds the interests captured on the create form.
	// Stored as JSONB; older rows carry a double-encoded JSON string.
	ProductInterests *string    `json:"product_interests,omitempty"`
	Interactions     int        `json:"interactions"`
	Notes            *string    `json:"notes,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	ConvertedAt      *time.Time `json:"converted_at,omitempty"`
}

// LeadListRow is the list projection: the lead plus the presentation fields
// the table renders directly, so every consumer gets the same canonical
// status, label and badge classes.
type LeadListRow struct {
	Lead
	StatusLabel string `json:"status_label"`
	StatusColor string `json:"status_color"`
}

// NewLeadListRow canonicalizes the status and fills the display fields.
func NewLeadListRow(l Lead) LeadListRow {
	l.Status = CanonicalLeadStatus(l.Status)
	return LeadListRow{
		Lead:        l,
		StatusLabel: LeadStatusLabel(l.Status),
		StatusColor: LeadStatusColor(l.Status),
	}
}

// LeadProductInterest is one product a lead has expressed interest in.
// Rows of the lead_products join table and entries of the embedded
// product_interests JSONB both decode into this shape.
type LeadProductInterest struct {
	ProductID     string    `json:"product_id"`
	ProductName   string    `json:"product_name"`
	Quantity      int       `json:"quantity"`
	InterestLevel string    `json:"interest_level"` // low, medium, high
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LeadActivity is a single entry in a lead's timeline. Kind distinguishes the
// collections the original UI fetched separately.
type LeadActivity struct {
	ID        string    `json:"id"`
	LeadID    string    `json:"lead_id"`
	Kind      string    `json:"kind"` // comment, email, sms, task, meeting, file
	Subject   *string   `json:"subject,omitempty"`
	Body      *string   `json:"body,omitempty"`
	CreatedBy *string   `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	ActivityKindComment = "comment"
	ActivityKindEmail   = "email"
	ActivityKindSMS     = "sms"
	ActivityKindTask    = "task"
	ActivityKindMeeting = "meeting"
	ActivityKindFile    = "file"
)

// CreateLeadRequest is the create-form payload.
type CreateLeadRequest struct {
	Name             string                `json:"name" binding:"required,min=2,max=255"`
	Email            string                `json:"email" binding:"required,email"`
	Phone            *string               `json:"phone" binding:"omitempty,min=7,max=20"`
	Company          *string               `json:"company"`
	Source           *string               `json:"source" binding:"omitempty,oneof=website referral cold_call import"`
	Notes            *string               `json:"notes"`
	ProductInterests []LeadProductInterest `json:"product_interests"`
}

// UpdateLeadRequest is a partial update; nil fields are left untouched.
type UpdateLeadRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=2,max=255"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Phone        *string `json:"phone" binding:"omitempty,min=7,max=20"`
	Company      *string `json:"company"`
	Status       *string `json:"status"`
	Source       *string `json:"source" binding:"omitempty,oneof=website referral cold_call import"`
	AssignedTo   *string `json:"assigned_to"`
	Notes        *string `json:"notes"`
	Interactions *int    `json:"interactions" binding:"omitempty,min=0"`
}

// LeadStats backs the leads dashboard header cards.
type LeadStats struct {
	TotalLeads             int            `json:"total_leads"`
	NewThisMonth           int            `json:"new_this_month"`
	GrowthPercentage       float64        `json:"growth_percentage"`
	ByStatus               map[string]int `json:"by_status"`
	ConvertedThisMonth     int            `json:"converted_this_month"`
	ConversionRate         float64        `json:"conversion_rate"`
	AvgInteractionsPerLead float64        `json:"avg_interactions_per_lead"`
}
