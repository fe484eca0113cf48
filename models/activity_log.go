package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityLog represents an admin action log entry
type ActivityLog struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	ActorEmail   string         `json:"actor_email" gorm:"not null;index:idx_activity_actor_date,sort:desc"`
	Action       string         `json:"action" gorm:"not null;index"`                                             // created_lead, updated_order, deleted_opportunity, etc.
	ResourceType string         `json:"resource_type" gorm:"not null;index:idx_activity_resource_date,sort:desc"` // lead, opportunity, order, agent
	ResourceID   string         `json:"resource_id" gorm:"not null;index"`                                        // UUID or identifier
	ResourceName string         `json:"resource_name"`                                                            // Human readable: lead name, order number, etc.
	Changes      datatypes.JSON `json:"changes" gorm:"type:jsonb"`                                                // {before: {...}, after: {...}}
	Status       string         `json:"status" gorm:"not null"`                                                   // success, failed
	ErrorMessage string         `json:"error_message"`                                                            // Error details if failed
	IPAddress    string         `json:"ip_address"`                                                               // Client IP
	UserAgent    string         `json:"user_agent"`                                                               // Browser/client info
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime;index:idx_activity_actor_date,sort:desc;index:idx_activity_resource_date,sort:desc"`
}

// BeforeCreate hook - auto-generate UUID v7
func (al *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if al.ID == uuid.Nil {
		al.ID = uuid.Must(uuid.NewV7())
	}
	// Default status to success if not set
	if al.Status == "" {
		al.Status = "success"
	}
	return nil
}

// TableName specifies the table name
func (ActivityLog) TableName() string {
	return "activity_logs"
}

// ActivityChanges represents the before/after changes
type ActivityChanges struct {
	Before map[string]interface{} `json:"before"`
	After  map[string]interface{} `json:"after"`
}

// MarshalJSON converts ActivityChanges to JSON
func (ac ActivityChanges) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"before": ac.Before,
		"after":  ac.After,
	})
}

// UnmarshalJSON parses JSON into ActivityChanges
func (ac *ActivityChanges) UnmarshalJSON(data []byte) error {
	var m map[string]map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	ac.Before = m["before"]
	ac.After = m["after"]
	return nil
}

// ════════════════════════════════════════════════════════════
// Resource / Action Constants
// ════════════════════════════════════════════════════════════

const (
	ResourceTypeLead        = "lead"
	ResourceTypeOpportunity = "opportunity"
	ResourceTypeOrder       = "order"
	ResourceTypeAgent       = "agent"
)

const (
	// Lead Actions
	ActionCreateLead = "created_lead"
	ActionUpdateLead = "updated_lead"
	ActionDeleteLead = "deleted_lead"

	// Opportunity Actions
	ActionUpdateOpportunity = "updated_opportunity"
	ActionDeleteOpportunity = "deleted_opportunity"

	// Order Actions
	ActionUpdateOrder      = "updated_order"
	ActionSentOrderInvoice = "sent_order_invoice"
)
