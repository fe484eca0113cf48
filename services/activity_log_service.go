package services

import (
	"encoding/json"
	"log"

	"github.com/Vantage-CRM/vantage-crm-backend/config"
	"github.com/Vantage-CRM/vantage-crm-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// LogActivityRequest carries everything needed to persist one audit entry.
type LogActivityRequest struct {
	ActorEmail   string
	Action       string
	ResourceType string
	ResourceID   string
	ResourceName string
	Changes      datatypes.JSON
	Status       string
	ErrorMessage string
	Context      *gin.Context
}

// LogActivity writes an audit entry to the CRM database. Failures are logged
// and swallowed - auditing must never fail the admin's request.
func LogActivity(req LogActivityRequest) {
	entry := models.ActivityLog{
		ActorEmail:   req.ActorEmail,
		Action:       req.Action,
		ResourceType: req.ResourceType,
		ResourceID:   req.ResourceID,
		ResourceName: req.ResourceName,
		Changes:      req.Changes,
		Status:       req.Status,
		ErrorMessage: req.ErrorMessage,
	}

	if req.Context != nil {
		entry.IPAddress = req.Context.ClientIP()
		entry.UserAgent = req.Context.Request.UserAgent()
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	if err := config.CrmGorm.WithContext(ctx).Create(&entry).Error; err != nil {
		log.Printf("[activity-log] ERROR failed to persist entry action=%s resource=%s/%s err=%v",
			req.Action, req.ResourceType, req.ResourceID, err)
	}
}

// CreateChanges builds the before/after JSONB payload from two snapshots.
// Either side may be nil (creates have no before, deletes no after).
func CreateChanges(before, after interface{}) datatypes.JSON {
	changes := models.ActivityChanges{
		Before: toMap(before),
		After:  toMap(after),
	}
	data, err := json.Marshal(changes)
	if err != nil {
		log.Printf("[activity-log] WARN failed to marshal changes: %v", err)
		return nil
	}
	return datatypes.JSON(data)
}

func toMap(obj interface{}) map[string]interface{} {
	if obj == nil {
		return nil
	}
	data, err := json.Marshal(obj)
	if err != nil {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}
