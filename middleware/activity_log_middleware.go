package middleware

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/Vantage-CRM/vantage-crm-backend/config"
	"github.com/Vantage-CRM/vantage-crm-backend/models"
	"github.com/Vantage-CRM/vantage-crm-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ════════════════════════════════════════════════════════════
// Configuration Maps
// ════════════════════════════════════════════════════════════

// pathToResourceType maps URL path segments to resource types
var pathToResourceType = map[string]string{
	"leads":         models.ResourceTypeLead,
	"opportunities": models.ResourceTypeOpportunity,
	"orders":        models.ResourceTypeOrder,
	"agents":        models.ResourceTypeAgent,
}

// resourceTypeToNameField maps resource types to their display-name field
var resourceTypeToNameField = map[string]string{
	models.ResourceTypeLead:        "name",
	models.ResourceTypeOpportunity: "name",
	models.ResourceTypeOrder:       "order_number",
	models.ResourceTypeAgent:       "email",
}

// methodToActionVerb maps HTTP methods to action verbs
var methodToActionVerb = map[string]string{
	"POST":   "created",
	"PATCH":  "updated",
	"PUT":    "updated",
	"DELETE": "deleted",
}

// actorHeader identifies the admin performing the mutation. Session handling
// lives in the hosting shell; the gateway forwards the identity here.
const actorHeader = "X-Actor-Email"

// ════════════════════════════════════════════════════════════
// Activity Logging Middleware
// ════════════════════════════════════════════════════════════

// ActivityLoggingMiddleware records admin mutations (POST/PATCH/PUT/DELETE)
// with before/after snapshots. GET requests pass through untouched.
func ActivityLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == "GET" {
			c.Next()
			return
		}

		// The invoice endpoint writes its own richer entry.
		if strings.HasSuffix(c.Request.URL.Path, "/invoice") {
			c.Next()
			return
		}

		actorEmail := strings.TrimSpace(c.GetHeader(actorHeader))
		if actorEmail == "" {
			log.Printf("[activity-logging] warning: %s header missing, recording as anonymous", actorHeader)
			actorEmail = "anonymous"
		}

		// Extract resource type from URL path
		resourceType := extractResourceType(c.Request.URL.Path)
		if resourceType == "" {
			log.Printf("[activity-logging] could not determine resource type from path: %s", c.Request.URL.Path)
			c.Next()
			return
		}

		resourceID := c.Param("id")
		if resourceID == "" {
			log.Printf("[activity-logging] warning: no :id param found for %s", c.Request.URL.Path)
		}

		actionVerb := methodToActionVerb[c.Request.Method]
		if actionVerb == "" {
			log.Printf("[activity-logging] unknown HTTP method: %s", c.Request.Method)
			c.Next()
			return
		}

		// Build full action name (e.g., "created_lead", "updated_order")
		action := actionVerb + "_" + resourceType

		// Fetch "before" snapshot (only meaningful for updates and deletes)
		var beforeObject interface{}
		if c.Request.Method != "POST" && resourceID != "" {
			beforeObject = fetchResourceFromDB(resourceType, resourceID)
		}

		resourceName := extractResourceName(resourceType, beforeObject)

		// Execute the handler
		c.Next()

		statusCode := c.Writer.Status()
		isSuccess := statusCode >= 200 && statusCode < 300

		if isSuccess {
			var afterObject interface{}
			if resourceID != "" {
				afterObject = fetchResourceFromDB(resourceType, resourceID)
			}

			updatedResourceName := extractResourceName(resourceType, afterObject)
			if updatedResourceName == "" {
				updatedResourceName = resourceName
			}

			services.LogActivity(services.LogActivityRequest{
				ActorEmail:   actorEmail,
				Action:       action,
				ResourceType: resourceType,
				ResourceID:   resourceID,
				ResourceName: updatedResourceName,
				Changes:      services.CreateChanges(beforeObject, afterObject),
				Status:       services.StatusSuccess,
				Context:      c,
			})

			log.Printf("[activity-logging] success: %s by %s", action, actorEmail)
		} else {
			errorMsg := "Request failed with status " + http.StatusText(statusCode)

			services.LogActivity(services.LogActivityRequest{
				ActorEmail:   actorEmail,
				Action:       action,
				ResourceType: resourceType,
				ResourceID:   resourceID,
				ResourceName: resourceName,
				Status:       services.StatusFailed,
				ErrorMessage: errorMsg,
				Context:      c,
			})

			log.Printf("[activity-logging] failed: %s by %s - status %d", action, actorEmail, statusCode)
		}
	}
}

// ════════════════════════════════════════════════════════════
// Helper Functions
// ════════════════════════════════════════════════════════════

// extractResourceType extracts resource type from URL path
// e.g., "/api/v1/admin/leads/123" → "lead"
func extractResourceType(path string) string {
	parts := strings.Split(path, "/")

	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" && !isIDParam(parts[i]) {
			if resourceType, exists := pathToResourceType[parts[i]]; exists {
				return resourceType
			}
		}
	}

	return ""
}

// isIDParam checks if a path segment is an ID parameter
func isIDParam(segment string) bool {
	if segment == ":id" || segment == "" {
		return true
	}
	if _, err := uuid.Parse(segment); err == nil {
		return true
	}
	return false
}

// fetchResourceFromDB fetches a resource snapshot for before/after diffs
func fetchResourceFromDB(resourceType, resourceID string) interface{} {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	switch resourceType {
	case models.ResourceTypeLead:
		var lead models.Lead
		if err := config.CrmGorm.WithContext(ctx).Table("leads").First(&lead, "id = ?", resourceID).Error; err != nil {
			log.Printf("[activity-logging] failed to fetch lead %s: %v", resourceID, err)
			return nil
		}
		return lead

	case models.ResourceTypeOpportunity:
		var opp models.Opportunity
		if err := config.CrmGorm.WithContext(ctx).Table("opportunities").First(&opp, "id = ?", resourceID).Error; err != nil {
			log.Printf("[activity-logging] failed to fetch opportunity %s: %v", resourceID, err)
			return nil
		}
		return opp

	case models.ResourceTypeOrder:
		var order models.Order
		if err := config.EcommerceGorm.WithContext(ctx).Table("orders").First(&order, "id = ?", resourceID).Error; err != nil {
			log.Printf("[activity-logging] failed to fetch order %s: %v", resourceID, err)
			return nil
		}
		return order

	case models.ResourceTypeAgent:
		var agent models.Agent
		if err := config.CrmGorm.WithContext(ctx).Table("agents").First(&agent, "id = ?", resourceID).Error; err != nil {
			log.Printf("[activity-logging] failed to fetch agent %s: %v", resourceID, err)
			return nil
		}
		return agent

	default:
		log.Printf("[activity-logging] unknown resource type: %s", resourceType)
		return nil
	}
}

// extractResourceName extracts the name/identifier from a resource object
func extractResourceName(resourceType string, obj interface{}) string {
	if obj == nil {
		return ""
	}

	data, err := json.Marshal(obj)
	if err != nil {
		return ""
	}

	var resourceMap map[string]interface{}
	if err := json.Unmarshal(data, &resourceMap); err != nil {
		return ""
	}

	fieldName := resourceTypeToNameField[resourceType]
	if fieldName == "" {
		return ""
	}

	if value, exists := resourceMap[fieldName]; exists {
		return toString(value)
	}

	return ""
}

// toString converts any value to string
func toString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(data)
	}
}
