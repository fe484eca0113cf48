package lead_controller

import (
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/Vantage-CRM/vantage-crm-backend/config"
	"github.com/Vantage-CRM/vantage-crm-backend/models"
	"github.com/gin-gonic/gin"
)

// leadSortColumns whitelists sortBy values against the leads table.
var leadSortColumns = map[string]string{
	"created_at":   "created_at",
	"updated_at":   "updated_at",
	"name":         "name",
	"status":       "status",
	"interactions": "interactions",
}

// GetLeads godoc
// @Summary Get leads (CRM)
// @Description Retrieve leads with pagination, free-text search and filtering by status, source and assignee.
// @Tags CRM - Leads
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 50)" default(10)
// @Param q query string false "Search by name, email or company"
// @Param status query string false "Filter by status (NEW, CONTACTED, QUALIFIED, CONVERTED_TO_OPPORTUNITY, LOST)"
// @Param source query string false "Filter by source (website, referral, cold_call, import)"
// @Param assigned_to query string false "Filter by assigned agent ID"
// @Param sortBy query string false "Sort column (created_at, updated_at, name, status, interactions)" default(created_at)
// @Param sortOrder query string false "Sort direction (asc, desc)" default(desc)
// @Success 200 {object} models.ApiResponse{data=[]models.LeadListRow,meta=models.Pagination}
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /crm/leads [get]
func GetLeads(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		log.Printf("[crm.leads] WARN invalid page=%q err=%v -> default 1", c.Query("page"), err)
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		log.Printf("[crm.leads] WARN invalid limit=%q err=%v -> default 10", c.Query("limit"), err)
		limit = 10
	}

	if page < 1 {
		log.Printf("[crm.leads] WARN page < 1 (%d) -> set 1", page)
		page = 1
	}
	if limit < 1 || limit > 50 {
		log.Printf("[crm.leads] WARN limit out of range (%d) -> set 10", limit)
		limit = 10
	}
	offset := (page - 1) * limit

	q := strings.TrimSpace(c.Query("q"))
	status := strings.TrimSpace(c.Query("status"))
	source := strings.TrimSpace(c.Query("source"))
	assignedTo := strings.TrimSpace(c.Query("assigned_to"))

	sortBy, ok := leadSortColumns[c.DefaultQuery("sortBy", "created_at")]
	if !ok {
		log.Printf("[crm.leads] WARN unknown sortBy=%q -> created_at", c.Query("sortBy"))
		sortBy = "created_at"
	}
	sortOrder := strings.ToLower(c.DefaultQuery("sortOrder", "desc"))
	if sortOrder != "asc" && sortOrder != "desc" {
		log.Printf("[crm.leads] WARN unknown sortOrder=%q -> desc", c.Query("sortOrder"))
		sortOrder = "desc"
	}

	log.Printf("[crm.leads] params page=%d limit=%d offset=%d q=%q status=%q source=%q assignedTo=%q sort=%s %s",
		page, limit, offset, q, status, source, assignedTo, sortBy, sortOrder)

	db := config.CrmGorm.Table("leads")

	if status != "" {
		db = db.Where("status = ?", models.CanonicalLeadStatus(status))
	}
	if source != "" {
		db = db.Where("source = ?", source)
	}
	if assignedTo != "" {
		db = db.Where("assigned_to = ?", assignedTo)
	}
	if q != "" {
		like := "%" + q + "%"
		db = db.Where("name ILIKE ? OR email ILIKE ? OR company ILIKE ?", like, like, like)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		log.Printf("[crm.leads] ERROR count failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to count leads"))
		return
	}

	result := make([]models.Lead, 0, limit)
	if err := db.
		Order(sortBy + " " + sortOrder).
		Limit(limit).
		Offset(offset).
		Find(&result).Error; err != nil {
		log.Printf("[crm.leads] ERROR data query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch leads"))
		return
	}

	rows := make([]models.LeadListRow, 0, len(result))
	for _, lead := range result {
		rows = append(rows, models.NewLeadListRow(lead))
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	meta := &models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      int(total),
		TotalPages: totalPages,
	}

	log.Printf("[crm.leads] respond 200 rows=%d meta=%+v", len(rows), *meta)

	c.JSON(http.StatusOK, models.PaginatedResponse(
		c,
		"Leads retrieved successfully",
		rows,
		meta,
	))
}
