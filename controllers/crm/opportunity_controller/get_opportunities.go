package opportunity_controller

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

var opportunitySortColumns = map[string]string{
	"created_at":  "o.created_at",
	"name":        "o.name",
	"stage":       "o.stage",
	"value":       "o.value",
	"probability": "o.probability",
	"close_date":  "o.close_date",
}

// GetOpportunities godoc
// @Summary Get opportunities (CRM)
// @Description Retrieve pipeline opportunities with the owning agent's name, paginated, searchable and filterable by stage and owner.
// @Tags CRM - Opportunities
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 50)" default(10)
// @Param q query string false "Search by deal name or company"
// @Param stage query string false "Filter by stage (QUALIFICATION, PROPOSAL, NEGOTIATION, WON, LOST)"
// @Param owner_id query string false "Filter by owning agent ID"
// @Param sortBy query string false "Sort column (created_at, name, stage, value, probability, close_date)" default(created_at)
// @Param sortOrder query string false "Sort direction (asc, desc)" default(desc)
// @Success 200 {object} models.ApiResponse{data=[]models.OpportunityListRow,meta=models.Pagination}
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /crm/opportunities [get]
func GetOpportunities(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		log.Printf("[crm.opportunities] WARN invalid page=%q -> default 1", c.Query("page"))
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 50 {
		log.Printf("[crm.opportunities] WARN invalid limit=%q -> default 10", c.Query("limit"))
		limit = 10
	}
	offset := (page - 1) * limit

	q := strings.TrimSpace(c.Query("q"))
	stage := strings.ToUpper(strings.TrimSpace(c.Query("stage")))
	ownerID := strings.TrimSpace(c.Query("owner_id"))

	sortBy, ok := opportunitySortColumns[c.DefaultQuery("sortBy", "created_at")]
	if !ok {
		log.Printf("[crm.opportunities] WARN unknown sortBy=%q -> created_at", c.Query("sortBy"))
		sortBy = "o.created_at"
	}
	sortOrder := strings.ToLower(c.DefaultQuery("sortOrder", "desc"))
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	log.Printf("[crm.opportunities] params page=%d limit=%d offset=%d q=%q stage=%q ownerID=%q sort=%s %s",
		page, limit, offset, q, stage, ownerID, sortBy, sortOrder)

	whereConditions := []string{}
	whereArgs := []interface{}{}

	if stage != "" {
		whereConditions = append(whereConditions, "o.stage = ?")
		whereArgs = append(whereArgs, stage)
	}
	if ownerID != "" {
		whereConditions = append(whereConditions, "o.owner_id = ?")
		whereArgs = append(whereArgs, ownerID)
	}
	if q != "" {
		like := "%" + q + "%"
		whereConditions = append(whereConditions, "(o.name ILIKE ? OR o.company_name ILIKE ?)")
		whereArgs = append(whereArgs, like, like)
	}

	whereSQL := ""
	if len(whereConditions) > 0 {
		whereSQL = " WHERE " + strings.Join(whereConditions, " AND ")
	}

	countSQL := `
		SELECT COUNT(*)::int
		FROM opportunities o
		LEFT JOIN agents a ON a.id = o.owner_id
	` + whereSQL

	var total int64
	if err := config.CrmGorm.Raw(countSQL, whereArgs...).Scan(&total).Error; err != nil {
		log.Printf("[crm.opportunities] ERROR count failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to count opportunities"))
		return
	}

	dataSQL := `
		SELECT
			o.id::text AS id,
			o.name,
			o.company_name,
			o.stage,
			o.value,
			o.currency,
			o.probability,
			a.name AS owner_name,
			o.close_date,
			o.created_at
		FROM opportunities o
		LEFT JOIN agents a ON a.id = o.owner_id
	` + whereSQL + `
		ORDER BY ` + sortBy + ` ` + sortOrder + `
		LIMIT ? OFFSET ?
	`
	dataArgs := append(append([]interface{}{}, whereArgs...), limit, offset)

	log.Printf("[crm.opportunities] dataSQL=%s", strings.ReplaceAll(dataSQL, "\n", " "))

	result := make([]models.OpportunityListRow, 0, limit)
	if err := config.CrmGorm.Raw(dataSQL, dataArgs...).Scan(&result).Error; err != nil {
		log.Printf("[crm.opportunities] ERROR data query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch opportunities"))
		return
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	meta := &models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      int(total),
		TotalPages: totalPages,
	}

	log.Printf("[crm.opportunities] respond 200 rows=%d meta=%+v", len(result), *meta)

	c.JSON(http.StatusOK, models.PaginatedResponse(
		c,
		"Opportunities retrieved successfully",
		result,
		meta,
	))
}
