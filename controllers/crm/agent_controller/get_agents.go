package agent_controller

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

var agentSortColumns = map[string]string{
	"name":      "a.name",
	"region":    "a.region",
	"status":    "a.status",
	"joined_at": "a.joined_at",
}

// GetAgents godoc
// @Summary Get agents (CRM)
// @Description Retrieve sales agents with open/won deal counts and total commission earned, paginated and filterable by region and status.
// @Tags CRM - Agents
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 50)" default(10)
// @Param q query string false "Search by name or email"
// @Param region query string false "Filter by region"
// @Param status query string false "Filter by status (active, inactive)"
// @Param sortBy query string false "Sort column (name, region, status, joined_at)" default(name)
// @Param sortOrder query string false "Sort direction (asc, desc)" default(asc)
// @Success 200 {object} models.ApiResponse{data=[]models.AgentListRow,meta=models.Pagination}
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /crm/agents [get]
func GetAgents(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		log.Printf("[crm.agents] WARN invalid page=%q -> default 1", c.Query("page"))
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 50 {
		log.Printf("[crm.agents] WARN invalid limit=%q -> default 10", c.Query("limit"))
		limit = 10
	}
	offset := (page - 1) * limit

	q := strings.TrimSpace(c.Query("q"))
	region := strings.TrimSpace(c.Query("region"))
	status := strings.TrimSpace(c.Query("status"))

	sortBy, ok := agentSortColumns[c.DefaultQuery("sortBy", "name")]
	if !ok {
		log.Printf("[crm.agents] WARN unknown sortBy=%q -> name", c.Query("sortBy"))
		sortBy = "a.name"
	}
	sortOrder := strings.ToLower(c.DefaultQuery("sortOrder", "asc"))
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "asc"
	}

	log.Printf("[crm.agents] params page=%d limit=%d offset=%d q=%q region=%q status=%q sort=%s %s",
		page, limit, offset, q, region, status, sortBy, sortOrder)

	whereConditions := []string{}
	whereArgs := []interface{}{}

	if region != "" {
		whereConditions = append(whereConditions, "a.region = ?")
		whereArgs = append(whereArgs, region)
	}
	if status != "" {
		whereConditions = append(whereConditions, "a.status = ?")
		whereArgs = append(whereArgs, status)
	}
	if q != "" {
		like := "%" + q + "%"
		whereConditions = append(whereConditions, "(a.name ILIKE ? OR a.email ILIKE ?)")
		whereArgs = append(whereArgs, like, like)
	}

	whereSQL := ""
	if len(whereConditions) > 0 {
		whereSQL = " WHERE " + strings.Join(whereConditions, " AND ")
	}

	var total int64
	if err := config.CrmGorm.Raw("SELECT COUNT(*)::int FROM agents a"+whereSQL, whereArgs...).Scan(&total).Error; err != nil {
		log.Printf("[crm.agents] ERROR count failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to count agents"))
		return
	}

	dataSQL := `
		SELECT
			a.id::text AS id,
			a.name,
			a.email,
			a.region,
			a.status,
			COALESCE(d.open_deals, 0) AS open_deals,
			COALESCE(d.won_deals, 0) AS won_deals,
			COALESCE(cm.total_commission, 0) AS total_commission
		FROM agents a
		LEFT JOIN (
			SELECT
				owner_id,
				COALESCE(SUM(CASE WHEN stage NOT IN ('WON', 'LOST') THEN 1 ELSE 0 END), 0)::int AS open_deals,
				COALESCE(SUM(CASE WHEN stage = 'WON' THEN 1 ELSE 0 END), 0)::int AS won_deals
			FROM opportunities
			GROUP BY owner_id
		) d ON d.owner_id = a.id
		LEFT JOIN (
			SELECT agent_id, COALESCE(SUM(amount), 0) AS total_commission
			FROM agent_commissions
			GROUP BY agent_id
		) cm ON cm.agent_id = a.id
	` + whereSQL + `
		ORDER BY ` + sortBy + ` ` + sortOrder + `
		LIMIT ? OFFSET ?
	`
	dataArgs := append(append([]interface{}{}, whereArgs...), limit, offset)

	log.Printf("[crm.agents] dataSQL=%s", strings.ReplaceAll(dataSQL, "\n", " "))

	result := make([]models.AgentListRow, 0, limit)
	if err := config.CrmGorm.Raw(dataSQL, dataArgs...).Scan(&result).Error; err != nil {
		log.Printf("[crm.agents] ERROR data query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch agents"))
		return
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	meta := &models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      int(total),
		TotalPages: totalPages,
	}

	log.Printf("[crm.agents] respond 200 rows=%d meta=%+v", len(result), *meta)

	c.JSON(http.StatusOK, models.PaginatedResponse(
		c,
		"Agents retrieved successfully",
		result,
		meta,
	))
}
