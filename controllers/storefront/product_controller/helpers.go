package product_controller

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
)

func parsePagination(c *gin.Context) (page, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		log.Printf("[store.products] WARN invalid page=%q -> default 1", c.Query("page"))
		page = 1
	}
	limit, err = strconv.Atoi(c.DefaultQuery("limit", "12"))
	if err != nil || limit < 1 || limit > 48 {
		log.Printf("[store.products] WARN invalid limit=%q -> default 12", c.Query("limit"))
		limit = 12
	}
	return page, limit
}
