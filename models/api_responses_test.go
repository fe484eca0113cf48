package models

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withRoute runs fn inside a handler registered at pattern so FullPath is
// populated the way it is in production.
func withRoute(t *testing.T, pattern, path string, fn func(c *gin.Context)) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	called := false
	router.GET(pattern, func(c *gin.Context) {
		called = true
		fn(c)
	})
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", path, nil))
	require.True(t, called, "handler was not reached")
}

func TestSuccessResponseEchoesRequestedEntity(t *testing.T) {
	withRoute(t, "/leads/:id", "/leads/l1", func(c *gin.Context) {
		resp := SuccessResponse(c, "Lead fetched", map[string]string{"id": "l1"})

		assert.Equal(t, "Lead fetched", resp.Message)
		assert.False(t, resp.Error)
		assert.Nil(t, resp.Meta)
		assert.Equal(t, "GET /leads/:id", resp.RequestedEntity)
	})
}

func TestPaginatedResponseCarriesMeta(t *testing.T) {
	withRoute(t, "/leads", "/leads", func(c *gin.Context) {
		meta := &Pagination{Page: 2, Limit: 10, Total: 42, TotalPages: 5}
		resp := PaginatedResponse(c, "Leads retrieved", []string{}, meta)

		require.NotNil(t, resp.Meta)
		assert.Equal(t, 2, resp.Meta.Page)
		assert.Equal(t, 5, resp.Meta.TotalPages)
	})
}

func TestErrorResponseSetsFlag(t *testing.T) {
	withRoute(t, "/leads", "/leads", func(c *gin.Context) {
		resp := ErrorResponse(c, "Failed to fetch leads")

		assert.True(t, resp.Error)
		assert.Equal(t, "Failed to fetch leads", resp.Message)
	})
}

func TestEnvelopeEchoesRateLimitFromContext(t *testing.T) {
	withRoute(t, "/leads", "/leads", func(c *gin.Context) {
		c.Set(RateLimitContextKey, &RateLimitStatus{Limit: 100, Remaining: 99})

		resp := SuccessResponse(c, "ok", nil)

		require.NotNil(t, resp.Rate)
		assert.Equal(t, 100, resp.Rate.Limit)
		assert.Equal(t, 99, resp.Rate.Remaining)
	})
}

func TestEnvelopeWithoutRateLimitOmitsIt(t *testing.T) {
	withRoute(t, "/leads", "/leads", func(c *gin.Context) {
		assert.Nil(t, SuccessResponse(c, "ok", nil).Rate)
	})
}
