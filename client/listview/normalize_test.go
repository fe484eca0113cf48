package listview

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vantage-CRM/vantage-crm-backend/models"
)

func TestNormalizeListEnvelope(t *testing.T) {
	body := []byte(`{
		"message": "Leads fetched successfully",
		"data": [{"id": "l1"}, {"id": "l2"}],
		"meta": {"page": 2, "limit": 10, "total": 42, "total_pages": 5}
	}`)

	result := NormalizeList(body, "data", NewListQuery(10))

	require.Len(t, result.Items, 2)
	assert.Equal(t, 2, result.Pagination.Page)
	assert.Equal(t, 42, result.Pagination.Total)
	assert.Equal(t, 5, result.Pagination.TotalPages)
}

func TestNormalizeListPaginationKeyAndPagesSpelling(t *testing.T) {
	body := []byte(`{
		"orders": [{"id": "o1"}],
		"pagination": {"page": 1, "limit": 20, "total": 33, "pages": 2}
	}`)

	result := NormalizeList(body, "orders", NewListQuery(20))

	require.Len(t, result.Items, 1)
	assert.Equal(t, 2, result.Pagination.TotalPages)
	assert.Equal(t, 33, result.Pagination.Total)
}

func TestNormalizeListMissingPieces(t *testing.T) {
	q := NewListQuery(10)
	q.SetPage(3)

	cases := []struct {
		name string
		body string
	}{
		{"no collection", `{"meta": {"page": 3, "limit": 10, "total": 0, "total_pages": 0}}`},
		{"collection wrong type", `{"data": "oops"}`},
		{"not an object", `[1, 2, 3]`},
		{"empty body", ``},
		{"null collection", `{"data": null}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := NormalizeList([]byte(tc.body), "data", q)

			require.NotNil(t, result.Items)
			assert.Empty(t, result.Items)
			assert.GreaterOrEqual(t, result.Pagination.TotalPages, 1)
			assert.Equal(t, 3, result.Pagination.Page)
		})
	}
}

func TestNormalizeListIdempotent(t *testing.T) {
	body := []byte(`{
		"leads": [{"id": "l1", "name": "Ada"}],
		"meta": {"page": 1, "limit": 10, "total": 1, "total_pages": 1}
	}`)
	q := NewListQuery(10)

	once := NormalizeList(body, "leads", q)

	renormalized, err := json.Marshal(map[string]any{
		"items":      once.Items,
		"pagination": once.Pagination,
	})
	require.NoError(t, err)

	twice := NormalizeList(renormalized, "items", q)
	assert.Equal(t, once, twice)
}

func TestEmptyResultIsRenderSafe(t *testing.T) {
	q := NewListQuery(10)
	q.SetPage(2)

	result := EmptyResult(q)

	require.NotNil(t, result.Items)
	assert.Equal(t, 2, result.Pagination.Page)
	assert.Equal(t, 1, result.Pagination.TotalPages)
	assert.Equal(t, 0, result.Pagination.Total)
}

func TestDecodeItemsSkipsBadRows(t *testing.T) {
	items := []json.RawMessage{
		json.RawMessage(`{"id": "o1", "stage": "PROPOSAL", "value": 1200}`),
		json.RawMessage(`"not an object"`),
		json.RawMessage(`{"id": "o2", "stage": "WON", "value": 900}`),
	}

	rows := DecodeItems[models.OpportunityListRow](items)

	require.Len(t, rows, 2)
	assert.Equal(t, "o1", rows[0].ID)
	assert.Equal(t, "o2", rows[1].ID)
}
