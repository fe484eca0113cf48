package listview

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListQueryDefaults(t *testing.T) {
	q := NewListQuery(0)

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, DefaultPageSize, q.PageSize)
	assert.Equal(t, "created_at", q.SortBy)
	assert.Equal(t, SortDesc, q.SortOrder)
	assert.Empty(t, q.Filters)
}

func TestMutationsResetPage(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(q *ListQuery)
	}{
		{"search", func(q *ListQuery) { q.SetSearchTerm("acme") }},
		{"filter set", func(q *ListQuery) { q.SetFilter("status", "QUALIFIED") }},
		{"filter clear", func(q *ListQuery) { q.SetFilter("status", "") }},
		{"sort", func(q *ListQuery) { q.SetSort("value", SortAsc) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := NewListQuery(25)
			q.SetPage(7)
			tc.mutate(&q)
			assert.Equal(t, 1, q.Page)
		})
	}
}

func TestSetPageKeepsRestOfQuery(t *testing.T) {
	q := NewListQuery(25)
	q.SetSearchTerm("acme")
	q.SetFilter("status", "QUALIFIED")

	q.SetPage(4)

	assert.Equal(t, 4, q.Page)
	assert.Equal(t, "acme", q.SearchTerm)
	assert.Equal(t, "QUALIFIED", q.Filters["status"])
}

func TestSetPageClampsToOne(t *testing.T) {
	q := NewListQuery(10)
	q.SetPage(0)
	assert.Equal(t, 1, q.Page)

	q.SetPage(-3)
	assert.Equal(t, 1, q.Page)
}

func TestSetFilterEmptyValueRemoves(t *testing.T) {
	q := NewListQuery(10)
	q.SetFilter("status", "NEW")
	q.SetFilter("status", "")

	_, ok := q.Filters["status"]
	assert.False(t, ok)
}

func TestQueryFromURLValues(t *testing.T) {
	values, err := url.ParseQuery("q=widget&page=3&limit=25&sortBy=value&sortOrder=asc&status=QUALIFIED")
	require.NoError(t, err)

	q := QueryFromURLValues(values, 10)

	assert.Equal(t, "widget", q.SearchTerm)
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 25, q.PageSize)
	assert.Equal(t, "value", q.SortBy)
	assert.Equal(t, SortAsc, q.SortOrder)
	assert.Equal(t, "QUALIFIED", q.Filters["status"])
}

func TestQueryFromURLValuesBadNumbersFallBack(t *testing.T) {
	values, err := url.ParseQuery("page=banana&limit=-5&sortOrder=sideways")
	require.NoError(t, err)

	q := QueryFromURLValues(values, 10)

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.PageSize)
	assert.Equal(t, SortDesc, q.SortOrder)
}

func TestValuesRoundTrip(t *testing.T) {
	q := NewListQuery(25)
	q.SetSearchTerm("acme")
	q.SetFilter("status", "CONTACTED")
	q.SetPage(2)

	got := q.Values()

	assert.Equal(t, "2", got.Get("page"))
	assert.Equal(t, "25", got.Get("limit"))
	assert.Equal(t, "acme", got.Get("q"))
	assert.Equal(t, "created_at", got.Get("sortBy"))
	assert.Equal(t, "desc", got.Get("sortOrder"))
	assert.Equal(t, "CONTACTED", got.Get("status"))
}

func TestCloneIsolatesFilters(t *testing.T) {
	q := NewListQuery(10)
	q.SetFilter("status", "NEW")

	copied := q.clone()
	copied.Filters["status"] = "LOST"

	assert.Equal(t, "NEW", q.Filters["status"])
}
