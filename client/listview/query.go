// Package listview is the data layer behind the admin list pages: query
// state, debounced fetching, response normalization, page-scoped dashboard
// metrics, and the product-interest merger. It talks to the admin API's
// list endpoints and never renders anything itself.
package listview

import (
	"net/url"
	"strconv"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// DefaultPageSize matches the admin list endpoints' default limit.
const DefaultPageSize = 10

// ListQuery is the combined search/filter/sort/page state driving a list
// fetch. Mutate it through the Set* methods: every mutation except SetPage
// resets the page to 1 so a narrowed result set never points past its end.
type ListQuery struct {
	SearchTerm string
	Filters    map[string]string
	SortBy     string
	SortOrder  SortOrder
	Page       int
	PageSize   int
}

// NewListQuery returns the default first-page query.
func NewListQuery(pageSize int) ListQuery {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return ListQuery{
		Filters:   make(map[string]string),
		SortBy:    "created_at",
		SortOrder: SortDesc,
		Page:      1,
		PageSize:  pageSize,
	}
}

// QueryFromURLValues seeds a query from a page's URL parameters, e.g. a
// status filter arriving via a dashboard link. Unknown parameters become
// filters; numeric parse failures fall back to page 1.
func QueryFromURLValues(values url.Values, pageSize int) ListQuery {
	q := NewListQuery(pageSize)

	for name := range values {
		value := values.Get(name)
		if value == "" {
			continue
		}
		switch name {
		case "q":
			q.SearchTerm = value
		case "page":
			page, err := strconv.Atoi(value)
			if err != nil || page < 1 {
				page = 1
			}
			q.Page = page
		case "limit":
			limit, err := strconv.Atoi(value)
			if err == nil && limit >= 1 {
				q.PageSize = limit
			}
		case "sortBy":
			q.SortBy = value
		case "sortOrder":
			if value == string(SortAsc) || value == string(SortDesc) {
				q.SortOrder = SortOrder(value)
			}
		default:
			q.Filters[name] = value
		}
	}
	return q
}

// SetSearchTerm updates the free-text search and rewinds to page 1.
func (q *ListQuery) SetSearchTerm(term string) {
	q.SearchTerm = term
	q.Page = 1
}

// SetFilter sets a named filter (empty value removes it) and rewinds to
// page 1.
func (q *ListQuery) SetFilter(name, value string) {
	if q.Filters == nil {
		q.Filters = make(map[string]string)
	}
	if value == "" {
		delete(q.Filters, name)
	} else {
		q.Filters[name] = value
	}
	q.Page = 1
}

// SetSort updates the sort column/direction and rewinds to page 1.
func (q *ListQuery) SetSort(by string, order SortOrder) {
	q.SortBy = by
	q.SortOrder = order
	q.Page = 1
}

// SetPage navigates without touching the rest of the query.
func (q *ListQuery) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	q.Page = n
}

// Values encodes the query as list-endpoint parameters.
func (q ListQuery) Values() url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(q.Page))
	values.Set("limit", strconv.Itoa(q.PageSize))
	if q.SearchTerm != "" {
		values.Set("q", q.SearchTerm)
	}
	if q.SortBy != "" {
		values.Set("sortBy", q.SortBy)
		values.Set("sortOrder", string(q.SortOrder))
	}
	for name, value := range q.Filters {
		values.Set(name, value)
	}
	return values
}

// clone returns a copy safe to hand to a fetch goroutine while the caller
// keeps mutating the original.
func (q ListQuery) clone() ListQuery {
	out := q
	out.Filters = make(map[string]string, len(q.Filters))
	for name, value := range q.Filters {
		out.Filters[name] = value
	}
	return out
}
