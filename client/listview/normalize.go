package listview

import (
	"encoding/json"

	"github.com/Vantage-CRM/vantage-crm-backend/models"
)

// ListResult is a normalized list response: the page's records plus
// pagination metadata. Items is never nil and Pagination always carries a
// usable TotalPages, so rendering code can iterate without guarding.
type ListResult struct {
	Items      []json.RawMessage `json:"items"`
	Pagination models.Pagination `json:"pagination"`
}

// EmptyResult is the safe degraded state used after fetch failures: no
// items, one page, zero total.
func EmptyResult(q ListQuery) ListResult {
	return ListResult{
		Items: []json.RawMessage{},
		Pagination: models.Pagination{
			Page:       q.Page,
			Limit:      q.PageSize,
			Total:      0,
			TotalPages: 1,
		},
	}
}

// rawPagination tolerates both the admin envelope's field names and the
// older {pages} spelling some endpoints still use.
type rawPagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
	Pages      int `json:"pages"`
}

// NormalizeList coerces a raw JSON body into a ListResult. The collection
// key varies per resource; the caller names it. Anything missing or of the
// wrong type degrades to the empty-safe default rather than erroring, and
// normalizing an already-normalized body is a no-op.
func NormalizeList(body []byte, collectionKey string, q ListQuery) ListResult {
	result := EmptyResult(q)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return result
	}

	if raw, ok := fields[collectionKey]; ok {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err == nil && items != nil {
			result.Items = items
		}
	}

	// Envelope responses carry pagination under "meta"; the representative
	// contract calls it "pagination".
	metaRaw, ok := fields["meta"]
	if !ok {
		metaRaw = fields["pagination"]
	}
	if len(metaRaw) > 0 {
		var meta rawPagination
		if err := json.Unmarshal(metaRaw, &meta); err == nil {
			result.Pagination = coercePagination(meta, q)
		}
	}

	return result
}

func coercePagination(meta rawPagination, q ListQuery) models.Pagination {
	out := models.Pagination{
		Page:       meta.Page,
		Limit:      meta.Limit,
		Total:      meta.Total,
		TotalPages: meta.TotalPages,
	}
	if out.TotalPages == 0 {
		out.TotalPages = meta.Pages
	}
	if out.Page < 1 {
		out.Page = q.Page
	}
	if out.Limit < 1 {
		out.Limit = q.PageSize
	}
	if out.Total < 0 {
		out.Total = 0
	}
	if out.TotalPages < 1 {
		out.TotalPages = 1
	}
	return out
}

// DecodeItems unmarshals normalized items into a typed slice
// (e.g. DecodeItems[models.OpportunityListRow]). Undecodable items are
// skipped, not fatal.
func DecodeItems[T any](items []json.RawMessage) []T {
	out := make([]T, 0, len(items))
	for _, raw := range items {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}
		out = append(out, item)
	}
	return out
}
