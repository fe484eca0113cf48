package listview

import (
	"encoding/json"
	"log"

	"github.com/Vantage-CRM/vantage-crm-backend/models"
)

// Provenance of a merged product-interest record.
const (
	SourceCreatedWithLead = "created-with-lead"
	SourceAddedLater      = "added-later"
	SourceBoth            = "both"
)

// MergedInterest is one deduplicated product-interest row with a tag saying
// which collection(s) it came from.
type MergedInterest struct {
	models.LeadProductInterest
	Source string `json:"source"`
}

// ParseEmbeddedInterests decodes the product_interests blob stored on the
// lead record. Newer rows hold a JSON array; rows written by the first CRM
// iteration hold a double-encoded JSON string. A blob that parses as
// neither is treated as absent.
func ParseEmbeddedInterests(raw *string) []models.LeadProductInterest {
	if raw == nil || *raw == "" {
		return nil
	}

	data := []byte(*raw)

	var interests []models.LeadProductInterest
	if err := json.Unmarshal(data, &interests); err == nil {
		return interests
	}

	// Double-encoded: the blob is a JSON string containing the array.
	var inner string
	if err := json.Unmarshal(data, &inner); err == nil {
		if err := json.Unmarshal([]byte(inner), &interests); err == nil {
			return interests
		}
	}

	log.Printf("[listview] WARN unparseable product_interests blob, treating as empty")
	return nil
}

// MergeInterests combines the interests embedded at lead creation with the
// rows added later through the lead_products association, keyed by product
// id. When both sides know a product, the later-added row's fields win and
// the entry is tagged "both". Output order is the embedded collection's
// order followed by later-only additions.
func MergeInterests(embedded, added []models.LeadProductInterest) []MergedInterest {
	merged := make([]MergedInterest, 0, len(embedded)+len(added))
	index := make(map[string]int, len(embedded))

	for _, interest := range embedded {
		index[interest.ProductID] = len(merged)
		merged = append(merged, MergedInterest{
			LeadProductInterest: interest,
			Source:              SourceCreatedWithLead,
		})
	}

	for _, interest := range added {
		at, exists := index[interest.ProductID]
		if !exists {
			index[interest.ProductID] = len(merged)
			merged = append(merged, MergedInterest{
				LeadProductInterest: interest,
				Source:              SourceAddedLater,
			})
			continue
		}

		entry := &merged[at]
		overlayInterest(&entry.LeadProductInterest, interest)
		entry.Source = SourceBoth
	}

	return merged
}

// overlayInterest copies the later row's fields over the embedded row.
// Zero values on the later side leave the embedded value standing, so a
// sparsely-populated association row cannot blank data captured on the
// create form.
func overlayInterest(base *models.LeadProductInterest, later models.LeadProductInterest) {
	if later.ProductName != "" {
		base.ProductName = later.ProductName
	}
	if later.Quantity != 0 {
		base.Quantity = later.Quantity
	}
	if later.InterestLevel != "" {
		base.InterestLevel = later.InterestLevel
	}
	if later.Notes != nil {
		base.Notes = later.Notes
	}
	if !later.CreatedAt.IsZero() {
		base.CreatedAt = later.CreatedAt
	}
	if !later.UpdatedAt.IsZero() {
		base.UpdatedAt = later.UpdatedAt
	}
}
