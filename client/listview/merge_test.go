package listview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vantage-CRM/vantage-crm-backend/models"
)

func strPtr(s string) *string { return &s }

func TestParseEmbeddedInterestsArray(t *testing.T) {
	raw := `[{"product_id": "p1", "product_name": "Desk Lamp", "quantity": 2, "interest_level": "high"}]`

	interests := ParseEmbeddedInterests(&raw)

	require.Len(t, interests, 1)
	assert.Equal(t, "p1", interests[0].ProductID)
	assert.Equal(t, 2, interests[0].Quantity)
}

func TestParseEmbeddedInterestsDoubleEncoded(t *testing.T) {
	// Rows written by the first CRM iteration stored the array as a JSON
	// string inside the JSONB column.
	raw := `"[{\"product_id\": \"p1\", \"product_name\": \"Desk Lamp\", \"quantity\": 1, \"interest_level\": \"low\"}]"`

	interests := ParseEmbeddedInterests(&raw)

	require.Len(t, interests, 1)
	assert.Equal(t, "Desk Lamp", interests[0].ProductName)
}

func TestParseEmbeddedInterestsAbsentOrGarbage(t *testing.T) {
	garbage := `{{not json`
	empty := ""

	assert.Nil(t, ParseEmbeddedInterests(nil))
	assert.Nil(t, ParseEmbeddedInterests(&empty))
	assert.Nil(t, ParseEmbeddedInterests(&garbage))
}

func TestMergeInterestsProvenance(t *testing.T) {
	embedded := []models.LeadProductInterest{
		{ProductID: "p1", ProductName: "Desk Lamp", Quantity: 2, InterestLevel: "medium"},
		{ProductID: "p2", ProductName: "Office Chair", Quantity: 1, InterestLevel: "low"},
	}
	added := []models.LeadProductInterest{
		{ProductID: "p3", ProductName: "Monitor Arm", Quantity: 1, InterestLevel: "high"},
	}

	merged := MergeInterests(embedded, added)

	require.Len(t, merged, 3)
	assert.Equal(t, SourceCreatedWithLead, merged[0].Source)
	assert.Equal(t, SourceCreatedWithLead, merged[1].Source)
	assert.Equal(t, SourceAddedLater, merged[2].Source)
	assert.Equal(t, "p3", merged[2].ProductID)
}

func TestMergeInterestsDedupesWithLaterWinning(t *testing.T) {
	created := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	updated := time.Date(2026, time.February, 20, 0, 0, 0, 0, time.UTC)

	embedded := []models.LeadProductInterest{
		{ProductID: "p1", ProductName: "Desk Lamp", Quantity: 2, InterestLevel: "medium", CreatedAt: created},
	}
	added := []models.LeadProductInterest{
		{ProductID: "p1", Quantity: 5, InterestLevel: "high", Notes: strPtr("upsell candidate"), UpdatedAt: updated},
	}

	merged := MergeInterests(embedded, added)

	require.Len(t, merged, 1)
	entry := merged[0]
	assert.Equal(t, SourceBoth, entry.Source)
	assert.Equal(t, 5, entry.Quantity)
	assert.Equal(t, "high", entry.InterestLevel)
	require.NotNil(t, entry.Notes)
	assert.Equal(t, "upsell candidate", *entry.Notes)
	// Fields the later row left empty keep the embedded values.
	assert.Equal(t, "Desk Lamp", entry.ProductName)
	assert.Equal(t, created, entry.CreatedAt)
	assert.Equal(t, updated, entry.UpdatedAt)
}

func TestMergeInterestsKeepsEmbeddedOrder(t *testing.T) {
	embedded := []models.LeadProductInterest{
		{ProductID: "p2", ProductName: "B"},
		{ProductID: "p1", ProductName: "A"},
	}
	added := []models.LeadProductInterest{
		{ProductID: "p1", Quantity: 4},
		{ProductID: "p9", ProductName: "Z"},
	}

	merged := MergeInterests(embedded, added)

	require.Len(t, merged, 3)
	assert.Equal(t, "p2", merged[0].ProductID)
	assert.Equal(t, "p1", merged[1].ProductID)
	assert.Equal(t, "p9", merged[2].ProductID)
}

func TestMergeInterestsEmptySides(t *testing.T) {
	added := []models.LeadProductInterest{{ProductID: "p1"}}

	assert.Empty(t, MergeInterests(nil, nil))
	assert.Len(t, MergeInterests(nil, added), 1)
	assert.Len(t, MergeInterests(added, nil), 1)
}
