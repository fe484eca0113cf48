package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalLeadStatusFoldsAliases(t *testing.T) {
	for _, alias := range []string{"QUOTE_SENT", "OPPORTUNITY", "NEW_OPPORTUNITY", "CONVERTED"} {
		assert.Equal(t, LeadStatusConverted, CanonicalLeadStatus(alias), alias)
	}
}

func TestCanonicalLeadStatusPassesCanonicalAndUnknownThrough(t *testing.T) {
	for _, status := range []string{LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusConverted, LeadStatusLost} {
		assert.Equal(t, status, CanonicalLeadStatus(status))
	}
	assert.Equal(t, "ARCHIVED", CanonicalLeadStatus("ARCHIVED"))
}

func TestLeadStatusLabel(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{LeadStatusNew, "New"},
		{LeadStatusContacted, "Contacted"},
		{LeadStatusQualified, "Qualified"},
		{LeadStatusConverted, "Converted"},
		{LeadStatusLost, "Lost"},
		// Legacy rows resolve through the alias map before lookup.
		{"QUOTE_SENT", "Converted"},
		{"NEW_OPPORTUNITY", "Converted"},
		// Unknown statuses fall through unchanged rather than erroring.
		{"ARCHIVED", "ARCHIVED"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LeadStatusLabel(tt.status), tt.status)
	}
}

func TestLeadStatusColorBuckets(t *testing.T) {
	assert.Contains(t, LeadStatusColor(LeadStatusNew), "blue")
	assert.Contains(t, LeadStatusColor(LeadStatusContacted), "yellow")
	assert.Contains(t, LeadStatusColor(LeadStatusQualified), "green")
	assert.Contains(t, LeadStatusColor(LeadStatusConverted), "purple")
	assert.Contains(t, LeadStatusColor(LeadStatusLost), "red")

	// Aliases land in the converted bucket, not the fallback.
	assert.Equal(t, LeadStatusColor(LeadStatusConverted), LeadStatusColor("QUOTE_SENT"))

	// Anything unmapped renders gray.
	assert.Contains(t, LeadStatusColor("ARCHIVED"), "gray")
	assert.Contains(t, LeadStatusColor(""), "gray")
}

func TestNewLeadListRowFillsDisplayFields(t *testing.T) {
	row := NewLeadListRow(Lead{ID: "l1", Name: "Nadia", Status: "QUOTE_SENT"})

	assert.Equal(t, LeadStatusConverted, row.Status)
	assert.Equal(t, "Converted", row.StatusLabel)
	assert.Contains(t, row.StatusColor, "purple")
}

func TestIsOpenStage(t *testing.T) {
	assert.True(t, IsOpenStage(StageQualification))
	assert.True(t, IsOpenStage(StageProposal))
	assert.True(t, IsOpenStage(StageNegotiation))
	assert.False(t, IsOpenStage(StageWon))
	assert.False(t, IsOpenStage(StageLost))
}
