package stats_cache

import (
	"testing"

	"github.com/Vantage-CRM/vantage-crm-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadStatsRoundTrip(t *testing.T) {
	InvalidateLeadStats()

	_, ok := GetLeadStats()
	assert.False(t, ok, "empty cache should miss")

	want := models.LeadStats{TotalLeads: 42, NewThisMonth: 7}
	SetLeadStats(want)

	got, ok := GetLeadStats()
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestInvalidateLeadStats(t *testing.T) {
	SetLeadStats(models.LeadStats{TotalLeads: 1})
	InvalidateLeadStats()

	_, ok := GetLeadStats()
	assert.False(t, ok, "invalidated cache should miss")
}
