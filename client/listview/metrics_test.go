package listview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vantage-CRM/vantage-crm-backend/models"
	"github.com/Vantage-CRM/vantage-crm-backend/services"
)

func pageOfOpportunities() []models.OpportunityListRow {
	return []models.OpportunityListRow{
		{ID: "o1", Stage: models.StageQualification, Value: 10000, Currency: "USD", Probability: 20},
		{ID: "o2", Stage: models.StageProposal, Value: 5000, Currency: "USD", Probability: 60},
		{ID: "o3", Stage: models.StageWon, Value: 8000, Currency: "USD", Probability: 100},
		{ID: "o4", Stage: models.StageLost, Value: 9999, Currency: "USD", Probability: 0},
	}
}

func TestPipelineValueWeightsOpenDeals(t *testing.T) {
	// 10000*0.20 + 5000*0.60; won and lost deals are out of the pipeline.
	assert.InDelta(t, 5000.0, PipelineValue(pageOfOpportunities()), 0.01)
}

func TestClosedRevenueCountsWonOnly(t *testing.T) {
	assert.InDelta(t, 8000.0, ClosedRevenue(pageOfOpportunities()), 0.01)
}

func TestConvertedPipelineValue(t *testing.T) {
	opps := []models.OpportunityListRow{
		{ID: "o1", Stage: models.StageProposal, Value: 1000, Currency: "EUR", Probability: 50},
		{ID: "o2", Stage: models.StageProposal, Value: 1000, Currency: "USD", Probability: 50},
	}

	got := ConvertedPipelineValue(opps, services.StaticRates{}, "USD")

	// 500 EUR at 1.08 plus 500 USD.
	assert.InDelta(t, 500*1.08+500, got, 0.01)
}

func TestConvertedPipelineValueUnknownCurrencyFaceValue(t *testing.T) {
	opps := []models.OpportunityListRow{
		{ID: "o1", Stage: models.StageProposal, Value: 1000, Currency: "XTS", Probability: 50},
	}

	got := ConvertedPipelineValue(opps, services.StaticRates{}, "USD")
	assert.InDelta(t, 500.0, got, 0.01)
}

func TestConversionProbability(t *testing.T) {
	cases := []struct {
		name         string
		status       string
		interactions int
		want         int
	}{
		{"new no interactions", "NEW", 0, 15},
		{"contacted few", "CONTACTED", 3, 50},
		{"qualified many", "QUALIFIED", 6, 85},
		{"converted is exactly 100", "CONVERTED_TO_OPPORTUNITY", 0, 100},
		{"converted alias", "QUOTE_SENT", 2, 100},
		{"capped at 95", "QUALIFIED", 100, 85},
		{"unknown status baseline zero", "SOMETHING_ELSE", 6, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ConversionProbability(tc.status, tc.interactions))
		})
	}
}

func TestConversionProbabilityNeverExceeds95ShortOfConverted(t *testing.T) {
	for _, status := range []string{"NEW", "CONTACTED", "QUALIFIED", "LOST", "garbage"} {
		for _, interactions := range []int{0, 3, 6, 50} {
			got := ConversionProbability(status, interactions)
			require.LessOrEqual(t, got, 95, "status=%s interactions=%d", status, interactions)
			require.GreaterOrEqual(t, got, 0)
		}
	}
}

func TestLastActivityLabel(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		createdAt time.Time
		activity  []time.Time
		want      string
	}{
		{"under an hour", now.Add(-30 * time.Minute), nil, "Just now"},
		{"same day", now.Add(-5 * time.Hour), nil, "5h ago"},
		{"one day", now.Add(-30 * time.Hour), nil, "Yesterday"},
		{"several days", now.Add(-4 * 24 * time.Hour), nil, "4d ago"},
		{
			"latest across collections wins",
			now.Add(-10 * 24 * time.Hour),
			[]time.Time{now.Add(-3 * 24 * time.Hour), now.Add(-6 * time.Hour)},
			"6h ago",
		},
		{
			"creation stands in when no activity",
			now.Add(-2 * 24 * time.Hour),
			[]time.Time{},
			"2d ago",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, LastActivityLabel(now, tc.createdAt, tc.activity))
		})
	}
}

func TestActivityTimes(t *testing.T) {
	stamp := time.Date(2026, time.February, 1, 9, 0, 0, 0, time.UTC)
	activities := []models.LeadActivity{
		{ID: "a1", Kind: models.ActivityKindComment, CreatedAt: stamp},
		{ID: "a2", Kind: models.ActivityKindEmail, CreatedAt: stamp.Add(time.Hour)},
	}

	times := ActivityTimes(activities)
	require.Len(t, times, 2)
	assert.Equal(t, stamp, times[0])
	assert.Equal(t, stamp.Add(time.Hour), times[1])
}
