package listview

import (
	"fmt"
	"log"
	"time"

	"github.com/Vantage-CRM/vantage-crm-backend/models"
	"github.com/Vantage-CRM/vantage-crm-backend/services"
)

// Dashboard metrics computed from the page of records currently in memory.
// These figures are page-scoped: a dashboard that needs whole-table numbers
// should read the server's /stats endpoints instead. Kept as pure functions
// so swapping a metric for a server aggregate is a call-site change.

// PipelineValue sums probability-weighted value over open deals.
func PipelineValue(opps []models.OpportunityListRow) float64 {
	var total float64
	for _, opp := range opps {
		if !models.IsOpenStage(opp.Stage) {
			continue
		}
		total += opp.Value * float64(opp.Probability) / 100
	}
	return total
}

// ClosedRevenue sums value over won deals.
func ClosedRevenue(opps []models.OpportunityListRow) float64 {
	var total float64
	for _, opp := range opps {
		if opp.Stage == models.StageWon {
			total += opp.Value
		}
	}
	return total
}

// ConvertedPipelineValue is PipelineValue with each deal translated into
// the target currency first. Deals whose currency has no known rate are
// counted at face value so a bad row never blanks the whole card.
func ConvertedPipelineValue(opps []models.OpportunityListRow, rates services.ExchangeRateProvider, target string) float64 {
	var total float64
	for _, opp := range opps {
		if !models.IsOpenStage(opp.Stage) {
			continue
		}
		weighted := opp.Value * float64(opp.Probability) / 100
		converted, err := services.Convert(rates, weighted, opp.Currency, target)
		if err != nil {
			log.Printf("[listview] WARN no rate for %s, counting at face value: %v", opp.Currency, err)
			converted = weighted
		}
		total += converted
	}
	return total
}

// conversionBaselines by canonical lead status.
var conversionBaselines = map[string]int{
	models.LeadStatusNew:       15,
	models.LeadStatusContacted: 45,
	models.LeadStatusQualified: 75,
	models.LeadStatusConverted: 100,
}

// ConversionProbability estimates how likely a lead is to convert, from its
// status baseline plus an interaction bonus. Converted leads are exactly
// 100; everything else is capped at 95 no matter how many interactions.
func ConversionProbability(status string, interactions int) int {
	canonical := models.CanonicalLeadStatus(status)
	if canonical == models.LeadStatusConverted {
		return 100
	}

	probability := conversionBaselines[canonical]
	switch {
	case interactions > 5:
		probability += 10
	case interactions > 2:
		probability += 5
	}

	if probability > 95 {
		probability = 95
	}
	return probability
}

// LastActivityLabel renders a relative timestamp for the most recent
// activity across every timeline collection. With no activity at all the
// record's creation time stands in, so the max is never over an empty set.
func LastActivityLabel(now, createdAt time.Time, activityTimes []time.Time) string {
	latest := createdAt
	for _, t := range activityTimes {
		if t.After(latest) {
			latest = t
		}
	}

	elapsed := now.Sub(latest)
	switch {
	case elapsed < time.Hour:
		return "Just now"
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	}

	days := int(elapsed.Hours() / 24)
	if days == 1 {
		return "Yesterday"
	}
	return fmt.Sprintf("%dd ago", days)
}

// ActivityTimes extracts the timestamps from a lead's timeline entries.
func ActivityTimes(activities []models.LeadActivity) []time.Time {
	times := make([]time.Time, 0, len(activities))
	for _, activity := range activities {
		times = append(times, activity.CreatedAt)
	}
	return times
}
