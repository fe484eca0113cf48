package models

// Canonical lead statuses. Legacy aliases from older imports and the first
// CRM iteration are folded into these before any filtering or display logic.
const (
	LeadStatusNew       = "NEW"
	LeadStatusContacted = "CONTACTED"
	LeadStatusQualified = "QUALIFIED"
	LeadStatusConverted = "CONVERTED_TO_OPPORTUNITY"
	LeadStatusLost      = "LOST"
)

// Opportunity stages.
const (
	StageQualification = "QUALIFICATION"
	StageProposal      = "PROPOSAL"
	StageNegotiation   = "NEGOTIATION"
	StageWon           = "WON"
	StageLost          = "LOST"
)

// leadStatusAliases maps legacy status codes to their canonical value.
var leadStatusAliases = map[string]string{
	"QUOTE_SENT":      LeadStatusConverted,
	"OPPORTUNITY":     LeadStatusConverted,
	"NEW_OPPORTUNITY": LeadStatusConverted,
	"CONVERTED":       LeadStatusConverted,
}

// CanonicalLeadStatus resolves legacy aliases. Unknown statuses pass through
// unchanged so new server-side values degrade to the default style instead
// of erroring.
func CanonicalLeadStatus(status string) string {
	if canonical, ok := leadStatusAliases[status]; ok {
		return canonical
	}
	return status
}

var leadStatusLabels = map[string]string{
	LeadStatusNew:       "New",
	LeadStatusContacted: "Contacted",
	LeadStatusQualified: "Qualified",
	LeadStatusConverted: "Converted",
	LeadStatusLost:      "Lost",
}

// LeadStatusLabel returns the display label for a (possibly aliased) status.
func LeadStatusLabel(status string) string {
	if label, ok := leadStatusLabels[CanonicalLeadStatus(status)]; ok {
		return label
	}
	return status
}

var leadStatusColors = map[string]string{
	LeadStatusNew:       "bg-blue-100 text-blue-800",
	LeadStatusContacted: "bg-yellow-100 text-yellow-800",
	LeadStatusQualified: "bg-green-100 text-green-800",
	LeadStatusConverted: "bg-purple-100 text-purple-800",
	LeadStatusLost:      "bg-red-100 text-red-800",
}

const leadStatusDefaultColor = "bg-gray-100 text-gray-800"

// LeadStatusColor returns the badge classes for a status, falling back to
// the gray bucket for anything unmapped.
func LeadStatusColor(status string) string {
	if color, ok := leadStatusColors[CanonicalLeadStatus(status)]; ok {
		return color
	}
	return leadStatusDefaultColor
}

// IsOpenStage reports whether an opportunity stage still counts toward the
// pipeline (i.e. neither won nor lost).
func IsOpenStage(stage string) bool {
	return stage != StageWon && stage != StageLost
}
