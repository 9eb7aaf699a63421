package normalize

import "strings"

// DefaultRecommendation is shown when the model returned no recommendation
// text at all.
const DefaultRecommendation = "No recommendation available"

// Priority is the styling bucket for a recommendation
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// RecommendationView is the canonical next-best-action display model. The
// priority literal is preserved as received; styling goes through
// PriorityLevel.
type RecommendationView struct {
	Recommendation string `json:"recommendation"`
	Reasoning      string `json:"reasoning,omitempty"`
	Priority       string `json:"priority"`
}

// Recommendation normalizes an AI recommendation payload
func Recommendation(raw map[string]interface{}) RecommendationView {
	view := RecommendationView{
		Recommendation: asString(raw["recommendation"]),
		Reasoning:      asString(raw["reasoning"]),
		Priority:       asString(raw["priority"]),
	}
	if view.Recommendation == "" {
		view.Recommendation = DefaultRecommendation
	}
	if view.Priority == "" {
		view.Priority = string(PriorityMedium)
	}
	return view
}

// PriorityLevel maps the literal priority onto a styling bucket. Unrecognized
// values style as Medium; the literal itself is still what gets displayed.
func (v RecommendationView) PriorityLevel() Priority {
	switch strings.ToLower(v.Priority) {
	case "low":
		return PriorityLow
	case "high":
		return PriorityHigh
	default:
		return PriorityMedium
	}
}

// PriorityLabel is the upper-cased literal shown on the badge
func (v RecommendationView) PriorityLabel() string {
	return strings.ToUpper(v.Priority)
}
