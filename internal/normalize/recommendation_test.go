package normalize

import "testing"

func TestRecommendationPassThrough(t *testing.T) {
	view := Recommendation(map[string]interface{}{
		"recommendation": "Offer a premium account upgrade",
		"reasoning":      "High balance, positive sentiment",
		"priority":       "High",
	})
	if view.Recommendation != "Offer a premium account upgrade" {
		t.Errorf("recommendation: got %q", view.Recommendation)
	}
	if view.Reasoning != "High balance, positive sentiment" {
		t.Errorf("reasoning: got %q", view.Reasoning)
	}
	if view.PriorityLevel() != PriorityHigh {
		t.Errorf("priority level: got %v", view.PriorityLevel())
	}
}

func TestRecommendationDefaults(t *testing.T) {
	view := Recommendation(map[string]interface{}{})
	if view.Recommendation != DefaultRecommendation {
		t.Errorf("expected placeholder, got %q", view.Recommendation)
	}
	if view.Reasoning != "" {
		t.Errorf("reasoning should be absent, got %q", view.Reasoning)
	}
	if view.Priority != "Medium" {
		t.Errorf("expected default priority Medium, got %q", view.Priority)
	}
}

func TestRecommendationUnknownPriorityStylesMedium(t *testing.T) {
	view := Recommendation(map[string]interface{}{
		"recommendation": "Call the customer",
		"priority":       "Urgent",
	})
	if view.PriorityLevel() != PriorityMedium {
		t.Errorf("unknown priority should style as Medium, got %v", view.PriorityLevel())
	}
	if view.Priority != "Urgent" {
		t.Errorf("literal priority must be preserved, got %q", view.Priority)
	}
	if view.PriorityLabel() != "URGENT" {
		t.Errorf("label should upper-case the literal, got %q", view.PriorityLabel())
	}
}

func TestRecommendationCaseInsensitivePriority(t *testing.T) {
	for literal, want := range map[string]Priority{
		"low": PriorityLow, "LOW": PriorityLow,
		"high": PriorityHigh, "High": PriorityHigh,
		"medium": PriorityMedium,
	} {
		view := Recommendation(map[string]interface{}{"priority": literal})
		if got := view.PriorityLevel(); got != want {
			t.Errorf("priority %q: got %v, want %v", literal, got, want)
		}
	}
}
