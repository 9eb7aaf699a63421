package ai

import "testing"

func TestParseFirstNumber(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"0.5", 0.5, true},
		{"[-0.7]", -0.7, true},
		{"Sentiment: 0.9 (positive)", 0.9, true},
		{"score is -1", -1, true},
		{"no numbers here", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseFirstNumber(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parseFirstNumber(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestClampSentiment(t *testing.T) {
	if got := clampSentiment(3.5); got != 1 {
		t.Errorf("clampSentiment(3.5) = %v, want 1", got)
	}
	if got := clampSentiment(-2); got != -1 {
		t.Errorf("clampSentiment(-2) = %v, want -1", got)
	}
	if got := clampSentiment(0.25); got != 0.25 {
		t.Errorf("clampSentiment(0.25) = %v, want 0.25", got)
	}
}

func TestFallbackSentiment(t *testing.T) {
	if got := FallbackSentiment("Customer was pleased and thankful, issue resolved"); got <= 0 {
		t.Errorf("positive text scored %v, want > 0", got)
	}
	if got := FallbackSentiment("Customer complained about fees, very frustrated"); got >= 0 {
		t.Errorf("negative text scored %v, want < 0", got)
	}
	if got := FallbackSentiment("Routine account review"); got != 0 {
		t.Errorf("neutral text scored %v, want 0", got)
	}
}
