package ai

import (
	"strconv"
	"strings"
)

var positiveWords = []string{
	"satisfied", "happy", "pleased", "interested", "positive", "great",
	"excellent", "thank", "resolved", "helpful",
}

var negativeWords = []string{
	"complained", "complaint", "frustrated", "frustration", "angry", "upset",
	"negative", "unhappy", "cancel", "dissatisfied", "problem",
}

// FallbackSentiment scores interaction text by keyword matching, used when
// no AI provider can produce a score.
func FallbackSentiment(text string) float64 {
	lower := strings.ToLower(text)

	score := 0.0
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			score += 0.3
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			score -= 0.3
		}
	}

	return clampSentiment(score)
}

// parseFirstNumber extracts the first numeric token from AI output like
// "[0.5]" or "Sentiment: -0.7 (negative)".
func parseFirstNumber(text string) (float64, bool) {
	i := 0
	for i < len(text) {
		c := text[i]
		if c == '-' || (c >= '0' && c <= '9') {
			j := i
			if c == '-' {
				j++
			}
			dot := false
			for j < len(text) && (text[j] >= '0' && text[j] <= '9' || (text[j] == '.' && !dot)) {
				if text[j] == '.' {
					dot = true
				}
				j++
			}
			if j > i && text[i:j] != "-" {
				v, err := strconv.ParseFloat(text[i:j], 64)
				if err == nil {
					return v, true
				}
			}
			i = j + 1
			continue
		}
		i++
	}
	return 0, false
}

func clampSentiment(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
