package analytics

import (
	"testing"

	"github.com/nexabank/crm-insights/internal/store"
)

func TestRiskBucketPartitionsScores(t *testing.T) {
	cases := map[float64]RiskLevel{
		1: RiskLow,
		2: RiskLow,
		3: RiskMedium,
		4: RiskHigh,
		5: RiskHigh,
	}
	for score, want := range cases {
		if got := RiskBucket(score); got != want {
			t.Errorf("RiskBucket(%v) = %v, want %v", score, got, want)
		}
	}
}

func TestSummarizeEmptyList(t *testing.T) {
	summary, ok := Summarize(nil)
	if ok {
		t.Errorf("empty list must report no summary, got %+v", summary)
	}
}

func TestSummarize(t *testing.T) {
	customers := []store.Customer{
		{ID: 1, RiskScore: 1, Balance: 1000},
		{ID: 2, RiskScore: 5, Balance: 3000},
	}

	summary, ok := Summarize(customers)
	if !ok {
		t.Fatal("expected a summary for a non-empty list")
	}
	if summary.TotalCustomers != 2 {
		t.Errorf("total: got %d, want 2", summary.TotalCustomers)
	}
	if summary.AverageBalance != 2000 {
		t.Errorf("average balance: got %v, want 2000", summary.AverageBalance)
	}
	if summary.RiskBuckets["Low"] != 1 || summary.RiskBuckets["Medium"] != 0 || summary.RiskBuckets["High"] != 1 {
		t.Errorf("buckets: got %v", summary.RiskBuckets)
	}
}

func TestPositiveSentimentRatio(t *testing.T) {
	if got := PositiveSentimentRatio(nil); got != 0 {
		t.Errorf("empty interactions: got %d, want 0", got)
	}

	interactions := []store.Interaction{
		{SentimentScore: 1},
		{SentimentScore: -1},
		{SentimentScore: 0},
	}
	if got := PositiveSentimentRatio(interactions); got != 33 {
		t.Errorf("1 of 3 positive: got %d, want 33", got)
	}

	twoOfThree := []store.Interaction{
		{SentimentScore: 0.5},
		{SentimentScore: 1},
		{SentimentScore: -0.2},
	}
	if got := PositiveSentimentRatio(twoOfThree); got != 67 {
		t.Errorf("2 of 3 positive: got %d, want 67", got)
	}
}
