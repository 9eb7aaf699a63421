// Package analytics derives dashboard metrics from raw customer and
// interaction records. Everything here is pure and synchronous.
package analytics

import (
	"math"

	"github.com/nexabank/crm-insights/internal/store"
)

// RiskLevel is a customer risk bucket
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// RiskBucket maps a numeric risk score onto a bucket. The same thresholds
// apply everywhere risk is displayed, list badges and the analytics view
// alike.
func RiskBucket(score float64) RiskLevel {
	switch {
	case score <= 2:
		return RiskLow
	case score <= 3:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// Summary is the cross-customer analytics rollup
type Summary struct {
	TotalCustomers int            `json:"total_customers"`
	AverageBalance float64        `json:"average_balance"`
	RiskBuckets    map[string]int `json:"risk_buckets"`
}

// Summarize rolls up the customer list. The second return is false when the
// list is empty; callers render an explicit empty state instead of a summary.
func Summarize(customers []store.Customer) (Summary, bool) {
	if len(customers) == 0 {
		return Summary{}, false
	}

	summary := Summary{
		TotalCustomers: len(customers),
		RiskBuckets: map[string]int{
			string(RiskLow):    0,
			string(RiskMedium): 0,
			string(RiskHigh):   0,
		},
	}

	var totalBalance float64
	for _, customer := range customers {
		totalBalance += customer.Balance
		summary.RiskBuckets[string(RiskBucket(customer.RiskScore))]++
	}
	summary.AverageBalance = totalBalance / float64(len(customers))

	return summary, true
}

// PositiveSentimentRatio is the share of interactions with positive
// sentiment, as a rounded integer percent. Zero when there is nothing to
// measure.
func PositiveSentimentRatio(interactions []store.Interaction) int {
	if len(interactions) == 0 {
		return 0
	}
	positive := 0
	for _, interaction := range interactions {
		if interaction.SentimentScore > 0 {
			positive++
		}
	}
	return int(math.Round(float64(positive) / float64(len(interactions)) * 100))
}
