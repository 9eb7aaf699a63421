package store

import "time"

// Account types offered to the add-customer form.
var AccountTypes = []string{"Standard", "Premium", "VIP", "Business", "Checking", "Savings"}

// Interaction channels the dashboard records.
var InteractionTypes = []string{"Phone Call", "Email", "Branch Visit", "Chat"}

// Customer is the bank customer snapshot served to the dashboard
type Customer struct {
	ID          int64     `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Email       string    `bson:"email" json:"email"`
	Phone       string    `bson:"phone" json:"phone"`
	AccountType string    `bson:"account_type" json:"account_type"`
	Balance     float64   `bson:"balance" json:"balance"`
	RiskScore   float64   `bson:"risk_score" json:"risk_score"`
	CreatedDate time.Time `bson:"created_date" json:"created_date"`
}

// Interaction is one recorded customer touchpoint. The sign of
// SentimentScore carries the meaning: >0 positive, <0 negative, 0 neutral.
type Interaction struct {
	ID              int64     `bson:"id" json:"id"`
	CustomerID      int64     `bson:"customer_id" json:"customer_id"`
	InteractionType string    `bson:"interaction_type" json:"interaction_type"`
	Summary         string    `bson:"summary" json:"summary"`
	SentimentScore  float64   `bson:"sentiment_score" json:"sentiment_score"`
	Date            time.Time `bson:"date" json:"date"`
}

// Recommendation is a persisted AI next-best-action suggestion
type Recommendation struct {
	ID             int64     `bson:"id" json:"id"`
	CustomerID     int64     `bson:"customer_id" json:"customer_id"`
	Recommendation string    `bson:"recommendation" json:"recommendation"`
	Reasoning      string    `bson:"reasoning" json:"reasoning"`
	Priority       string    `bson:"priority" json:"priority"`
	Status         string    `bson:"status" json:"status"`
	CreatedDate    time.Time `bson:"created_date" json:"created_date"`
}

// Recommendation statuses
const (
	RecommendationPending   = "Pending"
	RecommendationCompleted = "Completed"
)
