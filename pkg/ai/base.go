package ai

import (
	"context"
)

// Provider is the base interface for all AI providers
type Provider interface {
	// AnalyzeCustomer generates a behavioral analysis payload for a customer
	AnalyzeCustomer(ctx context.Context, req *AnalysisRequest) (map[string]interface{}, error)

	// RecommendAction generates a next-best-action recommendation payload
	RecommendAction(ctx context.Context, req *RecommendationRequest) (map[string]interface{}, error)

	// ScoreSentiment scores a piece of interaction text in [-1, 1]
	ScoreSentiment(ctx context.Context, text string) (float64, error)

	// IsAvailable checks if the provider is available/configured
	IsAvailable() bool

	// Name returns the provider name
	Name() string
}

// InteractionSummary is one line of interaction history fed into a prompt
type InteractionSummary struct {
	Type    string
	Summary string
}

// AnalysisRequest represents a customer analysis request
type AnalysisRequest struct {
	CustomerID   int64
	CustomerName string
	AccountType  string
	Balance      float64
	Interactions []InteractionSummary
}

// RecommendationRequest represents a next-best-action request
type RecommendationRequest struct {
	CustomerID   int64
	CustomerName string
	AccountType  string
	Balance      float64
	Interactions []InteractionSummary
}
