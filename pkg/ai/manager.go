package ai

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Manager manages AI providers with fallback logic
type Manager struct {
	providers []Provider
	logger    *zap.Logger
}

// NewManager creates a new AI provider manager
func NewManager(providers []Provider, logger *zap.Logger) *Manager {
	return &Manager{
		providers: providers,
		logger:    logger,
	}
}

// GetAvailableProvider returns the first available provider
func (m *Manager) GetAvailableProvider() Provider {
	for _, provider := range m.providers {
		if provider.IsAvailable() {
			return provider
		}
	}
	return nil
}

// ExecuteWithFallback executes a method on providers with fallback logic
func (m *Manager) ExecuteWithFallback(
	ctx context.Context,
	method func(Provider, context.Context) (interface{}, error),
) (interface{}, error) {
	if len(m.providers) == 0 {
		return nil, fmt.Errorf("no AI providers available")
	}

	var lastErr error
	for _, provider := range m.providers {
		if !provider.IsAvailable() {
			continue
		}

		result, err := method(provider, ctx)
		if err == nil {
			m.logger.Debug("AI provider call succeeded",
				zap.String("provider", provider.Name()),
			)
			return result, nil
		}

		lastErr = err
		m.logger.Warn("AI provider failed, trying next",
			zap.String("provider", provider.Name()),
			zap.Error(err),
		)
	}

	if lastErr == nil {
		return nil, fmt.Errorf("no AI providers available")
	}
	return nil, fmt.Errorf("all AI providers failed. Last error: %w", lastErr)
}

// AnalyzeCustomer runs a customer analysis with fallback
func (m *Manager) AnalyzeCustomer(ctx context.Context, req *AnalysisRequest) (map[string]interface{}, error) {
	result, err := m.ExecuteWithFallback(ctx, func(provider Provider, ctx context.Context) (interface{}, error) {
		return provider.AnalyzeCustomer(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return result.(map[string]interface{}), nil
}

// RecommendAction generates a recommendation with fallback
func (m *Manager) RecommendAction(ctx context.Context, req *RecommendationRequest) (map[string]interface{}, error) {
	result, err := m.ExecuteWithFallback(ctx, func(provider Provider, ctx context.Context) (interface{}, error) {
		return provider.RecommendAction(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return result.(map[string]interface{}), nil
}

// ScoreSentiment scores interaction text, falling back to keyword matching
// when every provider fails. Always returns a usable score.
func (m *Manager) ScoreSentiment(ctx context.Context, text string) float64 {
	result, err := m.ExecuteWithFallback(ctx, func(provider Provider, ctx context.Context) (interface{}, error) {
		return provider.ScoreSentiment(ctx, text)
	})
	if err != nil {
		m.logger.Warn("AI sentiment scoring failed, using keyword fallback", zap.Error(err))
		return FallbackSentiment(text)
	}
	return result.(float64)
}
