package insight

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nexabank/crm-insights/internal/normalize"
	"github.com/nexabank/crm-insights/internal/store"
	"github.com/nexabank/crm-insights/pkg/ai"
	"github.com/nexabank/crm-insights/pkg/metrics"
)

// Manager owns the single live session and runs slot operations against the
// repository and the AI providers. Switching customers replaces the session
// wholesale; the old one is discarded, never mutated into the new one.
type Manager struct {
	repo      *store.Repository
	ai        *ai.Manager
	logger    *zap.Logger
	aiTimeout time.Duration

	mu      sync.Mutex
	session *Session
}

func NewManager(repo *store.Repository, aiManager *ai.Manager, aiTimeout time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		repo:      repo,
		ai:        aiManager,
		logger:    logger,
		aiTimeout: aiTimeout,
	}
}

// ForCustomer returns the session for the given customer, reusing the live
// one when the subject matches. On a switch the old session is discarded
// first, then the fresh session starts its interaction-history fetch.
// Analysis and recommendation stay idle until requested.
func (m *Manager) ForCustomer(customer *store.Customer) *Session {
	m.mu.Lock()
	if m.session != nil && m.session.CustomerID() == customer.ID {
		session := m.session
		m.mu.Unlock()
		return session
	}

	old := m.session
	session := NewSession(customer.ID)
	m.session = session
	m.mu.Unlock()

	if old != nil {
		old.discard()
		m.logger.Debug("insight session replaced",
			zap.Int64("previous_customer_id", old.CustomerID()),
			zap.Int64("customer_id", customer.ID),
		)
	}

	m.startInteractions(session)
	return session
}

// SessionFor returns the live session when it is scoped to the given
// customer
func (m *Manager) SessionFor(customerID int64) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session != nil && m.session.CustomerID() == customerID {
		return m.session, true
	}
	return nil, false
}

// RefreshInteractions re-fetches the interaction history, used after a new
// interaction is recorded. Returns false while a fetch is already pending.
func (m *Manager) RefreshInteractions(session *Session) bool {
	return m.startInteractions(session)
}

func (m *Manager) startInteractions(session *Session) bool {
	customerID := session.CustomerID()
	return session.interactions.Start(context.Background(), func(ctx context.Context) ([]store.Interaction, error) {
		ctx, cancel := context.WithTimeout(ctx, m.aiTimeout)
		defer cancel()

		interactions, err := m.repo.ListInteractions(ctx, customerID)
		if err != nil {
			m.logger.Error("interaction fetch failed",
				zap.Int64("customer_id", customerID),
				zap.Error(err),
			)
			return nil, err
		}
		return interactions, nil
	})
}

// RequestAnalysis starts an AI analysis for the session's customer. Returns
// false when one is already in flight.
func (m *Manager) RequestAnalysis(session *Session, customer *store.Customer) bool {
	req := analysisRequest(customer)
	return session.analysis.Start(context.Background(), func(ctx context.Context) (normalize.AnalysisView, error) {
		ctx, cancel := context.WithTimeout(ctx, m.aiTimeout)
		defer cancel()

		start := time.Now()
		if err := m.loadInteractionContext(ctx, customer.ID, &req.Interactions); err != nil {
			return normalize.AnalysisView{}, err
		}

		payload, err := m.ai.AnalyzeCustomer(ctx, req)
		metrics.RecordRequest("/api/customers/:id/analyze", err == nil, time.Since(start))
		if err != nil {
			m.logger.Error("AI analysis failed",
				zap.Int64("customer_id", customer.ID),
				zap.Error(err),
			)
			return normalize.AnalysisView{}, err
		}
		return normalize.Analysis(payload), nil
	})
}

// RequestRecommendation starts a next-best-action request. On success the
// normalized recommendation is also persisted to history, best effort.
func (m *Manager) RequestRecommendation(session *Session, customer *store.Customer) bool {
	req := recommendationRequest(customer)
	return session.recommendation.Start(context.Background(), func(ctx context.Context) (normalize.RecommendationView, error) {
		ctx, cancel := context.WithTimeout(ctx, m.aiTimeout)
		defer cancel()

		start := time.Now()
		if err := m.loadInteractionContext(ctx, customer.ID, &req.Interactions); err != nil {
			return normalize.RecommendationView{}, err
		}

		payload, err := m.ai.RecommendAction(ctx, req)
		metrics.RecordRequest("/api/customers/:id/recommendations", err == nil, time.Since(start))
		if err != nil {
			m.logger.Error("AI recommendation failed",
				zap.Int64("customer_id", customer.ID),
				zap.Error(err),
			)
			return normalize.RecommendationView{}, err
		}
		view := normalize.Recommendation(payload)

		record := &store.Recommendation{
			CustomerID:     customer.ID,
			Recommendation: view.Recommendation,
			Reasoning:      view.Reasoning,
			Priority:       view.Priority,
		}
		if err := m.repo.SaveRecommendation(ctx, record); err != nil {
			m.logger.Warn("failed to persist recommendation",
				zap.Int64("customer_id", customer.ID),
				zap.Error(err),
			)
		}
		return view, nil
	})
}

// loadInteractionContext fills the prompt context with the customer's
// recorded interactions
func (m *Manager) loadInteractionContext(ctx context.Context, customerID int64, out *[]ai.InteractionSummary) error {
	interactions, err := m.repo.ListInteractions(ctx, customerID)
	if err != nil {
		m.logger.Error("interaction context fetch failed",
			zap.Int64("customer_id", customerID),
			zap.Error(err),
		)
		return err
	}
	summaries := make([]ai.InteractionSummary, 0, len(interactions))
	for _, interaction := range interactions {
		summaries = append(summaries, ai.InteractionSummary{
			Type:    interaction.InteractionType,
			Summary: interaction.Summary,
		})
	}
	*out = summaries
	return nil
}

func analysisRequest(customer *store.Customer) *ai.AnalysisRequest {
	return &ai.AnalysisRequest{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		AccountType:  customer.AccountType,
		Balance:      customer.Balance,
	}
}

func recommendationRequest(customer *store.Customer) *ai.RecommendationRequest {
	return &ai.RecommendationRequest{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		AccountType:  customer.AccountType,
		Balance:      customer.Balance,
	}
}
