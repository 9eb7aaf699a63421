package insight

import (
	"sync"

	"github.com/nexabank/crm-insights/internal/normalize"
	"github.com/nexabank/crm-insights/internal/store"
)

// Fixed user-facing failure messages. Raw errors go to the log, not the view.
const (
	interactionsFailureMsg   = "Failed to load interactions. Please try again."
	analysisFailureMsg       = "Error generating AI analysis. Please try again."
	recommendationFailureMsg = "Error generating recommendation. Please try again."
)

// SessionSnapshot is the full insight state for one customer, as sent to the
// dashboard.
type SessionSnapshot struct {
	CustomerID     int64                                  `json:"customer_id"`
	Interactions   SlotView[[]store.Interaction]          `json:"interactions"`
	Analysis       SlotView[normalize.AnalysisView]       `json:"analysis"`
	Recommendation SlotView[normalize.RecommendationView] `json:"recommendation"`
}

// Session binds three slots to one customer. A session is created with all
// slots idle and is replaced wholesale when the selected customer changes;
// nothing carries over between sessions.
type Session struct {
	customerID int64

	interactions   *Slot[[]store.Interaction]
	analysis       *Slot[normalize.AnalysisView]
	recommendation *Slot[normalize.RecommendationView]

	mu          sync.Mutex
	subscribers map[chan SessionSnapshot]struct{}
}

// NewSession creates a session for one customer with all slots idle
func NewSession(customerID int64) *Session {
	s := &Session{
		customerID:  customerID,
		subscribers: make(map[chan SessionSnapshot]struct{}),
	}
	s.interactions = NewSlot[[]store.Interaction](interactionsFailureMsg, s.broadcast)
	s.analysis = NewSlot[normalize.AnalysisView](analysisFailureMsg, s.broadcast)
	s.recommendation = NewSlot[normalize.RecommendationView](recommendationFailureMsg, s.broadcast)
	return s
}

// CustomerID returns the subject this session is scoped to
func (s *Session) CustomerID() int64 {
	return s.customerID
}

// Snapshot returns the current state of all three slots
func (s *Session) Snapshot() SessionSnapshot {
	return SessionSnapshot{
		CustomerID:     s.customerID,
		Interactions:   s.interactions.Snapshot(),
		Analysis:       s.analysis.Snapshot(),
		Recommendation: s.recommendation.Snapshot(),
	}
}

// discard invalidates all in-flight work. Called when the session is
// replaced, so a slow response for this customer can never reach the next
// one's view.
func (s *Session) discard() {
	s.interactions.Reset()
	s.analysis.Reset()
	s.recommendation.Reset()

	s.mu.Lock()
	for ch := range s.subscribers {
		close(ch)
	}
	s.subscribers = make(map[chan SessionSnapshot]struct{})
	s.mu.Unlock()
}

// Subscribe registers a listener for state transitions. The returned cancel
// function must be called when the listener goes away. The channel is closed
// when the session is discarded.
func (s *Session) Subscribe() (<-chan SessionSnapshot, func()) {
	ch := make(chan SessionSnapshot, 8)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// broadcast pushes the current snapshot to every subscriber. Slow consumers
// are skipped rather than blocking slot transitions.
func (s *Session) broadcast() {
	snapshot := s.Snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subscribers {
		select {
		case ch <- snapshot:
		default:
		}
	}
}
