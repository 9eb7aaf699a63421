package insight

import (
	"context"
	"testing"
	"time"

	"github.com/nexabank/crm-insights/internal/normalize"
)

func TestSessionSnapshotStartsIdle(t *testing.T) {
	session := NewSession(7)
	snapshot := session.Snapshot()

	if snapshot.CustomerID != 7 {
		t.Errorf("customer id: got %d, want 7", snapshot.CustomerID)
	}
	for name, status := range map[string]Status{
		"interactions":   snapshot.Interactions.Status,
		"analysis":       snapshot.Analysis.Status,
		"recommendation": snapshot.Recommendation.Status,
	} {
		if status != StatusIdle {
			t.Errorf("%s slot should start idle, got %q", name, status)
		}
	}
}

func TestCustomerSwitchDiscardsLateAnalysis(t *testing.T) {
	previous := NewSession(1)
	release := make(chan struct{})

	previous.analysis.Start(context.Background(), func(ctx context.Context) (normalize.AnalysisView, error) {
		<-release
		return normalize.AnalysisView{Summary: "analysis for customer 1"}, nil
	})

	// Operator switches to customer 2 while the analysis is still in flight.
	next := NewSession(2)
	previous.discard()
	close(release)

	time.Sleep(50 * time.Millisecond)

	if view := previous.analysis.Snapshot(); view.Status != StatusIdle || view.Value != nil {
		t.Errorf("discarded session must drop the late result, got %+v", view)
	}
	if view := next.analysis.Snapshot(); view.Status != StatusIdle || view.Value != nil {
		t.Errorf("new customer's view must be untouched, got %+v", view)
	}
}

func TestSessionSlotFailuresAreIndependent(t *testing.T) {
	session := NewSession(3)

	session.analysis.Start(context.Background(), func(ctx context.Context) (normalize.AnalysisView, error) {
		return normalize.AnalysisView{}, context.DeadlineExceeded
	})
	session.recommendation.Start(context.Background(), func(ctx context.Context) (normalize.RecommendationView, error) {
		return normalize.RecommendationView{Recommendation: "call back"}, nil
	})

	waitForStatus(t, session.analysis, StatusFailed)
	view := waitForStatus(t, session.recommendation, StatusSuccess)

	if view.Value == nil || view.Value.Recommendation != "call back" {
		t.Errorf("sibling slot must be unaffected by the failure, got %+v", view)
	}
	if msg := session.analysis.Snapshot().Error; msg != analysisFailureMsg {
		t.Errorf("expected fixed analysis failure message, got %q", msg)
	}
}

func TestSessionSubscribeStreamsTransitions(t *testing.T) {
	session := NewSession(5)
	updates, cancel := session.Subscribe()
	defer cancel()

	session.analysis.Start(context.Background(), func(ctx context.Context) (normalize.AnalysisView, error) {
		return normalize.AnalysisView{Summary: "done"}, nil
	})

	sawSuccess := false
	timeout := time.After(2 * time.Second)
	for !sawSuccess {
		select {
		case snapshot := <-updates:
			if snapshot.Analysis.Status == StatusSuccess {
				sawSuccess = true
			}
		case <-timeout:
			t.Fatal("never observed the success transition")
		}
	}
}

func TestSessionDiscardClosesSubscribers(t *testing.T) {
	session := NewSession(5)
	updates, cancel := session.Subscribe()
	defer cancel()

	session.discard()

	select {
	case _, open := <-updates:
		if open {
			// Drain buffered snapshots until the close is observed.
			for range updates {
			}
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber channel was not closed on discard")
	}
}
