package ai

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

// MockProvider is a mock implementation of Provider for testing
type MockProvider struct {
	name      string
	available bool
	shouldErr bool
	sentiment float64
}

func (m *MockProvider) AnalyzeCustomer(ctx context.Context, req *AnalysisRequest) (map[string]interface{}, error) {
	if m.shouldErr {
		return nil, errors.New("mock error")
	}
	return map[string]interface{}{
		"customer_id": req.CustomerID,
		"ai_analysis": map[string]interface{}{"summary": "test analysis"},
		"provider":    m.name,
	}, nil
}

func (m *MockProvider) RecommendAction(ctx context.Context, req *RecommendationRequest) (map[string]interface{}, error) {
	if m.shouldErr {
		return nil, errors.New("mock error")
	}
	return map[string]interface{}{
		"recommendation": "test recommendation",
		"reasoning":      "test reasoning",
		"priority":       "High",
		"provider":       m.name,
	}, nil
}

func (m *MockProvider) ScoreSentiment(ctx context.Context, text string) (float64, error) {
	if m.shouldErr {
		return 0, errors.New("mock error")
	}
	return m.sentiment, nil
}

func (m *MockProvider) IsAvailable() bool {
	return m.available
}

func (m *MockProvider) Name() string {
	return m.name
}

func TestManager_GetAvailableProvider(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name      string
		providers []Provider
		want      string
		wantNil   bool
	}{
		{
			name: "returns first available provider",
			providers: []Provider{
				&MockProvider{name: "provider1", available: true},
				&MockProvider{name: "provider2", available: true},
			},
			want:    "provider1",
			wantNil: false,
		},
		{
			name: "returns nil when no providers available",
			providers: []Provider{
				&MockProvider{name: "provider1", available: false},
				&MockProvider{name: "provider2", available: false},
			},
			want:    "",
			wantNil: true,
		},
		{
			name: "skips unavailable providers",
			providers: []Provider{
				&MockProvider{name: "provider1", available: false},
				&MockProvider{name: "provider2", available: true},
			},
			want:    "provider2",
			wantNil: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(tt.providers, logger)
			got := m.GetAvailableProvider()

			if tt.wantNil {
				if got != nil {
					t.Errorf("Manager.GetAvailableProvider() = %v, want nil", got)
				}
			} else {
				if got == nil {
					t.Errorf("Manager.GetAvailableProvider() = nil, want %v", tt.want)
				} else if got.Name() != tt.want {
					t.Errorf("Manager.GetAvailableProvider() = %v, want %v", got.Name(), tt.want)
				}
			}
		})
	}
}

func TestManager_AnalyzeCustomer_WithFallback(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name         string
		providers    []Provider
		wantErr      bool
		wantProvider string
	}{
		{
			name: "succeeds with first provider",
			providers: []Provider{
				&MockProvider{name: "provider1", available: true, shouldErr: false},
				&MockProvider{name: "provider2", available: true, shouldErr: false},
			},
			wantErr:      false,
			wantProvider: "provider1",
		},
		{
			name: "falls back to second provider when first fails",
			providers: []Provider{
				&MockProvider{name: "provider1", available: true, shouldErr: true},
				&MockProvider{name: "provider2", available: true, shouldErr: false},
			},
			wantErr:      false,
			wantProvider: "provider2",
		},
		{
			name: "fails when all providers fail",
			providers: []Provider{
				&MockProvider{name: "provider1", available: true, shouldErr: true},
				&MockProvider{name: "provider2", available: true, shouldErr: true},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(tt.providers, logger)
			req := &AnalysisRequest{
				CustomerID:   1,
				CustomerName: "Test Customer",
				AccountType:  "Premium",
				Balance:      1000,
			}

			resp, err := m.AnalyzeCustomer(context.Background(), req)

			if tt.wantErr {
				if err == nil {
					t.Errorf("Manager.AnalyzeCustomer() expected error, got nil")
				}
			} else {
				if err != nil {
					t.Errorf("Manager.AnalyzeCustomer() error = %v, want nil", err)
				}
				if resp == nil {
					t.Errorf("Manager.AnalyzeCustomer() response = nil, want non-nil")
				} else if resp["provider"] != tt.wantProvider {
					t.Errorf("Manager.AnalyzeCustomer() provider = %v, want %v", resp["provider"], tt.wantProvider)
				}
			}
		})
	}
}

func TestManager_RecommendAction_WithFallback(t *testing.T) {
	logger := zap.NewNop()
	m := NewManager([]Provider{
		&MockProvider{name: "provider1", available: true, shouldErr: false},
	}, logger)

	req := &RecommendationRequest{
		CustomerID:   2,
		CustomerName: "Test Customer",
		AccountType:  "Savings",
		Balance:      500,
	}

	resp, err := m.RecommendAction(context.Background(), req)
	if err != nil {
		t.Errorf("Manager.RecommendAction() error = %v, want nil", err)
	}
	if resp == nil {
		t.Fatalf("Manager.RecommendAction() response = nil, want non-nil")
	}
	if resp["recommendation"] == "" {
		t.Errorf("Manager.RecommendAction() recommendation = empty, want non-empty")
	}
}

func TestManager_ScoreSentiment_UsesProvider(t *testing.T) {
	logger := zap.NewNop()
	m := NewManager([]Provider{
		&MockProvider{name: "provider1", available: true, sentiment: 0.8},
	}, logger)

	got := m.ScoreSentiment(context.Background(), "great service")
	if got != 0.8 {
		t.Errorf("Manager.ScoreSentiment() = %v, want 0.8", got)
	}
}

func TestManager_ScoreSentiment_KeywordFallback(t *testing.T) {
	logger := zap.NewNop()
	m := NewManager([]Provider{
		&MockProvider{name: "provider1", available: true, shouldErr: true},
	}, logger)

	got := m.ScoreSentiment(context.Background(), "customer was happy and satisfied")
	if got <= 0 {
		t.Errorf("Manager.ScoreSentiment() fallback = %v, want positive", got)
	}

	got = m.ScoreSentiment(context.Background(), "customer was angry about the complaint")
	if got >= 0 {
		t.Errorf("Manager.ScoreSentiment() fallback = %v, want negative", got)
	}
}
