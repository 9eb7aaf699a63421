package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nexabank/crm-insights/pkg/client"
)

// completionsProvider implements Provider on top of an OpenAI-compatible
// chat-completions endpoint. Groq and OpenAI share the wire format, so both
// are thin constructors over this type.
type completionsProvider struct {
	name      string
	baseURL   string
	apiKey    string
	model     string
	maxTokens int
	httpc     *client.HTTPClient
	logger    *zap.Logger
}

// NewGroqProvider creates a provider backed by the Groq API
func NewGroqProvider(apiKey, model string, maxTokens int, timeout time.Duration, logger *zap.Logger) Provider {
	return &completionsProvider{
		name:      "groq",
		baseURL:   "https://api.groq.com/openai/v1",
		apiKey:    apiKey,
		model:     model,
		maxTokens: maxTokens,
		httpc:     client.NewHTTPClient("groq", timeout),
		logger:    logger,
	}
}

// NewOpenAIProvider creates a provider backed by the OpenAI API
func NewOpenAIProvider(apiKey, model string, maxTokens int, timeout time.Duration, logger *zap.Logger) Provider {
	return &completionsProvider{
		name:      "openai",
		baseURL:   "https://api.openai.com/v1",
		apiKey:    apiKey,
		model:     model,
		maxTokens: maxTokens,
		httpc:     client.NewHTTPClient("openai", timeout),
		logger:    logger,
	}
}

func (p *completionsProvider) Name() string {
	return p.name
}

func (p *completionsProvider) IsAvailable() bool {
	return p.apiKey != ""
}

// chat sends a single-user-message completion request and returns the content
func (p *completionsProvider) chat(ctx context.Context, prompt string) (string, error) {
	if !p.IsAvailable() {
		return "", fmt.Errorf("%s provider not available", p.name)
	}

	requestBody := map[string]interface{}{
		"model": p.model,
		"messages": []map[string]interface{}{
			{"role": "user", "content": prompt},
		},
		"max_tokens": p.maxTokens,
	}

	headers := map[string]string{
		"Authorization": "Bearer " + p.apiKey,
	}

	body, err := p.httpc.PostJSON(ctx, p.baseURL+"/chat/completions", headers, requestBody)
	if err != nil {
		return "", fmt.Errorf("%s API call failed: %w", p.name, err)
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("failed to decode %s response: %w", p.name, err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices in %s response", p.name)
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

// AnalyzeCustomer asks the model for a structured customer analysis and
// returns the analyze-endpoint payload shape: the extracted JSON object under
// ai_analysis when the model produced one, otherwise the raw text under
// raw_text.
func (p *completionsProvider) AnalyzeCustomer(ctx context.Context, req *AnalysisRequest) (map[string]interface{}, error) {
	prompt := fmt.Sprintf(`Analyze this bank customer profile and interactions:

Customer: %s
Account Type: %s
Balance: $%.2f

Recent Interactions:
%s

Provide:
1. Customer behavior analysis
2. Risk assessment (0-10 scale)
3. Customer needs identification
4. Key insights

Format as JSON with keys: behavior_analysis, risk_score, customer_needs, insights`,
		req.CustomerName, req.AccountType, req.Balance, formatInteractions(req.Interactions))

	content, err := p.chat(ctx, prompt)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"customer_id":   req.CustomerID,
		"analysis_date": time.Now().UTC().Format(time.RFC3339),
	}
	if parsed := ExtractJSON(content); parsed != nil {
		payload["ai_analysis"] = parsed
	} else {
		p.logger.Debug("AI analysis was not parseable JSON, passing raw text",
			zap.String("provider", p.name),
			zap.Int64("customer_id", req.CustomerID),
		)
		payload["raw_text"] = content
	}
	return payload, nil
}

// RecommendAction asks the model for a next-best-action recommendation. A
// JSON reply is passed through; plain text is wrapped with default reasoning
// and priority.
func (p *completionsProvider) RecommendAction(ctx context.Context, req *RecommendationRequest) (map[string]interface{}, error) {
	prompt := fmt.Sprintf(`Generate next-best-action recommendations for this bank customer:

Customer: %s
Account Type: %s
Balance: $%.2f

Recent Interactions:
%s

Provide one specific actionable recommendation with reasoning.
Format as JSON with keys: recommendation, reasoning, priority (High/Medium/Low)`,
		req.CustomerName, req.AccountType, req.Balance, formatInteractions(req.Interactions))

	content, err := p.chat(ctx, prompt)
	if err != nil {
		return nil, err
	}

	if parsed := ExtractJSON(content); parsed != nil {
		if _, ok := parsed["recommendation"]; ok {
			return parsed, nil
		}
	}

	return map[string]interface{}{
		"recommendation": content,
		"reasoning":      "AI-generated based on customer profile and interaction history",
		"priority":       "Medium",
	}, nil
}

// ScoreSentiment asks the model for a bare number in [-1, 1]
func (p *completionsProvider) ScoreSentiment(ctx context.Context, text string) (float64, error) {
	prompt := fmt.Sprintf(`Analyze this customer interaction sentiment for a bank CRM.

Text: "%s"

Reply ONLY with a number between -1.0 (very negative) and 1.0 (very positive).
Format: [number]`, text)

	content, err := p.chat(ctx, prompt)
	if err != nil {
		return 0, err
	}

	score, ok := parseFirstNumber(content)
	if !ok {
		return 0, fmt.Errorf("no number in %s sentiment response", p.name)
	}
	return clampSentiment(score), nil
}

func formatInteractions(interactions []InteractionSummary) string {
	if len(interactions) == 0 {
		return "(no recorded interactions)"
	}
	lines := make([]string, 0, len(interactions))
	for _, i := range interactions {
		lines = append(lines, fmt.Sprintf("%s: %s", i.Type, i.Summary))
	}
	return strings.Join(lines, "\n")
}
