package normalize

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestAnalysisUnwrapsAiAnalysis(t *testing.T) {
	inner := map[string]interface{}{"summary": "stable customer"}

	wrapped := Analysis(map[string]interface{}{"ai_analysis": inner})
	bare := Analysis(inner)

	if !reflect.DeepEqual(wrapped, bare) {
		t.Errorf("wrapped and bare payloads should normalize identically: %+v vs %+v", wrapped, bare)
	}
	if wrapped.Summary != "stable customer" {
		t.Errorf("expected summary 'stable customer', got %q", wrapped.Summary)
	}
}

func TestAnalysisUnwrapsAnalysisKey(t *testing.T) {
	view := Analysis(map[string]interface{}{
		"analysis": map[string]interface{}{"risk_assessment": "low exposure"},
	})
	if view.RiskAssessment != "low exposure" {
		t.Errorf("expected risk assessment 'low exposure', got %q", view.RiskAssessment)
	}
}

func TestAnalysisPrefersAiAnalysisOverAnalysis(t *testing.T) {
	view := Analysis(map[string]interface{}{
		"ai_analysis": map[string]interface{}{"summary": "from ai_analysis"},
		"analysis":    map[string]interface{}{"summary": "from analysis"},
	})
	if view.Summary != "from ai_analysis" {
		t.Errorf("ai_analysis should win over analysis, got summary %q", view.Summary)
	}
}

func TestAnalysisParsesEmbeddedJSONRawText(t *testing.T) {
	view := Analysis(map[string]interface{}{"raw_text": `{"summary":"ok"}`})
	if view.Summary != "ok" {
		t.Errorf("expected embedded JSON to be parsed, got %+v", view)
	}
	if view.RawAnalysis != "" {
		t.Errorf("parsed raw_text should not also populate rawAnalysis, got %q", view.RawAnalysis)
	}
}

func TestAnalysisWrapsPlainRawText(t *testing.T) {
	view := Analysis(map[string]interface{}{"raw_text": "plain text"})
	if view.RawAnalysis != "plain text" {
		t.Errorf("expected rawAnalysis 'plain text', got %q", view.RawAnalysis)
	}
	if len(view.Insights) != 1 || view.Insights[0] != "plain text" {
		t.Errorf("expected insights ['plain text'], got %v", view.Insights)
	}
}

func TestAnalysisNullWrapperFallsThroughToRawText(t *testing.T) {
	// The backend's extraction-failure shape: the wrapper key is present but
	// null, and the unparsed model output sits in raw_text.
	view := Analysis(map[string]interface{}{
		"ai_analysis": nil,
		"raw_text":    "plain text",
	})
	if view.RawAnalysis != "plain text" {
		t.Errorf("expected rawAnalysis 'plain text', got %q", view.RawAnalysis)
	}
	if len(view.Insights) != 1 || view.Insights[0] != "plain text" {
		t.Errorf("expected insights ['plain text'], got %v", view.Insights)
	}
	if view.RawDump != "" {
		t.Errorf("null wrapper should not reach the dump fallback, got %q", view.RawDump)
	}
}

func TestAnalysisNullAnalysisKeyFallsThrough(t *testing.T) {
	view := Analysis(map[string]interface{}{
		"analysis": nil,
		"summary":  "from the payload itself",
	})
	if view.Summary != "from the payload itself" {
		t.Errorf("expected bare-object extraction, got %+v", view)
	}
}

func TestAnalysisEmptyRawTextFallsThrough(t *testing.T) {
	view := Analysis(map[string]interface{}{
		"raw_text": "",
		"summary":  "still extracted",
	})
	if view.Summary != "still extracted" {
		t.Errorf("expected empty raw_text to be skipped, got %+v", view)
	}
}

func TestAnalysisEmptyObjectFallsBackToDump(t *testing.T) {
	view := Analysis(map[string]interface{}{})
	if view.RawDump == "" {
		t.Fatal("expected dump fallback for an object with no recognizable fields")
	}
	if view.Summary != "" || len(view.Insights) != 0 {
		t.Errorf("dump fallback should not populate canonical fields: %+v", view)
	}
}

func TestAnalysisUnrecognizedShapeDumpsPayload(t *testing.T) {
	view := Analysis(map[string]interface{}{"telemetry": map[string]interface{}{"cpu": 0.4}})
	if view.RawDump == "" {
		t.Fatal("expected dump fallback")
	}
	if !strings.Contains(view.RawDump, "telemetry") {
		t.Errorf("dump should contain the original payload, got %q", view.RawDump)
	}
}

func TestAnalysisBehaviorLabels(t *testing.T) {
	view := Analysis(map[string]interface{}{
		"behavior_analysis": map[string]interface{}{
			"spending_pattern":  "conservative",
			"digital_adoption":  "high",
			"channel":           "branch",
			"engagement_level5": "medium",
		},
	})
	want := map[string]string{
		"Spending Pattern":  "conservative",
		"Digital Adoption":  "high",
		"Channel":           "branch",
		"Engagement Level5": "medium",
	}
	if !reflect.DeepEqual(view.BehaviorAnalysis, want) {
		t.Errorf("behavior labels: got %v, want %v", view.BehaviorAnalysis, want)
	}
}

func TestAnalysisTolerantFieldExtraction(t *testing.T) {
	view := Analysis(map[string]interface{}{
		"risk_score":     "not a number",
		"customer_needs": []interface{}{"loan", 42},
		"insights":       []interface{}{},
		"summary":        "kept",
	})
	if view.RiskScore != nil {
		t.Errorf("non-numeric risk score should be dropped, got %v", *view.RiskScore)
	}
	if view.CustomerNeeds != nil {
		t.Errorf("mixed-type list should be dropped whole, got %v", view.CustomerNeeds)
	}
	if view.Insights != nil {
		t.Errorf("empty list should be dropped, got %v", view.Insights)
	}
	if view.Summary != "kept" {
		t.Errorf("valid sibling fields must survive, got %q", view.Summary)
	}
}

func TestAnalysisNumericRiskScore(t *testing.T) {
	view := Analysis(map[string]interface{}{"risk_score": 7.5})
	if view.RiskScore == nil || *view.RiskScore != 7.5 {
		t.Errorf("expected risk score 7.5, got %v", view.RiskScore)
	}
}

func TestAnalysisFullShape(t *testing.T) {
	raw := `{
		"ai_analysis": {
			"behavior_analysis": {"spending_pattern": "steady"},
			"risk_score": 3,
			"customer_needs": ["mortgage advice"],
			"insights": ["responds well to email"],
			"recommendations": ["offer premium upgrade"],
			"summary": "engaged customer"
		}
	}`
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatal(err)
	}

	view := Analysis(payload)
	if view.IsEmpty() {
		t.Fatal("expected populated view")
	}
	if view.RiskScore == nil || *view.RiskScore != 3 {
		t.Errorf("risk score: got %v", view.RiskScore)
	}
	if len(view.CustomerNeeds) != 1 || view.CustomerNeeds[0] != "mortgage advice" {
		t.Errorf("customer needs: got %v", view.CustomerNeeds)
	}
	if len(view.Recommendations) != 1 {
		t.Errorf("recommendations: got %v", view.Recommendations)
	}
	if view.RawDump != "" {
		t.Errorf("populated view must not carry a dump, got %q", view.RawDump)
	}
}

func TestAnalysisStringRawTextJSONString(t *testing.T) {
	// raw_text containing a JSON-encoded string parses, then normalizes as text.
	view := Analysis(map[string]interface{}{"raw_text": `"just words"`})
	if view.RawAnalysis != "just words" {
		t.Errorf("expected rawAnalysis 'just words', got %q", view.RawAnalysis)
	}
}
