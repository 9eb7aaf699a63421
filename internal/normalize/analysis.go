// Package normalize turns the structurally inconsistent JSON an AI backend
// produces into fixed view models the dashboard can render. Normalization is
// lossy and tolerant: fields that fail their shape check are dropped, never
// surfaced as errors.
package normalize

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AnalysisView is the canonical customer analysis display model. Every field
// is optional; an absent field is simply not rendered.
type AnalysisView struct {
	BehaviorAnalysis map[string]string `json:"behaviorAnalysis,omitempty"`
	RiskScore        *float64          `json:"riskScore,omitempty"`
	RiskAssessment   string            `json:"riskAssessment,omitempty"`
	CustomerNeeds    []string          `json:"customerNeeds,omitempty"`
	Insights         []string          `json:"insights,omitempty"`
	Recommendations  []string          `json:"recommendations,omitempty"`
	RawAnalysis      string            `json:"rawAnalysis,omitempty"`
	Summary          string            `json:"summary,omitempty"`

	// RawDump carries a pretty-printed copy of the payload when no canonical
	// field could be extracted, so the panel never renders empty.
	RawDump string `json:"rawDump,omitempty"`
}

// IsEmpty reports whether no canonical field was populated
func (v AnalysisView) IsEmpty() bool {
	return len(v.BehaviorAnalysis) == 0 &&
		v.RiskScore == nil &&
		v.RiskAssessment == "" &&
		len(v.CustomerNeeds) == 0 &&
		len(v.Insights) == 0 &&
		len(v.Recommendations) == 0 &&
		v.RawAnalysis == "" &&
		v.Summary == "" &&
		v.RawDump == ""
}

// Analysis normalizes an AI analysis payload of any of the known shapes.
// Wrapper keys are unwrapped in priority order, first match wins:
//
//  1. ai_analysis   - recurse into the wrapped value
//  2. analysis      - recurse into the wrapped value
//  3. raw_text      - parse as JSON and recurse, or wrap the text as-is
//  4. otherwise the payload itself is the analysis object
//
// The backend emits wrapper keys even when it has nothing to put in them, so
// a null wrapper value (or an empty raw_text) counts as absent and falls
// through to the next rule. Never fails on well-formed JSON.
func Analysis(raw map[string]interface{}) AnalysisView {
	return analysisValue(raw)
}

func analysisValue(value interface{}) AnalysisView {
	switch v := value.(type) {
	case string:
		return textAnalysis(v)
	case map[string]interface{}:
		if inner, ok := v["ai_analysis"]; ok && inner != nil {
			return analysisValue(inner)
		}
		if inner, ok := v["analysis"]; ok && inner != nil {
			return analysisValue(inner)
		}
		if rawText, ok := v["raw_text"].(string); ok && rawText != "" {
			var parsed interface{}
			if err := json.Unmarshal([]byte(rawText), &parsed); err == nil {
				return analysisValue(parsed)
			}
			return textAnalysis(rawText)
		}
		return extractAnalysis(v)
	default:
		return dumpAnalysis(value)
	}
}

// textAnalysis wraps free text the model produced instead of JSON
func textAnalysis(text string) AnalysisView {
	return AnalysisView{
		RawAnalysis: text,
		Insights:    []string{text},
	}
}

// extractAnalysis pulls each canonical field out of the selected object
// independently. A field that fails its type check is omitted, not an error.
func extractAnalysis(obj map[string]interface{}) AnalysisView {
	var view AnalysisView

	if behavior, ok := obj["behavior_analysis"].(map[string]interface{}); ok && len(behavior) > 0 {
		labeled := make(map[string]string, len(behavior))
		for key, value := range behavior {
			labeled[displayLabel(key)] = stringify(value)
		}
		view.BehaviorAnalysis = labeled
	}
	if score, ok := asNumber(obj["risk_score"]); ok {
		view.RiskScore = &score
	}
	view.RiskAssessment = asString(obj["risk_assessment"])
	view.CustomerNeeds = asStringList(obj["customer_needs"])
	view.Insights = asStringList(obj["insights"])
	view.Recommendations = asStringList(obj["recommendations"])
	view.RawAnalysis = asString(obj["raw_analysis"])
	view.Summary = asString(obj["summary"])

	if view.IsEmpty() {
		return dumpAnalysis(obj)
	}
	return view
}

// dumpAnalysis is the terminal fallback: no recognized shape, not a string,
// so show the payload itself rather than an empty panel.
func dumpAnalysis(value interface{}) AnalysisView {
	dump, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		dump = []byte(fmt.Sprintf("%v", value))
	}
	return AnalysisView{RawDump: string(dump)}
}

// displayLabel turns a snake_case key into a display heading,
// "spending_pattern" becomes "Spending Pattern".
func displayLabel(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	case float64:
		return strings.TrimSuffix(strings.TrimSuffix(fmt.Sprintf("%.2f", v), "0"), ".0")
	case bool:
		return fmt.Sprintf("%t", v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	}
}

func asString(value interface{}) string {
	if s, ok := value.(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return ""
}

func asNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// asStringList accepts only a non-empty sequence of strings; anything else,
// including a mixed-type list, is dropped whole.
func asStringList(value interface{}) []string {
	items, ok := value.([]interface{})
	if !ok || len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil
		}
		out = append(out, s)
	}
	return out
}
