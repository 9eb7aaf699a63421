package ai

import (
	"encoding/json"
	"strings"
)

// ExtractJSON pulls a JSON object out of an AI response that may wrap it in
// markdown code fences or surround it with explanatory prose. Returns nil if
// no parseable object is found.
func ExtractJSON(text string) map[string]interface{} {
	if text == "" {
		return nil
	}

	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	candidate := cleaned
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		candidate = cleaned[start : end+1]
	}

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
		return nil
	}
	return obj
}
