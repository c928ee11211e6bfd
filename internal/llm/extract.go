package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

var errNoJSON = errors.New("no JSON object found in model response")

// extractJSON recovers a JSON document from model text in two stages: the
// whole trimmed text, then the span from the first '{' to the last '}'.
// The second stage is a heuristic. It does not balance braces, so text with
// stray braces around or inside string literals can defeat it; such an
// attempt simply fails and is retried.
func extractJSON(text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text != "" && json.Valid([]byte(text)) {
		return []byte(text), nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return nil, errNoJSON
	}

	candidate := []byte(text[start : end+1])
	if !json.Valid(candidate) {
		return nil, errNoJSON
	}
	return candidate, nil
}
