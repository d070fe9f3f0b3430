package gemini

import (
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"strings"
)

var (
	leadingFence  = regexp.MustCompile("(?i)^```json\\s*")
	trailingFence = regexp.MustCompile("```\\s*$")
	// Greedy: from the first '{' to the last '}'.
	outerObject = regexp.MustCompile(`(?s)\{.*\}`)
)

// extractStep tries to turn model output into a JSON object.
type extractStep func(text string) (map[string]interface{}, bool)

var extractSteps = []extractStep{
	parseWhole,
	parseOuterObject,
}

// ExtractJSON recovers a JSON object from free-form model output that may be
// wrapped in a ```json fence or surrounded by prose. It returns false when no
// step produced an object; no partial reconstruction is attempted.
func ExtractJSON(text string) (map[string]interface{}, bool) {
	text = stripFences(text)
	if text == "" {
		return nil, false
	}
	for _, step := range extractSteps {
		if obj, ok := step(text); ok {
			return obj, true
		}
	}
	return nil, false
}

func stripFences(text string) string {
	text = leadingFence.ReplaceAllString(text, "")
	text = trailingFence.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

func parseWhole(text string) (map[string]interface{}, bool) {
	return decodeObject(text)
}

func parseOuterObject(text string) (map[string]interface{}, bool) {
	m := outerObject.FindString(text)
	if m == "" {
		return nil, false
	}
	return decodeObject(m)
}

// decodeObject accepts exactly one JSON object and keeps numbers as json.Number.
func decodeObject(text string) (map[string]interface{}, bool) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var obj map[string]interface{}
	if err := dec.Decode(&obj); err != nil || obj == nil {
		return nil, false
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, false
	}
	return obj, true
}
