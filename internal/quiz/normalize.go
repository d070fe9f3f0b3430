package quiz

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"studyquiz/internal/models"
)

// Normalize converts the "questions" array of a model payload into
// QuizQuestions for p. It returns false when the payload has no usable
// questions: the key is missing, the array is empty, or an entry is not an
// object.
func Normalize(payload map[string]interface{}, p Params) ([]models.QuizQuestion, bool) {
	raw, ok := payload["questions"].([]interface{})
	if !ok || len(raw) == 0 {
		return nil, false
	}

	out := make([]models.QuizQuestion, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, item := range raw {
		q, ok := item.(map[string]interface{})
		if !ok {
			return nil, false
		}
		nq := normalizeQuestion(q, p)
		nq.ID = uniqueID(nq.ID, fmt.Sprintf("g_%s_%d_%d", p.Topic, p.Level, i), seen)
		out = append(out, nq)
	}
	return out, true
}

func normalizeQuestion(q map[string]interface{}, p Params) models.QuizQuestion {
	nq := models.QuizQuestion{
		ID:                   strings.TrimSpace(stringValue(q["id"])),
		Prompt:               stringValue(q["prompt"]),
		Options:              options(q["options"]),
		CorrectAnswer:        answer(q["correctAnswer"]),
		Explanation:          stringValue(q["explanation"]),
		Hint:                 stringValue(q["hint"]),
		Topic:                p.Topic,
		Difficulty:           p.Level,
		EstimatedTimeSeconds: EstimatedTimeSeconds,
	}
	if nq.Hint == "" {
		nq.Hint = DefaultHint
	}
	nq.Type = questionType(stringValue(q["type"]), nq.Options, q["correctAnswer"])
	return nq
}

func uniqueID(id, generated string, seen map[string]bool) string {
	if id == "" || seen[id] {
		id = generated
	}
	for n := 2; seen[id]; n++ {
		id = fmt.Sprintf("%s_%d", generated, n)
	}
	seen[id] = true
	return id
}

// questionType keeps a known type and otherwise infers one from the shape
// of the question.
func questionType(raw string, opts []string, correct interface{}) models.QuestionType {
	t := models.QuestionType(strings.ToLower(strings.TrimSpace(raw)))
	if t.Valid() {
		return t
	}
	if len(opts) > 0 {
		return models.MultipleChoice
	}
	switch v := correct.(type) {
	case bool:
		return models.TrueFalse
	case string:
		if s := strings.ToLower(strings.TrimSpace(v)); s == "true" || s == "false" {
			return models.TrueFalse
		}
	}
	return models.ShortAnswer
}

func options(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok || len(items) == 0 {
		return nil
	}
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = stringValue(item)
	}
	return out
}

// answer keeps integral indices as ints and renders everything else as text.
func answer(v interface{}) interface{} {
	switch a := v.(type) {
	case nil:
		return nil
	case json.Number:
		if n, err := a.Int64(); err == nil {
			return int(n)
		}
		return a.String()
	case float64:
		if a == float64(int(a)) {
			return int(a)
		}
		return strconv.FormatFloat(a, 'f', -1, 64)
	case int:
		return a
	default:
		return stringValue(a)
	}
}

func stringValue(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	case bool:
		return strconv.FormatBool(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		b, err := json.Marshal(s)
		if err != nil {
			return fmt.Sprint(s)
		}
		return string(b)
	}
}
