package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// QuestionType enumerates the question formats a quiz may contain.
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	ShortAnswer    QuestionType = "short_answer"
)

// Valid reports whether t is one of the known question types.
func (t QuestionType) Valid() bool {
	switch t {
	case MultipleChoice, TrueFalse, ShortAnswer:
		return true
	}
	return false
}

// QuizQuestion is a single question as sent to the frontend.
// CorrectAnswer holds either an option index (int) or an answer string.
type QuizQuestion struct {
	ID                   string       `json:"id" yaml:"id"`
	Type                 QuestionType `json:"type" yaml:"type"`
	Prompt               string       `json:"prompt" yaml:"prompt"`
	Options              []string     `json:"options,omitempty" yaml:"options,omitempty"`
	CorrectAnswer        interface{}  `json:"correctAnswer" yaml:"correctAnswer"`
	Explanation          string       `json:"explanation" yaml:"explanation"`
	Hint                 string       `json:"hint,omitempty" yaml:"hint,omitempty"`
	Topic                string       `json:"topic,omitempty" yaml:"topic,omitempty"`
	Difficulty           int          `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	EstimatedTimeSeconds int          `json:"estimatedTimeSeconds,omitempty" yaml:"estimatedTimeSeconds,omitempty"`
}

// MaterialEntry describes one study PDF named <topic>_<level>.pdf.
type MaterialEntry struct {
	Topic    string `json:"topic"`
	Level    int    `json:"level"`
	Filename string `json:"filename"`
}

// QuizRequest is the body accepted by POST /api/quiz.
type QuizRequest struct {
	Topic *string  `json:"topic"`
	Level *FlexInt `json:"level"`
	Count *FlexInt `json:"count"`
}

// QuizResponse wraps the generated (or demo) questions.
type QuizResponse struct {
	Questions []QuizQuestion `json:"questions"`
}

// MaterialListResponse is returned by GET /api/materials/list.
type MaterialListResponse struct {
	Materials []MaterialEntry `json:"materials"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// FlexInt accepts a JSON integer or a string holding one, e.g. 3 or "3".
// Integral JSON numbers such as 3.0 are accepted too.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler. null leaves f untouched.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}
	if n, err := strconv.Atoi(raw); err == nil {
		*f = FlexInt(n)
		return nil
	}
	if len(data) > 0 && data[0] != '"' {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v == math.Trunc(v) && v >= math.MinInt32 && v <= math.MaxInt32 {
			*f = FlexInt(v)
			return nil
		}
	}
	return fmt.Errorf("expected an integer, got %s", data)
}
