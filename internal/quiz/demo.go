package quiz

import (
	_ "embed"
	"fmt"

	"studyquiz/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed demo_questions.yaml
var demoYAML []byte

var demoQuestions = mustLoadDemo(demoYAML)

func mustLoadDemo(raw []byte) []models.QuizQuestion {
	qs, err := loadDemo(raw)
	if err != nil {
		panic(err)
	}
	return qs
}

func loadDemo(raw []byte) ([]models.QuizQuestion, error) {
	var qs []models.QuizQuestion
	if err := yaml.Unmarshal(raw, &qs); err != nil {
		return nil, fmt.Errorf("failed to decode demo questions: %w", err)
	}
	if len(qs) == 0 {
		return nil, fmt.Errorf("demo question set is empty")
	}
	for i, q := range qs {
		if q.ID == "" || !q.Type.Valid() || q.Prompt == "" {
			return nil, fmt.Errorf("demo question %d is incomplete", i)
		}
	}
	return qs, nil
}

// DemoQuestions returns a fresh copy of the fixed fallback question set.
func DemoQuestions() []models.QuizQuestion {
	out := make([]models.QuizQuestion, len(demoQuestions))
	for i, q := range demoQuestions {
		if q.Options != nil {
			q.Options = append([]string(nil), q.Options...)
		}
		out[i] = q
	}
	return out
}
