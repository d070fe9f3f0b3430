package quiz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	DefaultLevel = 1
	DefaultCount = 6

	// DefaultHint is used for questions that arrive without one.
	DefaultHint = "Think about the concept."
	// EstimatedTimeSeconds is stamped on every live question.
	EstimatedTimeSeconds = 20
)

// MsgMissingTopic is the client-facing message for ErrMissingTopic.
const MsgMissingTopic = "Missing topic"

var ErrMissingTopic = errors.New("missing topic")

// Params are the inputs of one quiz generation request after defaults.
type Params struct {
	Topic string `binding:"required"`
	Level int    `binding:"min=1"`
	Count int    `binding:"min=1"`
}

// Validate checks p and caps Count at maxCount.
func (p Params) Validate(maxCount int) error {
	if strings.TrimSpace(p.Topic) == "" {
		return ErrMissingTopic
	}
	if err := binding.Validator.ValidateStruct(p); err != nil {
		return describe(err, maxCount)
	}
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validation engine")
	}
	if err := v.Var(p.Count, fmt.Sprintf("max=%d", maxCount)); err != nil {
		return describe(err, maxCount)
	}
	return nil
}

func describe(err error, maxCount int) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	switch verrs[0].Field() {
	case "Level":
		return errors.New("level must be a positive integer")
	default:
		return fmt.Errorf("count must be between 1 and %d", maxCount)
	}
}

// BuildPrompt renders the instruction sent to the model.
func BuildPrompt(p Params) string {
	return fmt.Sprintf(`
Generate exactly %d quiz questions for topic "%s" at Level %d.
Return ONLY valid JSON:

{
  "questions": [
    {
      "id": "q1",
      "type": "multiple_choice",
      "prompt": "What is X?",
      "options": ["A", "B", "C", "D"],
      "correctAnswer": 1,
      "explanation": "..."
    }
  ]
}
Include a mix of multiple_choice, true_false, and short_answer.
Give more and more numbers of mcqs and fewer true_false.
`, p.Count, p.Topic, p.Level)
}
