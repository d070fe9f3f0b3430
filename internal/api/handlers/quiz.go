package handlers

import (
	"errors"
	"net/http"
	"strings"

	"studyquiz/internal/models"
	"studyquiz/internal/quiz"

	"github.com/gin-gonic/gin"
)

// HandleGenerateQuiz asks the model for questions on a topic. Any upstream
// failure is answered with the demo question set and a 200; only the
// X-Quiz-Source header and the logs tell the two apart.
func (h *Handler) HandleGenerateQuiz(c *gin.Context) {
	log := h.requestLog(c)

	var req models.QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("invalid quiz request body", "error", err)
		abortWithError(c, http.StatusBadRequest, "Invalid JSON")
		return
	}

	params := quiz.Params{Level: quiz.DefaultLevel, Count: quiz.DefaultCount}
	if req.Topic != nil {
		params.Topic = strings.TrimSpace(*req.Topic)
	}
	if req.Level != nil {
		params.Level = int(*req.Level)
	}
	if req.Count != nil {
		params.Count = int(*req.Count)
	}
	if err := params.Validate(h.Config.MaxQuestionCount); err != nil {
		log.Warn("rejected quiz request", "error", err, "topic", params.Topic, "level", params.Level, "count", params.Count)
		msg := err.Error()
		if errors.Is(err, quiz.ErrMissingTopic) {
			msg = quiz.MsgMissingTopic
		}
		abortWithError(c, http.StatusBadRequest, msg)
		return
	}

	log = log.With("topic", params.Topic, "level", params.Level, "count", params.Count)
	res := h.Gemini.Generate(c.Request.Context(), quiz.BuildPrompt(params), h.Config.GeminiModel)
	if res.OK() {
		if questions, ok := quiz.Normalize(res.Payload, params); ok {
			log.Info("serving live quiz", "questions", len(questions))
			c.Header(QuizSourceHeader, "live")
			c.JSON(http.StatusOK, models.QuizResponse{Questions: questions})
			return
		}
		log.Warn("gemini result has no usable questions; serving demo quiz")
	} else {
		log.Warn("gemini generation failed; serving demo quiz", "error", res.Err)
	}

	c.Header(QuizSourceHeader, "demo")
	c.JSON(http.StatusOK, models.QuizResponse{Questions: quiz.DemoQuestions()})
}
