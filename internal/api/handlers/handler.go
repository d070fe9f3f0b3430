package handlers

import (
	"context"
	"net/http"

	"studyquiz/internal/config"
	"studyquiz/internal/gemini"
	"studyquiz/internal/logger"
	"studyquiz/internal/materials"
	"studyquiz/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	// RequestIDKey is the gin context key holding the request ID.
	RequestIDKey = "requestID"
	// QuizSourceHeader tells clients whether questions are "live" or "demo".
	QuizSourceHeader = "X-Quiz-Source"
)

// QuizGenerator produces a JSON object from a prompt.
type QuizGenerator interface {
	Generate(ctx context.Context, prompt, model string) gemini.Result
}

// Handler contains the API handlers dependencies
type Handler struct {
	Config    *config.Config
	Gemini    QuizGenerator
	Materials materials.Store
	Log       *logger.Logger
}

// NewHandler creates a new Handler
func NewHandler(cfg *config.Config, gen QuizGenerator, store materials.Store, log *logger.Logger) *Handler {
	return &Handler{
		Config:    cfg,
		Gemini:    gen,
		Materials: store,
		Log:       log,
	}
}

func (h *Handler) requestLog(c *gin.Context) *logger.Logger {
	return h.Log.With("request_id", c.GetString(RequestIDKey))
}

// abortWithError writes {"error": msg} with the given status and stops the chain.
func abortWithError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{Error: msg})
}

// HandleHealth reports that the process is serving requests.
func (h *Handler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
