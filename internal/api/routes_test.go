package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"studyquiz/internal/api/handlers"
	"studyquiz/internal/config"
	"studyquiz/internal/gemini"
	"studyquiz/internal/logger"
	"studyquiz/internal/materials"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()
	gen := gemini.NewClient(t.Context(), "", log)
	h := handlers.NewHandler(cfg, gen, materials.NewDirStore(t.TempDir()), log)
	return NewRouter(cfg, h, log)
}

func TestRouterServesDemoQuizWithoutAPIKey(t *testing.T) {
	r := newRouter(t, &config.Config{GeminiModel: config.DefaultModel, MaxQuestionCount: 50})

	req := httptest.NewRequest(http.MethodPost, "/api/quiz", strings.NewReader(`{"topic":"stats","level":2,"count":4}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "demo", w.Header().Get(handlers.QuizSourceHeader))
	assert.Contains(t, w.Body.String(), `"id":"demo_1"`)
	assert.Contains(t, w.Body.String(), `"id":"demo_2"`)
}

func TestRouterRoutes(t *testing.T) {
	r := newRouter(t, &config.Config{MaxQuestionCount: 50})

	for _, tc := range []struct {
		method, target string
		status         int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/api/materials/list", http.StatusOK},
		{http.MethodGet, "/api/materials/ghost/1/download", http.StatusNotFound},
		{http.MethodGet, "/api/materials/ghost/0/download", http.StatusBadRequest},
		{http.MethodGet, "/api/unknown", http.StatusNotFound},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.target, nil))
		assert.Equal(t, tc.status, w.Code, tc.target)
	}
}

func TestRequestID(t *testing.T) {
	r := newRouter(t, &config.Config{MaxQuestionCount: 50})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Len(t, w.Header().Get(requestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func TestCORS(t *testing.T) {
	t.Run("all origins by default", func(t *testing.T) {
		r := newRouter(t, &config.Config{MaxQuestionCount: 50})

		req := httptest.NewRequest(http.MethodGet, "/api/materials/list", nil)
		req.Header.Set("Origin", "http://anywhere.test")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("configured origins", func(t *testing.T) {
		r := newRouter(t, &config.Config{MaxQuestionCount: 50, AllowedOrigins: []string{"http://localhost:5173"}})

		req := httptest.NewRequest(http.MethodOptions, "/api/quiz", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

		req = httptest.NewRequest(http.MethodGet, "/api/materials/list", nil)
		req.Header.Set("Origin", "http://evil.test")
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
