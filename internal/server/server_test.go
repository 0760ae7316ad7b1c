package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svgsmith/internal/ai"
	"svgsmith/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           8000,
			Mode:           "test",
			AllowedOrigins: []string{"http://localhost:5173"},
			MaxBodyBytes:   25 << 20,
		},
		AI: config.AIConfig{Provider: "openai", VerifyModel: "gpt-4o-mini"},
		Generation: config.GenerationConfig{
			SVG:    config.CompletionOptions{MaxTokens: 2000},
			Icon:   config.CompletionOptions{MaxTokens: 1000},
			Verify: config.CompletionOptions{MaxTokens: 300},
		},
	}
}

func formRequest(t *testing.T, path string, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestServerRoutes(t *testing.T) {
	srv := NewWithCompleter(testConfig(), ai.NewMockCompleter())
	engine := srv.Engine()

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "healthy", body["status"])
		assert.NotEmpty(t, body["timestamp"])
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
		require.Equal(t, http.StatusNotFound, w.Code)
		body := decode(t, w)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Not found", body["error"])
	})

	t.Run("generate svg with mock completer", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, formRequest(t, "/api/generate/svg", map[string]string{"textPrompt": "a bright yellow sun"}))
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, true, body["success"])
		assert.Contains(t, body["svg"], "<svg")
	})

	t.Run("icon set with mock completer", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, formRequest(t, "/api/generate/icon-set", map[string]string{
			"stylePrompt":  "Minimalist outline",
			"iconConcepts": `[{"name":"home","description":"house icon"},{"name":"user","description":"person icon"}]`,
		}))
		require.Equal(t, http.StatusOK, w.Code)
		meta := decode(t, w)["metadata"].(map[string]any)
		assert.Equal(t, float64(2), meta["totalIcons"])
		assert.Equal(t, float64(2), meta["successfulIcons"])
	})

	t.Run("verify without image", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, formRequest(t, "/api/verify-generation", nil))
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "No image file provided", decode(t, w)["error"])
	})

	t.Run("cors preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/generate/svg", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestServerBodyLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Server.MaxBodyBytes = 128
	engine := NewWithCompleter(cfg, ai.NewMockCompleter()).Engine()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, formRequest(t, "/api/generate/svg", map[string]string{"textPrompt": string(bytes.Repeat([]byte("a"), 512))}))
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "File too large", body["error"])
	assert.Equal(t, "File size must be less than 20MB", body["message"])
}

func TestServerRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, Requests: 2, Window: time.Minute}
	engine := NewWithCompleter(cfg, ai.NewMockCompleter()).Engine()

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, formRequest(t, "/api/verify-generation", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, formRequest(t, "/api/verify-generation", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "Rate limit exceeded", decode(t, w)["error"])

	// 健康检查不限流
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
