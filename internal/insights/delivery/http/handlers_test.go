package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amankumarsingh77/yt-transcriber/internal/groq"
	"github.com/amankumarsingh77/yt-transcriber/internal/insights"
	"github.com/amankumarsingh77/yt-transcriber/internal/insights/usecase"
	"github.com/amankumarsingh77/yt-transcriber/internal/metrics"
	"github.com/amankumarsingh77/yt-transcriber/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompletion struct {
	reply string
	err   error
}

func (s *stubCompletion) Complete(ctx context.Context, req insights.CompletionRequest) (string, error) {
	return s.reply, s.err
}

func newTestServer(completion insights.CompletionService) *echo.Echo {
	e := echo.New()
	uc := usecase.NewInsightsUseCase(completion, metrics.New(), logger.NewNopLogger())
	MapInsightsRoutes(e.Group("/api/v1"), NewInsightsHandler(uc))
	return e
}

func post(e *echo.Echo, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSummarize(t *testing.T) {
	rec := post(newTestServer(&stubCompletion{reply: "## Overview"}), "/api/v1/summarize", `{"text":"long transcript"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"summary":"## Overview"}`, rec.Body.String())

	rec = post(newTestServer(nil), "/api/v1/summarize", `{"text":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Text is required"}`, rec.Body.String())

	rec = post(newTestServer(nil), "/api/v1/summarize", `{"text":"hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Note: GROQ_API_KEY is missing. This is a simulated summary.")
}

func TestChat(t *testing.T) {
	body := `{"question":"What is it about?","transcript":"gophers","history":[{"role":"user","content":"hi"}]}`

	rec := post(newTestServer(&stubCompletion{reply: "Gophers."}), "/api/v1/chat", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"answer":"Gophers."}`, rec.Body.String())

	rec = post(newTestServer(nil), "/api/v1/chat", body)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":"GROQ_API_KEY not configured"}`, rec.Body.String())

	rec = post(newTestServer(nil), "/api/v1/chat", `{"question":"why?"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Question and transcript are required"}`, rec.Body.String())

	rec = post(newTestServer(&stubCompletion{err: &groq.CompletionError{StatusCode: 429, Body: "rate limited"}}), "/api/v1/chat", body)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"completion API error: 429 - rate limited"}`, rec.Body.String())
}
