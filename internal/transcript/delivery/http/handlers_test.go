package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/amankumarsingh77/yt-transcriber/internal/models"
	"github.com/amankumarsingh77/yt-transcriber/internal/transcript"
	"github.com/amankumarsingh77/yt-transcriber/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUseCase struct {
	submitErr error
	jobs      map[string]*models.Job
	cancelErr error
	cancelled string
}

func (f *fakeUseCase) SubmitJob(ctx context.Context, input *models.SubmitInput) (*models.Job, error) {
	if input.VideoURL == "" {
		return nil, transcript.ErrVideoURLRequired
	}
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &models.Job{ID: "job-1", Status: models.JobStatusPending}, nil
}

func (f *fakeUseCase) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	if jobID == "" {
		return nil, transcript.ErrJobIDRequired
	}
	job, ok := f.jobs[jobID]
	if !ok {
		return nil, transcript.ErrJobNotFound
	}
	return job, nil
}

func (f *fakeUseCase) CancelJob(ctx context.Context, jobID string) error {
	f.cancelled = jobID
	return f.cancelErr
}

func newTestServer(uc transcript.UseCase) *echo.Echo {
	e := echo.New()
	MapTranscriptRoutes(e.Group("/api/v1/transcript"), NewTranscriptHandler(uc, logger.NewNopLogger()))
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSubmitJob(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
		wantBody string
	}{
		{"accepted", `{"videoUrl":"https://youtu.be/dQw4w9WgXcQ"}`, nil, http.StatusOK, `{"jobId":"job-1"}`},
		{"missing url", `{}`, nil, http.StatusBadRequest, `{"error":"Video URL is required"}`},
		{"malformed json", `{"videoUrl":`, nil, http.StatusBadRequest, `{"error":"Invalid request payload"}`},
		{"busy", `{"videoUrl":"https://youtu.be/dQw4w9WgXcQ"}`, transcript.ErrServerBusy, http.StatusServiceUnavailable, `{"error":"Server is busy, try again later"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(newTestServer(&fakeUseCase{submitErr: tt.err}), http.MethodPost, "/api/v1/transcript", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestGetJobStatus(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{jobs: map[string]*models.Job{
		"done": {
			ID:       "done",
			Status:   models.JobStatusCompleted,
			Progress: 100,
			Message:  "Completed using captions",
			Result: &models.TranscriptResult{
				Transcript: "hello",
				Method:     models.MethodCaptions,
				Metadata:   &models.VideoMetadata{Title: "T", Channel: "C", Duration: "60", ThumbnailURL: "u"},
			},
			CreatedAt: created,
		},
	}}
	e := newTestServer(uc)

	rec := do(e, http.MethodGet, "/api/v1/transcript/status?id=done", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"id":"done","status":"completed","progress":100,"message":"Completed using captions",
		"result":{"transcript":"hello","method":"captions",
			"metadata":{"title":"T","channel":"C","duration":"60","thumbnailUrl":"u"}},
		"createdAt":"2024-05-01T12:00:00Z"
	}`, rec.Body.String())

	rec = do(e, http.MethodGet, "/api/v1/transcript/status", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Job ID is required"}`, rec.Body.String())

	rec = do(e, http.MethodGet, "/api/v1/transcript/status?id=nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Job not found"}`, rec.Body.String())
}

func TestCancelJob(t *testing.T) {
	uc := &fakeUseCase{}
	e := newTestServer(uc)

	rec := do(e, http.MethodDelete, "/api/v1/transcript/abc", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Job cancelled"}`, rec.Body.String())
	assert.Equal(t, "abc", uc.cancelled)

	uc.cancelErr = transcript.ErrJobFinished
	rec = do(e, http.MethodDelete, "/api/v1/transcript/abc", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"Job already finished"}`, rec.Body.String())
}
