package http

import (
	"net/http"

	"github.com/amankumarsingh77/yt-transcriber/internal/models"
	"github.com/amankumarsingh77/yt-transcriber/internal/transcript"
	"github.com/amankumarsingh77/yt-transcriber/pkg/httpErrors"
	"github.com/amankumarsingh77/yt-transcriber/pkg/logger"
	"github.com/amankumarsingh77/yt-transcriber/pkg/utils"
	"github.com/labstack/echo/v4"
)

type transcriptHandler struct {
	transcriptUC transcript.UseCase
	logger       logger.Logger
}

func NewTranscriptHandler(transcriptUC transcript.UseCase, logger logger.Logger) transcript.Handler {
	return &transcriptHandler{
		transcriptUC: transcriptUC,
		logger:       logger,
	}
}

func (h *transcriptHandler) SubmitJob() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.SubmitInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": httpErrors.ErrInvalidJSON})
		}
		job, err := h.transcriptUC.SubmitJob(c.Request().Context(), input)
		if err != nil {
			h.logger.Errorf("SubmitJob - RequestID %s: %v", utils.GetRequestID(c), err)
			return c.JSON(httpErrors.ErrorResponse(restError(err)))
		}
		return c.JSON(http.StatusOK, map[string]string{"jobId": job.ID})
	}
}

func (h *transcriptHandler) GetJobStatus() echo.HandlerFunc {
	return func(c echo.Context) error {
		job, err := h.transcriptUC.GetJob(c.Request().Context(), c.QueryParam("id"))
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(restError(err)))
		}
		return c.JSON(http.StatusOK, job)
	}
}

func (h *transcriptHandler) CancelJob() echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := h.transcriptUC.CancelJob(c.Request().Context(), c.Param("job_id")); err != nil {
			return c.JSON(httpErrors.ErrorResponse(restError(err)))
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Job cancelled"})
	}
}
