package http

import (
	"github.com/amankumarsingh77/yt-transcriber/internal/transcript"
	"github.com/labstack/echo/v4"
)

func MapTranscriptRoutes(group *echo.Group, h transcript.Handler) {
	group.POST("", h.SubmitJob())
	group.GET("/status", h.GetJobStatus())
	group.DELETE("/:job_id", h.CancelJob())
}
