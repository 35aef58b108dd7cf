package http

import (
	"github.com/amankumarsingh77/yt-transcriber/internal/insights"
	"github.com/labstack/echo/v4"
)

func MapInsightsRoutes(group *echo.Group, h insights.Handler) {
	group.POST("/summarize", h.Summarize())
	group.POST("/chat", h.Chat())
}
