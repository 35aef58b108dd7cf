package http

import (
	"net/http"

	"github.com/amankumarsingh77/yt-transcriber/internal/insights"
	"github.com/amankumarsingh77/yt-transcriber/internal/models"
	"github.com/amankumarsingh77/yt-transcriber/pkg/httpErrors"
	"github.com/labstack/echo/v4"
)

type insightsHandler struct {
	insightsUC insights.UseCase
}

func NewInsightsHandler(insightsUC insights.UseCase) insights.Handler {
	return &insightsHandler{
		insightsUC: insightsUC,
	}
}

func (h *insightsHandler) Summarize() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.SummarizeInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": httpErrors.ErrInvalidJSON})
		}
		summary, err := h.insightsUC.Summarize(c.Request().Context(), input)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(restError(err)))
		}
		return c.JSON(http.StatusOK, summary)
	}
}

func (h *insightsHandler) Chat() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.ChatInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": httpErrors.ErrInvalidJSON})
		}
		answer, err := h.insightsUC.Chat(c.Request().Context(), input)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(restError(err)))
		}
		return c.JSON(http.StatusOK, answer)
	}
}
