package http

import (
	"errors"

	"github.com/amankumarsingh77/yt-transcriber/internal/groq"
	"github.com/amankumarsingh77/yt-transcriber/internal/insights"
	"github.com/amankumarsingh77/yt-transcriber/pkg/httpErrors"
)

func restError(err error) error {
	var completionErr *groq.CompletionError
	switch {
	case errors.Is(err, insights.ErrTextRequired), errors.Is(err, insights.ErrQuestionRequired):
		return httpErrors.NewBadRequestError(err.Error())
	case errors.Is(err, insights.ErrCompletionNotConfigured):
		return httpErrors.NewServiceUnavailableError(insights.ErrCompletionNotConfigured.Error())
	case errors.As(err, &completionErr):
		return httpErrors.NewBadGatewayError(completionErr.Error())
	default:
		return err
	}
}
