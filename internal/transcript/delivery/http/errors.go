package http

import (
	"errors"

	"github.com/amankumarsingh77/yt-transcriber/internal/transcript"
	"github.com/amankumarsingh77/yt-transcriber/pkg/httpErrors"
)

// restError attaches a status code to transcript errors. Anything else is left to httpErrors.
func restError(err error) error {
	switch {
	case errors.Is(err, transcript.ErrJobNotFound):
		return httpErrors.NewNotFoundError(transcript.ErrJobNotFound.Error())
	case errors.Is(err, transcript.ErrJobIDRequired):
		return httpErrors.NewBadRequestError(transcript.ErrJobIDRequired.Error())
	case errors.Is(err, transcript.ErrVideoURLRequired):
		return httpErrors.NewBadRequestError(transcript.ErrVideoURLRequired.Error())
	case errors.Is(err, transcript.ErrJobFinished):
		return httpErrors.NewConflictError(transcript.ErrJobFinished.Error())
	case errors.Is(err, transcript.ErrServerBusy):
		return httpErrors.NewServiceUnavailableError(transcript.ErrServerBusy.Error())
	default:
		return err
	}
}
