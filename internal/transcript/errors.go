package transcript

import "errors"

var (
	ErrJobNotFound         = errors.New("Job not found")
	ErrJobIDRequired       = errors.New("Job ID is required")
	ErrVideoURLRequired    = errors.New("Video URL is required")
	ErrInvalidURL          = errors.New("Invalid YouTube URL")
	ErrCaptionsUnavailable = errors.New("captions unavailable")
	ErrSpeechNotConfigured = errors.New("Captions unavailable and speech-to-text is not configured (GROQ_API_KEY missing)")
	ErrJobFinished         = errors.New("Job already finished")
	ErrServerBusy          = errors.New("Server is busy, try again later")
)
