package transcript

import (
	"context"

	"github.com/amankumarsingh77/yt-transcriber/internal/models"
)

type VideoResolver interface {
	ExtractVideoID(videoURL string) (string, error)
	FetchMetadata(ctx context.Context, videoURL string) *models.VideoMetadata
}

type CaptionFetcher interface {
	Fetch(ctx context.Context, videoID string) (string, error)
}

// DownloadProgress is called with bytes written so far and the stream size, zero when unknown.
type DownloadProgress func(downloaded, total int64)

type AudioAcquirer interface {
	Download(ctx context.Context, videoID string, progress DownloadProgress) (string, error)
}

type SpeechTranscriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}
