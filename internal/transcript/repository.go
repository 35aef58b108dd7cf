package transcript

import (
	"context"
	"fmt"

	"github.com/amankumarsingh77/yt-transcriber/internal/models"
)

// Repository is the job registry. Update on an unknown id is a silent no-op.
type Repository interface {
	Create(ctx context.Context) (*models.Job, error)
	Update(ctx context.Context, jobID string, update models.JobUpdate) error
	Get(ctx context.Context, jobID string) (*models.Job, error)
}

type ArchiveRepository interface {
	PutTranscript(ctx context.Context, key, transcript string) error
	PresignTranscript(ctx context.Context, key string) (string, error)
}

// TranscriptKey is the object key of a job's archived transcript.
func TranscriptKey(videoID, jobID string) string {
	return fmt.Sprintf("transcripts/%s/%s.txt", videoID, jobID)
}
