package transcript

import (
	"context"

	"github.com/amankumarsingh77/yt-transcriber/internal/models"
)

type UseCase interface {
	SubmitJob(ctx context.Context, input *models.SubmitInput) (*models.Job, error)
	GetJob(ctx context.Context, jobID string) (*models.Job, error)
	CancelJob(ctx context.Context, jobID string) error
}

// Dispatcher runs a job's pipeline asynchronously. The job id doubles as the cancellation handle.
// Cancel reports whether the job was known and whether it was still waiting for a worker.
type Dispatcher interface {
	Submit(jobID string, task func(ctx context.Context)) error
	Cancel(jobID string) (found, queued bool)
}
