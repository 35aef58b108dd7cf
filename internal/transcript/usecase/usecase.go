package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/amankumarsingh77/yt-transcriber/internal/config"
	"github.com/amankumarsingh77/yt-transcriber/internal/metrics"
	"github.com/amankumarsingh77/yt-transcriber/internal/models"
	"github.com/amankumarsingh77/yt-transcriber/internal/transcript"
	"github.com/amankumarsingh77/yt-transcriber/pkg/logger"
	"github.com/amankumarsingh77/yt-transcriber/pkg/utils"
)

type transcriptUC struct {
	cfg        *config.Config
	repo       transcript.Repository
	dispatcher transcript.Dispatcher
	pipeline   *Pipeline
	metrics    *metrics.Metrics
	logger     logger.Logger
}

func NewTranscriptUseCase(
	cfg *config.Config,
	repo transcript.Repository,
	dispatcher transcript.Dispatcher,
	pipeline *Pipeline,
	m *metrics.Metrics,
	log logger.Logger,
) transcript.UseCase {
	return &transcriptUC{
		cfg:        cfg,
		repo:       repo,
		dispatcher: dispatcher,
		pipeline:   pipeline,
		metrics:    m,
		logger:     log,
	}
}

// SubmitJob registers a job and hands it to the dispatcher without waiting for it to start.
func (t *transcriptUC) SubmitJob(ctx context.Context, input *models.SubmitInput) (*models.Job, error) {
	if input == nil || strings.TrimSpace(input.VideoURL) == "" {
		return nil, transcript.ErrVideoURLRequired
	}
	if err := utils.ValidateStruct(ctx, input); err != nil {
		t.logger.Errorf("SubmitJob - ValidateStruct error: %v", err)
		return nil, err
	}
	videoURL := strings.TrimSpace(input.VideoURL)

	job, err := t.repo.Create(ctx)
	if err != nil {
		t.logger.Errorf("SubmitJob - Create error: %v", err)
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	err = t.dispatcher.Submit(job.ID, func(ctx context.Context) {
		t.pipeline.Run(ctx, job.ID, videoURL)
	})
	if err != nil {
		t.metrics.JobsRejected.Add(1)
		t.logger.Errorf("SubmitJob - Submit error: %v", err)
		if uErr := t.repo.Update(context.WithoutCancel(ctx), job.ID, models.ErrorUpdate(transcript.ErrServerBusy.Error())); uErr != nil {
			t.logger.Errorf("SubmitJob - Update error: %v", uErr)
		}
		return nil, fmt.Errorf("%w: %v", transcript.ErrServerBusy, err)
	}

	t.metrics.JobsSubmitted.Add(1)
	t.logger.Infof("Job %s queued for %s", job.ID, videoURL)
	return job, nil
}

func (t *transcriptUC) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	if jobID == "" {
		return nil, transcript.ErrJobIDRequired
	}
	return t.repo.Get(ctx, jobID)
}

func (t *transcriptUC) CancelJob(ctx context.Context, jobID string) error {
	job, err := t.GetJob(ctx, jobID)
	if err != nil {
		return err
	}
	if job.Status.Terminal() {
		return transcript.ErrJobFinished
	}
	found, queued := t.dispatcher.Cancel(jobID)
	if !found {
		return transcript.ErrJobFinished
	}
	if queued {
		// no worker owns the job yet, so nothing else will report the cancellation soon
		if err = t.repo.Update(context.WithoutCancel(ctx), jobID, models.ErrorUpdate(msgCancelled)); err != nil {
			t.logger.Errorf("CancelJob - Update error: %v", err)
			return err
		}
	}
	t.logger.Infof("Job %s cancellation requested", jobID)
	return nil
}
