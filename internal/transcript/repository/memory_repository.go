package repository

import (
	"context"
	"sync"
	"time"

	"github.com/amankumarsingh77/yt-transcriber/internal/models"
	"github.com/amankumarsingh77/yt-transcriber/internal/transcript"
	"github.com/google/uuid"
)

type memoryRepo struct {
	mu   sync.RWMutex
	jobs map[string]*models.Job
}

// NewMemoryRepo returns a process-local registry. Records are never evicted.
func NewMemoryRepo() transcript.Repository {
	return &memoryRepo{
		jobs: make(map[string]*models.Job),
	}
}

func (r *memoryRepo) Create(ctx context.Context) (*models.Job, error) {
	job := newJob()

	r.mu.Lock()
	r.jobs[job.ID] = job
	r.mu.Unlock()

	return job.Clone(), nil
}

func (r *memoryRepo) Update(ctx context.Context, jobID string, update models.JobUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[jobID]
	if !ok {
		return nil
	}
	update.Apply(job)
	return nil
}

func (r *memoryRepo) Get(ctx context.Context, jobID string) (*models.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[jobID]
	if !ok {
		return nil, transcript.ErrJobNotFound
	}
	return job.Clone(), nil
}

func newJob() *models.Job {
	return &models.Job{
		ID:        uuid.NewString(),
		Status:    models.JobStatusPending,
		Progress:  0,
		Message:   "Initializing...",
		CreatedAt: time.Now().UTC(),
	}
}
