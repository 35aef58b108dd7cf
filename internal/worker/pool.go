package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/amankumarsingh77/yt-transcriber/internal/config"
	"github.com/amankumarsingh77/yt-transcriber/pkg/logger"
	"github.com/amankumarsingh77/yt-transcriber/pkg/utils"
)

var (
	ErrQueueFull   = errors.New("job queue is full")
	ErrPoolStopped = errors.New("worker pool is stopped")
)

// ErrJobTimeout is the cancellation cause of a job that outlived its deadline.
var ErrJobTimeout = errors.New("job deadline exceeded")

// ErrJobCancelled is the cancellation cause of a job cancelled through Cancel.
var ErrJobCancelled = errors.New("job cancelled")

type Task func(ctx context.Context)

type job struct {
	id      string
	ctx     context.Context
	cancel  context.CancelCauseFunc
	task    Task
	started bool
}

// Pool runs submitted tasks on a fixed number of workers. Each task gets its own context that
// is cancelled on Cancel, on Stop, or when the job timeout elapses.
type Pool struct {
	cfg    *config.Config
	logger logger.Logger
	queue  chan *job

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	jobs    map[string]*job
	stopped bool

	canAccept func() (bool, float64, error)
}

func NewPool(cfg *config.Config, logger logger.Logger) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		cfg:    cfg,
		logger: logger,
		queue:  make(chan *job, cfg.Worker.QueueSize),
		ctx:    ctx,
		cancel: cancel,
		jobs:   make(map[string]*job),
		canAccept: func() (bool, float64, error) {
			return utils.CheckCPUUsage(cfg.Worker.MaxCPUUsage)
		},
	}
}

func (p *Pool) Start() {
	p.logger.Infof("Starting worker pool: %d workers, queue size %d", p.cfg.Worker.WorkerCount, p.cfg.Worker.QueueSize)
	for i := 0; i < p.cfg.Worker.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// Submit queues task under jobID without blocking.
func (p *Pool) Submit(jobID string, task func(ctx context.Context)) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return ErrPoolStopped
	}

	ctx, cancel := context.WithCancelCause(p.ctx)
	j := &job{id: jobID, ctx: ctx, cancel: cancel, task: task}
	select {
	case p.queue <- j:
		p.jobs[jobID] = j
		return nil
	default:
		cancel(ErrQueueFull)
		return ErrQueueFull
	}
}

// Cancel cancels a queued or running job. found is false when the pool does not know the job,
// queued is true when no worker has picked it up yet.
func (p *Pool) Cancel(jobID string) (found, queued bool) {
	p.mu.Lock()
	j, ok := p.jobs[jobID]
	if ok {
		queued = !j.started
	}
	p.mu.Unlock()
	if !ok {
		return false, false
	}
	j.cancel(ErrJobCancelled)
	return true, queued
}

// Stop cancels every job, waits for the workers to return and gives up when ctx is done.
func (p *Pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.stopped {
		p.stopped = true
		p.cancel()
		close(p.queue)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for j := range p.queue {
		p.run(j)
	}
}

func (p *Pool) run(j *job) {
	defer func() {
		p.mu.Lock()
		delete(p.jobs, j.id)
		p.mu.Unlock()
		j.cancel(nil)
	}()

	p.mu.Lock()
	j.started = true
	p.mu.Unlock()

	ctx, cancel := context.WithTimeoutCause(j.ctx, p.cfg.Worker.JobTimeout(), ErrJobTimeout)
	defer cancel()
	p.waitForCPU(ctx)
	j.task(ctx)
}

// waitForCPU holds the worker while CPU usage is above the configured ceiling.
func (p *Pool) waitForCPU(ctx context.Context) {
	interval := time.Duration(p.cfg.Worker.CPUCheckIntervalMs) * time.Millisecond
	for {
		ok, usage, err := p.canAccept()
		if err != nil {
			p.logger.Warnf("waitForCPU - CPU usage check error: %v", err)
			return
		}
		if ok {
			return
		}
		p.logger.Infof("CPU usage is high: %.1f%%, delaying next job", usage)
		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}
	}
}
