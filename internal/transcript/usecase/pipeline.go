package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/amankumarsingh77/yt-transcriber/internal/config"
	"github.com/amankumarsingh77/yt-transcriber/internal/metrics"
	"github.com/amankumarsingh77/yt-transcriber/internal/models"
	"github.com/amankumarsingh77/yt-transcriber/internal/transcript"
	"github.com/amankumarsingh77/yt-transcriber/internal/worker"
	"github.com/amankumarsingh77/yt-transcriber/pkg/logger"
)

const (
	// assumedAudioSize stands in for the stream size when the host does not report one.
	assumedAudioSize = 10 << 20
	archiveTimeout   = 15 * time.Second

	msgExtracting      = "Extracting video info..."
	msgCheckCaptions   = "Checking for captions..."
	msgCaptionsDone    = "Completed using captions"
	msgDownloading     = "Captions unavailable. Downloading audio..."
	msgDownloaded      = "Audio downloaded. Transcribing with AI..."
	msgTranscribedDone = "Transcription completed successfully"
	msgCancelled       = "Job cancelled"
)

// Collaborators are the external services a pipeline drives. Speech and Archive may be nil.
type Collaborators struct {
	Resolver transcript.VideoResolver
	Captions transcript.CaptionFetcher
	Audio    transcript.AudioAcquirer
	Speech   transcript.SpeechTranscriber
	Archive  transcript.ArchiveRepository
}

// Pipeline turns a video URL into a transcript: captions first, then audio download and
// speech-to-text. Every run ends with the job in a terminal state.
type Pipeline struct {
	cfg     *config.Config
	repo    transcript.Repository
	collab  Collaborators
	metrics *metrics.Metrics
	logger  logger.Logger
}

func NewPipeline(cfg *config.Config, repo transcript.Repository, collab Collaborators, m *metrics.Metrics, log logger.Logger) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		repo:    repo,
		collab:  collab,
		metrics: m,
		logger:  log,
	}
}

// transcribeFailure marks errors from the download and speech stages.
type transcribeFailure struct {
	err error
}

func (f *transcribeFailure) Error() string {
	return fmt.Sprintf("Failed to transcribe: %v. Video might be private or restricted.", f.err)
}

func (f *transcribeFailure) Unwrap() error {
	return f.err
}

func (p *Pipeline) Run(ctx context.Context, jobID, videoURL string) {
	r := &reporter{
		ctx:    context.WithoutCancel(ctx),
		repo:   p.repo,
		jobID:  jobID,
		logger: p.logger,
	}
	defer func() {
		if rec := recover(); rec != nil {
			p.logger.Errorf("Run - job %s panic: %v\n%s", jobID, rec, debug.Stack())
			r.fail(fmt.Sprintf("Critical error: %v", rec))
			p.metrics.JobsFailed.Add(1)
		}
	}()

	start := time.Now()
	err := p.execute(ctx, r, jobID, videoURL)
	if err == nil {
		p.metrics.JobsCompleted.Add(1)
		p.logger.Infof("Job %s completed in %s", jobID, time.Since(start).Round(time.Millisecond))
		return
	}

	msg := p.failureMessage(ctx, err)
	if ctx.Err() != nil {
		p.metrics.JobsCancelled.Add(1)
	} else {
		p.metrics.JobsFailed.Add(1)
	}
	p.logger.Errorf("Run - job %s failed: %v", jobID, err)
	r.fail(msg)
}

func (p *Pipeline) execute(ctx context.Context, r *reporter, jobID, videoURL string) error {
	r.status(models.JobStatusProcessing, 5, msgExtracting)
	videoID, err := p.collab.Resolver.ExtractVideoID(videoURL)
	if err != nil {
		return transcript.ErrInvalidURL
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	r.status(models.JobStatusCaptions, 10, msgCheckCaptions)
	metaCtx, cancelMeta := context.WithCancel(ctx)
	defer cancelMeta()
	metadata := p.fetchMetadata(metaCtx, videoURL)

	text, err := p.collab.Captions.Fetch(ctx, videoID)
	if err == nil && strings.TrimSpace(text) == "" {
		err = fmt.Errorf("%w: empty caption track", transcript.ErrCaptionsUnavailable)
	}
	if err == nil {
		p.metrics.CaptionHits.Add(1)
		result := p.buildResult(ctx, jobID, videoID, text, models.MethodCaptions, readyMetadata(metadata))
		r.complete(result, msgCaptionsDone)
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	p.logger.Infof("Job %s: no captions for %s: %v", jobID, videoID, err)

	if p.collab.Speech == nil {
		return transcript.ErrSpeechNotConfigured
	}
	p.metrics.SpeechFallbacks.Add(1)

	r.status(models.JobStatusDownloading, 20, msgDownloading)
	audioPath, err := p.collab.Audio.Download(ctx, videoID, r.downloadProgress)
	if err != nil {
		return &transcribeFailure{err: err}
	}
	defer p.removeAudio(audioPath)

	r.status(models.JobStatusProcessing, 50, msgDownloaded)
	text, err = p.collab.Speech.Transcribe(ctx, audioPath)
	if err != nil {
		return &transcribeFailure{err: err}
	}
	if strings.TrimSpace(text) == "" {
		return &transcribeFailure{err: errors.New("speech-to-text returned no text")}
	}

	result := p.buildResult(ctx, jobID, videoID, strings.TrimSpace(text), models.MethodSpeechToText, p.awaitMetadata(metadata))
	r.complete(result, msgTranscribedDone)
	return nil
}

func (p *Pipeline) failureMessage(ctx context.Context, err error) string {
	if ctx.Err() != nil {
		if errors.Is(context.Cause(ctx), worker.ErrJobTimeout) {
			return fmt.Sprintf("Job timed out after %s", p.cfg.Worker.JobTimeout())
		}
		return msgCancelled
	}
	var tf *transcribeFailure
	switch {
	case errors.As(err, &tf):
		return tf.Error()
	case errors.Is(err, transcript.ErrInvalidURL), errors.Is(err, transcript.ErrSpeechNotConfigured):
		return err.Error()
	default:
		return "Critical error: " + err.Error()
	}
}

// fetchMetadata starts the best-effort metadata lookup. The channel always yields one value.
func (p *Pipeline) fetchMetadata(ctx context.Context, videoURL string) <-chan *models.VideoMetadata {
	ch := make(chan *models.VideoMetadata, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				p.logger.Warnf("fetchMetadata - panic: %v", rec)
				ch <- models.PlaceholderMetadata()
			}
		}()
		meta := p.collab.Resolver.FetchMetadata(ctx, videoURL)
		if meta == nil {
			meta = models.PlaceholderMetadata()
		}
		ch <- meta
	}()
	return ch
}

// readyMetadata returns the metadata if the lookup already finished, placeholders otherwise.
func readyMetadata(ch <-chan *models.VideoMetadata) *models.VideoMetadata {
	select {
	case meta := <-ch:
		return meta
	default:
		return models.PlaceholderMetadata()
	}
}

// awaitMetadata waits at most the configured grace period once the transcript is ready.
func (p *Pipeline) awaitMetadata(ch <-chan *models.VideoMetadata) *models.VideoMetadata {
	timer := time.NewTimer(p.cfg.Youtube.MetadataGrace())
	defer timer.Stop()
	select {
	case meta := <-ch:
		return meta
	case <-timer.C:
		return models.PlaceholderMetadata()
	}
}

func (p *Pipeline) buildResult(ctx context.Context, jobID, videoID, text string, method models.TranscriptMethod, metadata *models.VideoMetadata) *models.TranscriptResult {
	result := &models.TranscriptResult{
		Transcript: text,
		Method:     method,
		Metadata:   metadata,
	}
	if p.collab.Archive != nil {
		result.DownloadURL = p.archiveTranscript(ctx, jobID, videoID, text)
	}
	return result
}

// archiveTranscript uploads the transcript and returns a presigned link, or "" on any failure.
func (p *Pipeline) archiveTranscript(ctx context.Context, jobID, videoID, text string) string {
	ctx, cancel := context.WithTimeout(ctx, archiveTimeout)
	defer cancel()

	key := transcript.TranscriptKey(videoID, jobID)
	if err := p.collab.Archive.PutTranscript(ctx, key, text); err != nil {
		p.logger.Warnf("archiveTranscript - PutTranscript error: %v", err)
		return ""
	}
	url, err := p.collab.Archive.PresignTranscript(ctx, key)
	if err != nil {
		p.logger.Warnf("archiveTranscript - PresignTranscript error: %v", err)
		return ""
	}
	return url
}

func (p *Pipeline) removeAudio(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		p.logger.Warnf("removeAudio - %s error: %v", path, err)
	}
}

// DownloadPercent maps download progress into the 20-50 band.
func DownloadPercent(downloaded, total int64) int {
	estimate := total
	if estimate <= 0 {
		estimate = downloaded + assumedAudioSize
	}
	step := int(math.Floor(float64(downloaded) / float64(estimate) * 30))
	return 20 + max(0, min(30, step))
}

// reporter writes one job's transitions to the registry and keeps progress from moving backwards.
type reporter struct {
	ctx      context.Context
	repo     transcript.Repository
	jobID    string
	logger   logger.Logger
	progress int
}

func (r *reporter) status(status models.JobStatus, progress int, message string) {
	r.update(models.StatusUpdate(status, r.clamp(progress), message))
}

func (r *reporter) downloadProgress(downloaded, total int64) {
	pct := r.clamp(DownloadPercent(downloaded, total))
	msg := fmt.Sprintf("Downloading audio... %.1fMB", float64(downloaded)/(1<<20))
	r.update(models.ProgressUpdate(pct, msg))
}

func (r *reporter) complete(result *models.TranscriptResult, message string) {
	r.progress = 100
	r.update(models.CompletedUpdate(result, message))
}

func (r *reporter) fail(cause string) {
	r.update(models.ErrorUpdate(cause))
}

func (r *reporter) clamp(progress int) int {
	if progress < r.progress {
		return r.progress
	}
	r.progress = progress
	return progress
}

func (r *reporter) update(u models.JobUpdate) {
	if err := r.repo.Update(r.ctx, r.jobID, u); err != nil {
		r.logger.Errorf("Run - job %s registry update error: %v", r.jobID, err)
	}
}
