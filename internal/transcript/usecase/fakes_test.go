package usecase

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/amankumarsingh77/yt-transcriber/internal/config"
	"github.com/amankumarsingh77/yt-transcriber/internal/metrics"
	"github.com/amankumarsingh77/yt-transcriber/internal/models"
	"github.com/amankumarsingh77/yt-transcriber/internal/transcript"
	"github.com/amankumarsingh77/yt-transcriber/internal/transcript/repository"
	"github.com/amankumarsingh77/yt-transcriber/internal/youtube"
	"github.com/amankumarsingh77/yt-transcriber/pkg/logger"
)

type fakeResolver struct {
	meta  *models.VideoMetadata
	delay time.Duration
}

func (f *fakeResolver) ExtractVideoID(videoURL string) (string, error) {
	return youtube.ExtractVideoID(videoURL)
}

func (f *fakeResolver) FetchMetadata(ctx context.Context, videoURL string) *models.VideoMetadata {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return models.PlaceholderMetadata()
		}
	}
	if f.meta == nil {
		return models.PlaceholderMetadata()
	}
	return f.meta
}

type fakeCaptions struct {
	text  string
	err   error
	panic bool
	delay time.Duration
	calls int
}

func (f *fakeCaptions) Fetch(ctx context.Context, videoID string) (string, error) {
	f.calls++
	if f.panic {
		panic("boom")
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.text, f.err
}

type fakeAudio struct {
	dir   string
	steps []int64
	total int64
	err   error
	block bool
	calls int
	path  string
}

func (f *fakeAudio) Download(ctx context.Context, videoID string, progress transcript.DownloadProgress) (string, error) {
	f.calls++
	if f.block {
		<-ctx.Done()
		return "", &youtube.DownloadError{VideoID: videoID, Err: ctx.Err()}
	}
	if f.err != nil {
		return "", f.err
	}
	for _, s := range f.steps {
		progress(s, f.total)
	}
	file, err := os.CreateTemp(f.dir, videoID+"-*.webm")
	if err != nil {
		return "", err
	}
	_ = file.Close()
	f.path = file.Name()
	return f.path, nil
}

type fakeSpeech struct {
	text  string
	err   error
	calls int
	seen  string
}

func (f *fakeSpeech) Transcribe(ctx context.Context, audioPath string) (string, error) {
	f.calls++
	f.seen = audioPath
	return f.text, f.err
}

type fakeArchive struct {
	putErr error
	puts   map[string]string
}

func (f *fakeArchive) PutTranscript(ctx context.Context, key, text string) error {
	if f.putErr != nil {
		return f.putErr
	}
	if f.puts == nil {
		f.puts = map[string]string{}
	}
	f.puts[key] = text
	return nil
}

func (f *fakeArchive) PresignTranscript(ctx context.Context, key string) (string, error) {
	return "https://s3.local/" + key + "?sig=1", nil
}

// recordingRepo keeps a snapshot after every update so tests can inspect the full history.
type recordingRepo struct {
	transcript.Repository
	mu      sync.Mutex
	history []*models.Job
}

func newRecordingRepo() *recordingRepo {
	return &recordingRepo{Repository: repository.NewMemoryRepo()}
}

func (r *recordingRepo) Update(ctx context.Context, jobID string, u models.JobUpdate) error {
	if err := r.Repository.Update(ctx, jobID, u); err != nil {
		return err
	}
	job, err := r.Repository.Get(ctx, jobID)
	if errors.Is(err, transcript.ErrJobNotFound) {
		return nil
	}
	r.mu.Lock()
	r.history = append(r.history, job)
	r.mu.Unlock()
	return nil
}

func (r *recordingRepo) progress() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, 0, len(r.history))
	for _, j := range r.history {
		out = append(out, j.Progress)
	}
	return out
}

func (r *recordingRepo) statuses() []models.JobStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.JobStatus
	for _, j := range r.history {
		if len(out) == 0 || out[len(out)-1] != j.Status {
			out = append(out, j.Status)
		}
	}
	return out
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Youtube.MetadataGraceMs = 200
	cfg.Worker.WorkerCount = 2
	cfg.Worker.QueueSize = 4
	return cfg
}

type pipelineFixture struct {
	repo     *recordingRepo
	resolver *fakeResolver
	captions *fakeCaptions
	audio    *fakeAudio
	speech   *fakeSpeech
	metrics  *metrics.Metrics
}

func newFixture(t *testing.T) *pipelineFixture {
	t.Helper()
	return &pipelineFixture{
		repo:     newRecordingRepo(),
		resolver: &fakeResolver{meta: &models.VideoMetadata{Title: "Go Talk", Channel: "GopherCon", Duration: "1800", ThumbnailURL: "https://i.ytimg.com/t.jpg"}},
		captions: &fakeCaptions{text: "hello from captions"},
		audio:    &fakeAudio{dir: t.TempDir(), steps: []int64{1 << 20, 2 << 20, 4 << 20}, total: 4 << 20},
		speech:   &fakeSpeech{text: "hello from speech"},
		metrics:  metrics.New(),
	}
}

func (f *pipelineFixture) pipeline(cfg *config.Config, withSpeech bool, archive transcript.ArchiveRepository) *Pipeline {
	collab := Collaborators{
		Resolver: f.resolver,
		Captions: f.captions,
		Audio:    f.audio,
		Archive:  archive,
	}
	if withSpeech {
		collab.Speech = f.speech
	}
	return NewPipeline(cfg, f.repo, collab, f.metrics, logger.NewNopLogger())
}
