package youtube

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/amankumarsingh77/yt-transcriber/internal/config"
	"github.com/amankumarsingh77/yt-transcriber/internal/models"
	"github.com/amankumarsingh77/yt-transcriber/internal/transcript"
	"github.com/amankumarsingh77/yt-transcriber/pkg/logger"
	"github.com/amankumarsingh77/yt-transcriber/pkg/utils"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const progressInterval = 250 * time.Millisecond

var (
	errInsufficientDisk = errors.New("insufficient disk space for audio download")
	errAudioTooLarge    = errors.New("audio stream exceeds the configured size limit")
)

type DownloadError struct {
	VideoID string
	Err     error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("audio download failed for %s: %v", e.VideoID, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

type StreamOpener interface {
	OpenAudio(ctx context.Context, videoID string) (*models.AudioStream, error)
}

type AudioAcquirer struct {
	opener       StreamOpener
	tempDir      string
	minFreeBytes uint64
	maxBytes     int64
	freeDisk     func(path string) (uint64, error)
	logger       logger.Logger
}

func NewAudioAcquirer(opener StreamOpener, cfg config.YoutubeConfig, logger logger.Logger) *AudioAcquirer {
	return &AudioAcquirer{
		opener:       opener,
		tempDir:      cfg.TempDir,
		minFreeBytes: cfg.MinFreeDiskMB << 20,
		maxBytes:     cfg.MaxAudioBytes,
		freeDisk:     utils.FreeDiskBytes,
		logger:       logger,
	}
}

// Download writes the audio stream to a new temp file and returns its path. The caller owns
// the file. On failure nothing is left behind and the error is a *DownloadError.
func (a *AudioAcquirer) Download(ctx context.Context, videoID string, progress transcript.DownloadProgress) (string, error) {
	free, err := a.checkDisk()
	if err != nil {
		return "", &DownloadError{VideoID: videoID, Err: err}
	}

	stream, err := a.opener.OpenAudio(ctx, videoID)
	if err != nil {
		return "", &DownloadError{VideoID: videoID, Err: err}
	}
	defer stream.Body.Close()

	if stream.Size > 0 {
		if a.maxBytes > 0 && stream.Size > a.maxBytes {
			return "", &DownloadError{VideoID: videoID, Err: errAudioTooLarge}
		}
		if free > 0 && uint64(stream.Size)+a.minFreeBytes > free {
			return "", &DownloadError{VideoID: videoID, Err: errInsufficientDisk}
		}
	}

	pattern := fmt.Sprintf("%s-%d-*%s", videoID, time.Now().UnixMilli(), extensionFor(stream.MimeType))
	file, err := os.CreateTemp(a.tempDir, pattern)
	if err != nil {
		return "", &DownloadError{VideoID: videoID, Err: errors.Wrap(err, "create temp file")}
	}
	path := file.Name()

	pw := &progressWriter{
		total:    stream.Size,
		limit:    a.maxBytes,
		report:   progress,
		throttle: &rate.Sometimes{Interval: progressInterval},
	}
	_, err = io.Copy(io.MultiWriter(file, pw), contextReader{ctx: ctx, r: stream.Body})
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		if rmErr := os.Remove(path); rmErr != nil {
			a.logger.Warnf("Download - remove partial file %s error: %v", path, rmErr)
		}
		return "", &DownloadError{VideoID: videoID, Err: err}
	}
	pw.flush()

	a.logger.Infof("Downloaded audio for %s: %d bytes to %s", videoID, pw.written, path)
	return path, nil
}

func (a *AudioAcquirer) checkDisk() (uint64, error) {
	if a.minFreeBytes == 0 || a.freeDisk == nil {
		return 0, nil
	}
	free, err := a.freeDisk(a.tempDir)
	if err != nil {
		a.logger.Warnf("Download - disk usage check error: %v", err)
		return 0, nil
	}
	if free < a.minFreeBytes {
		return free, errInsufficientDisk
	}
	return free, nil
}

type progressWriter struct {
	written  int64
	total    int64
	limit    int64
	report   transcript.DownloadProgress
	throttle *rate.Sometimes
}

func (p *progressWriter) Write(b []byte) (int, error) {
	p.written += int64(len(b))
	if p.limit > 0 && p.written > p.limit {
		return 0, errAudioTooLarge
	}
	if p.report != nil {
		p.throttle.Do(func() { p.report(p.written, p.total) })
	}
	return len(b), nil
}

func (p *progressWriter) flush() {
	if p.report != nil {
		p.report(p.written, p.total)
	}
}

// contextReader stops a copy once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(b []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(b)
}
