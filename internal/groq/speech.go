package groq

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/amankumarsingh77/yt-transcriber/internal/config"
	"github.com/amankumarsingh77/yt-transcriber/pkg/logger"
	openai "github.com/sashabaranov/go-openai"
)

type commandRunner func(ctx context.Context, name string, args ...string) error

func execRunner(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s failed: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

type SpeechClient struct {
	client         *openai.Client
	model          string
	maxUploadBytes int64
	chunkSeconds   int
	ffmpegPath     string
	run            commandRunner
	logger         logger.Logger
}

func NewSpeechClient(client *openai.Client, cfg config.GroqConfig, logger logger.Logger) *SpeechClient {
	return &SpeechClient{
		client:         client,
		model:          cfg.SpeechModel,
		maxUploadBytes: cfg.MaxUploadBytes,
		chunkSeconds:   cfg.ChunkSeconds,
		ffmpegPath:     cfg.FFmpegPath,
		run:            execRunner,
		logger:         logger,
	}
}

// Transcribe uploads the file and returns the recognised text. Files above the upload limit are
// split into fixed-length chunks which are transcribed in order. Each request is attempted once.
func (s *SpeechClient) Transcribe(ctx context.Context, audioPath string) (string, error) {
	info, err := os.Stat(audioPath)
	if err != nil {
		return "", &TranscriptionError{Err: err}
	}
	if s.maxUploadBytes <= 0 || info.Size() <= s.maxUploadBytes {
		return s.transcribeFile(ctx, audioPath)
	}

	s.logger.Infof("Audio %s is %d bytes, splitting into %ds chunks", audioPath, info.Size(), s.chunkSeconds)
	chunks, chunkDir, err := s.split(ctx, audioPath)
	if chunkDir != "" {
		defer func() {
			if rmErr := os.RemoveAll(chunkDir); rmErr != nil {
				s.logger.Warnf("Transcribe - remove chunk dir %s error: %v", chunkDir, rmErr)
			}
		}()
	}
	if err != nil {
		return "", &TranscriptionError{Err: err}
	}

	texts := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		text, err := s.transcribeFile(ctx, chunk)
		if err != nil {
			s.logger.Errorf("Transcribe - chunk %d/%d error: %v", i+1, len(chunks), err)
			return "", err
		}
		if text = strings.TrimSpace(text); text != "" {
			texts = append(texts, text)
		}
	}
	return strings.Join(texts, " "), nil
}

func (s *SpeechClient) transcribeFile(ctx context.Context, path string) (string, error) {
	resp, err := s.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    s.model,
		FilePath: path,
		Format:   openai.AudioResponseFormatJSON,
	})
	if err != nil {
		status, body := statusAndBody(err)
		return "", &TranscriptionError{StatusCode: status, Body: body, Err: err}
	}
	return resp.Text, nil
}

// split cuts the file into chunkSeconds segments with ffmpeg, stream-copying the codec.
func (s *SpeechClient) split(ctx context.Context, path string) ([]string, string, error) {
	dir, err := os.MkdirTemp(filepath.Dir(path), "chunks-*")
	if err != nil {
		return nil, "", fmt.Errorf("create chunk dir: %w", err)
	}
	ext := filepath.Ext(path)
	pattern := filepath.Join(dir, "chunk_%03d"+ext)
	err = s.run(ctx, s.ffmpegPath,
		"-hide_banner", "-loglevel", "error",
		"-i", path,
		"-f", "segment",
		"-segment_time", strconv.Itoa(s.chunkSeconds),
		"-c", "copy",
		"-reset_timestamps", "1",
		pattern,
	)
	if err != nil {
		return nil, dir, fmt.Errorf("splitting audio failed: %w", err)
	}
	chunks, err := filepath.Glob(filepath.Join(dir, "chunk_*"+ext))
	if err != nil {
		return nil, dir, err
	}
	if len(chunks) == 0 {
		return nil, dir, fmt.Errorf("splitting audio produced no chunks")
	}
	sort.Strings(chunks)
	return chunks, dir, nil
}
