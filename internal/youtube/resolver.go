package youtube

import (
	"context"
	"regexp"
	"strconv"

	"github.com/amankumarsingh77/yt-transcriber/internal/models"
	"github.com/amankumarsingh77/yt-transcriber/internal/transcript"
	"github.com/amankumarsingh77/yt-transcriber/pkg/logger"
)

var videoIDRegex = regexp.MustCompile(`(?:https?://)?(?:www\.)?(?:youtube\.com/(?:[^/\n\s]+/\S+/|(?:v|e(?:mbed)?)/|\S*?[?&]v=)|youtu\.be/)([a-zA-Z0-9_-]{11})`)

type Resolver struct {
	client videoClient
	logger logger.Logger
}

func NewResolver(client videoClient, logger logger.Logger) *Resolver {
	return &Resolver{client: client, logger: logger}
}

// ExtractVideoID returns the 11 character id from watch, short, embed and /v/ URLs.
func (r *Resolver) ExtractVideoID(videoURL string) (string, error) {
	return ExtractVideoID(videoURL)
}

func ExtractVideoID(videoURL string) (string, error) {
	m := videoIDRegex.FindStringSubmatchIndex(videoURL)
	if m == nil {
		return "", transcript.ErrInvalidURL
	}
	start, end := m[2], m[3]
	if end < len(videoURL) && isIDChar(videoURL[end]) {
		return "", transcript.ErrInvalidURL
	}
	return videoURL[start:end], nil
}

func isIDChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '-'
}

// FetchMetadata never fails: anything it cannot learn is reported as a placeholder.
func (r *Resolver) FetchMetadata(ctx context.Context, videoURL string) *models.VideoMetadata {
	video, err := r.client.GetVideoContext(ctx, videoURL)
	if err != nil {
		r.logger.Warnf("FetchMetadata - GetVideoContext error: %v", err)
		return models.PlaceholderMetadata()
	}
	meta := &models.VideoMetadata{
		Title:    video.Title,
		Channel:  video.Author,
		Duration: strconv.Itoa(int(video.Duration.Seconds())),
	}
	if len(video.Thumbnails) > 0 {
		meta.ThumbnailURL = video.Thumbnails[0].URL
	}
	meta.FillPlaceholders()
	return meta
}
