package youtube

import (
	"context"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/amankumarsingh77/yt-transcriber/internal/models"
	ytdl "github.com/kkdai/youtube/v2"
	"github.com/pkg/errors"
)

// videoClient is the subset of the kkdai client the resolver and audio stream use.
type videoClient interface {
	GetVideoContext(ctx context.Context, url string) (*ytdl.Video, error)
	GetStreamContext(ctx context.Context, video *ytdl.Video, format *ytdl.Format) (io.ReadCloser, int64, error)
}

func NewVideoClient(httpClient *http.Client) *ytdl.Client {
	return &ytdl.Client{HTTPClient: httpClient}
}

type StreamClient struct {
	client videoClient
}

func NewStreamClient(client videoClient) *StreamClient {
	return &StreamClient{client: client}
}

// OpenAudio opens the lowest-bitrate audio-only rendition of the video.
func (s *StreamClient) OpenAudio(ctx context.Context, videoID string) (*models.AudioStream, error) {
	video, err := s.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get video info")
	}
	format, err := lowestBitrateAudio(video.Formats)
	if err != nil {
		return nil, err
	}
	body, size, err := s.client.GetStreamContext(ctx, video, format)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open audio stream (itag %d)", format.ItagNo)
	}
	if size <= 0 {
		size = format.ContentLength
	}
	return &models.AudioStream{Body: body, Size: size, MimeType: format.MimeType}, nil
}

func lowestBitrateAudio(formats ytdl.FormatList) (*ytdl.Format, error) {
	var audio []ytdl.Format
	for _, f := range formats {
		if strings.HasPrefix(f.MimeType, "audio/") {
			audio = append(audio, f)
		}
	}
	if len(audio) == 0 {
		return nil, errors.New("no audio-only format available")
	}
	sort.SliceStable(audio, func(i, j int) bool {
		return bitrate(audio[i]) < bitrate(audio[j])
	})
	return &audio[0], nil
}

func bitrate(f ytdl.Format) int {
	if f.AverageBitrate > 0 {
		return f.AverageBitrate
	}
	return f.Bitrate
}

func extensionFor(mimeType string) string {
	switch {
	case strings.HasPrefix(mimeType, "audio/webm"):
		return ".webm"
	case strings.HasPrefix(mimeType, "audio/mp4"):
		return ".m4a"
	default:
		return ".mp3"
	}
}
