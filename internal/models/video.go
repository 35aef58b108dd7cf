package models

import "io"

const (
	UnknownTitle    = "Unknown Video"
	UnknownChannel  = "Unknown Channel"
	UnknownDuration = "0"
)

type VideoMetadata struct {
	Title        string `json:"title"`
	Channel      string `json:"channel"`
	Duration     string `json:"duration"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

func PlaceholderMetadata() *VideoMetadata {
	return &VideoMetadata{
		Title:    UnknownTitle,
		Channel:  UnknownChannel,
		Duration: UnknownDuration,
	}
}

// FillPlaceholders replaces empty fields with their placeholder values.
func (m *VideoMetadata) FillPlaceholders() {
	if m.Title == "" {
		m.Title = UnknownTitle
	}
	if m.Channel == "" {
		m.Channel = UnknownChannel
	}
	if m.Duration == "" {
		m.Duration = UnknownDuration
	}
}

// AudioStream is an open audio-only rendition of a video.
type AudioStream struct {
	Body     io.ReadCloser
	Size     int64
	MimeType string
}
