package server

import (
	"net/http"

	"github.com/amankumarsingh77/yt-transcriber/internal/config"
	"github.com/amankumarsingh77/yt-transcriber/internal/groq"
	"github.com/amankumarsingh77/yt-transcriber/internal/insights"
	"github.com/amankumarsingh77/yt-transcriber/internal/metrics"
	"github.com/amankumarsingh77/yt-transcriber/internal/transcript"
	transcriptUsecase "github.com/amankumarsingh77/yt-transcriber/internal/transcript/usecase"
	"github.com/amankumarsingh77/yt-transcriber/internal/youtube"
	"github.com/amankumarsingh77/yt-transcriber/pkg/logger"
)

// NewPipeline wires the YouTube and Groq collaborators into a transcript pipeline. Speech-to-text
// is only attached when a Groq key is configured, and archive may be nil.
func NewPipeline(cfg *config.Config, repo transcript.Repository, archive transcript.ArchiveRepository, m *metrics.Metrics, log logger.Logger) *transcriptUsecase.Pipeline {
	pageClient := &http.Client{Timeout: cfg.Youtube.HTTPTimeout()}
	metaClient := youtube.NewVideoClient(pageClient)
	// audio streams can run for minutes; they are bounded by the job context instead
	streamClient := youtube.NewVideoClient(&http.Client{})

	collab := transcriptUsecase.Collaborators{
		Resolver: youtube.NewResolver(metaClient, log),
		Captions: youtube.NewCaptionFetcher(pageClient, "", cfg.Youtube.PreferredLanguages, log),
		Audio:    youtube.NewAudioAcquirer(youtube.NewStreamClient(streamClient), cfg.Youtube, log),
		Archive:  archive,
	}
	if cfg.Groq.SpeechEnabled() {
		collab.Speech = groq.NewSpeechClient(groq.NewOpenAIClient(cfg.Groq, nil), cfg.Groq, log)
	} else {
		log.Warn("GROQ_API_KEY not set: videos without captions will fail")
	}
	return transcriptUsecase.NewPipeline(cfg, repo, collab, m, log)
}

// NewCompletionService returns nil when no Groq key is configured.
func NewCompletionService(cfg *config.Config) insights.CompletionService {
	if !cfg.Groq.SpeechEnabled() {
		return nil
	}
	return groq.NewCompletionClient(groq.NewOpenAIClient(cfg.Groq, nil), cfg.Groq.ChatModel)
}
