package server

import (
	"fmt"
	"net/http"
	"time"

	insightsHttp "github.com/amankumarsingh77/yt-transcriber/internal/insights/delivery/http"
	insightsUsecase "github.com/amankumarsingh77/yt-transcriber/internal/insights/usecase"
	"github.com/amankumarsingh77/yt-transcriber/internal/metrics"
	"github.com/amankumarsingh77/yt-transcriber/internal/middleware"
	"github.com/amankumarsingh77/yt-transcriber/internal/transcript"
	transcriptHttp "github.com/amankumarsingh77/yt-transcriber/internal/transcript/delivery/http"
	transcriptRepository "github.com/amankumarsingh77/yt-transcriber/internal/transcript/repository"
	transcriptUsecase "github.com/amankumarsingh77/yt-transcriber/internal/transcript/usecase"
	"github.com/amankumarsingh77/yt-transcriber/pkg/utils"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

func (s *Server) MapHandlers(e *echo.Echo) error {
	jobRepo, err := s.jobRepository()
	if err != nil {
		return err
	}
	var archiveRepo transcript.ArchiveRepository
	if s.cfg.S3.TranscriptBucket != "" && s.s3Client != nil {
		archiveRepo = transcriptRepository.NewAwsRepository(
			s.s3Client,
			s.preSignClient,
			s.cfg.S3.TranscriptBucket,
			time.Duration(s.cfg.S3.PresignExpireMinutes)*time.Minute,
		)
		s.logger.Infof("Transcript archive enabled, bucket: %s", s.cfg.S3.TranscriptBucket)
	}

	m := metrics.New()
	pipeline := NewPipeline(s.cfg, jobRepo, archiveRepo, m, s.logger)

	transcriptUC := transcriptUsecase.NewTranscriptUseCase(s.cfg, jobRepo, s.pool, pipeline, m, s.logger)
	insightsUC := insightsUsecase.NewInsightsUseCase(NewCompletionService(s.cfg), m, s.logger)

	transcriptHandlers := transcriptHttp.NewTranscriptHandler(transcriptUC, s.logger)
	insightsHandlers := insightsHttp.NewInsightsHandler(insightsUC)

	mw := middleware.NewMiddlewareManager(s.cfg, s.logger)
	e.Use(echoMiddleware.RequestID())
	e.Use(mw.RequestLogger())
	e.Use(echoMiddleware.Recover())
	e.Use(mw.CORS())
	e.Use(echoMiddleware.BodyLimit("10M"))

	v1 := e.Group("/api/v1")
	health := v1.Group("/health")
	transcriptGroup := v1.Group("/transcript")

	transcriptHttp.MapTranscriptRoutes(transcriptGroup, transcriptHandlers)
	insightsHttp.MapInsightsRoutes(v1, insightsHandlers)
	health.GET("", func(c echo.Context) error {
		s.logger.Infof("Health check RequestID: %s", utils.GetRequestID(c))
		return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
	})
	v1.GET("/metrics", func(c echo.Context) error {
		return c.String(http.StatusOK, m.Format())
	})
	return nil
}

func (s *Server) jobRepository() (transcript.Repository, error) {
	switch s.cfg.Registry.Backend {
	case "", "memory":
		return transcriptRepository.NewMemoryRepo(), nil
	case "redis":
		if s.redisClient == nil {
			return nil, fmt.Errorf("registry backend redis requires a redis client")
		}
		ttl := time.Duration(s.cfg.Registry.TTLHours) * time.Hour
		return transcriptRepository.NewJobRedisRepo(s.redisClient, s.cfg.Registry.KeyPrefix, ttl), nil
	default:
		return nil, fmt.Errorf("unknown registry backend %q", s.cfg.Registry.Backend)
	}
}
