package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amankumarsingh77/yt-transcriber/internal/config"
	"github.com/amankumarsingh77/yt-transcriber/internal/worker"
	"github.com/amankumarsingh77/yt-transcriber/pkg/logger"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
)

const (
	maxHeaderBytes  = 1 << 20
	ctxTimeout      = 5
	poolStopTimeout = 30
)

type Server struct {
	echo          *echo.Echo
	cfg           *config.Config
	redisClient   *redis.Client
	s3Client      *s3.Client
	preSignClient *s3.PresignClient
	pool          *worker.Pool
	logger        logger.Logger
}

// NewServer builds the HTTP server. redisClient and the S3 clients may be nil when the
// corresponding backends are not configured.
func NewServer(cfg *config.Config, redisClient *redis.Client, s3Client *s3.Client, preSignClient *s3.PresignClient, logger logger.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	return &Server{
		echo:          e,
		cfg:           cfg,
		redisClient:   redisClient,
		s3Client:      s3Client,
		preSignClient: preSignClient,
		pool:          worker.NewPool(cfg, logger),
		logger:        logger,
	}
}

func (s *Server) Run() error {
	if err := s.MapHandlers(s.echo); err != nil {
		return err
	}
	s.pool.Start()

	server := &http.Server{
		Addr:           s.cfg.Server.Port,
		ReadTimeout:    time.Second * time.Duration(s.cfg.Server.ReadTimeout),
		WriteTimeout:   time.Second * time.Duration(s.cfg.Server.WriteTimeout),
		MaxHeaderBytes: maxHeaderBytes,
	}
	go func() {
		s.logger.Infof("Server is listening on PORT: %s", s.cfg.Server.Port)
		if err := s.echo.StartServer(server); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Fatalf("Error starting Server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, os.Interrupt)
	<-quit

	ctx, shutdown := context.WithTimeout(context.Background(), time.Second*ctxTimeout)
	defer shutdown()
	s.logger.Infof("shutting down server")
	if err := s.echo.Shutdown(ctx); err != nil {
		s.logger.Errorf("Server Shutdown error: %v", err)
	}

	poolCtx, cancel := context.WithTimeout(context.Background(), time.Second*poolStopTimeout)
	defer cancel()
	return s.pool.Stop(poolCtx)
}
