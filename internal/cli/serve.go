package cli

import (
	"github.com/amankumarsingh77/yt-transcriber/internal/server"
	"github.com/amankumarsingh77/yt-transcriber/pkg/db/aws"
	"github.com/amankumarsingh77/yt-transcriber/pkg/db/redis"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	goredis "github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			a.logger.Infof("AppVersion: %s, LogLevel: %s, Mode: %s", cfg.Server.AppVersion, cfg.Logger.Level, cfg.Server.Mode)

			var redisClient *goredis.Client
			if cfg.Registry.Backend == "redis" {
				client, err := redis.NewRedisClient(cfg)
				if err != nil {
					a.logger.Errorf("could not connect to redis: %v", err)
					return err
				}
				defer client.Close()
				redisClient = client
				a.logger.Info("redis connected")
			}

			var s3Client *s3.Client
			var presignClient *s3.PresignClient
			if cfg.S3.TranscriptBucket != "" {
				client, presign, err := aws.NewAWSClient(cfg.S3.Endpoint, cfg.S3.Region, cfg.S3.AccessKey, cfg.S3.SecretKey)
				if err != nil {
					a.logger.Warnf("could not connect to s3, transcript archive disabled: %v", err)
				} else {
					s3Client, presignClient = client, presign
				}
			}

			s := server.NewServer(cfg, redisClient, s3Client, presignClient, a.logger)
			return s.Run()
		},
	}
}
