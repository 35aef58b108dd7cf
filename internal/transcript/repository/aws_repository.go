package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amankumarsingh77/yt-transcriber/internal/transcript"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type awsRepository struct {
	client        *s3.Client
	preSignClient *s3.PresignClient
	bucket        string
	expire        time.Duration
}

func NewAwsRepository(awsClient *s3.Client, preSignClient *s3.PresignClient, bucket string, expire time.Duration) transcript.ArchiveRepository {
	return &awsRepository{
		client:        awsClient,
		preSignClient: preSignClient,
		bucket:        bucket,
		expire:        expire,
	}
}

func (a *awsRepository) PutTranscript(ctx context.Context, key, text string) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		ContentType:   aws.String("text/plain; charset=utf-8"),
		ContentLength: aws.Int64(int64(len(text))),
		Body:          strings.NewReader(text),
	})
	if err != nil {
		return fmt.Errorf("failed to upload transcript : %w", err)
	}
	return nil
}

func (a *awsRepository) PresignTranscript(ctx context.Context, key string) (string, error) {
	req, err := a.preSignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(a.expire))
	if err != nil {
		return "", fmt.Errorf("failed to presign get object : %w", err)
	}
	return req.URL, nil
}
