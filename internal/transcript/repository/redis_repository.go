package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/amankumarsingh77/yt-transcriber/internal/models"
	"github.com/amankumarsingh77/yt-transcriber/internal/transcript"
	"github.com/go-redis/redis/v8"
)

const jobDataField = "job_data"

type hashGetter interface {
	HGet(ctx context.Context, key, field string) *redis.StringCmd
}

type jobRedisRepo struct {
	redisClient *redis.Client
	keyPrefix   string
	ttl         time.Duration
}

// NewJobRedisRepo stores each job as a hash under keyPrefix+id. The full record lives in the
// job_data field; status and progress are mirrored as plain fields for inspection.
func NewJobRedisRepo(redisClient *redis.Client, keyPrefix string, ttl time.Duration) transcript.Repository {
	return &jobRedisRepo{
		redisClient: redisClient,
		keyPrefix:   keyPrefix,
		ttl:         ttl,
	}
}

func (r *jobRedisRepo) Create(ctx context.Context) (*models.Job, error) {
	job := newJob()
	if err := r.save(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return job, nil
}

// Update runs read-merge-write inside WATCH so the hash is never half written.
func (r *jobRedisRepo) Update(ctx context.Context, jobID string, update models.JobUpdate) error {
	key := r.keyPrefix + jobID
	err := r.redisClient.Watch(ctx, func(tx *redis.Tx) error {
		job, err := r.load(ctx, tx, key)
		if errors.Is(err, transcript.ErrJobNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if !update.Apply(job) {
			return nil
		}
		data, err := json.Marshal(job)
		if err != nil {
			return fmt.Errorf("failed to marshal job: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, jobDataField, data, "status", string(job.Status), "progress", job.Progress)
			return nil
		})
		return err
	}, key)
	if err != nil {
		return fmt.Errorf("failed to update job %s: %w", jobID, err)
	}
	return nil
}

func (r *jobRedisRepo) Get(ctx context.Context, jobID string) (*models.Job, error) {
	return r.load(ctx, r.redisClient, r.keyPrefix+jobID)
}

func (r *jobRedisRepo) load(ctx context.Context, cmd hashGetter, key string) (*models.Job, error) {
	data, err := cmd.HGet(ctx, key, jobDataField).Result()
	if errors.Is(err, redis.Nil) {
		return nil, transcript.ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job data: %w", err)
	}
	job := &models.Job{}
	if err = json.Unmarshal([]byte(data), job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job data: %w", err)
	}
	return job, nil
}

func (r *jobRedisRepo) save(ctx context.Context, job *models.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	key := r.keyPrefix + job.ID
	pipe := r.redisClient.TxPipeline()
	pipe.HSet(ctx, key, jobDataField, data, "status", string(job.Status), "progress", job.Progress)
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}
