package queue

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

const (
	PriorityQueueKey = "priority_queue"
	DLQKey           = "priority_queue_dlq"
)

type Producer interface {
	Enqueue(ctx context.Context, job Job) error
}

type RedisProducer struct {
	Redis *redis.Client
}

func NewProducer(redis *redis.Client) Producer {
	return &RedisProducer{Redis: redis}
}

func (p *RedisProducer) Enqueue(ctx context.Context, job Job) error {
	jobBytes, err := json.Marshal(job)
	if err != nil {
		return err
	}

	// score is the due time; higher priority jobs sort ahead of jobs due
	// the same second
	score := float64(job.CreatedAt) - float64(job.Priority)
	return p.Redis.ZAdd(ctx, PriorityQueueKey, redis.Z{
		Score:  score,
		Member: jobBytes,
	}).Err()
}
