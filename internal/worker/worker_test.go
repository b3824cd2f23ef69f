package worker

import (
	"context"
	"testing"
	"time"

	"github.com/Javier1520/share-board/internal/queue"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestWorkerPollSurvivesRedisOutage(t *testing.T) {
	mockRedis := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mockRedis.Addr()})
	t.Cleanup(func() { rdb.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wp := NewWorkerPool(rdb, nil, 1, nil, nil)
	wp.Start(ctx)

	// every poll fails while the outage lasts; the loop must keep going
	// without spinning and pick work back up once redis answers again
	mockRedis.SetError("connection refused")
	time.Sleep(100 * time.Millisecond)
	mockRedis.SetError("")

	job := queue.Job{
		ID:        "j1",
		Type:      "bogus",
		MaxRetry:  0,
		CreatedAt: time.Now().Add(-time.Second).Unix(),
		ExpireAt:  time.Now().Add(time.Minute).Unix(),
	}
	require.NoError(t, queue.NewProducer(rdb).Enqueue(ctx, job))

	// the unknown job type fails its handler straight into the DLQ, which
	// proves the poll loop drained the queue after the outage
	require.Eventually(t, func() bool {
		n, err := rdb.LLen(context.Background(), queue.DLQKey).Result()
		return err == nil && n == 1
	}, 5*time.Second, 50*time.Millisecond)
}
