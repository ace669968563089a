package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Redis key prefix for trigger queues
const keyPrefixQueue = "queue:"

// defaultPollTimeout bounds each blocking pop so consumers can observe
// shutdown signals between polls
const defaultPollTimeout = 5 * time.Second

// RedisQueue implements the processing trigger queue on a Redis list
type RedisQueue struct {
	client      *redis.Client
	name        string
	pollTimeout time.Duration
}

// NewRedisQueue creates a new Redis-backed trigger queue
func NewRedisQueue(client *redis.Client, name string) *RedisQueue {
	return &RedisQueue{
		client:      client,
		name:        name,
		pollTimeout: defaultPollTimeout,
	}
}

func (q *RedisQueue) key() string {
	return keyPrefixQueue + q.name
}

// Enqueue pushes a transcript id onto the queue
func (q *RedisQueue) Enqueue(ctx context.Context, transcriptID uuid.UUID) error {
	if err := q.client.LPush(ctx, q.key(), transcriptID.String()).Err(); err != nil {
		return fmt.Errorf("failed to enqueue transcript %s: %w", transcriptID, err)
	}
	return nil
}

// Dequeue blocks up to the poll timeout for the next transcript id.
// Returns (uuid.Nil, nil) when nothing was queued within the timeout.
func (q *RedisQueue) Dequeue(ctx context.Context) (uuid.UUID, error) {
	result, err := q.client.BRPop(ctx, q.pollTimeout, q.key()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, nil
		}
		return uuid.Nil, fmt.Errorf("failed to dequeue: %w", err)
	}

	// BRPop returns [key, value]
	if len(result) != 2 {
		return uuid.Nil, fmt.Errorf("unexpected BRPOP reply of length %d", len(result))
	}

	id, err := uuid.Parse(result[1])
	if err != nil {
		return uuid.Nil, fmt.Errorf("malformed transcript id on queue: %w", err)
	}
	return id, nil
}
