package queue

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MemoryQueue is a channel-backed trigger queue used when Redis is
// disabled (development and tests)
type MemoryQueue struct {
	items       chan uuid.UUID
	pollTimeout time.Duration
}

// NewMemoryQueue creates a new in-memory trigger queue
func NewMemoryQueue(capacity int) *MemoryQueue {
	if capacity <= 0 {
		capacity = 128
	}
	return &MemoryQueue{
		items:       make(chan uuid.UUID, capacity),
		pollTimeout: defaultPollTimeout,
	}
}

// Enqueue pushes a transcript id onto the queue
func (q *MemoryQueue) Enqueue(ctx context.Context, transcriptID uuid.UUID) error {
	select {
	case q.items <- transcriptID:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dequeue blocks up to the poll timeout for the next transcript id.
// Returns (uuid.Nil, nil) when nothing was queued within the timeout.
func (q *MemoryQueue) Dequeue(ctx context.Context) (uuid.UUID, error) {
	timer := time.NewTimer(q.pollTimeout)
	defer timer.Stop()

	select {
	case id := <-q.items:
		return id, nil
	case <-timer.C:
		return uuid.Nil, nil
	case <-ctx.Done():
		return uuid.Nil, ctx.Err()
	}
}
