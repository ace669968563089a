package queue

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryQueue_EnqueueDequeue(t *testing.T) {
	q := NewMemoryQueue(4)
	id := uuid.New()

	require.NoError(t, q.Enqueue(context.Background(), id))

	got, err := q.Dequeue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestMemoryQueue_DequeueTimeout(t *testing.T) {
	q := NewMemoryQueue(1)
	q.pollTimeout = 20 * time.Millisecond

	got, err := q.Dequeue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, got)
}

func TestMemoryQueue_DequeueCancelled(t *testing.T) {
	q := NewMemoryQueue(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := q.Dequeue(ctx)
	assert.Error(t, err)
}
