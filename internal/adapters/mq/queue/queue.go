// Package queue defines the contract for enqueuing and consuming match
// submissions.
package queue

import (
	"context"
	"sync"

	"github.com/okian/scrim/internal/domain/model"
	"github.com/okian/scrim/pkg/metrics"
)

// Default queue configuration constants.
const defaultCapacity = 10_000

// Match is the payload type flowing through the queue.
type Match = model.Match

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a match to the queue.
	// Returns false if the queue is full or closed.
	Enqueue(ctx context.Context, m Match) bool

	// Dequeue returns a channel receiving matches as they become
	// available. The channel closes when the queue closes.
	Dequeue(ctx context.Context) <-chan Match

	// Len returns the current number of queued matches.
	Len(ctx context.Context) int

	// Close shuts down the queue. After closing no new matches can be
	// enqueued.
	Close() error
}

// InMemoryQueue implements Queue with a buffered channel.
type InMemoryQueue struct {
	matches chan Match
	mu      sync.RWMutex
	closed  bool
}

// NewInMemoryQueue creates an in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	cfg := options{capacity: defaultCapacity}
	for _, opt := range opts {
		opt(&cfg)
	}

	q := &InMemoryQueue{
		matches: make(chan Match, cfg.capacity),
	}
	metrics.UpdateQueueCapacity(cfg.capacity)
	metrics.UpdateQueueSize(0)
	return q
}

// Enqueue adds a match to the queue without blocking.
func (q *InMemoryQueue) Enqueue(ctx context.Context, m Match) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError()
		return false
	}

	select {
	case q.matches <- m:
		metrics.UpdateQueueSize(len(q.matches))
		return true
	case <-ctx.Done():
		metrics.RecordQueueEnqueueError()
		return false
	default:
		metrics.RecordQueueEnqueueError()
		return false
	}
}

// Dequeue exposes the match channel for workers.
func (q *InMemoryQueue) Dequeue(_ context.Context) <-chan Match {
	return q.matches
}

// Len returns the number of queued matches.
func (q *InMemoryQueue) Len(_ context.Context) int {
	return len(q.matches)
}

// Close shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	q.closed = true
	close(q.matches)
	return nil
}
