package event

import (
	"errors"
	"sync"
)

var (
	// ErrEmpty means nothing is queued yet; try again later.
	ErrEmpty = errors.New("queue is empty")
	// ErrDisconnected means the queue was closed and fully drained.
	ErrDisconnected = errors.New("channel disconnected")
)

// Queue is an unbounded FIFO safe for any number of producers and consumers.
// Push never blocks and never drops; TryPop never blocks.
type Queue[T any] struct {
	mu     sync.Mutex
	items  []T
	closed bool
}

// NewQueue returns an empty, open queue.
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{}
}

// Push appends v. It fails with ErrDisconnected once the queue is closed.
func (q *Queue[T]) Push(v T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrDisconnected
	}
	q.items = append(q.items, v)
	return nil
}

// TryPop removes the oldest item. Items pushed before Close are still
// delivered; ErrDisconnected is only reported after they are gone.
func (q *Queue[T]) TryPop() (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	if len(q.items) == 0 {
		if q.closed {
			return zero, ErrDisconnected
		}
		return zero, ErrEmpty
	}

	v := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil
	}
	return v, nil
}

// Close marks the producer side as gone. It is safe to call more than once.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
}

// Len reports how many items are waiting.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
