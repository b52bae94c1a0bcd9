package relay

import "sync"

// Queue is an unbounded, ordered queue with many producers and a single
// consumer. Post never blocks.
type Queue[T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []T
	closed bool
	done   chan struct{}
}

// NewQueue creates an empty queue.
func NewQueue[T any]() *Queue[T] {
	q := &Queue[T]{done: make(chan struct{})}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Post appends item. It reports false if the queue is closed and the item
// was dropped.
func (q *Queue[T]) Post(item T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.items = append(q.items, item)
	q.cond.Signal()
	return true
}

// Run applies every item in order until the queue is closed and drained.
// Exactly one goroutine may call Run.
func (q *Queue[T]) Run(apply func(T)) {
	defer close(q.done)
	for {
		q.mu.Lock()
		for len(q.items) == 0 && !q.closed {
			q.cond.Wait()
		}
		if len(q.items) == 0 && q.closed {
			q.mu.Unlock()
			return
		}
		batch := q.items
		q.items = nil
		q.mu.Unlock()

		for _, item := range batch {
			apply(item)
		}
	}
}

// Close stops accepting items. Items already posted are still applied.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}

// Done is closed when Run has returned.
func (q *Queue[T]) Done() <-chan struct{} {
	return q.done
}
