// Package jobqueue implements a mutex-and-condition-variable-guarded work
// deque with an in-flight job counter, the termination primitive shared
// by every worker-pool traversal strategy.
//
// A naive "exit when the queue is empty" check races with a worker that
// is about to push a newly discovered subdirectory: the queue can be
// observed empty while a job that will repopulate it is still in flight.
// Tracking a separate "jobs outstanding" count alongside the queue avoids
// that race: Pop only reports ok=false once jobs has reached zero (or the
// queue is shut down), never merely because the queue is momentarily
// empty.
package jobqueue

import (
	"sync"

	"zarr-checksum-gallery/internal/logging"
)

// Queue is a generic FIFO-order-agnostic work queue of T. Its zero value
// is not usable; construct one with New.
type Queue[T any] struct {
	mu       sync.Mutex
	cond     *sync.Cond
	items    []T
	jobs     int
	shutdown bool
	logger   *logging.Logger
}

// New returns a Queue seeded with the given initial items; jobs starts
// at len(seed). logger is optional and, if given, receives a TRACE line
// for every push, done and shutdown, and whenever Pop waits on an empty
// queue or returns because no jobs are left.
func New[T any](seed []T, logger ...*logging.Logger) *Queue[T] {
	q := &Queue[T]{items: append([]T(nil), seed...), jobs: len(seed)}
	if len(logger) > 0 {
		q.logger = logger[0]
	}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push adds one item and increments the in-flight job count.
func (q *Queue[T]) Push(item T) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.shutdown {
		return
	}
	q.items = append(q.items, item)
	q.jobs++
	q.logger.Trace("[jobqueue] job count incremented to %d", q.jobs)
	q.cond.Signal()
}

// PushN adds several items at once, incrementing the job count by their
// number.
func (q *Queue[T]) PushN(items []T) {
	if len(items) == 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.shutdown {
		return
	}
	q.items = append(q.items, items...)
	q.jobs += len(items)
	q.logger.Trace("[jobqueue] job count incremented to %d", q.jobs)
	q.cond.Broadcast()
}

// Pop blocks until an item is available, the job count reaches zero, or
// the queue is shut down. ok is false in the latter two cases.
func (q *Queue[T]) Pop() (item T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for {
		if q.jobs == 0 || q.shutdown {
			q.logger.Trace("[jobqueue] no jobs; returning")
			var zero T
			return zero, false
		}
		if n := len(q.items); n > 0 {
			item = q.items[n-1]
			q.items = q.items[:n-1]
			return item, true
		}
		q.logger.Trace("[jobqueue] queue is empty; waiting")
		q.cond.Wait()
	}
}

// Done marks one job as finished, decrementing the in-flight count.
// Waiters are woken if the count reaches zero so they can observe
// termination.
func (q *Queue[T]) Done() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs--
	q.logger.Trace("[jobqueue] job count decremented to %d", q.jobs)
	if q.jobs == 0 {
		q.cond.Broadcast()
	}
}

// Shutdown drains the queue and wakes every waiter, forcing all
// subsequent Pop calls to return ok=false. Used to unwind the pool early
// after a fatal error.
func (q *Queue[T]) Shutdown() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.shutdown {
		return
	}
	q.logger.Trace("[jobqueue] shutting down")
	q.jobs -= len(q.items)
	q.items = nil
	q.shutdown = true
	q.cond.Broadcast()
}
