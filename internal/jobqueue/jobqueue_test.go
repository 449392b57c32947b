package jobqueue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_PopDrainsSeed(t *testing.T) {
	q := New([]int{1, 2, 3})
	seen := map[int]bool{}
	for {
		item, ok := q.Pop()
		if !ok {
			break
		}
		seen[item] = true
		q.Done()
	}
	for _, want := range []int{1, 2, 3} {
		assert.True(t, seen[want], "missing %d from drained items", want)
	}
}

func TestQueue_PushExtendsInFlightCount(t *testing.T) {
	q := New([]int{1})

	item, ok := q.Pop()
	require.True(t, ok)
	require.Equal(t, 1, item)

	q.Push(2)
	q.Done() // finishes job for item 1; one job (item 2) still outstanding

	item2, ok := q.Pop()
	require.True(t, ok)
	require.Equal(t, 2, item2)
	q.Done()

	_, ok = q.Pop()
	assert.False(t, ok, "expected Pop to report no more jobs")
}

func TestQueue_ConcurrentWorkersTerminate(t *testing.T) {
	// Simulates a worker pool where each popped job may push 0 or 1 more
	// job; the queue must still terminate cleanly once jobs reaches 0.
	const totalLeaves = 200
	root := New([]int{totalLeaves})

	var mu sync.Mutex
	processed := 0

	var wg sync.WaitGroup
	worker := func() {
		defer wg.Done()
		for {
			n, ok := root.Pop()
			if !ok {
				return
			}
			if n > 1 {
				root.Push(n - 1)
			} else {
				mu.Lock()
				processed++
				mu.Unlock()
			}
			root.Done()
		}
	}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go worker()
	}
	wg.Wait()

	require.Equal(t, 1, processed, "chain collapses to a single leaf")
}

func TestQueue_Shutdown(t *testing.T) {
	q := New([]int{1, 2, 3})
	q.Shutdown()

	_, ok := q.Pop()
	assert.False(t, ok, "expected Pop to report shutdown")

	q.Push(4) // must be a no-op after shutdown
	_, ok = q.Pop()
	assert.False(t, ok, "Push after Shutdown should not revive the queue")
}
