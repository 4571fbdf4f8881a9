package task_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/volpe-framework/evocore/task"
)

func TestQueue_FIFOOrder(t *testing.T) {
	q := task.NewQueue()
	defer q.Stop()

	var mu sync.Mutex
	var order []int
	var handles []*task.Handle
	for i := 0; i < 5; i++ {
		i := i
		h, err := q.Enqueue(func() error {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		})
		require.NoError(t, err)
		handles = append(handles, h)
	}
	for _, h := range handles {
		require.NoError(t, h.Get())
	}
	require.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestHandle_IsReadyAndGet(t *testing.T) {
	q := task.NewQueue()
	defer q.Stop()

	release := make(chan struct{})
	h, err := q.Enqueue(func() error {
		<-release
		return errors.New("boom")
	})
	require.NoError(t, err)
	require.False(t, h.IsReady())

	close(release)
	err = h.Get()
	require.Error(t, err)
	require.Equal(t, "boom", err.Error())

	require.True(t, h.IsReady())
	// Get is idempotent: calling again returns the same cached error.
	require.Equal(t, err, h.Get())
}

func TestQueue_StopWaitsForDrain(t *testing.T) {
	q := task.NewQueue()
	started := make(chan struct{})
	proceed := make(chan struct{})
	_, err := q.Enqueue(func() error {
		close(started)
		<-proceed
		return nil
	})
	require.NoError(t, err)

	<-started
	stopped := make(chan struct{})
	go func() {
		q.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned before the in-flight task finished")
	case <-time.After(20 * time.Millisecond):
	}
	close(proceed)
	<-stopped
}

func TestQueue_EnqueueAfterStopErrors(t *testing.T) {
	q := task.NewQueue()
	q.Stop()

	_, err := q.Enqueue(func() error { return nil })
	require.Error(t, err)
}
