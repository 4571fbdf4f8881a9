package task

import (
	"sync"

	"github.com/volpe-framework/evocore/evoerr"
)

// Queue is a single-producer/multi-producer, single-consumer FIFO.
// Submissions from any goroutine are serialized by the internal mutex;
// execution on the dedicated worker goroutine is strictly sequential.
type Queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	tasks  []func()
	closed bool
	worker sync.WaitGroup
}

// NewQueue starts the dedicated worker goroutine and returns a ready queue.
func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	q.worker.Add(1)
	go q.run()
	return q
}

func (q *Queue) run() {
	defer q.worker.Done()
	for {
		q.mu.Lock()
		for len(q.tasks) == 0 && !q.closed {
			q.cond.Wait()
		}
		if len(q.tasks) == 0 && q.closed {
			q.mu.Unlock()
			return
		}
		fn := q.tasks[0]
		q.tasks = q.tasks[1:]
		q.mu.Unlock()
		fn()
	}
}

// Enqueue appends fn to the FIFO and returns a handle for its eventual
// completion. Either a valid handle is returned with a nil error, or no
// task is enqueued and an error is returned.
func (q *Queue) Enqueue(fn func() error) (*Handle, error) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil, evoerr.Systemf("cannot enqueue a task on a closed task queue")
	}
	h := newHandle()
	q.tasks = append(q.tasks, func() {
		defer close(h.done)
		h.err = fn()
	})
	q.mu.Unlock()
	q.cond.Signal()
	return h, nil
}

// Stop signals the worker to exit once the queue drains and blocks
// until it has. The caller is responsible for having already waited on
// every handle returned by Enqueue; Stop does not cancel pending tasks.
func (q *Queue) Stop() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.cond.Signal()
	q.worker.Wait()
}
