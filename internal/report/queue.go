package report

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	bderror "github.com/msto63/boundary/foundation/core/error"
	"github.com/msto63/boundary/internal/guard"
	"github.com/msto63/boundary/pkg/core/logging"
)

// DefaultQueueSize is the number of faults a Queue holds before dropping
const DefaultQueueSize = 256

// Queue hands faults to a background worker that calls the wrapped reporter.
// Report never waits for the wrapped reporter; faults that find the queue
// full are dropped and counted.
type Queue struct {
	next   guard.Reporter
	logger *logging.Logger

	items  chan queued
	doneCh chan struct{}
	mu     sync.RWMutex
	closed bool

	dropped atomic.Int64
	failed  atomic.Int64
}

// queued is either a fault or a flush marker
type queued struct {
	fault *guard.Fault
	done  chan struct{}
}

// NewQueue starts the worker for next. A size <= 0 uses DefaultQueueSize.
func NewQueue(next guard.Reporter, size int, logger *logging.Logger) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	if logger == nil {
		logger = logging.Discard()
	}
	q := &Queue{
		next:   next,
		logger: logger.Named("fault-queue"),
		items:  make(chan queued, size),
		doneCh: make(chan struct{}),
	}
	go q.worker()
	return q
}

// Report enqueues the fault
func (q *Queue) Report(_ context.Context, f *guard.Fault) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		q.dropped.Add(1)
		return bderror.New("fault queue closed").
			WithCode(bderror.CodeReportFailed).
			WithDetail("fault_id", f.ID)
	}
	select {
	case q.items <- queued{fault: f}:
		return nil
	default:
		q.dropped.Add(1)
		return bderror.New("fault queue full").
			WithCode(bderror.CodeReportFailed).
			WithDetail("fault_id", f.ID)
	}
}

func (q *Queue) worker() {
	defer close(q.doneCh)

	for item := range q.items {
		if item.done != nil {
			close(item.done)
			continue
		}
		if err := q.deliver(item.fault); err != nil {
			q.failed.Add(1)
			q.logger.Debug("queued fault report failed", "fault_id", item.fault.ID, "error", err)
		}
	}
}

func (q *Queue) deliver(f *guard.Fault) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reporter panicked: %v", r)
		}
	}()
	return q.next.Report(context.Background(), f)
}

// Flush blocks until every fault queued before the call was handed to the
// wrapped reporter, or ctx ends
func (q *Queue) Flush(ctx context.Context) error {
	done := make(chan struct{})

	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return nil
	}
	select {
	case q.items <- queued{done: done}:
	case <-ctx.Done():
		q.mu.RUnlock()
		return ctx.Err()
	}
	q.mu.RUnlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting faults and waits until the queued ones are delivered
func (q *Queue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.items)
	q.mu.Unlock()

	<-q.doneCh
	return nil
}

// Dropped returns how many faults found the queue full or closed
func (q *Queue) Dropped() int64 {
	return q.dropped.Load()
}

// Failed returns how many deliveries the wrapped reporter rejected
func (q *Queue) Failed() int64 {
	return q.failed.Load()
}
