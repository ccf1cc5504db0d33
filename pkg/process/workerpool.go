package process

import (
	"context"
	"sync"
)

// Job is a unit of work submitted to the WorkerPool; one job processes one
// dictionary file.
type Job func(ctx context.Context)

// WorkerPool runs file jobs on a fixed number of goroutines. Files are
// independent of each other, so the pool needs no result ordering; callers
// collect outcomes through their own synchronization.
type WorkerPool struct {
	jobs    chan Job
	done    chan struct{}
	wg      sync.WaitGroup
	workers int
	once    sync.Once
}

// NewWorkerPool creates a pool with the given worker count and queue
// capacity. Non-positive values fall back to a single worker and a queue of
// twice the worker count.
func NewWorkerPool(workers, queue int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if queue <= 0 {
		queue = workers * 2
	}
	return &WorkerPool{
		jobs:    make(chan Job, queue),
		done:    make(chan struct{}),
		workers: workers,
	}
}

// Start launches the worker goroutines. They run until the context is
// canceled or Close is called.
func (p *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case <-p.done:
					// Drain jobs already queued, then exit.
					for {
						select {
						case job := <-p.jobs:
							job(ctx)
						default:
							return
						}
					}
				case job := <-p.jobs:
					job(ctx)
				}
			}
		}()
	}
}

// Submit enqueues a job, blocking while the queue is full. It returns
// ErrPoolClosed after Close and the context error if ctx ends first.
func (p *WorkerPool) Submit(ctx context.Context, job Job) error {
	select {
	case <-p.done:
		return ErrPoolClosed
	default:
	}
	select {
	case <-p.done:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	case p.jobs <- job:
		return nil
	}
}

// Close stops accepting jobs, lets workers finish what is already queued,
// and waits for them to exit. Close is idempotent.
func (p *WorkerPool) Close() {
	p.once.Do(func() { close(p.done) })
	p.wg.Wait()
}

// ErrPoolClosed is returned by Submit after Close.
var ErrPoolClosed = &PoolError{"worker pool closed"}

// PoolError is a typed error for pool operations.
type PoolError struct{ msg string }

func (e *PoolError) Error() string { return e.msg }
