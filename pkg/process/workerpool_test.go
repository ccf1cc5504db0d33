package process

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPoolRunsJobs(t *testing.T) {
	p := NewWorkerPool(4, 16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	var ran int32
	jobs := 100
	for i := 0; i < jobs; i++ {
		err := p.Submit(ctx, func(ctx context.Context) {
			atomic.AddInt32(&ran, 1)
		})
		if err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}
	p.Close()

	if got := atomic.LoadInt32(&ran); int(got) != jobs {
		t.Fatalf("expected %d jobs executed, got %d", jobs, got)
	}
}

func TestSubmitAfterClose(t *testing.T) {
	p := NewWorkerPool(1, 2)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)
	p.Close()

	if err := p.Submit(ctx, func(ctx context.Context) {}); err != ErrPoolClosed {
		t.Fatalf("expected ErrPoolClosed, got %v", err)
	}
}

func TestSubmitUnblocksOnContextCancel(t *testing.T) {
	p := NewWorkerPool(1, 1)
	// Workers never started, so the queue fills up and Submit blocks.
	ctx, cancel := context.WithCancel(context.Background())
	if err := p.Submit(ctx, func(ctx context.Context) {}); err != nil {
		t.Fatalf("setup submit failed: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- p.Submit(ctx, func(ctx context.Context) {})
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Submit did not unblock after cancellation")
	}
}

func TestCloseDrainsQueuedJobs(t *testing.T) {
	p := NewWorkerPool(1, 8)
	ctx := context.Background()

	var ran int32
	for i := 0; i < 8; i++ {
		if err := p.Submit(ctx, func(ctx context.Context) {
			atomic.AddInt32(&ran, 1)
		}); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}
	// Start after queueing so Close must drain the full queue.
	p.Start(ctx)
	p.Close()

	if got := atomic.LoadInt32(&ran); got != 8 {
		t.Fatalf("expected 8 jobs executed, got %d", got)
	}
}

func TestContextCancellationStopsWorkers(t *testing.T) {
	p := NewWorkerPool(2, 16)
	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)

	cancel()
	done := make(chan struct{}, 1)
	go func() {
		p.Close()
		done <- struct{}{}
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Close blocked after context cancellation")
	}
}
