//go:build !integration

package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
)

func TestPoolRunsTasks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logger := zerolog.Nop()

	p := NewPool(3, &logger)
	p.Start(ctx)
	defer p.Stop()

	var done int64
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		task := func(context.Context) error {
			defer wg.Done()
			atomic.AddInt64(&done, 1)
			return nil
		}
		if err := p.Submit(ctx, task); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	wg.Wait()

	if got := atomic.LoadInt64(&done); got != 20 {
		t.Fatalf("ran %d tasks, want 20", got)
	}
}

func TestPoolSubmitNil(t *testing.T) {
	logger := zerolog.Nop()
	p := NewPool(1, &logger)
	if err := p.Submit(context.Background(), nil); err == nil {
		t.Fatal("want error for nil task")
	}
}

func TestPoolSubmitCancelledContext(t *testing.T) {
	logger := zerolog.Nop()
	// never started: the queue fills and Submit must give up with ctx
	p := NewPool(1, &logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	noop := func(context.Context) error { return nil }
	var err error
	for i := 0; i < cap(p.jobs)+1; i++ {
		if err = p.Submit(ctx, noop); err != nil {
			break
		}
	}
	if err != context.Canceled {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}
