package infrastructure

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestWorkerPool_RunsEveryTask(t *testing.T) {
	wp := NewWorkerPool(context.Background(), 4)
	wp.Start()

	var done int64
	for i := 0; i < 100; i++ {
		if err := wp.Submit(func(ctx context.Context) error {
			atomic.AddInt64(&done, 1)
			return nil
		}); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	if err := wp.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if done != 100 {
		t.Errorf("expected 100 tasks, got %d", done)
	}
}

func TestWorkerPool_KeepsAllErrors(t *testing.T) {
	errA := errors.New("a")
	errB := errors.New("b")

	wp := NewWorkerPool(context.Background(), 1)
	wp.Start()
	_ = wp.Submit(func(context.Context) error { return errA })
	_ = wp.Submit(func(context.Context) error { return nil })
	_ = wp.Submit(func(context.Context) error { return errB })

	err := wp.Wait()
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("expected both errors, got %v", err)
	}
}

func TestWorkerPool_SubmitAfterWait(t *testing.T) {
	wp := NewWorkerPool(context.Background(), 2)
	wp.Start()
	_ = wp.Wait()

	if err := wp.Submit(func(context.Context) error { return nil }); !errors.Is(err, ErrPoolStopped) {
		t.Errorf("expected ErrPoolStopped, got %v", err)
	}
	if err := wp.Wait(); err != nil {
		t.Errorf("second Wait must be a no-op, got %v", err)
	}
}

func TestWorkerPool_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	wp := NewWorkerPool(ctx, 2)
	wp.Start()

	if err := wp.Submit(func(context.Context) error { return nil }); !errors.Is(err, ErrPoolStopped) {
		t.Errorf("expected ErrPoolStopped on cancelled context, got %v", err)
	}
	_ = wp.Wait()
}

func TestWorkerPool_MinimumOneWorker(t *testing.T) {
	wp := NewWorkerPool(context.Background(), 0)
	wp.Start()

	var ran int64
	_ = wp.Submit(func(context.Context) error {
		atomic.StoreInt64(&ran, 1)
		return nil
	})
	if err := wp.Wait(); err != nil {
		t.Fatal(err)
	}
	if ran != 1 {
		t.Error("task did not run with a zero worker count")
	}
}

// BenchmarkWorkerPool_4Workers 4 workers, tâches rapides
func BenchmarkWorkerPool_4Workers(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		wp := NewWorkerPool(context.Background(), 4)
		wp.Start()
		for j := 0; j < 100; j++ {
			_ = wp.Submit(func(context.Context) error { return nil })
		}
		_ = wp.Wait()
	}
}
