package syncqueue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fatalErr struct{}

func (fatalErr) Error() string       { return "rejected" }
func (fatalErr) Irrecoverable() bool { return true }

func TestExecutor_FIFOPerKey(t *testing.T) {
	t.Parallel()
	e := New(Config{Shards: 1, QueueSize: 64})
	defer e.Stop()

	var mu sync.Mutex
	var got []int
	for i := 0; i < 20; i++ {
		i := i
		err := e.Submit(context.Background(), "k", JobFunc(func(context.Context) error {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
			return nil
		}))
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}
	if err := e.Flush(context.Background(), "k"); err != nil {
		t.Fatalf("flush: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(got) != 20 {
		t.Fatalf("ran %d jobs, want 20", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("order broken at %d: %v", i, got)
		}
	}
}

func TestExecutor_RetriesRecoverable(t *testing.T) {
	t.Parallel()
	e := New(Config{Shards: 1, BaseBackoff: time.Millisecond, MaxAttempts: 4})
	defer e.Stop()

	var attempts int32
	err := e.Submit(context.Background(), "k", JobFunc(func(context.Context) error {
		if atomic.AddInt32(&attempts, 1) < 3 {
			return errors.New("transient")
		}
		return nil
	}))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := e.Flush(context.Background(), "k"); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if n := atomic.LoadInt32(&attempts); n != 3 {
		t.Fatalf("attempts = %d, want 3", n)
	}
}

func TestExecutor_NoRetryOnIrrecoverable(t *testing.T) {
	t.Parallel()
	var handled atomic.Value
	e := New(Config{
		Shards:       1,
		BaseBackoff:  time.Millisecond,
		ErrorHandler: func(err error) { handled.Store(err) },
	})
	defer e.Stop()

	var attempts int32
	err := e.Submit(context.Background(), "k", JobFunc(func(context.Context) error {
		atomic.AddInt32(&attempts, 1)
		return fatalErr{}
	}))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := e.Flush(context.Background(), "k"); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if n := atomic.LoadInt32(&attempts); n != 1 {
		t.Fatalf("attempts = %d, want 1", n)
	}
	got, _ := handled.Load().(error)
	var fe fatalErr
	if !errors.As(got, &fe) {
		t.Fatalf("handler got %v", got)
	}
}

func TestExecutor_SubmitAfterStop(t *testing.T) {
	t.Parallel()
	e := New(Config{Shards: 1})
	e.Stop()
	err := e.Submit(context.Background(), "k", JobFunc(func(context.Context) error { return nil }))
	if !errors.Is(err, ErrExecutorClosed) {
		t.Fatalf("err = %v, want ErrExecutorClosed", err)
	}
	e.Stop() // idempotent
}

func TestExecutor_QueueFull(t *testing.T) {
	t.Parallel()
	e := New(Config{Shards: 1, QueueSize: 1, EnqueueTimeout: 10 * time.Millisecond})
	defer e.Stop()

	release := make(chan struct{})
	blocker := JobFunc(func(context.Context) error { <-release; return nil })
	if err := e.Submit(context.Background(), "k", blocker); err != nil {
		t.Fatalf("blocker: %v", err)
	}
	// Give the worker time to pick up the blocker, then fill the queue.
	time.Sleep(20 * time.Millisecond)
	if err := e.Submit(context.Background(), "k", JobFunc(func(context.Context) error { return nil })); err != nil {
		t.Fatalf("fill: %v", err)
	}

	err := e.Submit(context.Background(), "k", JobFunc(func(context.Context) error { return nil }))
	if !errors.Is(err, ErrQueueFull) {
		t.Fatalf("err = %v, want ErrQueueFull", err)
	}
	var qf *QueueFullError
	if !errors.As(err, &qf) || qf.Capacity != 1 {
		t.Fatalf("queue-full detail = %+v", qf)
	}
	close(release)
}

func TestExecutor_CancelledSubmitContext(t *testing.T) {
	t.Parallel()
	e := New(Config{Shards: 1, QueueSize: 1, EnqueueTimeout: time.Second})
	defer e.Stop()

	release := make(chan struct{})
	defer close(release)
	_ = e.Submit(context.Background(), "k", JobFunc(func(context.Context) error { <-release; return nil }))
	time.Sleep(20 * time.Millisecond)
	_ = e.Submit(context.Background(), "k", JobFunc(func(context.Context) error { return nil }))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := e.Submit(ctx, "k", JobFunc(func(context.Context) error { return nil }))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Shards != 2 || cfg.QueueSize != 128 || cfg.MaxAttempts != 4 {
		t.Fatalf("defaults = %+v", cfg)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SQ_SHARDS", "5")
	t.Setenv("SQ_ENQUEUE_TIMEOUT", "250ms")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Shards != 5 || cfg.EnqueueTimeout != 250*time.Millisecond {
		t.Fatalf("overrides = %+v", cfg)
	}
}
