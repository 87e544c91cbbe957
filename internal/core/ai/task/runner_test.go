package task

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunDeliversResult(t *testing.T) {
	done := make(chan struct{})
	Run(context.Background(), "ok", func(ctx context.Context) (string, error) {
		return "hello", nil
	}, func(result string, ok bool) {
		if !ok || result != "hello" {
			t.Errorf("expected hello/true, got %q/%v", result, ok)
		}
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("callback never delivered")
	}
}

func TestRunErrorDeliversZeroExactlyOnce(t *testing.T) {
	var calls int32
	done := make(chan struct{})
	Run(context.Background(), "fail", func(ctx context.Context) (*int, error) {
		return nil, errors.New("backend down")
	}, func(result *int, ok bool) {
		atomic.AddInt32(&calls, 1)
		if ok || result != nil {
			t.Errorf("failure must deliver nil/false, got %v/%v", result, ok)
		}
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("callback never delivered")
	}
	time.Sleep(50 * time.Millisecond)
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("callback fired %d times, want exactly 1", n)
	}
}

func TestRunPanicDoesNotEscape(t *testing.T) {
	done := make(chan struct{})
	Run(context.Background(), "panic", func(ctx context.Context) (int, error) {
		panic("boom")
	}, func(result int, ok bool) {
		if ok || result != 0 {
			t.Errorf("panic must deliver zero/false, got %v/%v", result, ok)
		}
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("callback never delivered after panic")
	}
}

func TestRunChainedComposes(t *testing.T) {
	done := make(chan struct{})
	RunChained(context.Background(), "chain",
		func(ctx context.Context) (int, error) { return 21, nil },
		func(ctx context.Context, n int) (int, error) { return n * 2, nil },
		func(result int, ok bool) {
			if !ok || result != 42 {
				t.Errorf("expected 42/true, got %d/%v", result, ok)
			}
			close(done)
		})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("callback never delivered")
	}
}

func TestRunChainedFirstFailureSkipsSecond(t *testing.T) {
	done := make(chan struct{})
	RunChained(context.Background(), "chain-fail",
		func(ctx context.Context) (int, error) { return 0, errors.New("first failed") },
		func(ctx context.Context, n int) (string, error) {
			t.Error("second stage must not run after first failure")
			return "", nil
		},
		func(result string, ok bool) {
			if ok || result != "" {
				t.Errorf("expected zero/false, got %q/%v", result, ok)
			}
			close(done)
		})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("callback never delivered")
	}
}
