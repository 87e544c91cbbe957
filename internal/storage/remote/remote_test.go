package remote

import (
	"context"
	"errors"
	"testing"

	"home-assistant/internal/pkg/common"
)

func TestWithRetryStopsOnPermanentError(t *testing.T) {
	calls := 0
	permanent := errors.New("syntax error")
	err := withRetry(context.Background(), "op", func() error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) {
		t.Fatalf("expected the permanent error back, got %v", err)
	}
	if calls != 1 {
		t.Errorf("permanent error must not be retried, calls=%d", calls)
	}
}

func TestWithRetryExhaustionWrapsStoreUnavailable(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), "op", func() error {
		calls++
		return errors.New("connection refused")
	})
	if calls != retryAttempts {
		t.Errorf("expected %d attempts, got %d", retryAttempts, calls)
	}

	var cerr *common.CustomError
	if !errors.As(err, &cerr) || cerr.Code != common.ErrStoreUnavailable.Code {
		t.Fatalf("expected STORE_UNAVAILABLE after exhaustion, got %v", err)
	}
}

func TestWithRetryRecoversAfterTransientError(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), "op", func() error {
		calls++
		if calls == 1 {
			return errors.New("broken pipe")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected recovery, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 attempts, got %d", calls)
	}
}
