package transport

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/aura-mf/bridge/core"
)

func TestLinearBackoffPolicy_ScalesWithAttempt(t *testing.T) {
	policy := LinearBackoffPolicy{Base: 250 * time.Millisecond}
	if got := policy.NextDelay(1); got != 250*time.Millisecond {
		t.Fatalf("expected base delay after attempt 1, got %s", got)
	}
	if got := policy.NextDelay(2); got != 500*time.Millisecond {
		t.Fatalf("expected 2x base delay after attempt 2, got %s", got)
	}
	if got := policy.NextDelay(3); got != 750*time.Millisecond {
		t.Fatalf("expected 3x base delay after attempt 3, got %s", got)
	}
}

func TestRetrier_SucceedsOnFirstAttemptWithoutSleeping(t *testing.T) {
	slept := []time.Duration{}
	retrier := NewRetrier(LinearBackoffPolicy{Base: time.Second}, 3)
	retrier.Sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	response, err := retrier.Run(context.Background(), func(context.Context, int) (core.TransportResponse, error) {
		return core.TransportResponse{StatusCode: 200}, nil
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if response.StatusCode != 200 {
		t.Fatalf("expected response from first attempt")
	}
	if len(slept) != 0 {
		t.Fatalf("expected no backoff sleeps, got %v", slept)
	}
}

func TestRetrier_AlwaysFailingRunsExactlyMaxAttempts(t *testing.T) {
	attempts := 0
	slept := []time.Duration{}
	base := 100 * time.Millisecond

	retrier := NewRetrier(LinearBackoffPolicy{Base: base}, 3)
	retrier.Sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	_, err := retrier.Run(context.Background(), func(_ context.Context, attempt int) (core.TransportResponse, error) {
		attempts++
		return core.TransportResponse{}, fmt.Errorf("HTTP 500: internal server error")
	})
	if err == nil {
		t.Fatalf("expected exhaustion error")
	}
	if attempts != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", attempts)
	}
	if len(slept) != 2 {
		t.Fatalf("expected 2 backoff sleeps, got %d", len(slept))
	}
	if slept[0] != base || slept[1] != 2*base {
		t.Fatalf("expected delays base then 2x base, got %v", slept)
	}
	if !IsExhausted(err) {
		t.Fatalf("expected retries-exhausted error, got %v", err)
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Message != "HTTP 500: internal server error" {
		t.Fatalf("expected last attempt message surfaced, got %q", rich.Message)
	}
	if rich.Metadata["attempts"] != 3 {
		t.Fatalf("expected attempts metadata, got %v", rich.Metadata["attempts"])
	}
}

func TestRetrier_RecoversAfterTransientFailure(t *testing.T) {
	attempts := 0
	retrier := NewRetrier(LinearBackoffPolicy{Base: time.Millisecond}, 3)
	retrier.Sleep = func(context.Context, time.Duration) error { return nil }

	response, err := retrier.Run(context.Background(), func(_ context.Context, attempt int) (core.TransportResponse, error) {
		attempts++
		if attempt < 3 {
			return core.TransportResponse{}, errors.New("connection reset")
		}
		return core.TransportResponse{StatusCode: 200, Decoded: map[string]any{"status": "ok"}}, nil
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected success on third attempt, got %d attempts", attempts)
	}
	if response.Decoded["status"] != "ok" {
		t.Fatalf("expected decoded body from successful attempt")
	}
}

func TestRetrier_ObserverSeesStateMachineTransitions(t *testing.T) {
	transitions := []Transition{}
	retrier := NewRetrier(LinearBackoffPolicy{Base: time.Millisecond}, 2)
	retrier.Sleep = func(context.Context, time.Duration) error { return nil }
	retrier.Observer = func(transition Transition) {
		transitions = append(transitions, transition)
	}

	_, err := retrier.Run(context.Background(), func(context.Context, int) (core.TransportResponse, error) {
		return core.TransportResponse{}, errors.New("boom")
	})
	if err == nil {
		t.Fatalf("expected exhaustion error")
	}
	if len(transitions) != 2 {
		t.Fatalf("expected 2 transitions, got %d", len(transitions))
	}
	if transitions[0].To != AttemptStateRetry || transitions[0].Attempt != 1 {
		t.Fatalf("expected attempt 1 to transition to retry, got %+v", transitions[0])
	}
	if transitions[1].To != AttemptStateExhausted || transitions[1].Attempt != 2 {
		t.Fatalf("expected attempt 2 to transition to exhausted, got %+v", transitions[1])
	}
}

func TestRetrier_AttemptTimeoutDoesNotCancelLogicalRequest(t *testing.T) {
	attempts := 0
	retrier := NewRetrier(LinearBackoffPolicy{Base: time.Millisecond}, 2)
	retrier.Sleep = func(context.Context, time.Duration) error { return nil }

	response, err := retrier.Run(context.Background(), func(_ context.Context, attempt int) (core.TransportResponse, error) {
		attempts++
		if attempt == 1 {
			return core.TransportResponse{}, context.DeadlineExceeded
		}
		return core.TransportResponse{StatusCode: 200}, nil
	})
	if err != nil {
		t.Fatalf("expected retry after attempt timeout, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
	if response.StatusCode != 200 {
		t.Fatalf("expected second attempt response")
	}
}

func TestRetrier_ParentCancellationStopsLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	retrier := NewRetrier(LinearBackoffPolicy{Base: time.Millisecond}, 3)
	_, err := retrier.Run(ctx, func(context.Context, int) (core.TransportResponse, error) {
		attempts++
		return core.TransportResponse{}, errors.New("boom")
	})
	if err == nil {
		t.Fatalf("expected cancellation error")
	}
	if attempts != 0 {
		t.Fatalf("expected no attempts after parent cancellation, got %d", attempts)
	}
}
