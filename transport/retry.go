package transport

import (
	"context"
	"net/http"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/aura-mf/bridge/core"
)

const defaultMaxAttempts = 3
const defaultBackoffBase = time.Second

type AttemptState string

const (
	AttemptStateAttempting AttemptState = "attempting"
	AttemptStateRetry      AttemptState = "retry"
	AttemptStateSuccess    AttemptState = "success"
	AttemptStateExhausted  AttemptState = "exhausted"
)

type Transition struct {
	Attempt int
	From    AttemptState
	To      AttemptState
	Delay   time.Duration
	Err     error
}

type AttemptFunc func(ctx context.Context, attempt int) (core.TransportResponse, error)

type RetryPolicy interface {
	NextDelay(attempt int) time.Duration
}

// LinearBackoffPolicy waits Base×k between attempt k and attempt k+1, so a
// three-attempt run sleeps Base, then 2×Base.
type LinearBackoffPolicy struct {
	Base time.Duration
}

func (p LinearBackoffPolicy) NextDelay(attempt int) time.Duration {
	base := p.Base
	if base <= 0 {
		base = defaultBackoffBase
	}
	if attempt < 1 {
		attempt = 1
	}
	return base * time.Duration(attempt)
}

// Retrier drives the per-request attempt state machine:
// attempting -> success, or attempting -> retry -> attempting, and after the
// bound attempting -> exhausted. It is decoupled from I/O through AttemptFunc
// so the loop is testable without a network.
type Retrier struct {
	Policy      RetryPolicy
	MaxAttempts int
	Sleep       func(ctx context.Context, d time.Duration) error
	Observer    func(transition Transition)
}

func NewRetrier(policy RetryPolicy, maxAttempts int) *Retrier {
	return &Retrier{
		Policy:      policy,
		MaxAttempts: maxAttempts,
		Sleep:       sleepContext,
	}
}

// Run executes fn up to MaxAttempts times. An attempt timeout aborts only
// that attempt; the logical request proceeds to retry or exhaustion. Only
// cancellation of the parent ctx stops the loop early.
func (r *Retrier) Run(ctx context.Context, fn AttemptFunc) (core.TransportResponse, error) {
	if fn == nil {
		return core.TransportResponse{}, transportError(
			"transport: attempt func is required",
			goerrors.CategoryInternal,
			http.StatusInternalServerError,
			nil,
		)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	maxAttempts := r.maxAttempts()
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return core.TransportResponse{}, transportWrapError(
				err,
				goerrors.CategoryOperation,
				"transport: request cancelled",
				http.StatusBadGateway,
				map[string]any{"attempt": attempt},
			)
		}

		response, err := fn(ctx, attempt)
		if err == nil {
			r.observe(Transition{Attempt: attempt, From: AttemptStateAttempting, To: AttemptStateSuccess})
			return response, nil
		}
		lastErr = err

		if attempt == maxAttempts {
			r.observe(Transition{Attempt: attempt, From: AttemptStateAttempting, To: AttemptStateExhausted, Err: err})
			break
		}

		delay := r.policy().NextDelay(attempt)
		r.observe(Transition{Attempt: attempt, From: AttemptStateAttempting, To: AttemptStateRetry, Delay: delay, Err: err})
		if sleepErr := r.sleep(ctx, delay); sleepErr != nil {
			return core.TransportResponse{}, transportWrapError(
				sleepErr,
				goerrors.CategoryOperation,
				"transport: request cancelled during backoff",
				http.StatusBadGateway,
				map[string]any{"attempt": attempt},
			)
		}
	}

	return core.TransportResponse{}, exhaustedError(maxAttempts, lastErr)
}

// The surfaced message is the last attempt's own message so callers can relay
// it verbatim in the error response.
func exhaustedError(attempts int, last error) error {
	message := "transport: attempts exhausted"
	if last != nil {
		var rich *goerrors.Error
		if goerrors.As(last, &rich) && strings.TrimSpace(rich.Message) != "" {
			message = rich.Message
		} else {
			message = last.Error()
		}
	}
	return goerrors.Wrap(last, goerrors.CategoryExternal, message).
		WithCode(http.StatusBadGateway).
		WithTextCode(core.BridgeErrorRetriesExhausted).
		WithMetadata(map[string]any{"attempts": attempts})
}

// IsExhausted reports whether err is the terminal retries-exhausted failure.
func IsExhausted(err error) bool {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return false
	}
	return rich.TextCode == core.BridgeErrorRetriesExhausted
}

func (r *Retrier) maxAttempts() int {
	if r != nil && r.MaxAttempts > 0 {
		return r.MaxAttempts
	}
	return defaultMaxAttempts
}

func (r *Retrier) policy() RetryPolicy {
	if r != nil && r.Policy != nil {
		return r.Policy
	}
	return LinearBackoffPolicy{}
}

func (r *Retrier) sleep(ctx context.Context, d time.Duration) error {
	sleep := sleepContext
	if r != nil && r.Sleep != nil {
		sleep = r.Sleep
	}
	return sleep(ctx, d)
}

func (r *Retrier) observe(transition Transition) {
	if r == nil || r.Observer == nil {
		return
	}
	r.Observer(transition)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
