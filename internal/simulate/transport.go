// Package simulate wraps store access with artificial latency and injected
// failures so callers can exercise slow and flaky backends.
package simulate

import (
	"context"
	"log/slog"
	"time"
)

// Transport applies delay and the failure policy to every call.
type Transport struct {
	policy Policy
	delays Delays
	logger *slog.Logger
}

// New creates a transport. A nil policy never fails; nil delays disable latency.
func New(policy Policy, delays Delays, logger *slog.Logger) *Transport {
	if policy == nil {
		policy = Fixed(false)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Transport{policy: policy, delays: delays, logger: logger}
}

// Policy returns the failure policy in use.
func (t *Transport) Policy() Policy {
	return t.policy
}

// Run waits the delay configured for op, draws the policy and runs fn unless
// the draw fails. Cancelling ctx aborts the wait; once fn starts it completes.
func (t *Transport) Run(ctx context.Context, op string, fn func() error) error {
	if err := t.wait(ctx, op); err != nil {
		return err
	}
	if t.policy.ShouldFail(op) {
		t.logger.Debug("simulated failure", "op", op)
		return &TransientError{Op: op, Code: CodeFor(op)}
	}
	return fn()
}

// Call is Run for functions returning a value.
func Call[T any](ctx context.Context, t *Transport, op string, fn func() (T, error)) (T, error) {
	var out T
	err := t.Run(ctx, op, func() error {
		var err error
		out, err = fn()
		return err
	})
	return out, err
}

func (t *Transport) wait(ctx context.Context, op string) error {
	d := t.delays[op]
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
