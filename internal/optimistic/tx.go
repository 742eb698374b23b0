// Package optimistic applies a change before the backend confirms it and
// restores the previous value when the backend refuses.
package optimistic

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// State is the phase of a Tx.
type State int

const (
	Idle State = iota
	Pending
	Committed
	RolledBack
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Committed:
		return "committed"
	case RolledBack:
		return "rolled-back"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrPending is returned by Begin while a change is in flight.
	ErrPending = errors.New("optimistic change already pending")
	// ErrNotPending is returned by Commit and Rollback outside Pending.
	ErrNotPending = errors.New("no optimistic change pending")
)

// Tx tracks one optimistic change of a value of type S. A finished Tx can
// begin again.
type Tx[S any] struct {
	mu       sync.Mutex
	state    State
	snapshot S
	err      error
}

// State returns the current phase.
func (tx *Tx[S]) State() State {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	return tx.state
}

// Err returns the error that caused the last rollback.
func (tx *Tx[S]) Err() error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	return tx.err
}

// Begin records current as the value to restore on failure.
func (tx *Tx[S]) Begin(current S) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	if tx.state == Pending {
		return ErrPending
	}
	tx.state = Pending
	tx.snapshot = current
	tx.err = nil
	return nil
}

// Commit keeps the tentative value.
func (tx *Tx[S]) Commit() error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	if tx.state != Pending {
		return ErrNotPending
	}
	tx.state = Committed
	var zero S
	tx.snapshot = zero
	return nil
}

// Rollback returns the snapshot taken by Begin.
func (tx *Tx[S]) Rollback(cause error) (S, error) {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	var zero S
	if tx.state != Pending {
		return zero, ErrNotPending
	}
	snapshot := tx.snapshot
	tx.state = RolledBack
	tx.snapshot = zero
	tx.err = cause
	return snapshot, nil
}

// Do runs one optimistic change: it snapshots current, publishes
// change(current) through set, then calls invoke. On failure the snapshot is
// published again and invoke's error returned.
func Do[S any](ctx context.Context, tx *Tx[S], current S, change func(S) S, set func(S), invoke func(context.Context) error) error {
	if err := tx.Begin(current); err != nil {
		return err
	}
	set(change(current))

	if err := invoke(ctx); err != nil {
		snapshot, rbErr := tx.Rollback(err)
		if rbErr != nil {
			return errors.Join(err, rbErr)
		}
		set(snapshot)
		return err
	}
	return tx.Commit()
}
