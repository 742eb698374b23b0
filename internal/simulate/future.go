package simulate

import "context"

// Future is the pending result of an asynchronous simulated call.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Go starts fn through the transport on its own goroutine. Overlapping calls
// are independent; nothing orders their completion.
func Go[T any](ctx context.Context, t *Transport, op string, fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.val, f.err = Call(ctx, t, op, fn)
	}()
	return f
}

// Done is closed once the call has finished.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the call finishes or ctx is done. Giving up does not
// cancel the call.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
