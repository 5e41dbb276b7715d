package async

import "context"

// Future is the handle of a Single started on its own goroutine.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the result is available or ctx ends. An expired ctx
// stops the wait only; the computation keeps running with the context it
// was started with.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
