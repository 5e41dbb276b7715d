// Package async provides deferred result types for store operations that
// callers may run inline or hand off to another goroutine.
package async

import (
	"context"
	"errors"
)

var ErrNilSingle = errors.New("async: single has no computation")

// Single is a deferred computation that yields one value or an error.
// Nothing runs until Await or Start is called, and every call runs the
// computation again.
type Single[T any] struct {
	run func(ctx context.Context) (T, error)
}

// Completable is a Single that carries no value.
type Completable = Single[struct{}]

// New wraps fn as a Single.
func New[T any](fn func(ctx context.Context) (T, error)) Single[T] {
	return Single[T]{run: fn}
}

// Just returns a Single that always yields v.
func Just[T any](v T) Single[T] {
	return New(func(context.Context) (T, error) { return v, nil })
}

// Fail returns a Single that always yields err.
func Fail[T any](err error) Single[T] {
	return New(func(context.Context) (T, error) {
		var zero T
		return zero, err
	})
}

// Complete wraps fn as a Completable.
func Complete(fn func(ctx context.Context) error) Completable {
	return New(func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
}

// Await runs the computation on the calling goroutine.
func (s Single[T]) Await(ctx context.Context) (T, error) {
	var zero T
	if s.run == nil {
		return zero, ErrNilSingle
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	return s.run(ctx)
}

// Start runs the computation on a new goroutine.
func (s Single[T]) Start(ctx context.Context) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.val, f.err = s.Await(ctx)
	}()
	return f
}

// Map transforms the value of s once it resolves.
func Map[T, U any](s Single[T], fn func(T) U) Single[U] {
	return New(func(ctx context.Context) (U, error) {
		v, err := s.Await(ctx)
		if err != nil {
			var zero U
			return zero, err
		}
		return fn(v), nil
	})
}

// FlatMap chains a second Single that depends on the value of s.
func FlatMap[T, U any](s Single[T], fn func(T) Single[U]) Single[U] {
	return New(func(ctx context.Context) (U, error) {
		v, err := s.Await(ctx)
		if err != nil {
			var zero U
			return zero, err
		}
		return fn(v).Await(ctx)
	})
}
