// Package promise provides a minimal pending computation used for
// non-blocking requests.
package promise

import (
	"context"
	"fmt"
)

// Promise holds a value of type T that becomes available once the
// underlying work completes. A Promise is resolved exactly once.
type Promise[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func newPromise[T any]() *Promise[T] {
	return &Promise[T]{done: make(chan struct{})}
}

// Go runs fn on its own goroutine and returns a Promise for its outcome.
// A panic inside fn rejects the promise instead of crashing the process.
func Go[T any](fn func() (T, error)) *Promise[T] {
	p := newPromise[T]()
	go func() {
		defer close(p.done)
		defer func() {
			if r := recover(); r != nil {
				p.err = fmt.Errorf("promise: panic: %v", r)
			}
		}()
		p.val, p.err = fn()
	}()
	return p
}

// Resolved returns an already fulfilled Promise.
func Resolved[T any](v T) *Promise[T] {
	p := newPromise[T]()
	p.val = v
	close(p.done)
	return p
}

// Rejected returns an already rejected Promise.
func Rejected[T any](err error) *Promise[T] {
	p := newPromise[T]()
	p.err = err
	close(p.done)
	return p
}

// Done is closed once the promise settles.
func (p *Promise[T]) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the promise settles or ctx is done. Cancelling ctx
// stops the wait only; the underlying work keeps running.
func (p *Promise[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.val, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Then chains handlers onto p. onOK receives the fulfilled value and onErr
// the rejection; whichever runs supplies the value of the returned promise.
// A panic in onOK is passed to onErr, so the returned promise is only
// rejected when onErr itself panics.
func Then[T, U any](p *Promise[T], onOK func(T) U, onErr func(error) U) *Promise[U] {
	return Go(func() (U, error) {
		<-p.done
		if p.err != nil {
			return onErr(p.err), nil
		}
		v, err := fulfil(p.val, onOK)
		if err != nil {
			return onErr(err), nil
		}
		return v, nil
	})
}

func fulfil[T, U any](v T, onOK func(T) U) (out U, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("promise: panic: %v", r)
		}
	}()
	return onOK(v), nil
}
