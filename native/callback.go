package native

import (
	"context"
	"fmt"
	"sync"

	"github.com/jrsteele09/go-kin-bridge/kinerrors"
)

// Callback is the native two-branch completion idiom.
type Callback[T any] interface {
	OnResponse(value T)
	OnFailure(err error)
}

// CallbackFuncs adapts a pair of functions to Callback.
type CallbackFuncs[T any] struct {
	Response func(T)
	Failure  func(error)
}

func (c CallbackFuncs[T]) OnResponse(value T) {
	if c.Response != nil {
		c.Response(value)
	}
}

func (c CallbackFuncs[T]) OnFailure(err error) {
	if c.Failure != nil {
		c.Failure(err)
	}
}

type outcome[T any] struct {
	value T
	err   error
}

// settler delivers the first outcome it receives and drops the rest.
type settler[T any] struct {
	once sync.Once
	ch   chan outcome[T]
}

func newSettler[T any]() *settler[T] {
	return &settler[T]{ch: make(chan outcome[T], 1)}
}

func (s *settler[T]) settle(o outcome[T]) {
	s.once.Do(func() {
		s.ch <- o
	})
}

func (s *settler[T]) OnResponse(value T) {
	s.settle(outcome[T]{value: value})
}

func (s *settler[T]) OnFailure(err error) {
	if err == nil {
		err = fmt.Errorf("native call failed without an error")
	}
	s.settle(outcome[T]{err: kinerrors.Wrap(kinerrors.NativeOperation, err, "")})
}

// Settle issues a native call and waits for its single outcome. A synchronous error or panic
// from issue is reported through the same path as a later OnFailure. When ctx ends first the
// native call keeps running but its outcome is discarded.
func Settle[T any](ctx context.Context, issue func(Callback[T]) error) (T, error) {
	s := newSettler[T]()

	func() {
		defer func() {
			if r := recover(); r != nil {
				s.OnFailure(fmt.Errorf("native call panicked: %v", r))
			}
		}()
		if err := issue(s); err != nil {
			s.OnFailure(err)
		}
	}()

	select {
	case o := <-s.ch:
		return o.value, o.err
	case <-ctx.Done():
		var zero T
		return zero, kinerrors.Wrap(kinerrors.NativeOperation, ctx.Err(), "native call abandoned")
	}
}
