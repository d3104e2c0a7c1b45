package modal

import (
	"context"
	"sync"
	"sync/atomic"
)

// RenderFunc builds the content of one modal request. It is called once on
// the UI loop when the request is mounted.
type RenderFunc[T any] func(c Controls[T]) *Modal

// Controls settle the request that rendered them. Only the first call to
// Resolve or Cancel has an effect; later calls are silent no-ops. Call them
// from the UI loop (an action handler or a section update).
type Controls[T any] struct {
	r *Request
}

// Resolve fulfills the request with v.
func (c Controls[T]) Resolve(v T) {
	if c.r != nil {
		c.r.finish(v, true)
	}
}

// Cancel fulfills the request with no value.
func (c Controls[T]) Cancel() {
	if c.r != nil {
		c.r.finish(nil, false)
	}
}

var requestSeq atomic.Uint64

// Request is one in-flight modal interaction with its type erased so a
// single host can serve any payload type.
type Request struct {
	id      uint64
	render  func() *Modal
	fulfill func(v any, ok bool)
	settled atomic.Bool

	mu       sync.Mutex
	onSettle func(*Request)
}

func newRequest[T any](render RenderFunc[T]) (*Request, *Future[T]) {
	fut := newFuture[T]()
	r := &Request{id: requestSeq.Add(1)}
	r.render = func() *Modal { return render(Controls[T]{r: r}) }
	r.fulfill = func(v any, ok bool) {
		var val T
		if ok {
			val, _ = v.(T)
		}
		fut.fulfill(val, ok)
	}
	return r, fut
}

// ID identifies the request in logs.
func (r *Request) ID() uint64 { return r.id }

// Settled reports whether the request's future has been fulfilled.
func (r *Request) Settled() bool { return r.settled.Load() }

func (r *Request) bind(fn func(*Request)) {
	r.mu.Lock()
	r.onSettle = fn
	r.mu.Unlock()
}

// finish is the single gate shared by Resolve, Cancel and host-initiated
// dismissal. The future is fulfilled before the host is told, so callers
// observe the value before any unmount work starts.
func (r *Request) finish(v any, ok bool) bool {
	if !r.settled.CompareAndSwap(false, true) {
		return false
	}
	r.fulfill(v, ok)
	r.mu.Lock()
	fn := r.onSettle
	r.mu.Unlock()
	if fn != nil {
		fn(r)
	}
	return true
}

// Future is the pending result of a modal request.
type Future[T any] struct {
	done  chan struct{}
	once  sync.Once
	value T
	ok    bool
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// failedFuture returns a future that is already rejected with err.
func failedFuture[T any](err error) *Future[T] {
	f := newFuture[T]()
	f.reject(err)
	return f
}

func (f *Future[T]) fulfill(v T, ok bool) {
	f.once.Do(func() {
		f.value, f.ok = v, ok
		close(f.done)
	})
}

func (f *Future[T]) reject(err error) {
	f.once.Do(func() {
		f.err = err
		close(f.done)
	})
}

// Done is closed once the future is settled.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Settled reports whether the future has a result.
func (f *Future[T]) Settled() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Await blocks until the request settles or ctx ends. ok is false when the
// request was cancelled (button, Escape or backdrop click). err is non-nil
// only when no host was mounted or ctx ended first.
func (f *Future[T]) Await(ctx context.Context) (value T, ok bool, err error) {
	select {
	case <-f.done:
		return f.value, f.ok, f.err
	case <-ctx.Done():
		var zero T
		return zero, false, ctx.Err()
	}
}

// Result returns the outcome without blocking. err is ErrPending while the
// request is still open.
func (f *Future[T]) Result() (value T, ok bool, err error) {
	if !f.Settled() {
		var zero T
		return zero, false, ErrPending
	}
	return f.value, f.ok, f.err
}
