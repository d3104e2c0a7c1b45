package modal

import "sync"

// OpenFunc delivers a request to a mounted host.
type OpenFunc func(r *Request)

// The process-wide open capability. One live host is supported; mounting a
// second host replaces the first registration.
var external struct {
	mu   sync.RWMutex
	open OpenFunc
}

// SetExternalOpen registers fn as the process-wide open capability. Pass nil
// to unregister.
func SetExternalOpen(fn OpenFunc) {
	external.mu.Lock()
	external.open = fn
	external.mu.Unlock()
}

// ExternalOpenRegistered reports whether a host is registered.
func ExternalOpenRegistered() bool {
	external.mu.RLock()
	defer external.mu.RUnlock()
	return external.open != nil
}

// OpenWithRender opens a modal on the registered host from any goroutine.
// Without a mounted host the returned future is already rejected with
// ErrHostNotMounted.
func OpenWithRender[T any](render RenderFunc[T]) *Future[T] {
	external.mu.RLock()
	open := external.open
	external.mu.RUnlock()
	if open == nil {
		return failedFuture[T](ErrHostNotMounted)
	}
	r, fut := newRequest(render)
	open(r)
	return fut
}
