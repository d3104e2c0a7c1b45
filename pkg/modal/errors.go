package modal

import (
	"errors"
	"fmt"
)

// ErrHostNotMounted is returned by futures created through OpenWithRender
// while no host is registered.
var ErrHostNotMounted = errors.New("modal: host not mounted")

// ErrPending is returned by Future.Result before the request settles.
var ErrPending = errors.New("modal: request pending")

// TransitionError reports a visual lifecycle edge that is not allowed.
type TransitionError struct {
	From VisualState
	To   VisualState
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("modal: invalid transition %s -> %s", e.From, e.To)
}
