package modal

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"
)

// Container is a focus trap boundary: the dialog and everything rendered
// inside it.
type Container interface {
	// ContainerID is the ID focus falls back to when nothing inside the
	// container can take it.
	ContainerID() string
	// Targets returns every candidate in document order, unfiltered.
	Targets() []FocusableInfo
}

// Focusable reports whether a target takes part in tab order.
func (f FocusableInfo) Focusable() bool {
	return f.ID != "" && !f.Disabled && !f.Hidden && f.TabIndex >= 0
}

// Focusables returns the tab order of c: positive tab indexes ascending,
// then tab index zero, each group in document order. It is recomputed on
// every call because content may change between keystrokes.
func Focusables(c Container) []FocusableInfo {
	var positive, natural []FocusableInfo
	for _, t := range c.Targets() {
		if !t.Focusable() {
			continue
		}
		if t.TabIndex > 0 {
			positive = append(positive, t)
		} else {
			natural = append(natural, t)
		}
	}
	slices.SortStableFunc(positive, func(a, b FocusableInfo) int {
		return a.TabIndex - b.TabIndex
	})
	return append(positive, natural...)
}

// IsFocusable reports whether id is currently in the tab order of c.
func IsFocusable(c Container, id string) bool {
	return slices.ContainsFunc(Focusables(c), func(f FocusableInfo) bool { return f.ID == id })
}

// Decision is the outcome of running a key through the trap.
type Decision struct {
	// Handled means the key must not be processed further.
	Handled bool
	// Focus is the ID that should hold focus after the key. Empty when the
	// key does not affect focus.
	Focus string
	// Dismiss requests cancellation of the modal request.
	Dismiss bool
}

// Trap applies the focus trap policy to a keydown. current is the ID that
// holds focus, which may be the container itself.
func Trap(c Container, current string, key tea.KeyMsg) Decision {
	switch key.String() {
	case "esc":
		return Decision{Handled: true, Dismiss: true}
	case "tab":
		return Decision{Handled: true, Focus: cycle(c, current, true)}
	case "shift+tab":
		return Decision{Handled: true, Focus: cycle(c, current, false)}
	}
	return Decision{}
}

func cycle(c Container, current string, forward bool) string {
	targets := Focusables(c)
	if len(targets) == 0 {
		return c.ContainerID()
	}
	first, last := targets[0].ID, targets[len(targets)-1].ID

	idx := slices.IndexFunc(targets, func(f FocusableInfo) bool { return f.ID == current })
	if forward {
		if idx < 0 || current == last {
			return first
		}
		return targets[idx+1].ID
	}
	if idx <= 0 {
		// First element, the container itself, or focus lost.
		return last
	}
	return targets[idx-1].ID
}
