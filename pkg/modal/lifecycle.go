package modal

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// VisualState is the presence of the dialog layer.
type VisualState int

const (
	// StateUnmounted means no dialog content exists.
	StateUnmounted VisualState = iota
	// StateOpen means the dialog is shown and interactive.
	StateOpen
	// StateClosed means the request is settled and the exit animation is
	// running. Content stays mounted until the animation ends.
	StateClosed
)

func (s VisualState) String() string {
	switch s {
	case StateUnmounted:
		return "unmounted"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Mounted reports whether content is present for this state.
func (s VisualState) Mounted() bool {
	return s != StateUnmounted
}

// edges lists the allowed transitions. open -> open is a replacement by a
// second open while the first is still showing.
var edges = map[VisualState][]VisualState{
	StateUnmounted: {StateOpen},
	StateOpen:      {StateOpen, StateClosed},
	StateClosed:    {StateUnmounted},
}

// Lifecycle is the unmounted -> open -> closed -> unmounted machine.
type Lifecycle struct {
	state VisualState
}

// State returns the current state.
func (l *Lifecycle) State() VisualState {
	return l.state
}

// CanTransition reports whether to is reachable from the current state.
func (l *Lifecycle) CanTransition(to VisualState) bool {
	for _, s := range edges[l.state] {
		if s == to {
			return true
		}
	}
	return false
}

func (l *Lifecycle) transition(to VisualState) error {
	if !l.CanTransition(to) {
		return &TransitionError{From: l.state, To: to}
	}
	l.state = to
	return nil
}

// Open mounts the dialog.
func (l *Lifecycle) Open() error {
	return l.transition(StateOpen)
}

// Close starts the exit phase.
func (l *Lifecycle) Close() error {
	return l.transition(StateClosed)
}

// Finish unmounts after the exit phase.
func (l *Lifecycle) Finish() error {
	return l.transition(StateUnmounted)
}

// Settle closes the dialog and, when reduced is set, finishes in the same
// call. It reports whether the dialog is now unmounted. Reduced motion only
// skips the wait; the machine still passes through StateClosed.
func (l *Lifecycle) Settle(reduced bool) (bool, error) {
	if err := l.Close(); err != nil {
		return false, err
	}
	if !reduced {
		return false, nil
	}
	if err := l.Finish(); err != nil {
		return false, err
	}
	return true, nil
}

// AnimationKind distinguishes the enter and exit animations.
type AnimationKind int

const (
	AnimationEnter AnimationKind = iota
	AnimationExit
)

func (k AnimationKind) String() string {
	if k == AnimationExit {
		return "exit"
	}
	return "enter"
}

// Default animation timing.
const (
	DefaultFrames        = 6
	DefaultFrameInterval = 16 * time.Millisecond
)

// animationFrameMsg advances an animation by one frame. gen ties the frame
// to the animation that scheduled it.
type animationFrameMsg struct {
	gen   int
	frame int
}

// Animation is a tick-driven frame counter.
type Animation struct {
	Frames   int
	Interval time.Duration

	kind    AnimationKind
	gen     int
	frame   int
	running bool
}

// NewAnimation returns an animation with the given timing. Non-positive
// values fall back to the defaults.
func NewAnimation(frames int, interval time.Duration) Animation {
	if frames <= 0 {
		frames = DefaultFrames
	}
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return Animation{Frames: frames, Interval: interval}
}

// Start begins an animation of the given kind and returns the first tick.
// Any frame still in flight from an earlier animation becomes stale.
func (a *Animation) Start(kind AnimationKind) tea.Cmd {
	a.gen++
	a.kind = kind
	a.frame = 0
	a.running = true
	return a.tick()
}

// Stop abandons the running animation.
func (a *Animation) Stop() {
	a.gen++
	a.running = false
	a.frame = 0
}

// Running reports whether an animation is in progress.
func (a *Animation) Running() bool { return a.running }

// Kind returns the kind of the current or last animation.
func (a *Animation) Kind() AnimationKind { return a.kind }

// Progress returns completion in [0, 1].
func (a *Animation) Progress() float64 {
	if !a.running {
		return 1
	}
	return float64(a.frame) / float64(a.Frames)
}

func (a *Animation) tick() tea.Cmd {
	gen, next := a.gen, a.frame+1
	return tea.Tick(a.Interval, func(time.Time) tea.Msg {
		return animationFrameMsg{gen: gen, frame: next}
	})
}

// advance applies a frame message. It returns the next tick while frames
// remain, and done=true exactly once when the last frame lands.
func (a *Animation) advance(msg animationFrameMsg) (cmd tea.Cmd, done bool) {
	if !a.running || msg.gen != a.gen {
		return nil, false
	}
	a.frame = msg.frame
	if a.frame >= a.Frames {
		a.running = false
		return nil, true
	}
	return a.tick(), false
}
