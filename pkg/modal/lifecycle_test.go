package modal

import (
	"errors"
	"testing"
	"time"
)

func TestLifecycleTransitions(t *testing.T) {
	tests := []struct {
		from VisualState
		to   VisualState
		ok   bool
	}{
		{StateUnmounted, StateOpen, true},
		{StateUnmounted, StateClosed, false},
		{StateOpen, StateClosed, true},
		{StateOpen, StateOpen, true},
		{StateOpen, StateUnmounted, false},
		{StateClosed, StateUnmounted, true},
		{StateClosed, StateOpen, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			l := Lifecycle{state: tt.from}
			err := l.transition(tt.to)
			if tt.ok {
				if err != nil {
					t.Fatalf("transition error: %v", err)
				}
				if l.State() != tt.to {
					t.Errorf("State() = %v, want %v", l.State(), tt.to)
				}
				return
			}
			var te *TransitionError
			if !errors.As(err, &te) {
				t.Fatalf("err = %v, want *TransitionError", err)
			}
			if l.State() != tt.from {
				t.Errorf("state changed on rejected transition: %v", l.State())
			}
		})
	}
}

func TestLifecycleSettle(t *testing.T) {
	var l Lifecycle
	if err := l.Open(); err != nil {
		t.Fatal(err)
	}
	unmounted, err := l.Settle(false)
	if err != nil || unmounted || l.State() != StateClosed {
		t.Fatalf("Settle(false) = %v, %v; state %v", unmounted, err, l.State())
	}
	if err := l.Finish(); err != nil {
		t.Fatal(err)
	}

	if err := l.Open(); err != nil {
		t.Fatal(err)
	}
	unmounted, err = l.Settle(true)
	if err != nil || !unmounted || l.State() != StateUnmounted {
		t.Fatalf("Settle(true) = %v, %v; state %v", unmounted, err, l.State())
	}

	if _, err := l.Settle(true); err == nil {
		t.Error("Settle from unmounted should fail")
	}
}

func TestVisualStateMounted(t *testing.T) {
	if StateUnmounted.Mounted() {
		t.Error("unmounted reports mounted")
	}
	if !StateOpen.Mounted() || !StateClosed.Mounted() {
		t.Error("open and closed should be mounted")
	}
}

func TestAnimationAdvance(t *testing.T) {
	a := NewAnimation(3, time.Millisecond)
	if a.Start(AnimationExit) == nil {
		t.Fatal("Start returned no tick")
	}
	gen := a.gen

	for frame := 1; frame < 3; frame++ {
		cmd, done := a.advance(animationFrameMsg{gen: gen, frame: frame})
		if done || cmd == nil {
			t.Fatalf("frame %d: done=%v cmd=%v", frame, done, cmd != nil)
		}
	}
	if _, done := a.advance(animationFrameMsg{gen: gen, frame: 3}); !done {
		t.Fatal("last frame did not finish the animation")
	}
	if a.Running() {
		t.Error("Running() after last frame")
	}
	if _, done := a.advance(animationFrameMsg{gen: gen, frame: 3}); done {
		t.Error("finished twice")
	}
}

func TestAnimationIgnoresStaleFrames(t *testing.T) {
	a := NewAnimation(2, time.Millisecond)
	a.Start(AnimationEnter)
	stale := a.gen
	a.Start(AnimationExit)

	if cmd, done := a.advance(animationFrameMsg{gen: stale, frame: 2}); cmd != nil || done {
		t.Error("stale frame advanced the animation")
	}
	a.Stop()
	if _, done := a.advance(animationFrameMsg{gen: a.gen, frame: 2}); done {
		t.Error("stopped animation finished")
	}
	if a.Progress() != 1 {
		t.Errorf("Progress() = %v after stop, want 1", a.Progress())
	}
}

func TestNewAnimationDefaults(t *testing.T) {
	a := NewAnimation(0, 0)
	if a.Frames != DefaultFrames || a.Interval != DefaultFrameInterval {
		t.Errorf("NewAnimation(0, 0) = %d, %v", a.Frames, a.Interval)
	}
}
