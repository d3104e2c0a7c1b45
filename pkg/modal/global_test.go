package modal

import (
	"errors"
	"testing"
)

func TestOpenWithRenderWithoutHost(t *testing.T) {
	SetExternalOpen(nil)
	if ExternalOpenRegistered() {
		t.Fatal("registration left over from another test")
	}

	fut := OpenWithRender(func(c Controls[string]) *Modal { return New("x") })
	_, ok, err := fut.Result()
	if !errors.Is(err, ErrHostNotMounted) || ok {
		t.Errorf("Result() ok=%v err=%v, want ErrHostNotMounted", ok, err)
	}
}

func TestOpenWithRenderUsesMountedHost(t *testing.T) {
	h, _, l := newTestHost(t)
	if !ExternalOpenRegistered() {
		t.Fatal("Mount did not register the host")
	}

	fut := OpenWithRender(confirmRender)
	l.pump()
	if h.State() != StateOpen {
		t.Fatalf("State() = %v, want open", h.State())
	}
	l.send(keyEnter)
	if v, ok, _ := fut.Result(); !ok || v != "yes" {
		t.Errorf("Result() = %q, %v; want yes", v, ok)
	}

	h.Unmount()
	if ExternalOpenRegistered() {
		t.Error("Unmount left the registration in place")
	}
}

func TestLastRegistrationWins(t *testing.T) {
	first, _, l1 := newTestHost(t)
	second, _, l2 := newTestHost(t)

	OpenWithRender(confirmRender)
	l1.pump()
	l2.pump()

	if first.Active() {
		t.Error("request went to the first host")
	}
	if !second.Active() {
		t.Error("request did not reach the most recent host")
	}
}

func TestSetExternalOpenCustom(t *testing.T) {
	t.Cleanup(func() { SetExternalOpen(nil) })

	var got *Request
	SetExternalOpen(func(r *Request) { got = r })
	fut := OpenWithRender(func(c Controls[int]) *Modal { return nil })
	if got == nil {
		t.Fatal("custom open function not called")
	}
	mustPending(t, fut)
}
