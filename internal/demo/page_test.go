package demo

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/modalhost/pkg/modal"
)

func containsPlain(view, s string) bool {
	return strings.Contains(ansi.Strip(view), s)
}

// stubTriggers open nothing and report their ID.
func stubTriggers() []Trigger {
	mk := func(id string) Trigger {
		return Trigger{ID: id, Label: strings.ToUpper(id), Open: func(context.Context) string { return id + " done" }}
	}
	return []Trigger{mk("one"), mk("two")}
}

func TestPageFocusAndActivate(t *testing.T) {
	l := newPageLoop(t, stubTriggers())
	p := l.page

	if got := p.Focus().Current(); got != "one" {
		t.Fatalf("initial focus = %q, want one", got)
	}
	l.send(keyTab)
	if got := p.Focus().Current(); got != "two" {
		t.Fatalf("focus after tab = %q, want two", got)
	}
	l.send(keyEnter)
	l.pump()
	if got := p.Status(); got != "two done" {
		t.Errorf("Status() = %q, want %q", got, "two done")
	}
}

func TestPageMouseActivatesTrigger(t *testing.T) {
	l := newPageLoop(t, stubTriggers())
	p := l.page
	p.View()

	r := p.hits.Find("two")
	if r == nil {
		t.Fatal("trigger missing from page hit map")
	}
	l.send(tea.MouseMsg{X: r.Rect.X, Y: r.Rect.Y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	l.pump()
	if p.Focus().Current() != "two" || p.Status() != "two done" {
		t.Errorf("focus=%q status=%q after click", p.Focus().Current(), p.Status())
	}
}

func TestPageKeysBlockedWhileDialogOpen(t *testing.T) {
	l := newPageLoop(t, stubTriggers())
	p := l.page
	openOn(l, EmailForm)

	l.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	l.send(tea.KeyMsg{Type: tea.KeyRight})
	if p.Status() != "" {
		t.Errorf("page handled a key under the dialog: status %q", p.Status())
	}

	l.send(keyEsc)
	l.pump()
	if got := p.Focus().Current(); got != "one" {
		t.Errorf("focus after dialog = %q, want one restored", got)
	}
}

func TestPageOpensThroughGlobalShim(t *testing.T) {
	l := newPageLoop(t, DefaultTriggers())
	p := l.page

	// The trigger command blocks until the dialog settles, so run it aside.
	_, cmd := p.Update(keyEnter)
	if cmd == nil {
		t.Fatal("enter on a trigger returned no command")
	}
	result := make(chan tea.Msg, 1)
	go func() { result <- cmd() }()

	l.waitFor(func() bool { return l.pending() > 0 }, "open request")
	l.pump()
	if !p.Host().Active() {
		t.Fatal("dialog not mounted")
	}

	l.send(typeText("a@b.co"))
	l.send(keyEnter)
	l.send(<-result)
	l.pump()

	if got := p.Status(); got != "subscribe: a@b.co" {
		t.Errorf("Status() = %q, want %q", got, "subscribe: a@b.co")
	}
	if got := p.Focus().Current(); got != "subscribe" {
		t.Errorf("focus = %q, want subscribe restored", got)
	}
}

func TestPageViewShowsDialogTitle(t *testing.T) {
	l := newPageLoop(t, DefaultTriggers())
	if view := l.page.View(); !containsPlain(view, "Subscribe") {
		t.Error("page view missing trigger label")
	}
	openOn(l, Terms(DefaultTerms, 4))
	if view := l.page.View(); !containsPlain(view, "Terms") {
		t.Error("dialog missing from page view")
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
		err   error
		want  string
	}{
		{"x", true, nil, "n: x"},
		{"", false, nil, "n: cancelled"},
		{"", false, modal.ErrHostNotMounted, "n: modal: host not mounted"},
	}
	for _, tt := range tests {
		if got := describe("n", tt.value, tt.ok, tt.err); got != tt.want {
			t.Errorf("describe() = %q, want %q", got, tt.want)
		}
	}
}
