package demo

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/modalhost/pkg/modal"
)

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func typeText(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// pageLoop drives a Page the way a program would, with commands run inline.
type pageLoop struct {
	t    *testing.T
	page *Page

	mu    sync.Mutex
	inbox []tea.Msg
}

func newPageLoop(t *testing.T, triggers []Trigger) *pageLoop {
	t.Helper()
	p := NewPage(context.Background(), "test", triggers,
		modal.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		modal.WithReducedMotion(true),
	)
	l := &pageLoop{t: t, page: p}
	p.Host().Mount(l.push)
	t.Cleanup(p.Host().Unmount)
	return l
}

func (l *pageLoop) send(msg tea.Msg) {
	_, cmd := l.page.Update(msg)
	l.run(cmd)
}

func (l *pageLoop) push(msg tea.Msg) {
	l.mu.Lock()
	l.inbox = append(l.inbox, msg)
	l.mu.Unlock()
}

func (l *pageLoop) take() (tea.Msg, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.inbox) == 0 {
		return nil, false
	}
	msg := l.inbox[0]
	l.inbox = l.inbox[1:]
	return msg, true
}

func (l *pageLoop) pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.inbox)
}

func (l *pageLoop) pump() {
	for i := 0; ; i++ {
		if i > 500 {
			l.t.Fatal("message loop did not settle")
		}
		msg, ok := l.take()
		if !ok {
			return
		}
		l.send(msg)
	}
}

// waitFor polls cond until it holds or a second passes.
func (l *pageLoop) waitFor(cond func() bool, what string) {
	l.t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			l.t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func (l *pageLoop) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := runQuick(cmd).(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			l.run(c)
		}
	default:
		l.push(msg)
	}
}

// runQuick drops commands that block, such as cursor blinks.
func runQuick(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// openOn mounts render on the page's host and delivers it.
func openOn[T any](l *pageLoop, render modal.RenderFunc[T]) *modal.Future[T] {
	fut := modal.Open(l.page.Host(), render)
	l.pump()
	return fut
}
