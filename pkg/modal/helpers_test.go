package modal

import (
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/modalhost/pkg/focus"
)

// testLoop stands in for a bubbletea program: it collects sent messages and
// runs commands synchronously.
type testLoop struct {
	t     *testing.T
	host  *Host
	inbox []tea.Msg
}

var (
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	keyEsc      = tea.KeyMsg{Type: tea.KeyEsc}
	keyEnter    = tea.KeyMsg{Type: tea.KeyEnter}
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestHost returns a mounted host over a page with two focus targets,
// "trigger" focused.
func newTestHost(t *testing.T, opts ...HostOption) (*Host, *focus.Manager, *testLoop) {
	t.Helper()
	fm := focus.NewManager("trigger", "other")
	fm.Focus("trigger")

	base := []HostOption{WithLogger(discardLogger()), WithAnimation(2, time.Millisecond)}
	h := NewHost(fm, append(base, opts...)...)
	l := &testLoop{t: t, host: h}
	h.Mount(func(msg tea.Msg) { l.inbox = append(l.inbox, msg) })
	t.Cleanup(h.Unmount)
	return h, fm, l
}

// send dispatches msg and runs the resulting commands, queueing their
// messages for the next pump.
func (l *testLoop) send(msg tea.Msg) {
	cmd, _ := l.host.Update(msg)
	l.run(cmd)
}

// step delivers only the messages queued so far (one turn).
func (l *testLoop) step() {
	batch := l.inbox
	l.inbox = nil
	for _, msg := range batch {
		l.send(msg)
	}
}

// pump delivers messages until the inbox is empty.
func (l *testLoop) pump() {
	for i := 0; len(l.inbox) > 0; i++ {
		if i > 500 {
			l.t.Fatal("message loop did not settle")
		}
		l.step()
	}
}

func (l *testLoop) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := exec(cmd).(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			l.run(c)
		}
	default:
		l.inbox = append(l.inbox, msg)
	}
}

// exec runs cmd, dropping slow commands such as cursor blinks.
func exec(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// confirmRender builds a two-button dialog that resolves with "yes".
func confirmRender(c Controls[string]) *Modal {
	return New("Confirm",
		WithDescription("Apply the change?"),
		WithActionHandler(func(action string) tea.Cmd {
			switch action {
			case "ok":
				c.Resolve("yes")
			case "cancel":
				c.Cancel()
			}
			return nil
		}),
	).
		AddSection(Text("This cannot be undone.")).
		AddSection(Buttons(Btn(" OK ", "ok"), Btn(" Cancel ", "cancel")))
}

func mustPending[T any](t *testing.T, f *Future[T]) {
	t.Helper()
	if _, _, err := f.Result(); err != ErrPending {
		t.Fatalf("future should be pending, got err=%v", err)
	}
}

func page(lines int) string {
	s := ""
	for i := 0; i < lines; i++ {
		if i > 0 {
			s += "\n"
		}
		s += "page content line"
	}
	return s
}
