package modal

import (
	"log/slog"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/modalhost/pkg/focus"
	"github.com/marcus/modalhost/pkg/mouse"
)

// Messages handled by the host.
type (
	// openMsg carries a request onto the UI loop.
	openMsg struct {
		r *Request
	}

	// restoreFocusMsg hands page focus back one turn after unmount.
	restoreFocusMsg struct {
		target string
		gen    int
	}

	// AnimationEndMsg signals that an animation finished on Target. Only
	// OverlayID ends the exit phase; other targets belong to content.
	AnimationEndMsg struct {
		Target string
		gen    int
	}

	// ReducedMotionMsg reports a change of the reduced-motion preference.
	ReducedMotionMsg struct {
		Enabled bool
	}
)

// HostOption configures a Host.
type HostOption func(*Host)

// WithReducedMotion sets the initial reduced-motion preference.
func WithReducedMotion(enabled bool) HostOption {
	return func(h *Host) { h.reduced = enabled }
}

// WithAnimation sets the enter/exit animation timing.
func WithAnimation(frames int, interval time.Duration) HostOption {
	return func(h *Host) { h.anim = NewAnimation(frames, interval) }
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *slog.Logger) HostOption {
	return func(h *Host) {
		if l != nil {
			h.log = l
		}
	}
}

// Host mounts one modal request at a time on top of a page. Embed it in the
// page model, give it every message first, and draw the page through View.
//
// Only one request is shown at a time. Opening while another request is
// pending replaces what is shown; the displaced request settles as cancelled.
type Host struct {
	focus *focus.Manager
	log   *slog.Logger

	sendMu sync.RWMutex
	send   func(tea.Msg)

	reduced bool
	life    Lifecycle
	anim    Animation

	pending     *Request
	content     *Modal
	dialogFocus string
	hover       string

	prevFocus     string
	restoreOwed   bool
	restoreTarget string
	restoreGen    int

	mouse            *mouse.Handler
	width, height    int
	originX, originY int

	queued []tea.Cmd
}

// NewHost creates a host that saves and restores page focus through fm.
func NewHost(fm *focus.Manager, opts ...HostOption) *Host {
	if fm == nil {
		fm = focus.NewManager()
	}
	h := &Host{
		focus:  fm,
		log:    slog.Default(),
		anim:   NewAnimation(DefaultFrames, DefaultFrameInterval),
		mouse:  mouse.NewHandler(),
		width:  80,
		height: 24,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ProgramSender adapts a running program for Mount. Delivery happens on a
// separate goroutine so Open never blocks, even when called from Update.
func ProgramSender(p *tea.Program) func(tea.Msg) {
	return func(msg tea.Msg) {
		go p.Send(msg)
	}
}

// Mount connects the host to the UI loop and registers it as the process-wide
// open capability.
func (h *Host) Mount(send func(tea.Msg)) {
	h.sendMu.Lock()
	h.send = send
	h.sendMu.Unlock()
	SetExternalOpen(func(r *Request) { h.deliver(r) })
	h.log.Debug("modal: host mounted")
}

// Unmount unregisters the host. Requests already delivered are unaffected.
func (h *Host) Unmount() {
	SetExternalOpen(nil)
	h.sendMu.Lock()
	h.send = nil
	h.sendMu.Unlock()
	h.log.Debug("modal: host unmounted")
}

func (h *Host) deliver(r *Request) bool {
	h.sendMu.RLock()
	send := h.send
	h.sendMu.RUnlock()
	if send == nil {
		return false
	}
	send(openMsg{r: r})
	return true
}

// Open requests a modal on h and returns immediately. The future settles with
// the value passed to Resolve, or with ok == false on any cancellation,
// including being displaced by a later Open.
func Open[T any](h *Host, render RenderFunc[T]) *Future[T] {
	if h == nil {
		return failedFuture[T](ErrHostNotMounted)
	}
	r, fut := newRequest(render)
	if !h.deliver(r) {
		return failedFuture[T](ErrHostNotMounted)
	}
	return fut
}

// State returns the visual lifecycle state.
func (h *Host) State() VisualState { return h.life.State() }

// Active reports whether dialog content is mounted.
func (h *Host) Active() bool { return h.life.State().Mounted() }

// Pending reports whether a request is mounted and not yet settled.
func (h *Host) Pending() bool { return h.pending != nil && !h.pending.Settled() }

// ReducedMotion returns the current preference.
func (h *Host) ReducedMotion() bool { return h.reduced }

// FocusedID returns the element holding focus: a dialog element while
// mounted, the page's focused element otherwise.
func (h *Host) FocusedID() string {
	if h.Active() {
		return h.dialogFocus
	}
	return h.focus.Current()
}

// Dialog describes the mounted dialog. ok is false when nothing is mounted.
func (h *Host) Dialog() (DialogInfo, bool) {
	if h.content == nil {
		return DialogInfo{}, false
	}
	return h.content.Info(), true
}

// Update processes msg. handled is true when the page must not see msg:
// every key and mouse event is consumed while a dialog is mounted.
func (h *Host) Update(msg tea.Msg) (cmd tea.Cmd, handled bool) {
	cmd, handled = h.update(msg)
	if len(h.queued) > 0 {
		cmds := append(h.queued, cmd)
		h.queued = nil
		cmd = tea.Batch(cmds...)
	}
	return cmd, handled
}

func (h *Host) update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case openMsg:
		return h.handleOpen(msg.r), true

	case animationFrameMsg:
		next, done := h.anim.advance(msg)
		if done {
			gen := h.anim.gen
			return func() tea.Msg { return AnimationEndMsg{Target: OverlayID, gen: gen} }, true
		}
		return next, true

	case AnimationEndMsg:
		if msg.Target != OverlayID {
			return nil, false
		}
		if h.life.State() != StateClosed || (msg.gen != 0 && msg.gen != h.anim.gen) {
			return nil, true
		}
		h.unmount()
		return nil, true

	case restoreFocusMsg:
		h.restoreFocus(msg)
		return nil, true

	case ReducedMotionMsg:
		h.reduced = msg.Enabled
		h.log.Debug("modal: reduced motion changed", "enabled", msg.Enabled)
		return nil, false

	case FocusMsg:
		if h.life.State() == StateOpen && IsFocusable(h.measure(), msg.ID) {
			h.dialogFocus = msg.ID
		}
		return nil, h.Active()

	case tea.WindowSizeMsg:
		h.width, h.height = msg.Width, msg.Height
		return nil, false

	case tea.KeyMsg:
		if !h.Active() || msg.String() == "ctrl+c" {
			return nil, false
		}
		return h.handleKey(msg), true

	case tea.MouseMsg:
		if !h.Active() {
			return nil, false
		}
		return h.handleMouse(msg), true
	}

	if h.life.State() == StateOpen {
		_, cmd := h.content.Update(msg, h.dialogFocus)
		return cmd, false
	}
	return nil, false
}

func (h *Host) handleOpen(r *Request) tea.Cmd {
	switch {
	case h.Pending():
		// Last request wins. The displaced request is cancelled without
		// touching the lifecycle, and the element focused right now belongs
		// to its dialog, so the original target is kept.
		old := h.pending
		old.bind(nil)
		old.finish(nil, false)
		h.log.Warn("modal: request displaced", "displaced", old.ID(), "by", r.ID())
	case h.life.State() == StateClosed:
		// Previous dialog still animating out: drop it now and carry its
		// owed restoration over to the new request.
		h.anim.Stop()
		h.restoreOwed = false
		if err := h.life.Finish(); err != nil {
			h.log.Error("modal: finish", "err", err)
		}
	case h.restoreTarget != "":
		// A restoration is scheduled but not yet applied.
		h.prevFocus = h.restoreTarget
		h.restoreTarget = ""
		h.restoreGen++
	default:
		h.prevFocus = h.focus.Current()
	}
	h.focus.Blur()

	h.pending = r
	r.bind(h.onSettled)
	h.content = r.render()
	if h.content == nil {
		h.content = New("")
	}
	if err := h.life.Open(); err != nil {
		h.log.Error("modal: open", "err", err)
	}
	h.hover = ""
	h.dialogFocus = initialFocus(h.content, h.measure())
	h.log.Debug("modal: open", "request", r.ID(), "title", h.content.Title(), "prev_focus", h.prevFocus)

	if h.reduced {
		h.anim.Stop()
		return nil
	}
	return h.anim.Start(AnimationEnter)
}

// initialFocus picks the configured element, else the first focusable, else
// the dialog itself.
func initialFocus(m *Modal, lay Layout) string {
	if id := m.InitialFocus(); id != "" && IsFocusable(lay, id) {
		return id
	}
	if targets := Focusables(lay); len(targets) > 0 {
		return targets[0].ID
	}
	return lay.ContainerID()
}

// dismiss cancels the mounted request. Safe to call repeatedly.
func (h *Host) dismiss(trigger string) {
	r := h.pending
	if r == nil {
		return
	}
	if r.finish(nil, false) {
		h.log.Debug("modal: dismissed", "request", r.ID(), "trigger", trigger)
	}
}

// onSettled runs right after a request's future is fulfilled.
func (h *Host) onSettled(r *Request) {
	if r != h.pending {
		return
	}
	h.restoreOwed = true
	unmounted, err := h.life.Settle(h.reduced)
	if err != nil {
		h.log.Error("modal: settle", "request", r.ID(), "err", err)
		return
	}
	h.log.Debug("modal: settled", "request", r.ID(), "reduced_motion", h.reduced)
	if unmounted {
		h.unmount()
		return
	}
	h.queue(h.anim.Start(AnimationExit))
}

// unmount clears the request and schedules focus restoration for the next
// turn. Callers have already moved the lifecycle to closed.
func (h *Host) unmount() {
	if h.life.State() == StateClosed {
		if err := h.life.Finish(); err != nil {
			h.log.Error("modal: unmount", "err", err)
		}
	}
	var id uint64
	if h.pending != nil {
		id = h.pending.ID()
	}
	h.pending = nil
	h.content = nil
	h.dialogFocus = ""
	h.hover = ""
	h.anim.Stop()
	h.mouse.Clear()
	h.mouse.EndDrag()

	if h.restoreOwed {
		h.restoreTarget = h.prevFocus
		h.prevFocus = ""
		h.restoreGen++
		msg := restoreFocusMsg{target: h.restoreTarget, gen: h.restoreGen}
		h.queue(func() tea.Msg { return msg })
		h.restoreOwed = false
	}
	h.log.Debug("modal: unmounted", "request", id)
}

func (h *Host) restoreFocus(msg restoreFocusMsg) {
	if msg.gen != h.restoreGen || h.Active() {
		return
	}
	h.restoreTarget = ""
	if msg.target == "" {
		return
	}
	if !h.focus.Focus(msg.target) {
		h.log.Debug("modal: focus target gone", "target", msg.target)
	}
}

func (h *Host) queue(cmd tea.Cmd) {
	if cmd != nil {
		h.queued = append(h.queued, cmd)
	}
}

func (h *Host) handleKey(key tea.KeyMsg) tea.Cmd {
	if h.life.State() != StateOpen {
		return nil
	}
	d := Trap(h.measure(), h.dialogFocus, key)
	switch {
	case d.Dismiss:
		h.dismiss("escape")
		return nil
	case d.Handled:
		h.dialogFocus = d.Focus
		return nil
	}
	_, cmd := h.content.Update(key, h.dialogFocus)
	return cmd
}

// measure lays the dialog out for the current screen without drawing it.
func (h *Host) measure() Layout {
	if h.content == nil {
		return Layout{}
	}
	return h.content.layout(h.width, h.dialogFocus, h.hover, h.accent())
}
