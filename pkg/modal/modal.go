package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Reserved IDs used by the host for hit testing and focus.
const (
	OverlayID     = "modal-overlay"
	DialogID      = "modal-dialog"
	TitleID       = "modal-title"
	DescriptionID = "modal-description"
)

const (
	defaultWidth = 50
	minWidth     = 24
	hintText     = "tab focus · enter select · esc cancel"
)

// submitAction is returned by inputs on Enter and mapped to the primary
// action by the modal.
const submitAction = "\x00submit"

// FocusableInfo describes one focus target produced by a render.
type FocusableInfo struct {
	ID       string
	OffsetX  int
	OffsetY  int
	Width    int
	Height   int
	TabIndex int // negative: clickable but skipped by Tab
	Disabled bool
	Hidden   bool
	// Clipped marks an element scrolled out of its region's window. It
	// stays in tab order but cannot be hit by the pointer.
	Clipped bool
}

// RegionInfo is a rectangle inside the dialog, used for scroll regions.
type RegionInfo struct {
	ID      string
	OffsetX int
	OffsetY int
	Width   int
	Height  int
}

// RenderedSection is the output of a section render. Offsets are relative to
// the section's own top-left corner.
type RenderedSection struct {
	Content     string
	Focusables  []FocusableInfo
	Scrollables []RegionInfo
}

// Section is one block of dialog content.
type Section interface {
	Render(contentWidth int, focusID, hoverID string) RenderedSection
	Update(msg tea.Msg, focusID string) (string, tea.Cmd)
}

// Optional section capabilities.
type (
	clicker interface {
		Click(id string) (string, tea.Cmd)
	}
	doubleClicker interface {
		DoubleClick(id string) (string, tea.Cmd)
	}
	scroller interface {
		ScrollBy(id string, delta int) bool
		ScrollOffset(id string) (int, bool)
	}
)

// DialogInfo carries the accessibility contract of a mounted dialog.
type DialogInfo struct {
	ID            string
	Role          string
	Modal         bool
	Label         string
	LabelID       string
	Description   string
	DescriptionID string
}

// Option configures a Modal.
type Option func(*Modal)

// WithWidth sets the dialog width including its border.
func WithWidth(w int) Option {
	return func(m *Modal) {
		if w > 0 {
			m.width = w
		}
	}
}

// WithVariant sets the accent style.
func WithVariant(v Variant) Option {
	return func(m *Modal) { m.variant = v }
}

// WithHints shows or hides the keyboard hint line.
func WithHints(show bool) Option {
	return func(m *Modal) { m.showHints = show }
}

// WithPrimaryAction sets the action used for implicit submit (Enter in an
// input).
func WithPrimaryAction(action string) Option {
	return func(m *Modal) { m.primaryAction = action }
}

// WithCloseOnBackdropClick controls whether a click on the overlay cancels.
func WithCloseOnBackdropClick(close bool) Option {
	return func(m *Modal) { m.closeOnBackdrop = close }
}

// WithDescription sets a markdown description rendered under the title.
func WithDescription(md string) Option {
	return func(m *Modal) { m.description = md }
}

// WithInitialFocus names the element that receives focus on open.
func WithInitialFocus(id string) Option {
	return func(m *Modal) { m.initialFocus = id }
}

// WithActionHandler sets the function called with every action produced by
// the sections. It is where content calls Resolve or Cancel.
func WithActionHandler(fn func(action string) tea.Cmd) Option {
	return func(m *Modal) { m.onAction = fn }
}

// Modal is declarative dialog content.
type Modal struct {
	title           string
	description     string
	width           int
	variant         Variant
	showHints       bool
	primaryAction   string
	closeOnBackdrop bool
	initialFocus    string
	onAction        func(string) tea.Cmd
	sections        []Section

	md markdownCache
}

// New creates a modal with the given title.
func New(title string, opts ...Option) *Modal {
	m := &Modal{
		title:           title,
		width:           defaultWidth,
		showHints:       true,
		closeOnBackdrop: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddSection appends a section and returns the modal for chaining.
func (m *Modal) AddSection(s Section) *Modal {
	if s != nil {
		m.sections = append(m.sections, s)
	}
	return m
}

// Title returns the dialog label.
func (m *Modal) Title() string { return m.title }

// InitialFocus returns the configured initial focus target.
func (m *Modal) InitialFocus() string { return m.initialFocus }

// CloseOnBackdropClick reports whether overlay clicks cancel.
func (m *Modal) CloseOnBackdropClick() bool { return m.closeOnBackdrop }

// Info returns the accessibility description of the dialog.
func (m *Modal) Info() DialogInfo {
	info := DialogInfo{
		ID:      DialogID,
		Role:    "dialog",
		Modal:   true,
		Label:   m.title,
		LabelID: TitleID,
	}
	if m.description != "" {
		info.Description = m.description
		info.DescriptionID = DescriptionID
	}
	return info
}

// Layout is a measured render of the dialog. Offsets are relative to the
// dialog's top-left corner.
type Layout struct {
	View        string
	Width       int
	Height      int
	Focusables  []FocusableInfo
	Scrollables []RegionInfo
}

// ContainerID implements Container.
func (l Layout) ContainerID() string { return DialogID }

// Targets implements Container.
func (l Layout) Targets() []FocusableInfo { return l.Focusables }

// Layout renders the dialog for a screen of maxWidth columns and measures
// where every focusable landed.
func (m *Modal) Layout(maxWidth int, focusID, hoverID string) Layout {
	return m.layout(maxWidth, focusID, hoverID, m.variant.accent())
}

func (m *Modal) layout(maxWidth int, focusID, hoverID string, accent lipgloss.Color) Layout {
	width := m.width
	if maxWidth > 0 && width > maxWidth-4 {
		width = max(maxWidth-4, minWidth)
	}
	contentWidth := width - 2*boxPadX

	var (
		parts []string
		out   Layout
		y     int
	)
	add := func(s string) {
		parts = append(parts, s)
		y += lipgloss.Height(s)
	}

	add(ModalTitle.Render(m.title))
	add("")
	if m.description != "" {
		add(m.md.render(m.description, contentWidth))
		add("")
	}

	for _, s := range m.sections {
		rs := s.Render(contentWidth, focusID, hoverID)
		if rs.Content == "" && len(rs.Focusables) == 0 {
			continue
		}
		for _, f := range rs.Focusables {
			f.OffsetX += boxPadX
			f.OffsetY += boxPadY + y
			out.Focusables = append(out.Focusables, f)
		}
		for _, r := range rs.Scrollables {
			r.OffsetX += boxPadX
			r.OffsetY += boxPadY + y
			out.Scrollables = append(out.Scrollables, r)
		}
		add(rs.Content)
	}

	if m.showHints {
		add("")
		add(MutedText.Render(hintText))
	}

	out.View = dialogBox(accent).Width(width - 2).Render(strings.Join(parts, "\n"))
	out.Width = lipgloss.Width(out.View)
	out.Height = lipgloss.Height(out.View)
	return out
}

// Update routes msg to every section. Sections act only when focusID is
// theirs. A produced action is passed to the action handler.
func (m *Modal) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	var (
		action string
		cmds   []tea.Cmd
	)
	for _, s := range m.sections {
		a, cmd := s.Update(msg, focusID)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if action == "" && a != "" {
			action = a
		}
	}
	if action == submitAction {
		action = m.primaryAction
	}
	if action != "" {
		if cmd := m.Action(action); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return action, tea.Batch(cmds...)
}

// Click activates the element registered under id, as a mouse press would.
func (m *Modal) Click(id string) (string, tea.Cmd) {
	for _, s := range m.sections {
		c, ok := s.(clicker)
		if !ok {
			continue
		}
		action, cmd := c.Click(id)
		if action == "" && cmd == nil {
			continue
		}
		if action != "" {
			return action, tea.Batch(cmd, m.Action(action))
		}
		return "", cmd
	}
	return "", nil
}

// DoubleClick activates id for a second click in quick succession. Sections
// without a double-click behavior treat it as another click.
func (m *Modal) DoubleClick(id string) (string, tea.Cmd) {
	for _, s := range m.sections {
		d, ok := s.(doubleClicker)
		if !ok {
			continue
		}
		if action, cmd := d.DoubleClick(id); action != "" {
			return action, tea.Batch(cmd, m.Action(action))
		}
	}
	return m.Click(id)
}

// ScrollBy scrolls the region registered under id by delta lines.
func (m *Modal) ScrollBy(id string, delta int) bool {
	for _, s := range m.sections {
		if sc, ok := s.(scroller); ok && sc.ScrollBy(id, delta) {
			return true
		}
	}
	return false
}

// ScrollOffset returns the offset of the region registered under id.
func (m *Modal) ScrollOffset(id string) (int, bool) {
	for _, s := range m.sections {
		if sc, ok := s.(scroller); ok {
			if off, found := sc.ScrollOffset(id); found {
				return off, true
			}
		}
	}
	return 0, false
}

// Action passes action to the handler.
func (m *Modal) Action(action string) tea.Cmd {
	if m.onAction == nil || action == "" {
		return nil
	}
	return m.onAction(action)
}

// FocusMsg asks the host to move dialog focus to ID.
type FocusMsg struct {
	ID string
}

// FocusCmd returns a command that moves dialog focus to id on the next turn.
func FocusCmd(id string) tea.Cmd {
	return func() tea.Msg { return FocusMsg{ID: id} }
}
