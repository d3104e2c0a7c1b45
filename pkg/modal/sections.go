package modal

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// textSection renders static wrapped text.
type textSection struct {
	text  string
	style lipgloss.Style
}

// Text creates a static text section wrapped to the content width.
func Text(s string) Section {
	return &textSection{text: s, style: Body}
}

func (s *textSection) Render(contentWidth int, _, _ string) RenderedSection {
	return RenderedSection{Content: s.style.Width(contentWidth).Render(s.text)}
}

func (s *textSection) Update(tea.Msg, string) (string, tea.Cmd) { return "", nil }

// Spacer creates a blank line.
func Spacer() Section {
	return &textSection{text: " ", style: Body}
}

// errorSection shows a message only while fn returns one.
type errorSection struct {
	fn func() string
}

// ErrorText creates a section that renders fn's message in the error style
// and disappears while the message is empty.
func ErrorText(fn func() string) Section {
	return &errorSection{fn: fn}
}

func (s *errorSection) Render(contentWidth int, _, _ string) RenderedSection {
	msg := s.fn()
	if msg == "" {
		return RenderedSection{}
	}
	return RenderedSection{Content: ErrorStyle.Width(contentWidth).Render("✗ " + msg)}
}

func (s *errorSection) Update(tea.Msg, string) (string, tea.Cmd) { return "", nil }

// markdownCache keeps the last glamour render per width.
type markdownCache struct {
	src    string
	width  int
	output string
}

func (c *markdownCache) render(md string, width int) string {
	if c.output != "" && c.src == md && c.width == width {
		return c.output
	}
	c.src, c.width, c.output = md, width, renderMarkdown(md, width)
	return c.output
}

// renderMarkdown renders md with the dark style, falling back to the raw text.
func renderMarkdown(md string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n\r")
}

type markdownSection struct {
	md    string
	cache markdownCache
}

// Markdown creates a section rendering md with glamour.
func Markdown(md string) Section {
	return &markdownSection{md: md}
}

func (s *markdownSection) Render(contentWidth int, _, _ string) RenderedSection {
	return RenderedSection{Content: s.cache.render(s.md, contentWidth)}
}

func (s *markdownSection) Update(tea.Msg, string) (string, tea.Cmd) { return "", nil }

// ButtonDef describes one button of a Buttons row.
type ButtonDef struct {
	Label    string
	ID       string
	danger   bool
	disabled func() bool
	tabIndex int
}

// BtnOption configures a button.
type BtnOption func(*ButtonDef)

// BtnDanger renders the button with the danger accent when focused.
func BtnDanger() BtnOption {
	return func(b *ButtonDef) { b.danger = true }
}

// BtnDisabled disables the button while fn returns true.
func BtnDisabled(fn func() bool) BtnOption {
	return func(b *ButtonDef) { b.disabled = fn }
}

// BtnTabIndex sets an explicit tab index.
func BtnTabIndex(i int) BtnOption {
	return func(b *ButtonDef) { b.tabIndex = i }
}

// Btn creates a button. Activating it produces id as the action.
func Btn(label, id string, opts ...BtnOption) ButtonDef {
	b := ButtonDef{Label: label, ID: id}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b ButtonDef) isDisabled() bool {
	return b.disabled != nil && b.disabled()
}

type buttonsSection struct {
	buttons []ButtonDef
}

// Buttons creates a horizontal row of buttons.
func Buttons(btns ...ButtonDef) Section {
	return &buttonsSection{buttons: btns}
}

const buttonGap = 2

func (s *buttonsSection) Render(_ int, focusID, hoverID string) RenderedSection {
	var (
		rendered   []string
		focusables []FocusableInfo
		x          int
	)
	for i, b := range s.buttons {
		style := Button
		switch {
		case b.isDisabled():
			style = ButtonDisabled
		case b.ID == focusID && b.danger:
			style = ButtonDangerFocused
		case b.ID == focusID:
			style = ButtonFocused
		case b.ID == hoverID:
			style = ButtonHover
		}
		out := style.Render(b.Label)
		w := lipgloss.Width(out)
		if i > 0 {
			rendered = append(rendered, strings.Repeat(" ", buttonGap))
			x += buttonGap
		}
		rendered = append(rendered, out)
		focusables = append(focusables, FocusableInfo{
			ID:       b.ID,
			OffsetX:  x,
			Width:    w,
			Height:   1,
			TabIndex: b.tabIndex,
			Disabled: b.isDisabled(),
		})
		x += w
	}
	return RenderedSection{
		Content:    lipgloss.JoinHorizontal(lipgloss.Top, rendered...),
		Focusables: focusables,
	}
}

func (s *buttonsSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return "", nil
	}
	switch key.String() {
	case "enter", " ":
		return s.Click(focusID)
	}
	return "", nil
}

func (s *buttonsSection) Click(id string) (string, tea.Cmd) {
	for _, b := range s.buttons {
		if b.ID == id && !b.isDisabled() {
			return b.ID, nil
		}
	}
	return "", nil
}

type checkboxSection struct {
	id      string
	label   string
	checked *bool
}

// Checkbox creates a toggle bound to checked.
func Checkbox(id, label string, checked *bool) Section {
	return &checkboxSection{id: id, label: label, checked: checked}
}

func (s *checkboxSection) Render(_ int, focusID, _ string) RenderedSection {
	box := "[ ] "
	if s.checked != nil && *s.checked {
		box = "[x] "
	}
	style := Body
	if focusID == s.id {
		style = ListItemFocused
	}
	out := style.Render(box + s.label)
	return RenderedSection{
		Content:    out,
		Focusables: []FocusableInfo{{ID: s.id, Width: lipgloss.Width(out), Height: 1}},
	}
}

func (s *checkboxSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || focusID != s.id {
		return "", nil
	}
	switch key.String() {
	case "enter", " ":
		return s.Click(s.id)
	}
	return "", nil
}

func (s *checkboxSection) Click(id string) (string, tea.Cmd) {
	if id != s.id || s.checked == nil {
		return "", nil
	}
	*s.checked = !*s.checked
	return "", func() tea.Msg { return CheckboxToggledMsg{ID: s.id, Checked: *s.checked} }
}

// CheckboxToggledMsg reports a checkbox change to the content.
type CheckboxToggledMsg struct {
	ID      string
	Checked bool
}

// InputOption configures an Input section.
type InputOption func(*inputSection)

// WithLabel renders a label line above the input.
func WithLabel(label string) InputOption {
	return func(s *inputSection) { s.label = label }
}

// WithInvalid marks the input as invalid while fn returns true.
func WithInvalid(fn func() bool) InputOption {
	return func(s *inputSection) { s.invalid = fn }
}

// WithSubmitOnEnter controls whether Enter triggers the primary action.
func WithSubmitOnEnter(submit bool) InputOption {
	return func(s *inputSection) { s.submitOnEnter = submit }
}

type inputSection struct {
	id            string
	model         *textinput.Model
	label         string
	invalid       func() bool
	submitOnEnter bool
}

// Input creates a single-line text input bound to model.
func Input(id string, model *textinput.Model, opts ...InputOption) Section {
	s := &inputSection{id: id, model: model, submitOnEnter: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// syncFocus keeps the textinput's own focus flag in line with dialog focus.
func (s *inputSection) syncFocus(focusID string) tea.Cmd {
	switch {
	case focusID == s.id && !s.model.Focused():
		return s.model.Focus()
	case focusID != s.id && s.model.Focused():
		s.model.Blur()
	}
	return nil
}

func (s *inputSection) Render(contentWidth int, focusID, _ string) RenderedSection {
	s.syncFocus(focusID)
	s.model.Width = max(contentWidth-InputBox.GetHorizontalFrameSize()-1, 1)

	box := InputBox
	switch {
	case s.invalid != nil && s.invalid():
		box = InputBoxInvalid
	case focusID == s.id:
		box = InputBoxFocused
	}
	field := box.Width(contentWidth - 2).Render(s.model.View())

	offsetY := 0
	content := field
	if s.label != "" {
		content = Body.Render(s.label) + "\n" + field
		offsetY = 1
	}
	return RenderedSection{
		Content: content,
		Focusables: []FocusableInfo{{
			ID:      s.id,
			OffsetY: offsetY,
			Width:   lipgloss.Width(field),
			Height:  lipgloss.Height(field),
		}},
	}
}

func (s *inputSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	focusCmd := s.syncFocus(focusID)
	if key, ok := msg.(tea.KeyMsg); ok {
		if focusID != s.id {
			return "", focusCmd
		}
		if key.String() == "enter" {
			if s.submitOnEnter {
				return submitAction, focusCmd
			}
			return "", focusCmd
		}
	}
	var cmd tea.Cmd
	*s.model, cmd = s.model.Update(msg)
	return "", tea.Batch(focusCmd, cmd)
}

// whenSection renders its child only while cond holds.
type whenSection struct {
	cond  func() bool
	child Section
}

// When renders section only while cond returns true.
func When(cond func() bool, section Section) Section {
	return &whenSection{cond: cond, child: section}
}

func (s *whenSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	if !s.cond() {
		return RenderedSection{}
	}
	return s.child.Render(contentWidth, focusID, hoverID)
}

func (s *whenSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if !s.cond() {
		return "", nil
	}
	return s.child.Update(msg, focusID)
}

func (s *whenSection) Click(id string) (string, tea.Cmd) {
	if c, ok := s.child.(clicker); ok && s.cond() {
		return c.Click(id)
	}
	return "", nil
}

func (s *whenSection) DoubleClick(id string) (string, tea.Cmd) {
	if d, ok := s.child.(doubleClicker); ok && s.cond() {
		return d.DoubleClick(id)
	}
	return "", nil
}

func (s *whenSection) ScrollBy(id string, delta int) bool {
	if sc, ok := s.child.(scroller); ok && s.cond() {
		return sc.ScrollBy(id, delta)
	}
	return false
}

func (s *whenSection) ScrollOffset(id string) (int, bool) {
	if sc, ok := s.child.(scroller); ok && s.cond() {
		return sc.ScrollOffset(id)
	}
	return 0, false
}

// RenderFn and UpdateFn back a Custom section.
type (
	RenderFn func(contentWidth int, focusID, hoverID string) RenderedSection
	UpdateFn func(msg tea.Msg, focusID string) (string, tea.Cmd)
)

type customSection struct {
	render RenderFn
	update UpdateFn
}

// Custom creates a section from plain functions. update may be nil.
func Custom(render RenderFn, update UpdateFn) Section {
	return &customSection{render: render, update: update}
}

func (s *customSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	return s.render(contentWidth, focusID, hoverID)
}

func (s *customSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if s.update == nil {
		return "", nil
	}
	return s.update(msg, focusID)
}
