package modal

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// scrollSection is the designated scrollable region of a dialog. Wheel and
// drag gestures reach it only while the pointer is inside its rectangle.
// When its content overflows, the region itself is a tab stop so it can be
// scrolled from the keyboard.
type scrollSection struct {
	id     string
	height int
	inner  []Section

	offset int
	total  int
	// inner focus IDs from the last render
	owned     map[string]bool
	lastFocus string
}

// Scroll wraps inner sections in a viewport of at most height lines.
func Scroll(id string, height int, inner ...Section) Section {
	return &scrollSection{id: id, height: max(height, 1), inner: inner}
}

func (s *scrollSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	var (
		parts   []string
		targets []FocusableInfo
		y       int
	)
	for _, sec := range s.inner {
		rs := sec.Render(contentWidth, focusID, hoverID)
		if rs.Content == "" && len(rs.Focusables) == 0 {
			continue
		}
		for _, f := range rs.Focusables {
			f.OffsetY += y
			targets = append(targets, f)
		}
		parts = append(parts, rs.Content)
		y += lipgloss.Height(rs.Content)
	}
	s.total = y
	height := min(s.height, max(s.total, 1))

	// Reveal a newly focused element if it sits outside the window.
	s.owned = make(map[string]bool, len(targets))
	for _, f := range targets {
		s.owned[f.ID] = true
		if f.ID != focusID || focusID == s.lastFocus {
			continue
		}
		switch {
		case f.OffsetY < s.offset, f.Height > height:
			s.offset = f.OffsetY
		case f.OffsetY+f.Height > s.offset+height:
			s.offset = f.OffsetY + f.Height - height
		}
	}
	s.lastFocus = focusID
	s.offset = clamp(s.offset, 0, max(0, s.total-height))

	vp := viewport.New(contentWidth, height)
	vp.SetContent(strings.Join(parts, "\n"))
	vp.SetYOffset(s.offset)
	s.offset = vp.YOffset

	for i := range targets {
		targets[i].OffsetY -= s.offset
		if targets[i].OffsetY < 0 || targets[i].OffsetY+targets[i].Height > height {
			targets[i].Clipped = true
		}
	}
	if s.total > height {
		self := FocusableInfo{ID: s.id, Width: contentWidth, Height: height}
		targets = append([]FocusableInfo{self}, targets...)
	}

	return RenderedSection{
		Content:     vp.View(),
		Focusables:  targets,
		Scrollables: []RegionInfo{{ID: s.id, Width: contentWidth, Height: height}},
	}
}

func (s *scrollSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && (focusID == s.id || s.owned[focusID]) {
		switch key.String() {
		case "pgdown":
			s.ScrollBy(s.id, s.height)
			return "", nil
		case "pgup":
			s.ScrollBy(s.id, -s.height)
			return "", nil
		}
		if focusID == s.id {
			switch key.String() {
			case "down", "j":
				s.ScrollBy(s.id, 1)
				return "", nil
			case "up", "k":
				s.ScrollBy(s.id, -1)
				return "", nil
			case "home":
				s.ScrollBy(s.id, -s.total)
				return "", nil
			case "end":
				s.ScrollBy(s.id, s.total)
				return "", nil
			}
		}
	}
	var (
		action string
		cmds   []tea.Cmd
	)
	for _, sec := range s.inner {
		a, cmd := sec.Update(msg, focusID)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if action == "" && a != "" {
			action = a
		}
	}
	return action, tea.Batch(cmds...)
}

func (s *scrollSection) Click(id string) (string, tea.Cmd) {
	for _, sec := range s.inner {
		if c, ok := sec.(clicker); ok {
			if action, cmd := c.Click(id); action != "" || cmd != nil {
				return action, cmd
			}
		}
	}
	return "", nil
}

func (s *scrollSection) DoubleClick(id string) (string, tea.Cmd) {
	for _, sec := range s.inner {
		if d, ok := sec.(doubleClicker); ok {
			if action, cmd := d.DoubleClick(id); action != "" {
				return action, cmd
			}
		}
	}
	return "", nil
}

// ScrollBy moves the window. The offset is clamped on the next render.
func (s *scrollSection) ScrollBy(id string, delta int) bool {
	if id != s.id {
		return false
	}
	s.offset = clamp(s.offset+delta, 0, max(0, s.total-min(s.height, s.total)))
	return true
}

func (s *scrollSection) ScrollOffset(id string) (int, bool) {
	if id != s.id {
		return 0, false
	}
	return s.offset, true
}
