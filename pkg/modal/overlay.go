package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/modalhost/pkg/mouse"
)

// wheelStep is the number of lines one wheel notch scrolls.
const wheelStep = 3

// scrollRegion tags hit map entries that belong to scroll regions.
type scrollRegion struct{}

// View draws the page background with the dialog composited on top. The hit
// map used for mouse handling is rebuilt from this render.
func (h *Host) View(background string, width, height int) string {
	if !h.Active() || h.content == nil {
		return background
	}
	h.width, h.height = width, height

	lay := h.measure()
	h.originX = max((width-lay.Width)/2, 0)
	h.originY = max((height-lay.Height)/2, 0)
	h.rebuildHitMap(lay)

	return Composite(Dim(background, h.dimColor()), lay.View, h.originX, h.originY, width, height)
}

func (h *Host) rebuildHitMap(lay Layout) {
	hm := h.mouse.HitMap
	hm.Clear()
	hm.AddRect(OverlayID, 0, 0, h.width, h.height, nil)
	hm.AddRect(DialogID, h.originX, h.originY, lay.Width, lay.Height, nil)
	for _, r := range lay.Scrollables {
		hm.AddRect(r.ID, h.originX+r.OffsetX, h.originY+r.OffsetY, r.Width, r.Height, scrollRegion{})
	}
	for _, f := range lay.Focusables {
		if f.Hidden || f.Clipped {
			continue
		}
		hm.AddRect(f.ID, h.originX+f.OffsetX, h.originY+f.OffsetY, f.Width, f.Height, f)
	}
}

// scrollRegionAt returns the innermost scroll region under (x, y).
func (h *Host) scrollRegionAt(x, y int) string {
	for _, r := range h.mouse.HitMap.TestAll(x, y) {
		if _, ok := r.Data.(scrollRegion); ok {
			return r.ID
		}
	}
	return ""
}

// handleMouse contains pointer input: wheel and drag reach the content only
// inside a scroll region, and a press on the overlay itself cancels.
func (h *Host) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if h.life.State() != StateOpen {
		return nil
	}
	action := h.mouse.HandleMouse(msg)

	switch {
	case action.Type == mouse.ActionScrollUp, action.Type == mouse.ActionScrollDown:
		region := h.scrollRegionAt(msg.X, msg.Y)
		if region == "" {
			return nil
		}
		delta := wheelStep
		if action.Type == mouse.ActionScrollUp {
			delta = -wheelStep
		}
		h.content.ScrollBy(region, delta)
		return nil

	case action.Type.IsScroll():
		// Horizontal scrolling has no target in a dialog.
		return nil

	case action.Type == mouse.ActionClick:
		return h.handleClick(action)

	case action.Type == mouse.ActionDrag:
		origin := h.mouse.DragRegion()
		if origin == "" || h.scrollRegionAt(msg.X, msg.Y) != origin {
			return nil
		}
		current, ok := h.content.ScrollOffset(origin)
		if !ok {
			return nil
		}
		// Content follows the pointer, as with touch scrolling.
		target := h.mouse.DragStartValue() - action.DragDY
		h.content.ScrollBy(origin, target-current)
		return nil

	case action.Type == mouse.ActionHover:
		h.hover = ""
		if action.Region != nil {
			if f, ok := action.Region.Data.(FocusableInfo); ok && f.Focusable() {
				h.hover = f.ID
			}
		}
	}
	return nil
}

func (h *Host) handleClick(action mouse.Action) tea.Cmd {
	top := action.Region
	if top == nil {
		// No hit map yet: nothing has been drawn.
		return nil
	}
	click := h.mouse.HandleClick(action.X, action.Y)
	if top.ID == OverlayID {
		if h.content.CloseOnBackdropClick() {
			h.dismiss("overlay")
		}
		return nil
	}

	if region := h.scrollRegionAt(action.X, action.Y); region != "" {
		offset, _ := h.content.ScrollOffset(region)
		h.mouse.StartDrag(action.X, action.Y, region, offset)
	}

	f, ok := top.Data.(FocusableInfo)
	if !ok {
		return nil
	}
	if f.Focusable() {
		h.dialogFocus = f.ID
	}
	if click.IsDoubleClick {
		_, cmd := h.content.DoubleClick(f.ID)
		return cmd
	}
	_, cmd := h.content.Click(f.ID)
	return cmd
}

// accent picks the border color for the current animation frame.
func (h *Host) accent() lipgloss.Color {
	if h.life.State() == StateClosed {
		return BorderFading
	}
	if h.anim.Running() && h.anim.Kind() == AnimationEnter && h.anim.Progress() < 0.5 {
		return BorderNormal
	}
	if h.content != nil {
		return h.content.variant.accent()
	}
	return Primary
}

// dimColor fades the backdrop in on enter and out on exit.
func (h *Host) dimColor() lipgloss.Color {
	p := h.anim.Progress()
	if h.anim.Running() && h.anim.Kind() == AnimationExit {
		p = 1 - p
	}
	if p < 0.5 {
		return lipgloss.Color("245")
	}
	return lipgloss.Color("239")
}

// Dim strips styling from s and redraws it in a single muted color.
func Dim(s string, color lipgloss.Color) string {
	style := lipgloss.NewStyle().Foreground(color)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if plain := ansi.Strip(line); plain != "" {
			lines[i] = style.Render(plain)
		} else {
			lines[i] = ""
		}
	}
	return strings.Join(lines, "\n")
}

// Composite draws fg over background with its top-left corner at (x, y).
// The result is width x height cells; background rows are padded or cut to
// fit.
func Composite(background, fg string, x, y, width, height int) string {
	bg := strings.Split(background, "\n")
	if len(bg) > height {
		bg = bg[:height]
	}
	for len(bg) < height {
		bg = append(bg, "")
	}
	for i, line := range bg {
		bg[i] = fit(line, width)
	}

	for i, fgLine := range strings.Split(fg, "\n") {
		row := y + i
		if row < 0 || row >= height {
			continue
		}
		fgWidth := ansi.StringWidth(fgLine)
		if x+fgWidth > width {
			fgLine = ansi.Truncate(fgLine, max(width-x, 0), "")
			fgWidth = ansi.StringWidth(fgLine)
		}
		left := ansi.Truncate(bg[row], x, "")
		right := ansi.TruncateLeft(bg[row], x+fgWidth, "")
		bg[row] = left + "\x1b[0m" + fgLine + "\x1b[0m" + right
	}
	return strings.Join(bg, "\n")
}

// fit pads or cuts line to exactly width cells.
func fit(line string, width int) string {
	w := ansi.StringWidth(line)
	switch {
	case w > width:
		return ansi.Truncate(line, width, "")
	case w < width:
		return line + strings.Repeat(" ", width-w)
	}
	return line
}
