package modal

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func TestComposite(t *testing.T) {
	bg := "aaaaaa\nbbbbbb\ncccccc"
	got := ansi.Strip(Composite(bg, "XY\nZW", 2, 1, 6, 4))
	want := "aaaaaa\nbbXYbb\nccZWcc\n      "
	if got != want {
		t.Errorf("Composite() =\n%q\nwant\n%q", got, want)
	}
}

func TestCompositeClipsToScreen(t *testing.T) {
	got := ansi.Strip(Composite("....", "XYZ\nXYZ", 2, 1, 4, 2))
	want := "....\n  XY"
	if got != want {
		t.Errorf("Composite() = %q, want %q", got, want)
	}
}

func TestDimStripsStyling(t *testing.T) {
	in := "\x1b[1mbold\x1b[0m\n\nplain"
	got := ansi.Strip(Dim(in, "240"))
	if got != "bold\n\nplain" {
		t.Errorf("Dim() text = %q", got)
	}
}

func TestViewPassesBackgroundThroughWhenIdle(t *testing.T) {
	h, _, _ := newTestHost(t)
	bg := page(3)
	if got := h.View(bg, 80, 24); got != bg {
		t.Error("View() changed the background with no dialog")
	}
}

func TestViewDrawsDialogOverPage(t *testing.T) {
	h, _, l := newTestHost(t)
	Open(h, confirmRender)
	l.pump()

	out := h.View(page(24), 80, 24)
	plain := ansi.Strip(out)
	if !strings.Contains(plain, "Confirm") {
		t.Error("dialog title missing from view")
	}
	if !strings.Contains(plain, "page content line") {
		t.Error("page background missing from view")
	}
	if got := len(strings.Split(out, "\n")); got != 24 {
		t.Errorf("view has %d rows, want 24", got)
	}
}

// longRender opens a dialog with a three-line scroll region over ten lines.
func longRender(c Controls[bool]) *Modal {
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = "line"
	}
	return New("Terms").
		AddSection(Scroll("body", 3, Text(strings.Join(lines, "\n")))).
		AddSection(Buttons(Btn("Accept", "accept")))
}

func openLong(t *testing.T) (*Host, *testLoop, *Future[bool]) {
	t.Helper()
	h, _, l := newTestHost(t)
	fut := Open(h, longRender)
	l.pump()
	h.View(page(30), 80, 30)
	return h, l, fut
}

func wheel(x, y int, down bool) tea.MouseMsg {
	b := tea.MouseButtonWheelUp
	if down {
		b = tea.MouseButtonWheelDown
	}
	return tea.MouseMsg{X: x, Y: y, Button: b, Action: tea.MouseActionPress}
}

func TestWheelScrollsOnlyInsideRegion(t *testing.T) {
	h, l, fut := openLong(t)
	region := h.mouse.HitMap.Find("body")
	if region == nil {
		t.Fatal("scroll region missing from hit map")
	}
	dialog := h.mouse.HitMap.Find(DialogID)

	// Outside the dialog: no scroll and no dismissal.
	l.send(wheel(0, 0, true))
	// Inside the dialog but outside the region.
	l.send(wheel(dialog.Rect.X+1, dialog.Rect.Y+1, true))
	if off, _ := h.content.ScrollOffset("body"); off != 0 {
		t.Fatalf("offset = %d after wheel outside region, want 0", off)
	}
	mustPending(t, fut)

	l.send(wheel(region.Rect.X, region.Rect.Y, true))
	if off, _ := h.content.ScrollOffset("body"); off != wheelStep {
		t.Errorf("offset = %d after wheel inside region, want %d", off, wheelStep)
	}

	l.send(wheel(region.Rect.X, region.Rect.Y, true))
	l.send(wheel(region.Rect.X, region.Rect.Y, true))
	if off, _ := h.content.ScrollOffset("body"); off != 7 {
		t.Errorf("offset = %d, want clamp at 7", off)
	}

	l.send(wheel(region.Rect.X, region.Rect.Y, false))
	if off, _ := h.content.ScrollOffset("body"); off != 4 {
		t.Errorf("offset = %d after wheel up, want 4", off)
	}
}

func TestDragScrollsInsideRegion(t *testing.T) {
	h, l, _ := openLong(t)
	region := h.mouse.HitMap.Find("body")
	if region == nil {
		t.Fatal("scroll region missing from hit map")
	}
	x, bottom := region.Rect.X, region.Rect.Y+region.Rect.H-1

	l.send(tea.MouseMsg{X: x, Y: bottom, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	l.send(tea.MouseMsg{X: x, Y: bottom - 2, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	if off, _ := h.content.ScrollOffset("body"); off != 2 {
		t.Fatalf("offset = %d after drag, want 2", off)
	}

	// Leaving the region suppresses the gesture.
	l.send(tea.MouseMsg{X: x, Y: region.Rect.Y - 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	if off, _ := h.content.ScrollOffset("body"); off != 2 {
		t.Errorf("offset = %d after drag outside region, want 2", off)
	}

	l.send(tea.MouseMsg{X: x, Y: bottom, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	if h.mouse.IsDragging() {
		t.Error("drag still active after release")
	}
}

func TestDragOutsideRegionDoesNotScroll(t *testing.T) {
	h, l, _ := openLong(t)
	dialog := h.mouse.HitMap.Find(DialogID)
	x, y := dialog.Rect.X+1, dialog.Rect.Y+1

	l.send(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	l.send(tea.MouseMsg{X: x, Y: y + 3, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	if off, _ := h.content.ScrollOffset("body"); off != 0 {
		t.Errorf("offset = %d, want 0", off)
	}
}

func TestHoverHighlightsFocusable(t *testing.T) {
	h, l, _ := openLong(t)
	btn := h.mouse.HitMap.Find("accept")
	if btn == nil {
		t.Fatal("button missing from hit map")
	}
	l.send(tea.MouseMsg{X: btn.Rect.X, Y: btn.Rect.Y, Action: tea.MouseActionMotion})
	if h.hover != "accept" {
		t.Errorf("hover = %q, want accept", h.hover)
	}
}
