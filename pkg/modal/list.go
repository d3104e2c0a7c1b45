package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// ListItem represents an item in a list section.
type ListItem struct {
	ID    string // Unique identifier, returned as the action on Enter
	Label string
	Data  any
}

// ListOption is a functional option for List sections.
type ListOption func(*ListSection)

// ListSection is a selectable list. Tab treats the list as one stop; items
// are reachable with the arrow keys or the mouse.
type ListSection struct {
	id           string
	items        []ListItem
	selectedIdx  *int // index into the visible (filtered) items
	maxVisible   int
	scrollOffset int
	query        func() string
	lastQuery    string

	visible []listRow
}

type listRow struct {
	item    ListItem
	matched []int
}

// List creates a list section with selectable items.
// selectedIdx is owned by the caller; nil means no selection.
func List(id string, items []ListItem, selectedIdx *int, opts ...ListOption) *ListSection {
	s := &ListSection{
		id:          id,
		items:       items,
		selectedIdx: selectedIdx,
		maxVisible:  5,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithMaxVisible sets the maximum number of visible items.
func WithMaxVisible(n int) ListOption {
	return func(s *ListSection) {
		if n > 0 {
			s.maxVisible = n
		}
	}
}

// WithFilter narrows the list with a fuzzy match against query's result.
// An empty query shows every item in its original order. A changed query
// moves the selection back to the best match.
func WithFilter(query func() string) ListOption {
	return func(s *ListSection) { s.query = query }
}

// filter recomputes the visible rows.
func (s *ListSection) filter() []listRow {
	q := ""
	if s.query != nil {
		q = strings.TrimSpace(s.query())
	}
	if q == "" {
		rows := make([]listRow, len(s.items))
		for i, it := range s.items {
			rows[i] = listRow{item: it}
		}
		return rows
	}
	labels := make([]string, len(s.items))
	for i, it := range s.items {
		labels[i] = it.Label
	}
	matches := fuzzy.Find(q, labels)
	rows := make([]listRow, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, listRow{item: s.items[m.Index], matched: m.MatchedIndexes})
	}
	return rows
}

// Selected returns the currently selected visible item.
func (s *ListSection) Selected() (ListItem, bool) {
	if s.selectedIdx == nil || *s.selectedIdx < 0 || *s.selectedIdx >= len(s.visible) {
		return ListItem{}, false
	}
	return s.visible[*s.selectedIdx].item, true
}

func (s *ListSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	s.visible = s.filter()
	if s.query != nil {
		if q := s.query(); q != s.lastQuery {
			s.lastQuery = q
			s.scrollOffset = 0
			if s.selectedIdx != nil {
				*s.selectedIdx = 0
			}
		}
	}
	if len(s.visible) == 0 {
		return RenderedSection{
			Content:    MutedText.Render("(no items)"),
			Focusables: []FocusableInfo{{ID: s.id, Width: contentWidth, Height: 1}},
		}
	}

	visibleCount := min(s.maxVisible, len(s.visible))
	selectedIdx := 0
	if s.selectedIdx != nil {
		*s.selectedIdx = clamp(*s.selectedIdx, 0, len(s.visible)-1)
		selectedIdx = *s.selectedIdx
	}

	// Keep the selection in view
	if selectedIdx < s.scrollOffset {
		s.scrollOffset = selectedIdx
	} else if selectedIdx >= s.scrollOffset+visibleCount {
		s.scrollOffset = selectedIdx - visibleCount + 1
	}
	s.scrollOffset = clamp(s.scrollOffset, 0, max(0, len(s.visible)-visibleCount))

	listIsFocused := focusID == s.id

	var (
		lines   []string
		targets []FocusableInfo
	)
	if s.scrollOffset > 0 {
		lines = append(lines, MutedText.Render("↑ more above"))
	}
	top := len(lines)
	for i := 0; i < visibleCount; i++ {
		idx := s.scrollOffset + i
		row := s.visible[idx]
		isSelected := s.selectedIdx != nil && *s.selectedIdx == idx

		style := ListItemNormal
		switch {
		case isSelected && listIsFocused:
			style = ListItemFocused
		case isSelected, row.item.ID == hoverID:
			style = ListItemSelected
		}

		cursor := "  "
		if isSelected {
			cursor = ListCursor.Render("> ")
		}
		lines = append(lines, cursor+highlight(row.item.Label, row.matched, style))

		// Items are clickable but Tab treats the list as one stop
		targets = append(targets, FocusableInfo{
			ID:       row.item.ID,
			OffsetY:  top + i,
			Width:    contentWidth,
			Height:   1,
			TabIndex: -1,
		})
	}
	if s.scrollOffset+visibleCount < len(s.visible) {
		lines = append(lines, MutedText.Render("↓ more below"))
	}

	list := FocusableInfo{ID: s.id, Width: contentWidth, Height: len(lines)}
	return RenderedSection{
		Content:    strings.Join(lines, "\n"),
		Focusables: append([]FocusableInfo{list}, targets...),
	}
}

// highlight styles the fuzzy-matched characters of label. matched holds
// byte offsets.
func highlight(label string, matched []int, base lipgloss.Style) string {
	if len(matched) == 0 {
		return base.Render(label)
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}
	var sb strings.Builder
	for i, r := range label {
		if hit[i] {
			sb.WriteString(ListMatch.Render(string(r)))
		} else {
			sb.WriteString(base.Render(string(r)))
		}
	}
	return sb.String()
}

func (s *ListSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if focusID != s.id || s.selectedIdx == nil {
		return "", nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return "", nil
	}
	last := len(s.visible) - 1

	switch keyMsg.String() {
	case "up", "k":
		if *s.selectedIdx > 0 {
			*s.selectedIdx--
		}
	case "down", "j":
		if *s.selectedIdx < last {
			*s.selectedIdx++
		}
	case "home":
		*s.selectedIdx = 0
	case "end":
		*s.selectedIdx = max(last, 0)
	case "enter":
		if item, ok := s.Selected(); ok {
			return item.ID, nil
		}
	}
	return "", nil
}

// Click selects the clicked item.
func (s *ListSection) Click(id string) (string, tea.Cmd) {
	s.selectID(id)
	return "", nil
}

// DoubleClick selects the item and returns its ID as the action.
func (s *ListSection) DoubleClick(id string) (string, tea.Cmd) {
	if s.selectID(id) {
		return id, nil
	}
	return "", nil
}

func (s *ListSection) selectID(id string) bool {
	for i, row := range s.visible {
		if row.item.ID == id {
			if s.selectedIdx != nil {
				*s.selectedIdx = i
			}
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
