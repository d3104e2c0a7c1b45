// Package mouse maps terminal mouse events onto named screen regions.
//
// Regions are registered after each render (render-then-measure), so hit
// testing always reflects what is currently on screen. Later regions win
// when rectangles overlap, which lets an overlay register its full-screen
// backdrop first and the dialog and its controls on top.
package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DoubleClickWindow is the maximum delay between two clicks on the same
// region for the second one to count as a double click.
const DoubleClickWindow = 400 * time.Millisecond

// Rect is a screen rectangle. W and H are exclusive extents.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named rectangle with optional payload.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap holds the regions of the last render in registration order.
type HitMap struct {
	regions []Region
}

// NewHitMap returns an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// AddRect registers a region. Regions added later take priority.
func (hm *HitMap) AddRect(id string, x, y, w, h int, data any) {
	hm.regions = append(hm.regions, Region{ID: id, Rect: Rect{X: x, Y: y, W: w, H: h}, Data: data})
}

// Test returns the highest-priority region containing (x, y), or nil.
func (hm *HitMap) Test(x, y int) *Region {
	for i := len(hm.regions) - 1; i >= 0; i-- {
		if hm.regions[i].Rect.Contains(x, y) {
			r := hm.regions[i]
			return &r
		}
	}
	return nil
}

// TestAll returns every region containing (x, y), highest priority first.
func (hm *HitMap) TestAll(x, y int) []Region {
	var hits []Region
	for i := len(hm.regions) - 1; i >= 0; i-- {
		if hm.regions[i].Rect.Contains(x, y) {
			hits = append(hits, hm.regions[i])
		}
	}
	return hits
}

// Find returns the region registered under id, or nil.
func (hm *HitMap) Find(id string) *Region {
	for i := len(hm.regions) - 1; i >= 0; i-- {
		if hm.regions[i].ID == id {
			r := hm.regions[i]
			return &r
		}
	}
	return nil
}

// Regions returns the registered regions in priority order (lowest first).
func (hm *HitMap) Regions() []Region {
	return hm.regions
}

// Clear removes all regions.
func (hm *HitMap) Clear() {
	hm.regions = hm.regions[:0]
}

// ActionType classifies a mouse event after hit testing.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionHover
	ActionScrollUp
	ActionScrollDown
	ActionScrollLeft
	ActionScrollRight
	ActionDrag
	ActionDragEnd
)

func (a ActionType) String() string {
	switch a {
	case ActionClick:
		return "click"
	case ActionHover:
		return "hover"
	case ActionScrollUp:
		return "scroll-up"
	case ActionScrollDown:
		return "scroll-down"
	case ActionScrollLeft:
		return "scroll-left"
	case ActionScrollRight:
		return "scroll-right"
	case ActionDrag:
		return "drag"
	case ActionDragEnd:
		return "drag-end"
	default:
		return "none"
	}
}

// IsScroll reports whether the action is any wheel direction.
func (a ActionType) IsScroll() bool {
	return a >= ActionScrollUp && a <= ActionScrollRight
}

// Action is the classified result of a mouse event.
type Action struct {
	Type   ActionType
	Region *Region
	X, Y   int
	DragDX int
	DragDY int
}

// ClickResult describes a click after double-click detection.
type ClickResult struct {
	Region        *Region
	IsDoubleClick bool
}

// Handler classifies mouse events against a hit map and tracks click and
// drag state across events.
type Handler struct {
	HitMap *HitMap

	lastClickID   string
	lastClickTime time.Time

	dragging   bool
	dragRegion string
	dragStartX int
	dragStartY int
	dragValue  int

	now func() time.Time
}

// NewHandler returns a handler with an empty hit map.
func NewHandler() *Handler {
	return &Handler{HitMap: NewHitMap(), now: time.Now}
}

// HandleClick hit-tests a click and reports double clicks on the same region.
func (h *Handler) HandleClick(x, y int) ClickResult {
	region := h.HitMap.Test(x, y)
	now := time.Now()
	if h.now != nil {
		now = h.now()
	}
	if region == nil {
		h.lastClickID = ""
		return ClickResult{}
	}
	double := region.ID == h.lastClickID && now.Sub(h.lastClickTime) <= DoubleClickWindow
	if double {
		h.lastClickID = ""
	} else {
		h.lastClickID = region.ID
		h.lastClickTime = now
	}
	return ClickResult{Region: region, IsDoubleClick: double}
}

// StartDrag begins a drag at (x, y) owned by regionID. value is an arbitrary
// caller-defined starting value (for example a scroll offset).
func (h *Handler) StartDrag(x, y int, regionID string, value int) {
	h.dragging = true
	h.dragRegion = regionID
	h.dragStartX = x
	h.dragStartY = y
	h.dragValue = value
}

// IsDragging reports whether a drag is in progress.
func (h *Handler) IsDragging() bool { return h.dragging }

// DragRegion returns the region the current drag started in.
func (h *Handler) DragRegion() string { return h.dragRegion }

// DragStartValue returns the value passed to StartDrag.
func (h *Handler) DragStartValue() int { return h.dragValue }

// DragDelta returns the offset of (x, y) from the drag origin.
func (h *Handler) DragDelta(x, y int) (int, int) {
	return x - h.dragStartX, y - h.dragStartY
}

// EndDrag clears drag state.
func (h *Handler) EndDrag() {
	h.dragging = false
	h.dragRegion = ""
	h.dragStartX, h.dragStartY, h.dragValue = 0, 0, 0
}

// HandleMouse classifies a bubbletea mouse message.
func (h *Handler) HandleMouse(msg tea.MouseMsg) Action {
	region := h.HitMap.Test(msg.X, msg.Y)
	action := Action{Region: region, X: msg.X, Y: msg.Y}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		action.Type = ActionScrollUp
		if msg.Shift {
			action.Type = ActionScrollLeft
		}
		return action
	case tea.MouseButtonWheelDown:
		action.Type = ActionScrollDown
		if msg.Shift {
			action.Type = ActionScrollRight
		}
		return action
	case tea.MouseButtonWheelLeft:
		action.Type = ActionScrollLeft
		return action
	case tea.MouseButtonWheelRight:
		action.Type = ActionScrollRight
		return action
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			action.Type = ActionClick
		}
	case tea.MouseActionMotion:
		if h.dragging {
			action.Type = ActionDrag
			action.DragDX, action.DragDY = h.DragDelta(msg.X, msg.Y)
		} else {
			action.Type = ActionHover
		}
	case tea.MouseActionRelease:
		if h.dragging {
			action.Type = ActionDragEnd
			h.EndDrag()
		}
	}
	return action
}

// Clear resets the hit map. Drag state survives so an in-flight drag keeps
// its origin across re-renders.
func (h *Handler) Clear() {
	h.HitMap.Clear()
}
