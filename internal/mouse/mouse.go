// Package mouse provides hit-region tracking and mouse event
// interpretation for terminal cell coordinates. Views register
// rectangular regions during render; the handler resolves raw
// bubbletea mouse messages into higher-level actions (click,
// double-click, right-click, scroll, drag, hover) against those
// regions.
package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// doubleClickWindow is the maximum delay between two clicks on the
// same region for the second to count as a double click.
const doubleClickWindow = 400 * time.Millisecond

// scrollStep is the number of lines a single wheel notch scrolls.
const scrollStep = 3

// Rect is a rectangle in screen cells. W and H are extents; the right
// and bottom edges are exclusive.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the point (x, y) falls inside the rect.
// Zero-size rects contain nothing.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named hit-testable area. Data carries view-specific
// payload (row index, entity, etc.) for the handler's consumers.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap holds the regions registered during the most recent render.
// Registration order is priority order: when regions overlap, the
// last-added region wins the hit test, so views register backdrops
// first and interactive elements last.
type HitMap struct {
	regions []Region
}

// NewHitMap creates an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// Add registers a region.
func (hm *HitMap) Add(id string, r Rect, data any) {
	hm.regions = append(hm.regions, Region{ID: id, Rect: r, Data: data})
}

// AddRect registers a region from raw coordinates.
func (hm *HitMap) AddRect(id string, x, y, w, h int, data any) {
	hm.Add(id, Rect{X: x, Y: y, W: w, H: h}, data)
}

// Test returns the topmost region containing (x, y), or nil.
func (hm *HitMap) Test(x, y int) *Region {
	for i := len(hm.regions) - 1; i >= 0; i-- {
		if hm.regions[i].Rect.Contains(x, y) {
			return &hm.regions[i]
		}
	}
	return nil
}

// Clear removes all regions.
func (hm *HitMap) Clear() {
	hm.regions = hm.regions[:0]
}

// Regions returns a copy of the registered regions.
func (hm *HitMap) Regions() []Region {
	out := make([]Region, len(hm.regions))
	copy(out, hm.regions)
	return out
}

// ActionType classifies an interpreted mouse event.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionDoubleClick
	ActionScrollUp
	ActionScrollDown
	ActionScrollLeft
	ActionScrollRight
	ActionDrag
	ActionDragEnd
	ActionHover
	ActionRightClick
)

// MouseAction is the interpreted result of a raw mouse message.
// Region is nil when the event landed outside every registered region
// (hover and right-click report misses; plain clicks become
// ActionNone).
type MouseAction struct {
	Type   ActionType
	Region *Region
	X, Y   int
	Delta  int // scroll amount, negative = up
	DragDX int
	DragDY int
}

// ClickResult reports a resolved click and whether it completed a
// double click.
type ClickResult struct {
	Region        *Region
	IsDoubleClick bool
}

// Handler turns raw mouse messages into actions against its HitMap.
// It owns the transient interaction state: double-click arming and an
// active drag.
type Handler struct {
	HitMap *HitMap

	lastClickID  string
	lastClickAt  time.Time
	clickArmed   bool
	dragging     bool
	dragRegion   string
	dragStartX   int
	dragStartY   int
	dragStartVal int
}

// NewHandler creates a handler with an empty hit map.
func NewHandler() *Handler {
	return &Handler{HitMap: NewHitMap()}
}

// HandleClick resolves a left press at (x, y). A second press on the
// same region within the double-click window reports a double click;
// the click that completes a double click disarms tracking, so a
// third press starts over.
func (h *Handler) HandleClick(x, y int) ClickResult {
	hit := h.HitMap.Test(x, y)
	if hit == nil {
		h.clickArmed = false
		h.lastClickID = ""
		return ClickResult{}
	}

	now := time.Now()
	if h.clickArmed && h.lastClickID == hit.ID && now.Sub(h.lastClickAt) <= doubleClickWindow {
		h.clickArmed = false
		h.lastClickID = ""
		return ClickResult{Region: hit, IsDoubleClick: true}
	}

	h.clickArmed = true
	h.lastClickID = hit.ID
	h.lastClickAt = now
	return ClickResult{Region: hit}
}

// StartDrag begins drag tracking from (x, y). region names the drag
// target; value carries the dragged quantity at drag start (pane
// width, selection anchor, etc.).
func (h *Handler) StartDrag(x, y int, region string, value int) {
	h.dragging = true
	h.dragRegion = region
	h.dragStartX = x
	h.dragStartY = y
	h.dragStartVal = value
}

// IsDragging reports whether a drag is active.
func (h *Handler) IsDragging() bool { return h.dragging }

// DragRegion returns the active drag's region name, or "".
func (h *Handler) DragRegion() string { return h.dragRegion }

// DragStartValue returns the value captured at StartDrag.
func (h *Handler) DragStartValue() int { return h.dragStartVal }

// DragDelta returns the offset of (x, y) from the drag origin.
func (h *Handler) DragDelta(x, y int) (dx, dy int) {
	return x - h.dragStartX, y - h.dragStartY
}

// EndDrag clears the active drag.
func (h *Handler) EndDrag() {
	h.dragging = false
	h.dragRegion = ""
	h.dragStartX = 0
	h.dragStartY = 0
	h.dragStartVal = 0
}

// Clear resets the hit map and click arming. An active drag survives;
// it ends on release.
func (h *Handler) Clear() {
	h.HitMap.Clear()
	h.clickArmed = false
	h.lastClickID = ""
}

// HandleMouse interprets a raw mouse message. Wheel events with shift
// held scroll horizontally; native horizontal wheel events are mapped
// for Mac natural scrolling (WheelLeft scrolls content right).
func (h *Handler) HandleMouse(msg tea.MouseMsg) MouseAction {
	switch msg.Action {
	case tea.MouseActionPress:
		return h.handlePress(msg)

	case tea.MouseActionMotion:
		if h.dragging {
			dx, dy := h.DragDelta(msg.X, msg.Y)
			return MouseAction{Type: ActionDrag, X: msg.X, Y: msg.Y, DragDX: dx, DragDY: dy}
		}
		return MouseAction{Type: ActionHover, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y}

	case tea.MouseActionRelease:
		if h.dragging {
			h.EndDrag()
			return MouseAction{Type: ActionDragEnd, X: msg.X, Y: msg.Y}
		}
	}
	return MouseAction{Type: ActionNone, X: msg.X, Y: msg.Y}
}

func (h *Handler) handlePress(msg tea.MouseMsg) MouseAction {
	switch msg.Button {
	case tea.MouseButtonLeft:
		res := h.HandleClick(msg.X, msg.Y)
		if res.Region == nil {
			return MouseAction{Type: ActionNone, X: msg.X, Y: msg.Y}
		}
		t := ActionClick
		if res.IsDoubleClick {
			t = ActionDoubleClick
		}
		return MouseAction{Type: t, Region: res.Region, X: msg.X, Y: msg.Y}

	case tea.MouseButtonRight:
		return MouseAction{Type: ActionRightClick, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y}

	case tea.MouseButtonWheelUp:
		if msg.Shift {
			return MouseAction{Type: ActionScrollLeft, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y, Delta: -scrollStep}
		}
		return MouseAction{Type: ActionScrollUp, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y, Delta: -scrollStep}

	case tea.MouseButtonWheelDown:
		if msg.Shift {
			return MouseAction{Type: ActionScrollRight, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y, Delta: scrollStep}
		}
		return MouseAction{Type: ActionScrollDown, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y, Delta: scrollStep}

	case tea.MouseButtonWheelLeft:
		return MouseAction{Type: ActionScrollRight, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y, Delta: scrollStep}

	case tea.MouseButtonWheelRight:
		return MouseAction{Type: ActionScrollLeft, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y, Delta: -scrollStep}
	}
	return MouseAction{Type: ActionNone, X: msg.X, Y: msg.Y}
}
