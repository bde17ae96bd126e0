// Package menu implements the floating context menu: a single
// page-wide instance positioned near the cursor, clamped inside a
// scope rectangle, populated per right-clicked entity, and dismissed
// on outside clicks or scrolling.
package menu

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/margin/internal/mouse"
)

// Hit-region identifiers registered by Render.
const (
	RegionMenu = "ctx-menu"      // the menu box, including border
	RegionItem = "ctx-menu-item" // one item row (Data: item index)
)

// Item is a single menu entry: a label and the command its activation
// dispatches.
type Item struct {
	Label  string
	Invoke tea.Cmd
}

// Builder produces the items for a right-clicked target. Builders must
// be pure; the controller calls a builder at most once per right-click.
type Builder func(target any) []Item

// ShowMsg flips the menu visible. It is delivered one Update pass
// after the right-click so placement settles before the menu appears.
// Epoch guards against a dismissal racing the show: a stale ShowMsg is
// dropped instead of resurrecting an emptied menu.
type ShowMsg struct {
	Epoch int
}

// state is the owned singleton menu state. There is exactly one per
// controller and it never holds items from more than one invocation:
// items are cleared on dismissal and only replaced wholesale.
type state struct {
	visible bool
	items   []Item
	x, y    int
}

// Controller owns the menu singleton, the scope rect, and the mapping
// from hit-region IDs to item builders. All menu mutation goes through
// it; there is no package-level state.
type Controller struct {
	menu     state
	scope    mouse.Rect
	builders map[string]Builder
	epoch    int
	log      *slog.Logger
}

// NewController creates a controller with no registered regions. The
// scope rect starts empty; callers set it once the viewport is known.
func NewController(log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		builders: make(map[string]Builder),
		log:      log,
	}
}

// RegisterRegion binds a hit-region ID to an item builder. Regions are
// re-registered with the hit map on every render pass, so rows that
// appear after registration are covered as soon as they are drawn.
func (c *Controller) RegisterRegion(regionID string, b Builder) {
	c.builders[regionID] = b
}

// SetScope updates the rect menu placement is clamped against. The
// controller reference stays fixed for the session; only the geometry
// follows the viewport.
func (c *Controller) SetScope(r mouse.Rect) {
	c.scope = r
}

// Scope returns the current clamp rect.
func (c *Controller) Scope() mouse.Rect {
	return c.scope
}

// Visible reports whether the menu is currently shown.
func (c *Controller) Visible() bool {
	return c.menu.visible
}

// ItemCount returns the number of items the menu currently holds.
func (c *Controller) ItemCount() int {
	return len(c.menu.items)
}

// Position returns the menu's top-left offset. Negative offsets occur
// when the menu is larger than the scope; rendering clips them.
func (c *Controller) Position() (x, y int) {
	return c.menu.x, c.menu.y
}

// HandleRightClick processes a right press whose topmost hit region is
// region, with the cursor at (cursorX, cursorY). It reports whether
// the event was consumed; unmatched regions are left untouched for
// other handlers. The returned command delivers the deferred ShowMsg.
func (c *Controller) HandleRightClick(region *mouse.Region, cursorX, cursorY int) (consumed bool, cmd tea.Cmd) {
	if region == nil {
		return false, nil
	}
	b, ok := c.builders[region.ID]
	if !ok {
		// The topmost element at the cursor is not a registered row
		// (it may be the open menu overlaying one). Not ours.
		return false, nil
	}

	// A prior invocation's items that were never dismissed are kept
	// as-is; items are replaced only after a clear, never appended.
	// Known limitation: a rapid second right-click on a different
	// entity repositions the stale item set instead of rebuilding.
	if len(c.menu.items) == 0 {
		c.menu.items = b(region.Data)
	}

	w, h := c.measure()
	px, py := Clamp(c.scope, w, h, cursorX, cursorY)

	c.menu.visible = false
	c.menu.x, c.menu.y = px, py
	c.epoch++
	epoch := c.epoch

	c.log.Debug("context menu invoked",
		"region", region.ID, "items", len(c.menu.items), "x", px, "y", py)

	return true, func() tea.Msg {
		return ShowMsg{Epoch: epoch}
	}
}

// HandleShow applies a deferred ShowMsg. Stale epochs are dropped.
func (c *Controller) HandleShow(m ShowMsg) {
	if m.Epoch != c.epoch {
		return
	}
	c.menu.visible = true
}

// Dismiss hides the menu and empties its item list. Callers route any
// left press outside the menu and any wheel event here.
func (c *Controller) Dismiss() {
	if !c.menu.visible && len(c.menu.items) == 0 {
		return
	}
	c.menu.visible = false
	c.menu.items = nil
	c.epoch++
	c.log.Debug("context menu dismissed")
}

// IsMenuRegion reports whether region belongs to the menu itself.
// Clicks on the menu (border, padding) are not dismissal triggers.
func (c *Controller) IsMenuRegion(region *mouse.Region) bool {
	return region != nil && (region.ID == RegionMenu || region.ID == RegionItem)
}

// ItemAt resolves a click on an item region to its Item.
func (c *Controller) ItemAt(region *mouse.Region) (Item, bool) {
	if region == nil || region.ID != RegionItem {
		return Item{}, false
	}
	idx, ok := region.Data.(int)
	if !ok || idx < 0 || idx >= len(c.menu.items) {
		return Item{}, false
	}
	return c.menu.items[idx], true
}
