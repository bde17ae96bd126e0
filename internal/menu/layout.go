package menu

import (
	"github.com/mattn/go-runewidth"

	"github.com/marcus/margin/internal/mouse"
)

// Box frame cells around the item rows: one border cell plus one
// padding cell on each side horizontally, one border row above and
// below vertically.
const (
	frameX = 4
	frameY = 2
)

// measure returns the menu's intrinsic rendered size for the current
// item set. Width follows the widest label; an empty menu renders one
// blank row inside the frame.
func (c *Controller) measure() (w, h int) {
	inner := 0
	for _, it := range c.menu.items {
		if lw := runewidth.StringWidth(it.Label); lw > inner {
			inner = lw
		}
	}
	rows := len(c.menu.items)
	if rows == 0 {
		rows = 1
	}
	return inner + frameX, rows + frameY
}

// Clamp places a menu of the given size near the cursor while keeping
// it inside the scope rect. Scope components are clamped non-negative
// first (a scope partially off-screen reports negative edges).
//
// Cursor coordinates are translated into scope-relative terms; an axis
// overflows when the menu would extend past the scope's extent on that
// axis, and an overflowing axis is pinned to the scope's far edge. The
// axes are computed independently. A menu larger than the scope yields
// a negative offset, which is accepted: the menu starts off the
// scope's top-left edge and rendering clips it.
func Clamp(scope mouse.Rect, menuW, menuH, cursorX, cursorY int) (x, y int) {
	left := scope.X
	if left < 0 {
		left = 0
	}
	top := scope.Y
	if top < 0 {
		top = 0
	}
	width := scope.W
	if width < 0 {
		width = 0
	}
	height := scope.H
	if height < 0 {
		height = 0
	}

	x = cursorX
	if cursorX-left+menuW > width {
		x = left + width - menuW
	}
	y = cursorY
	if cursorY-top+menuH > height {
		y = top + height - menuH
	}
	return x, y
}
