package menu

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/marcus/margin/internal/mouse"
	"github.com/marcus/margin/internal/styles"
)

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(styles.Primary).
	Padding(0, 1)

// Render returns the menu box and registers its hit regions with the
// handler: the box itself first (clicks on the frame belong to the
// menu and are not dismissal triggers), then one region per item row.
// Returns "" while the menu is hidden. The caller composites the box
// at Position().
func (c *Controller) Render(handler *mouse.Handler) string {
	if !c.menu.visible {
		return ""
	}

	w, h := c.measure()
	inner := w - frameX

	rows := make([]string, 0, len(c.menu.items))
	for _, it := range c.menu.items {
		rows = append(rows, runewidth.FillRight(it.Label, inner))
	}
	if len(rows) == 0 {
		rows = append(rows, strings.Repeat(" ", inner))
	}

	handler.HitMap.AddRect(RegionMenu, c.menu.x, c.menu.y, w, h, nil)
	for i := range c.menu.items {
		handler.HitMap.AddRect(RegionItem, c.menu.x+2, c.menu.y+1+i, inner, 1, i)
	}

	return boxStyle.Render(strings.Join(rows, "\n"))
}
