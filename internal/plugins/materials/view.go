package materials

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/marcus/margin/internal/api"
	"github.com/marcus/margin/internal/styles"
	"github.com/marcus/margin/internal/ui"
)

// Fixed rows around the list: tab bar, spacer/filter line, status line.
const chromeRows = 3

// listHeight returns the number of rows available to the listing.
func (p *Plugin) listHeight() int {
	h := p.height - chromeRows
	if h < 0 {
		h = 0
	}
	return h
}

// typeIcon returns the single-cell marker for a material type.
func typeIcon(matType string) string {
	switch matType {
	case api.TypeBook:
		return "B"
	case api.TypeLecture:
		return "L"
	case api.TypeCourse:
		return "C"
	default:
		return "?"
	}
}

// View renders the pane and rebuilds its hit regions.
func (p *Plugin) View(width, height int) string {
	p.width = width
	p.height = height
	p.mouseHandler.Clear()

	var b strings.Builder

	b.WriteString(p.renderTabs())
	b.WriteString("\n")
	b.WriteString(p.renderFilterLine())
	b.WriteString("\n")

	vis := p.visible()
	maxRows := p.listHeight()
	p.mouseHandler.HitMap.AddRect(regionList, 0, listTop, width, maxRows, nil)

	switch {
	case p.loadErr != nil && len(vis) == 0:
		b.WriteString(styles.StatusError.Render("  " + p.loadErr.Error()))
		b.WriteString("\n")
	case len(vis) == 0 && p.loading:
		b.WriteString(styles.Muted.Render("  Loading..."))
		b.WriteString("\n")
	case len(vis) == 0:
		b.WriteString(styles.Muted.Render("  No materials"))
		b.WriteString("\n")
	default:
		for i := p.scrollOff; i < len(vis) && i < p.scrollOff+maxRows; i++ {
			row := i - p.scrollOff
			b.WriteString(p.renderRow(vis[i], i == p.cursor))
			b.WriteString("\n")
			p.mouseHandler.HitMap.AddRect(regionRow, 0, listTop+row, width, 1, i)
		}
	}

	content := b.String()
	lines := strings.Count(content, "\n")
	for ; lines < height-1; lines++ {
		content += "\n"
	}
	content += p.renderStatusLine(len(vis))

	base := lipgloss.NewStyle().Width(width).MaxHeight(height).Render(content)

	if p.editor != nil {
		box := p.editor.modal.Render(width, height, p.editor.handler)
		return ui.OverlayModal(base, box, width, height)
	}
	return base
}

// renderTabs draws the status tab bar and registers a hit region per
// tab.
func (p *Plugin) renderTabs() string {
	var parts []string
	x := 1
	for i, label := range tabLabels {
		tab := styles.RenderTab(label, i, len(tabLabels), i == p.tab)
		w := lipgloss.Width(tab)
		p.mouseHandler.HitMap.AddRect(regionTab, x, 0, w, 1, i)
		x += w + 1
		parts = append(parts, tab)
	}
	return " " + strings.Join(parts, " ")
}

// renderFilterLine shows the live filter input, the applied filter, or
// nothing.
func (p *Plugin) renderFilterLine() string {
	if p.filterMode {
		return " " + styles.KeyHint.Render("/") + " " + p.filterInput.View()
	}
	if p.filter != "" {
		return " " + styles.Muted.Render("filter: "+p.filter+"  (esc to clear)")
	}
	return ""
}

// renderRow draws one material row.
func (p *Plugin) renderRow(m api.Material, selected bool) string {
	cursor := "  "
	if selected {
		cursor = styles.ListCursor.Render("→ ")
	}

	icon := styles.Subtitle.Render(typeIcon(m.Type))

	titleWidth := p.width - 30
	if titleWidth < 10 {
		titleWidth = 10
	}
	title := runewidth.FillRight(runewidth.Truncate(m.Title, titleWidth, "…"), titleWidth)

	pages := ""
	if m.Pages > 0 {
		pages = fmt.Sprintf("%4dp", m.Pages)
	} else {
		pages = "     "
	}

	outlined := " "
	if m.IsOutlined {
		outlined = styles.StatusCompleted.Render("✓")
	}

	authors := runewidth.Truncate(m.Authors, 18, "…")

	line := cursor + icon + " "
	if selected {
		line += styles.ListItemSelected.Render(title)
	} else {
		line += styles.ListItemNormal.Render(title)
	}
	line += " " + styles.Muted.Render(pages) + " " + outlined + " " + styles.Subtle.Render(authors)
	return line
}

// renderStatusLine draws the pane's bottom line: counts, fetch time,
// cache marker.
func (p *Plugin) renderStatusLine(visibleCount int) string {
	var parts []string
	if p.filter != "" {
		parts = append(parts, fmt.Sprintf("%d of %d", visibleCount, len(p.materials)))
	} else {
		parts = append(parts, fmt.Sprintf("%d materials", len(p.materials)))
	}
	if !p.fetchedAt.IsZero() {
		stamp := "↻ " + p.fetchedAt.Format("15:04:05")
		if p.fromCache {
			stamp += " (cached)"
		}
		parts = append(parts, stamp)
	}
	if p.loading {
		parts = append(parts, "refreshing...")
	}
	return " " + styles.Subtle.Render(strings.Join(parts, "  ·  "))
}
