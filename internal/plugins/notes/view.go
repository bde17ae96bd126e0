package notes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/marcus/margin/internal/markup"
	"github.com/marcus/margin/internal/styles"
)

// Fixed rows around the listing: title bar, search line, status line.
const chromeRows = 3

const listTop = 2

// listRow is one rendered listing row: a chapter header or a note.
type listRow struct {
	header  string
	noteIdx int // -1 for header rows
}

// listHeight returns the number of rows available to the listing.
func (p *Plugin) listHeight() int {
	h := p.height - chromeRows
	if h < 0 {
		h = 0
	}
	return h
}

func (p *Plugin) detailWidth() int {
	w := p.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

// detailBodyHeight is the detail view's content window: everything but
// the title, metadata, and status rows.
func (p *Plugin) detailBodyHeight() int {
	h := p.height - 4
	if h < 1 {
		h = 1
	}
	return h
}

func (p *Plugin) editorWidth() int {
	w := p.width - 4
	if p.ctx != nil && p.ctx.Config.Editor.WrapWidth > 0 && w > p.ctx.Config.Editor.WrapWidth {
		w = p.ctx.Config.Editor.WrapWidth
	}
	return w
}

// editorBodyHeight is the textarea's height: the pane minus the title,
// fields row, and hint rows.
func (p *Plugin) editorBodyHeight() int {
	h := p.height - 6
	if h < 3 {
		h = 3
	}
	return h
}

// grouping reports whether the listing shows chapter headers. Search
// results and the all-materials feed stay flat.
func (p *Plugin) grouping() bool {
	return p.ctx != nil && p.ctx.Config.UI.GroupByChapter &&
		p.materialID != "" && p.search == ""
}

// displayRows lays the current page out as rows, inserting a header
// before each chapter when grouping is on. Chapter 0 notes come first,
// unheadered.
func (p *Plugin) displayRows() []listRow {
	rows := make([]listRow, 0, len(p.page.Notes)+4)
	if !p.grouping() {
		for i := range p.page.Notes {
			rows = append(rows, listRow{noteIdx: i})
		}
		return rows
	}
	lastChapter := 0
	for i, n := range p.page.Notes {
		if n.Chapter > 0 && n.Chapter != lastChapter {
			rows = append(rows, listRow{header: fmt.Sprintf("Chapter %d", n.Chapter), noteIdx: -1})
			lastChapter = n.Chapter
		}
		rows = append(rows, listRow{noteIdx: i})
	}
	return rows
}

// cursorRow returns the display row holding the cursor note.
func (p *Plugin) cursorRow() int {
	for i, r := range p.displayRows() {
		if r.noteIdx == p.cursor {
			return i
		}
	}
	return 0
}

// View renders the pane and rebuilds its hit regions.
func (p *Plugin) View(width, height int) string {
	p.width = width
	p.height = height
	p.mouseHandler.Clear()

	switch p.mode {
	case modeDetail:
		return p.viewDetail()
	case modeEditor:
		return p.viewEditor()
	}
	return p.viewList()
}

func (p *Plugin) viewList() string {
	var b strings.Builder

	b.WriteString(p.renderTitleBar())
	b.WriteString("\n")
	b.WriteString(p.renderSearchLine())
	b.WriteString("\n")

	rows := p.displayRows()
	maxRows := p.listHeight()
	p.mouseHandler.HitMap.AddRect(regionList, 0, listTop, p.width, maxRows, nil)

	switch {
	case p.loadErr != nil && len(p.page.Notes) == 0:
		b.WriteString(styles.StatusError.Render("  " + p.loadErr.Error()))
		b.WriteString("\n")
	case len(p.page.Notes) == 0 && p.loading:
		b.WriteString(styles.Muted.Render("  Loading..."))
		b.WriteString("\n")
	case len(p.page.Notes) == 0:
		b.WriteString(styles.Muted.Render("  No notes"))
		b.WriteString("\n")
	default:
		for i := p.scrollOff; i < len(rows) && i < p.scrollOff+maxRows; i++ {
			row := i - p.scrollOff
			r := rows[i]
			if r.noteIdx < 0 {
				b.WriteString(" " + styles.Subtitle.Render(r.header))
				b.WriteString("\n")
				continue
			}
			b.WriteString(p.renderRow(r.noteIdx))
			b.WriteString("\n")
			p.mouseHandler.HitMap.AddRect(regionNoteRow, 0, listTop+row, p.width, 1, r.noteIdx)
		}
	}

	content := b.String()
	lines := strings.Count(content, "\n")
	for ; lines < p.height-1; lines++ {
		content += "\n"
	}
	content += p.renderStatusLine()

	return lipgloss.NewStyle().Width(p.width).MaxHeight(p.height).Render(content)
}

// renderTitleBar names the listing scope and its pagination position.
func (p *Plugin) renderTitleBar() string {
	scope := "All notes"
	if p.materialID != "" {
		scope = p.materialTitle
		if scope == "" {
			scope = "Material " + p.materialID
		}
	}
	scope = runewidth.Truncate(scope, p.width-14, "…")
	title := " " + styles.Title.Render(scope)
	if p.page.TotalPages > 1 {
		title += "  " + styles.Muted.Render(fmt.Sprintf("%d/%d", p.currentPage(), p.page.TotalPages))
	}
	return title
}

func (p *Plugin) renderSearchLine() string {
	if p.searchMode {
		return " " + styles.KeyHint.Render("/") + " " + p.searchInput.View()
	}
	if p.search != "" {
		return " " + styles.Muted.Render("search: "+p.search+"  (esc to clear)")
	}
	return ""
}

// renderRow draws one note row: number, first line of content, and
// the chapter/page locator.
func (p *Plugin) renderRow(idx int) string {
	n := p.page.Notes[idx]
	selected := idx == p.cursor

	cursor := "  "
	if selected {
		cursor = styles.ListCursor.Render("→ ")
	}

	num := styles.Subtle.Render(fmt.Sprintf("#%-4d", n.Number))

	locator := ""
	if n.Chapter > 0 {
		locator = fmt.Sprintf("ch%d", n.Chapter)
	}
	if n.Page > 0 {
		if locator != "" {
			locator += " "
		}
		locator += fmt.Sprintf("p%d", n.Page)
	}
	locWidth := 10
	locator = runewidth.FillLeft(runewidth.Truncate(locator, locWidth, "…"), locWidth)

	textWidth := p.width - 22
	if textWidth < 10 {
		textWidth = 10
	}
	text := firstLine(markup.Plain(n.Content))
	text = runewidth.FillRight(runewidth.Truncate(text, textWidth, "…"), textWidth)

	line := cursor + num + " "
	if selected {
		line += styles.ListItemSelected.Render(text)
	} else {
		line += styles.ListItemNormal.Render(text)
	}
	line += " " + styles.Muted.Render(locator)
	return line
}

func (p *Plugin) renderStatusLine() string {
	var parts []string
	if p.page.Total > 0 {
		parts = append(parts, fmt.Sprintf("%d notes", p.page.Total))
	}
	if p.page.TotalPages > 1 {
		parts = append(parts, fmt.Sprintf("page %d/%d  (p/P)", p.currentPage(), p.page.TotalPages))
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

func (p *Plugin) viewDetail() string {
	n := p.detail
	if n == nil {
		p.mode = modeList
		return p.viewList()
	}

	var b strings.Builder
	b.WriteString(" " + styles.Title.Render(fmt.Sprintf("Note #%d", n.Number)))
	if p.showSource {
		b.WriteString("  " + styles.Muted.Render("[source]"))
	}
	b.WriteString("\n")
	b.WriteString(" " + styles.Subtle.Render(p.detailMeta()))
	b.WriteString("\n")

	body := p.detailLines
	h := p.detailBodyHeight()
	start := p.detailScroll
	if start > len(body) {
		start = len(body)
	}
	end := start + h
	if end > len(body) {
		end = len(body)
	}
	p.mouseHandler.HitMap.AddRect(regionDetail, 0, 2, p.width, h, nil)
	for _, line := range body[start:end] {
		b.WriteString("  " + line)
		b.WriteString("\n")
	}

	content := b.String()
	lines := strings.Count(content, "\n")
	for ; lines < p.height-1; lines++ {
		content += "\n"
	}

	status := " " + styles.Subtle.Render("e edit  ·  d delete  ·  v source  ·  y yank  ·  esc back")
	if len(body) > h {
		status += styles.Muted.Render(fmt.Sprintf("   %d/%d", start+1, len(body)))
	}
	content += status

	return lipgloss.NewStyle().Width(p.width).MaxHeight(p.height).Render(content)
}

// detailMeta builds the open note's metadata line.
func (p *Plugin) detailMeta() string {
	n := p.detail
	var parts []string
	if n.Chapter > 0 {
		parts = append(parts, fmt.Sprintf("chapter %d", n.Chapter))
	}
	if n.Page > 0 {
		parts = append(parts, fmt.Sprintf("page %d", n.Page))
	}
	if len(n.Tags) > 0 {
		parts = append(parts, strings.Join(n.Tags, ", "))
	}
	if !n.AddedAt.IsZero() {
		layout := p.ctx.Config.UI.DateFormat
		if layout == "" {
			layout = "2006-01-02"
		}
		parts = append(parts, n.AddedAt.Format(layout))
	}
	if len(parts) == 0 {
		return "—"
	}
	return strings.Join(parts, "  ·  ")
}

func (p *Plugin) viewEditor() string {
	ed := p.editor
	if ed == nil {
		p.mode = modeList
		return p.viewList()
	}

	title := "New note"
	if ed.noteID != "" {
		title = "Edit note"
	}
	if p.materialTitle != "" {
		title += " · " + runewidth.Truncate(p.materialTitle, p.width-16, "…")
	}

	var b strings.Builder
	b.WriteString(" " + styles.Title.Render(title))
	b.WriteString("\n\n")
	b.WriteString(ed.content.View())
	b.WriteString("\n\n")
	b.WriteString(" " + styles.Muted.Render("Chapter ") + ed.chapter.View() +
		styles.Muted.Render("  Page ") + ed.pageInput.View())
	b.WriteString("\n")

	content := b.String()
	lines := strings.Count(content, "\n")
	for ; lines < p.height-1; lines++ {
		content += "\n"
	}

	used := fmt.Sprintf("%d/%d", len(ed.content.Value()), ed.content.CharLimit)
	content += " " + styles.Subtle.Render("ctrl+s save  ·  tab fields  ·  esc close  ·  "+used)

	return lipgloss.NewStyle().Width(p.width).MaxHeight(p.height).Render(content)
}

// firstLine returns content up to the first newline, trimmed.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
