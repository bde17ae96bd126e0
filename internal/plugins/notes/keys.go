package notes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/margin/internal/api"
	"github.com/marcus/margin/internal/plugin"
)

// handleKey routes keys by mode.
func (p *Plugin) handleKey(key tea.KeyMsg) (plugin.Plugin, tea.Cmd) {
	switch p.mode {
	case modeEditor:
		return p.handleEditorKey(key)
	case modeDetail:
		return p.handleDetailKey(key)
	}
	if p.searchMode {
		return p.handleSearchKey(key)
	}
	return p.handleListKey(key)
}

func (p *Plugin) handleListKey(key tea.KeyMsg) (plugin.Plugin, tea.Cmd) {
	s := key.String()

	if p.pendingG {
		p.pendingG = false
		if s == "g" {
			p.cursor = 0
			p.scrollOff = 0
			return p, nil
		}
	}

	switch s {
	case "j", "down":
		p.moveCursor(1)
	case "k", "up":
		p.moveCursor(-1)
	case "g":
		p.pendingG = true
	case "G":
		p.cursor = len(p.page.Notes) - 1
		if p.cursor < 0 {
			p.cursor = 0
		}
		p.ensureCursorVisible()
	case "enter", "o":
		if n := p.selected(); n != nil {
			return p, p.openDetail(n.ID)
		}
	case "n":
		return p, p.startEditor(nil, p.materialID)
	case "e":
		if n := p.selected(); n != nil {
			return p, p.openEditorFor(n.ID)
		}
	case "d":
		if n := p.selected(); n != nil {
			return p, p.deleteThenReload(n.ID)
		}
	case "p":
		return p, p.setPage(p.currentPage() + 1)
	case "P":
		return p, p.setPage(p.currentPage() - 1)
	case "m":
		if p.materialID != "" {
			p.materialID = ""
			p.materialTitle = ""
			p.page = api.NotesPage{Page: 1}
			p.cursor = 0
			p.scrollOff = 0
			p.fetchedAt = time.Time{}
			p.fromCache = false
			p.persistListing()
			return p, tea.Batch(p.loadCached(), p.fetch())
		}
	case "/":
		p.searchMode = true
		p.searchInput.SetValue(p.search)
		p.searchInput.Focus()
		return p, nil
	case "y":
		return p, p.yankContent()
	case "esc":
		if p.search != "" {
			p.search = ""
			p.page.Page = 1
			p.cursor = 0
			p.scrollOff = 0
			return p, tea.Batch(p.loadCached(), p.fetch())
		}
	}
	return p, nil
}

// handleSearchKey edits the server-side search query. The query is
// submitted on enter; esc clears it.
func (p *Plugin) handleSearchKey(key tea.KeyMsg) (plugin.Plugin, tea.Cmd) {
	switch key.String() {
	case "esc":
		p.searchMode = false
		p.searchInput.Blur()
		if p.search != "" {
			p.search = ""
			p.page.Page = 1
			p.cursor = 0
			return p, tea.Batch(p.loadCached(), p.fetch())
		}
		return p, nil
	case "enter":
		p.searchMode = false
		p.searchInput.Blur()
		query := p.searchInput.Value()
		if query == p.search {
			return p, nil
		}
		p.search = query
		p.page.Page = 1
		p.cursor = 0
		p.scrollOff = 0
		return p, p.fetch()
	}
	var cmd tea.Cmd
	p.searchInput, cmd = p.searchInput.Update(key)
	return p, cmd
}

func (p *Plugin) handleDetailKey(key tea.KeyMsg) (plugin.Plugin, tea.Cmd) {
	switch key.String() {
	case "esc", "q":
		p.mode = modeList
		p.detail = nil
		p.detailLines = nil
		return p, nil
	case "j", "down":
		p.scrollDetail(1)
	case "k", "up":
		p.scrollDetail(-1)
	case "g":
		p.detailScroll = 0
	case "G":
		p.scrollDetail(len(p.detailLines))
	case "e":
		if p.detail != nil {
			return p, p.openEditorFor(p.detail.ID)
		}
	case "d":
		if p.detail != nil {
			return p, p.deleteThenReload(p.detail.ID)
		}
	case "v":
		p.showSource = !p.showSource
		p.rerenderDetail()
	case "y":
		return p, p.yankContent()
	}
	return p, nil
}

func (p *Plugin) moveCursor(delta int) {
	p.cursor += delta
	if p.cursor < 0 {
		p.cursor = 0
	}
	if p.cursor >= len(p.page.Notes) {
		p.cursor = len(p.page.Notes) - 1
		if p.cursor < 0 {
			p.cursor = 0
		}
	}
	p.ensureCursorVisible()
}

// ensureCursorVisible scrolls the listing so the cursor's display row
// is on screen. Scroll offsets are in display rows, which include
// chapter headers.
func (p *Plugin) ensureCursorVisible() {
	visible := p.listHeight()
	if visible < 1 {
		visible = 1
	}
	row := p.cursorRow()
	if row < p.scrollOff {
		p.scrollOff = row
	}
	if row >= p.scrollOff+visible {
		p.scrollOff = row - visible + 1
	}
	if p.scrollOff < 0 {
		p.scrollOff = 0
	}
}

func (p *Plugin) scrollDetail(delta int) {
	p.detailScroll += delta
	max := len(p.detailLines) - p.detailBodyHeight()
	if max < 0 {
		max = 0
	}
	if p.detailScroll > max {
		p.detailScroll = max
	}
	if p.detailScroll < 0 {
		p.detailScroll = 0
	}
}
