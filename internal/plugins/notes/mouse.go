package notes

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/margin/internal/menu"
	"github.com/marcus/margin/internal/mouse"
	"github.com/marcus/margin/internal/plugin"
)

// Mouse region identifiers. regionNoteRow doubles as the context-menu
// region key the pane registers its item builder under.
const (
	regionNoteRow = "note-row"    // one listing row (Data: note index)
	regionList    = "notes-list"  // whole listing, for wheel scrolling
	regionDetail  = "note-detail" // rendered note body, for wheel scrolling
)

// handleMouse dispatches interpreted mouse actions.
func (p *Plugin) handleMouse(message tea.MouseMsg) (plugin.Plugin, tea.Cmd) {
	if p.mode == modeEditor {
		return p, nil
	}

	action := p.mouseHandler.HandleMouse(message)

	if p.mode == modeDetail {
		switch action.Type {
		case mouse.ActionScrollUp, mouse.ActionScrollDown:
			p.scrollDetail(action.Delta)
		}
		return p, nil
	}

	switch action.Type {
	case mouse.ActionClick:
		return p.handleClick(action, false)

	case mouse.ActionDoubleClick:
		return p.handleClick(action, true)

	case mouse.ActionRightClick:
		if action.Region == nil || action.Region.ID != regionNoteRow {
			return p, nil
		}
		idx, ok := action.Region.Data.(int)
		if !ok || idx < 0 || idx >= len(p.page.Notes) {
			return p, nil
		}
		p.cursor = idx
		return p, menu.Invoke(regionNoteRow, p.page.Notes[idx], action.X, action.Y)

	case mouse.ActionScrollUp, mouse.ActionScrollDown:
		p.scrollListBy(action.Delta)
		return p, nil
	}

	return p, nil
}

func (p *Plugin) handleClick(action mouse.MouseAction, double bool) (plugin.Plugin, tea.Cmd) {
	if action.Region == nil || action.Region.ID != regionNoteRow {
		return p, nil
	}
	idx, ok := action.Region.Data.(int)
	if !ok || idx < 0 || idx >= len(p.page.Notes) {
		return p, nil
	}
	p.cursor = idx
	if double {
		return p, p.openDetail(p.page.Notes[idx].ID)
	}
	return p, nil
}

// scrollListBy shifts the listing window, keeping the cursor on a
// note row inside it.
func (p *Plugin) scrollListBy(delta int) {
	rows := p.displayRows()
	maxRows := p.listHeight()
	maxOff := len(rows) - maxRows
	if maxOff < 0 {
		maxOff = 0
	}
	p.scrollOff += delta
	if p.scrollOff > maxOff {
		p.scrollOff = maxOff
	}
	if p.scrollOff < 0 {
		p.scrollOff = 0
	}
	if maxRows < 1 {
		return
	}

	row := p.cursorRow()
	if row >= p.scrollOff && row < p.scrollOff+maxRows {
		return
	}
	// Snap to the nearest note row inside the window.
	if row < p.scrollOff {
		for i := p.scrollOff; i < len(rows) && i < p.scrollOff+maxRows; i++ {
			if rows[i].noteIdx >= 0 {
				p.cursor = rows[i].noteIdx
				return
			}
		}
		return
	}
	for i := p.scrollOff + maxRows - 1; i >= p.scrollOff && i >= 0; i-- {
		if i < len(rows) && rows[i].noteIdx >= 0 {
			p.cursor = rows[i].noteIdx
			return
		}
	}
}
