package materials

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/margin/internal/menu"
	"github.com/marcus/margin/internal/mouse"
	"github.com/marcus/margin/internal/msg"
	"github.com/marcus/margin/internal/plugin"
)

// Mouse region identifiers. regionRow doubles as the context-menu
// region key the pane registers its item builder under.
const (
	regionTab  = "materials-tab"  // status tab (Data: tab index)
	regionRow  = "material-row"   // one listing row (Data: visible index)
	regionList = "materials-list" // whole listing, for wheel scrolling
)

// listTop is the pane-local Y of the first listing row.
const listTop = 2

// handleMouse dispatches interpreted mouse actions.
func (p *Plugin) handleMouse(message tea.MouseMsg) (plugin.Plugin, tea.Cmd) {
	if p.editor != nil {
		return p.handleEditorMouse(message)
	}

	action := p.mouseHandler.HandleMouse(message)

	switch action.Type {
	case mouse.ActionClick:
		return p.handleClick(action, false)

	case mouse.ActionDoubleClick:
		return p.handleClick(action, true)

	case mouse.ActionRightClick:
		if action.Region == nil || action.Region.ID != regionRow {
			return p, nil
		}
		idx, ok := action.Region.Data.(int)
		vis := p.visible()
		if !ok || idx < 0 || idx >= len(vis) {
			return p, nil
		}
		p.cursor = idx
		return p, menu.Invoke(regionRow, vis[idx], action.X, action.Y)

	case mouse.ActionScrollUp, mouse.ActionScrollDown:
		p.scrollBy(action.Delta)
		return p, nil
	}

	return p, nil
}

func (p *Plugin) handleClick(action mouse.MouseAction, double bool) (plugin.Plugin, tea.Cmd) {
	if action.Region == nil {
		return p, nil
	}
	switch action.Region.ID {
	case regionTab:
		if idx, ok := action.Region.Data.(int); ok {
			return p, p.setTab(idx)
		}
	case regionRow:
		idx, ok := action.Region.Data.(int)
		vis := p.visible()
		if !ok || idx < 0 || idx >= len(vis) {
			return p, nil
		}
		p.cursor = idx
		if double {
			return p, msg.OpenNotes(vis[idx].ID, vis[idx].Title)
		}
	}
	return p, nil
}

// scrollBy shifts the listing window without moving the cursor off
// screen.
func (p *Plugin) scrollBy(delta int) {
	n := len(p.visible())
	maxRows := p.listHeight()
	maxOff := n - maxRows
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
	if p.cursor < p.scrollOff {
		p.cursor = p.scrollOff
	}
	if maxRows > 0 && p.cursor >= p.scrollOff+maxRows {
		p.cursor = p.scrollOff + maxRows - 1
	}
}
