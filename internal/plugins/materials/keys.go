package materials

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/margin/internal/msg"
	"github.com/marcus/margin/internal/plugin"
	"github.com/marcus/margin/internal/state"
)

// handleKey processes keyboard input for the pane.
func (p *Plugin) handleKey(message tea.KeyMsg) (plugin.Plugin, tea.Cmd) {
	if p.editor != nil {
		return p.handleEditorKey(message)
	}
	if p.filterMode {
		return p.handleFilterKey(message)
	}

	key := message.String()

	// g g jumps to the top; any other key cancels the pending g.
	if p.pendingG {
		p.pendingG = false
		if key == "g" {
			p.cursor = 0
			p.scrollOff = 0
			return p, nil
		}
	}

	switch key {
	case "j", "down":
		p.moveCursor(1)
	case "k", "up":
		p.moveCursor(-1)
	case "g":
		p.pendingG = true
	case "G":
		p.cursor = len(p.visible()) - 1
		p.clampCursor()
	case "tab":
		return p, p.setTab(p.tab + 1)
	case "shift+tab":
		return p, p.setTab(p.tab - 1)
	case "enter", "o":
		if sel := p.selected(); sel != nil {
			return p, msg.OpenNotes(sel.ID, sel.Title)
		}
	case "s":
		if sel := p.selected(); sel != nil {
			return p, p.start(sel.ID)
		}
	case "c":
		if sel := p.selected(); sel != nil {
			return p, p.complete(sel.ID)
		}
	case "e":
		if sel := p.selected(); sel != nil {
			return p, p.openEditor(sel.ID)
		}
	case "y":
		return p, p.yankLink()
	case "/":
		p.filterMode = true
		p.filterInput.Focus()
		return p, nil
	case "esc":
		if p.filter != "" {
			p.filter = ""
			p.filterInput.SetValue("")
			state.SetMaterialFilter("")
			p.clampCursor()
		}
	}

	return p, nil
}

// handleFilterKey routes keys to the filter input. The filter applies
// live while typing.
func (p *Plugin) handleFilterKey(message tea.KeyMsg) (plugin.Plugin, tea.Cmd) {
	switch message.String() {
	case "esc":
		p.filterMode = false
		p.filterInput.Blur()
		p.filter = ""
		p.filterInput.SetValue("")
		state.SetMaterialFilter("")
		p.clampCursor()
		return p, nil
	case "enter":
		p.filterMode = false
		p.filterInput.Blur()
		state.SetMaterialFilter(p.filter)
		return p, nil
	}

	var cmd tea.Cmd
	p.filterInput, cmd = p.filterInput.Update(message)
	p.filter = p.filterInput.Value()
	p.clampCursor()
	return p, cmd
}

// moveCursor shifts the cursor by delta within the visible rows.
func (p *Plugin) moveCursor(delta int) {
	n := len(p.visible())
	if n == 0 {
		return
	}
	p.cursor += delta
	if p.cursor < 0 {
		p.cursor = 0
	}
	if p.cursor >= n {
		p.cursor = n - 1
	}
	p.ensureCursorVisible()
}

// ensureCursorVisible scrolls the list window to keep the cursor on
// screen.
func (p *Plugin) ensureCursorVisible() {
	maxRows := p.listHeight()
	if maxRows <= 0 {
		return
	}
	if p.cursor < p.scrollOff {
		p.scrollOff = p.cursor
	}
	if p.cursor >= p.scrollOff+maxRows {
		p.scrollOff = p.cursor - maxRows + 1
	}
	if p.scrollOff < 0 {
		p.scrollOff = 0
	}
}
