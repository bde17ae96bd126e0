package menu

import tea "github.com/charmbracelet/bubbletea"

// InvokeMsg asks the app root to open the context menu for a
// right-clicked entity. Panes hit-test their own regions and emit this
// instead of mutating the controller directly; the root owns the
// single menu instance.
type InvokeMsg struct {
	RegionID string
	Target   any
	X, Y     int
}

// Invoke returns a command that requests the menu for target at the
// cursor position.
func Invoke(regionID string, target any, x, y int) tea.Cmd {
	return func() tea.Msg {
		return InvokeMsg{RegionID: regionID, Target: target, X: x, Y: y}
	}
}
