// Package msg holds messages exchanged between panes and the app root.
// Keeping them here avoids import cycles: panes never import app.
package msg

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ToastMsg displays a temporary message.
type ToastMsg struct {
	Message  string
	Duration time.Duration
	IsError  bool // true for error toasts (red), false for success (green)
}

// ShowToast returns a command to show a toast message.
func ShowToast(message string, duration time.Duration) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{
			Message:  message,
			Duration: duration,
		}
	}
}

// ShowError returns a command to show an error toast.
func ShowError(message string) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{
			Message:  message,
			Duration: 5 * time.Second,
			IsError:  true,
		}
	}
}

// RefreshMsg triggers a refetch in the active pane.
type RefreshMsg struct{}

// Refresh returns a command that triggers a refresh.
func Refresh() tea.Cmd {
	return func() tea.Msg {
		return RefreshMsg{}
	}
}

// ErrorMsg reports an error condition to the app root.
type ErrorMsg struct {
	Err error
}

// ReportError returns a command to report an error.
func ReportError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}

// FocusPaneMsg requests focusing a pane by ID. Used for cross-pane
// navigation (e.g. opening a material's notes from the materials pane).
type FocusPaneMsg struct {
	PaneID string
}

// FocusPane returns a command that requests focusing a pane by ID.
func FocusPane(paneID string) tea.Cmd {
	return func() tea.Msg {
		return FocusPaneMsg{PaneID: paneID}
	}
}

// OpenNotesMsg asks the notes pane to show the listing for a material
// and the root to focus it. An empty MaterialID means all materials.
type OpenNotesMsg struct {
	MaterialID    string
	MaterialTitle string
}

// OpenNotes returns a command that opens the notes listing for a material.
func OpenNotes(materialID, materialTitle string) tea.Cmd {
	return func() tea.Msg {
		return OpenNotesMsg{MaterialID: materialID, MaterialTitle: materialTitle}
	}
}

// ConfigReloadedMsg announces that the config file changed on disk and
// was reloaded. Panes re-read the fields they care about.
type ConfigReloadedMsg struct{}
