package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/margin/internal/plugin"
)

// TickMsg is sent on each clock tick.
type TickMsg time.Time

// tickCmd returns a command that ticks every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// configChangedMsg reports that the config file changed on disk.
type configChangedMsg struct{}

// watchConfig waits for the next change notification. Re-armed after
// each reload; a closed channel ends the watch silently.
func watchConfig(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return configChangedMsg{}
	}
}

// paneFocused notifies the newly active pane.
func paneFocused() tea.Cmd {
	return func() tea.Msg {
		return plugin.PluginFocusedMsg{}
	}
}
