package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/margin/internal/api"
	"github.com/marcus/margin/internal/config"
	"github.com/marcus/margin/internal/keymap"
	"github.com/marcus/margin/internal/menu"
	"github.com/marcus/margin/internal/mouse"
	"github.com/marcus/margin/internal/msg"
	"github.com/marcus/margin/internal/plugin"
	"github.com/marcus/margin/internal/styles"
	"github.com/marcus/margin/internal/version"
)

// Update handles all messages and returns the updated model and commands.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch message := message.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(message)

	case tea.MouseMsg:
		return m.handleMouseMsg(message)

	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		m.ready = true
		m.updateMenuScope()
		// Panes get the content area, not the full terminal.
		return m, m.broadcast(tea.WindowSizeMsg{Width: m.width, Height: m.contentHeight()})

	case TickMsg:
		m.clock = time.Time(message)
		m.ClearExpiredToast()
		return m, tickCmd()

	case msg.ToastMsg:
		m.ShowToast(message.Message, message.Duration, message.IsError)
		return m, nil

	case msg.RefreshMsg:
		m.lastRefresh = time.Now()
		if p := m.ActivePane(); p != nil {
			_, cmd := p.Update(message)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case msg.ErrorMsg:
		m.lastError = message.Err
		m.ShowToast("Error: "+message.Err.Error(), 5*time.Second, true)
		return m, nil

	case msg.FocusPaneMsg:
		return m, m.FocusPaneByID(message.PaneID)

	case msg.OpenNotesMsg:
		// Focus the notes pane and let it handle the navigation.
		cmds = append(cmds, m.FocusPaneByID("notes"))
		cmds = append(cmds, m.broadcast(message))
		return m, tea.Batch(cmds...)

	case menu.InvokeMsg:
		// A pane resolved a right-click on one of its rows. Coordinates
		// arrive pane-local; the menu is placed in screen space.
		region := &mouse.Region{ID: message.RegionID, Data: message.Target}
		_, cmd := m.menu.HandleRightClick(region, message.X, message.Y+m.contentTop())
		return m, cmd

	case menu.ShowMsg:
		m.menu.HandleShow(message)
		return m, nil

	case keymap.ExecuteCommandMsg:
		return m.executeCommand(message.CommandID)

	case version.UpdateAvailableMsg:
		v := message
		m.updateAvailable = &v
		return m, nil

	case configChangedMsg:
		return m.reloadConfig()
	}

	return m, m.broadcast(message)
}

// broadcast forwards a message to every pane, active or not, so
// async results reach the pane that started them.
func (m *Model) broadcast(message tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	panes := m.registry.Plugins()
	for i, p := range panes {
		updated, cmd := p.Update(message)
		panes[i] = updated
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if !m.hasModal() {
		m.updateContext()
	}
	return tea.Batch(cmds...)
}

// forwardToActive sends a message to the focused pane only.
func (m *Model) forwardToActive(message tea.Msg) tea.Cmd {
	p := m.ActivePane()
	if p == nil {
		return nil
	}
	updated, cmd := p.Update(message)
	panes := m.registry.Plugins()
	if m.activePane < len(panes) {
		panes[m.activePane] = updated
	}
	m.updateContext()
	return cmd
}

// handleKeyMsg processes keyboard input.
func (m Model) handleKeyMsg(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Type == tea.KeyEsc {
		switch {
		case m.showHelp:
			m.showHelp = false
			m.updateContext()
			return m, nil
		case m.showStatus:
			m.showStatus = false
			m.updateContext()
			return m, nil
		case m.quitModal != nil:
			m.quitModal = nil
			return m, nil
		case m.menu.Visible():
			m.menu.Dismiss()
			return m, nil
		}
	}

	if m.quitModal != nil {
		switch key.String() {
		case "y":
			m.registry.Stop()
			return m, tea.Quit
		case "n":
			m.quitModal = nil
			return m, nil
		}
		action, cmd := m.quitModal.HandleKey(key)
		switch action {
		case "confirm":
			m.registry.Stop()
			return m, tea.Quit
		case "cancel":
			m.quitModal = nil
			return m, nil
		}
		return m, cmd
	}

	// While typing (search boxes, the note editor) every key except
	// ctrl+c belongs to the pane.
	if p, ok := m.ActivePane().(plugin.TextInputConsumer); ok && p.ConsumesTextInput() {
		if key.String() == "ctrl+c" {
			m.quitModal = newQuitConfirm()
			m.quitMouse = mouse.NewHandler()
			return m, nil
		}
		return m, m.forwardToActive(key)
	}

	switch key.String() {
	case "ctrl+c":
		if !m.hasModal() {
			m.quitModal = newQuitConfirm()
			m.quitMouse = mouse.NewHandler()
			return m, nil
		}
	case "q":
		if !m.hasModal() && isRootContext(m.activeContext) {
			m.quitModal = newQuitConfirm()
			m.quitMouse = mouse.NewHandler()
			return m, nil
		}
	}

	if m.hasModal() {
		switch key.String() {
		case "?":
			m.showHelp = false
			m.updateContext()
		case "!":
			m.showStatus = false
			m.updateContext()
		}
		return m, nil
	}

	// Pane switching and global toggles.
	switch key.String() {
	case "`":
		return m, m.NextPane()
	case "~":
		return m, m.PrevPane()
	case "1", "2":
		idx := int(key.Runes[0] - '1')
		return m, m.SetActivePane(idx)
	case "?":
		m.showHelp = true
		m.activeContext = "help"
		return m, nil
	case "!":
		m.showStatus = true
		m.activeContext = "status"
		return m, nil
	case "ctrl+h":
		m.showFooter = !m.showFooter
		m.updateMenuScope()
		return m, nil
	case "r":
		m.lastRefresh = time.Now()
		return m, msg.Refresh()
	}

	// Opening the menu's entity row actions is mouse-driven; any other
	// key while the menu is open dismisses it and falls through.
	if m.menu.Visible() {
		m.menu.Dismiss()
	}

	if cmd := m.keymap.Handle(key, m.activeContext); cmd != nil {
		return m, cmd
	}

	return m, m.forwardToActive(key)
}

// handleMouseMsg routes mouse input: the context menu and header chrome
// first, then the active pane in pane-local coordinates.
func (m Model) handleMouseMsg(message tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.quitModal != nil {
		switch m.quitModal.HandleMouse(message, m.quitMouse) {
		case "confirm":
			m.registry.Stop()
			return m, tea.Quit
		case "cancel":
			m.quitModal = nil
		}
		return m, nil
	}
	if m.hasModal() {
		return m, nil
	}

	if message.Action == tea.MouseActionPress {
		switch message.Button {
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown,
			tea.MouseButtonWheelLeft, tea.MouseButtonWheelRight:
			// Scrolling anywhere dismisses the menu; the wheel event
			// still reaches the pane underneath.
			m.menu.Dismiss()

		case tea.MouseButtonLeft:
			region := m.rootMouse.HitMap.Test(message.X, message.Y)
			if m.menu.Visible() {
				if item, ok := m.menu.ItemAt(region); ok {
					m.menu.Dismiss()
					return m, item.Invoke
				}
				if m.menu.IsMenuRegion(region) {
					return m, nil
				}
				m.menu.Dismiss()
			}
			if region != nil && region.ID == regionHeaderTab {
				if idx, ok := region.Data.(int); ok {
					return m, m.SetActivePane(idx)
				}
			}

		case tea.MouseButtonRight:
			// A right press on the open menu goes nowhere: the menu is
			// the topmost element under the cursor, not an entity row.
			if m.menu.IsMenuRegion(m.rootMouse.HitMap.Test(message.X, message.Y)) {
				return m, nil
			}
		}
	}

	// Forward into the content area in pane-local coordinates.
	local := message
	local.Y -= m.contentTop()
	if local.Y < 0 {
		return m, nil
	}
	return m, m.forwardToActive(local)
}

// executeCommand runs root-level bound commands the keymap could not
// resolve to a handler. Pane-local command IDs are handled inside the
// panes' own key handling and never reach here.
func (m Model) executeCommand(commandID string) (tea.Model, tea.Cmd) {
	switch commandID {
	case "quit":
		m.quitModal = newQuitConfirm()
		m.quitMouse = mouse.NewHandler()
		return m, nil
	case "next-pane":
		return m, m.NextPane()
	case "prev-pane":
		return m, m.PrevPane()
	case "focus-pane-1":
		return m, m.SetActivePane(0)
	case "focus-pane-2":
		return m, m.SetActivePane(1)
	case "toggle-help":
		m.showHelp = !m.showHelp
		return m, nil
	case "toggle-status":
		m.showStatus = !m.showStatus
		return m, nil
	case "toggle-footer":
		m.showFooter = !m.showFooter
		m.updateMenuScope()
		return m, nil
	case "refresh":
		m.lastRefresh = time.Now()
		return m, msg.Refresh()
	}
	return m, nil
}

// reloadConfig re-reads the config file, swaps the backend client, and
// reinitializes every pane under a new epoch.
func (m Model) reloadConfig() (tea.Model, tea.Cmd) {
	fresh, err := config.Load()
	if err != nil {
		m.logger.Warn("config reload failed", "error", err)
		m.ShowToast("Config reload failed: "+err.Error(), 5*time.Second, true)
		return m, watchConfig(m.configCh)
	}
	fresh.Validate()

	*m.cfg = *fresh
	styles.ApplyThemeWithOverrides(fresh.UI.Theme.Name, fresh.UI.Theme.Overrides)
	m.pluginCtx.API = api.NewClient(fresh.Backend.URL, fresh.Backend.Timeout, m.logger)
	m.showFooter = fresh.UI.ShowFooter
	m.updateMenuScope()
	m.menu.Dismiss()

	cmds := m.registry.Reinit()
	cmds = append(cmds,
		watchConfig(m.configCh),
		func() tea.Msg { return msg.ConfigReloadedMsg{} },
		msg.ShowToast("Config reloaded", 2*time.Second),
	)
	m.logger.Info("config reloaded", "backend", fresh.Backend.URL)
	return m, tea.Batch(cmds...)
}

// isRootContext reports whether 'q' quits in this context rather than
// navigating back.
func isRootContext(ctx string) bool {
	switch ctx {
	case "global", "", "materials", "notes-list":
		return true
	default:
		return false
	}
}
