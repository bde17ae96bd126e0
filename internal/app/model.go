// Package app is the root Bubble Tea model: it owns the pane registry,
// the header and footer chrome, the shared context menu, and the
// routing of keyboard and mouse input into the active pane.
package app

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/margin/internal/config"
	"github.com/marcus/margin/internal/keymap"
	"github.com/marcus/margin/internal/menu"
	"github.com/marcus/margin/internal/modal"
	"github.com/marcus/margin/internal/mouse"
	"github.com/marcus/margin/internal/plugin"
	"github.com/marcus/margin/internal/state"
	"github.com/marcus/margin/internal/styles"
	"github.com/marcus/margin/internal/ui"
	"github.com/marcus/margin/internal/version"
)

// Model is the root model for the margin application.
type Model struct {
	cfg       *config.Config
	pluginCtx *plugin.Context
	registry  *plugin.Registry
	keymap    *keymap.Registry
	logger    *slog.Logger

	// Context menu and root-level hit regions (header tabs, the menu
	// itself). Pane content registers its regions on the pane's own
	// handler in pane-local coordinates.
	menu      *menu.Controller
	rootMouse *mouse.Handler

	activePane    int
	activeContext string

	width, height int
	ready         bool

	showHelp   bool
	showStatus bool
	showFooter bool

	// Quit confirmation dialog; nil while closed.
	quitModal *modal.Modal
	quitMouse *mouse.Handler

	clock       time.Time
	lastRefresh time.Time

	statusMsg     string
	statusExpiry  time.Time
	statusIsError bool
	lastError     error

	currentVersion  string
	updateAvailable *version.UpdateAvailableMsg

	configCh <-chan struct{}
}

// New creates the application model. configCh may be nil when config
// watching is disabled.
func New(reg *plugin.Registry, km *keymap.Registry, ctx *plugin.Context, ctl *menu.Controller, currentVersion string, configCh <-chan struct{}) Model {
	activeIdx := 0
	if id := state.GetActivePane(); id != "" {
		for i, p := range reg.Plugins() {
			if p.ID() == id {
				activeIdx = i
				break
			}
		}
	}

	return Model{
		cfg:            ctx.Config,
		pluginCtx:      ctx,
		registry:       reg,
		keymap:         km,
		logger:         ctx.Logger,
		menu:           ctl,
		rootMouse:      mouse.NewHandler(),
		activePane:     activeIdx,
		activeContext:  "global",
		showFooter:     ctx.Config.UI.ShowFooter,
		clock:          time.Now(),
		lastRefresh:    time.Now(),
		currentVersion: currentVersion,
		configCh:       configCh,
	}
}

// Init starts the panes and background loops.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(),
		version.CheckAsync(m.currentVersion),
	}
	if cmd := watchConfig(m.configCh); cmd != nil {
		cmds = append(cmds, cmd)
	}
	cmds = append(cmds, m.registry.Start()...)

	if p := m.ActivePane(); p != nil {
		p.SetFocused(true)
		m.activeContext = p.FocusContext()
	}
	return tea.Batch(cmds...)
}

// ActivePane returns the focused pane, or nil when none registered.
func (m Model) ActivePane() plugin.Plugin {
	panes := m.registry.Plugins()
	if len(panes) == 0 {
		return nil
	}
	if m.activePane >= len(panes) {
		return panes[0]
	}
	return panes[m.activePane]
}

// SetActivePane switches focus to the pane at idx and persists the
// choice. Switching panes dismisses an open context menu.
func (m *Model) SetActivePane(idx int) tea.Cmd {
	panes := m.registry.Plugins()
	if idx < 0 || idx >= len(panes) || idx == m.activePane {
		return nil
	}
	if current := m.ActivePane(); current != nil {
		current.SetFocused(false)
	}
	m.menu.Dismiss()
	m.activePane = idx
	next := panes[idx]
	next.SetFocused(true)
	m.activeContext = next.FocusContext()
	state.SetActivePane(next.ID())
	return paneFocused()
}

// NextPane cycles focus forward.
func (m *Model) NextPane() tea.Cmd {
	panes := m.registry.Plugins()
	if len(panes) < 2 {
		return nil
	}
	return m.SetActivePane((m.activePane + 1) % len(panes))
}

// PrevPane cycles focus backward.
func (m *Model) PrevPane() tea.Cmd {
	panes := m.registry.Plugins()
	if len(panes) < 2 {
		return nil
	}
	idx := m.activePane - 1
	if idx < 0 {
		idx = len(panes) - 1
	}
	return m.SetActivePane(idx)
}

// FocusPaneByID switches focus to the pane with the given ID.
func (m *Model) FocusPaneByID(id string) tea.Cmd {
	for i, p := range m.registry.Plugins() {
		if p.ID() == id {
			return m.SetActivePane(i)
		}
	}
	return nil
}

// contentTop is the Y of the first content row; pane-local mouse
// coordinates are offset by it.
func (m Model) contentTop() int {
	return headerHeight
}

// contentHeight is the rows available to the active pane.
func (m Model) contentHeight() int {
	h := m.height - headerHeight
	if m.showFooter {
		h -= footerHeight
	}
	if h < 0 {
		h = 0
	}
	return h
}

// updateMenuScope re-clamps the menu to the content area. Called on
// resize and on footer toggle; an open menu is repositioned against
// the new scope by the next invocation, not retroactively.
func (m *Model) updateMenuScope() {
	m.menu.SetScope(mouse.Rect{
		X: 0,
		Y: m.contentTop(),
		W: m.width,
		H: m.contentHeight(),
	})
}

// ShowToast displays a temporary status message.
func (m *Model) ShowToast(message string, duration time.Duration, isError bool) {
	m.statusMsg = message
	m.statusExpiry = time.Now().Add(duration)
	m.statusIsError = isError
}

// ClearExpiredToast clears the toast once its time is up.
func (m *Model) ClearExpiredToast() {
	if m.statusMsg != "" && time.Now().After(m.statusExpiry) {
		m.statusMsg = ""
		m.statusIsError = false
	}
}

// updateContext refreshes activeContext from the focused pane.
func (m *Model) updateContext() {
	if p := m.ActivePane(); p != nil {
		m.activeContext = p.FocusContext()
	} else {
		m.activeContext = "global"
	}
}

// hasModal reports whether an app-level overlay is open.
func (m Model) hasModal() bool {
	return m.showHelp || m.showStatus || m.quitModal != nil
}

// newQuitConfirm builds the quit confirmation dialog.
func newQuitConfirm() *modal.Modal {
	d := ui.NewConfirmDialog("Quit Margin?", "Open note drafts are kept for next time.")
	d.ConfirmLabel = " Quit "
	d.BorderColor = styles.Error
	return d.ToModal()
}
