// Package materials is the materials pane: the tracker's reading list
// split into queue/reading/completed tabs, with start/complete
// transitions, an edit form, and per-row context menu.
package materials

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/margin/internal/api"
	"github.com/marcus/margin/internal/cache"
	"github.com/marcus/margin/internal/menu"
	"github.com/marcus/margin/internal/mouse"
	"github.com/marcus/margin/internal/msg"
	"github.com/marcus/margin/internal/plugin"
	"github.com/marcus/margin/internal/state"
)

const (
	paneID   = "materials"
	paneName = "materials"
	paneIcon = "M"
)

// tabOrder is the fixed tab sequence; indices are persisted by name.
var tabOrder = []string{api.StatusQueue, api.StatusReading, api.StatusCompleted, api.StatusAll}

// tabLabels are the display names for tabOrder.
var tabLabels = []string{"Queue", "Reading", "Completed", "All"}

// Plugin implements the materials pane.
type Plugin struct {
	ctx     *plugin.Context
	focused bool

	width  int
	height int

	tab       int
	materials []api.Material
	cursor    int
	scrollOff int
	loading   bool
	loadErr   error
	fetchedAt time.Time
	fromCache bool

	pendingG bool

	filterMode  bool
	filterInput textinput.Model
	filter      string

	editor *editState

	mouseHandler *mouse.Handler
}

// listLoadedMsg delivers a listing fetch (or cache read) result.
type listLoadedMsg struct {
	epoch     uint64
	status    string
	materials []api.Material
	fromCache bool
	fetchedAt time.Time
	err       error
}

func (m listLoadedMsg) GetEpoch() uint64 { return m.epoch }

// editLoadedMsg delivers the editable fields of a material.
type editLoadedMsg struct {
	epoch    uint64
	material api.Material
	err      error
}

func (m editLoadedMsg) GetEpoch() uint64 { return m.epoch }

// actionDoneMsg reports a start/complete/update POST.
type actionDoneMsg struct {
	epoch uint64
	verb  string
	err   error
}

func (m actionDoneMsg) GetEpoch() uint64 { return m.epoch }

// New creates the materials pane.
func New() *Plugin {
	return &Plugin{
		mouseHandler: mouse.NewHandler(),
	}
}

func (p *Plugin) ID() string   { return paneID }
func (p *Plugin) Name() string { return paneName }
func (p *Plugin) Icon() string { return paneIcon }

// Init wires the pane to the shared context and registers its context
// menu builder. Re-running it (config reload) resets transient state.
func (p *Plugin) Init(ctx *plugin.Context) error {
	p.ctx = ctx
	p.materials = nil
	p.cursor = 0
	p.scrollOff = 0
	p.loading = false
	p.loadErr = nil
	p.pendingG = false
	p.editor = nil

	p.tab = 0
	if saved := state.GetMaterialsTab(); saved != "" {
		for i, s := range tabOrder {
			if s == saved {
				p.tab = i
				break
			}
		}
	}

	ti := textinput.New()
	ti.Placeholder = "Filter by title..."
	ti.CharLimit = 80
	ti.Width = 30
	p.filterInput = ti
	p.filterMode = false
	p.filter = state.GetMaterialFilter()
	p.filterInput.SetValue(p.filter)

	if p.mouseHandler == nil {
		p.mouseHandler = mouse.NewHandler()
	}

	ctx.Menu.RegisterRegion(regionRow, func(target any) []menu.Item {
		mat, ok := target.(api.Material)
		if !ok {
			return nil
		}
		return []menu.Item{
			{Label: "Edit", Invoke: p.openEditor(mat.ID)},
			{Label: "Open notes", Invoke: msg.OpenNotes(mat.ID, mat.Title)},
		}
	})

	return nil
}

// Start renders from the snapshot cache immediately, then refreshes
// over HTTP.
func (p *Plugin) Start() tea.Cmd {
	return tea.Batch(p.loadCached(), p.fetch())
}

func (p *Plugin) Stop() {}

// status returns the backend listing the current tab maps to.
func (p *Plugin) status() string {
	return tabOrder[p.tab]
}

// loadCached reads the last snapshot for the current tab. Misses and
// read errors are silent; the network fetch follows either way.
func (p *Plugin) loadCached() tea.Cmd {
	if p.ctx.Cache == nil {
		return nil
	}
	store := p.ctx.Cache
	status := p.status()
	epoch := p.ctx.Epoch
	return func() tea.Msg {
		ms, fetchedAt, ok, err := store.Materials(cache.MaterialsKey(status))
		if err != nil || !ok {
			return nil
		}
		return listLoadedMsg{epoch: epoch, status: status, materials: ms, fromCache: true, fetchedAt: fetchedAt}
	}
}

// fetch lists the current tab from the backend.
func (p *Plugin) fetch() tea.Cmd {
	client := p.ctx.API
	status := p.status()
	epoch := p.ctx.Epoch
	p.loading = true
	return func() tea.Msg {
		ms, err := client.ListMaterials(context.Background(), status)
		return listLoadedMsg{epoch: epoch, status: status, materials: ms, fetchedAt: time.Now(), err: err}
	}
}

// Update handles messages.
func (p *Plugin) Update(message tea.Msg) (plugin.Plugin, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		if !p.focused {
			return p, nil
		}
		return p.handleKey(message)

	case tea.MouseMsg:
		if !p.focused {
			return p, nil
		}
		return p.handleMouse(message)

	case tea.WindowSizeMsg:
		p.width = message.Width
		p.height = message.Height
		return p, nil

	case listLoadedMsg:
		if plugin.IsStale(p.ctx, message) || message.status != p.status() {
			return p, nil
		}
		if message.err != nil {
			p.loading = false
			p.loadErr = message.err
			p.ctx.Logger.Error("materials load failed", "status", message.status, "error", message.err)
			return p, msg.ShowError("Load failed: " + message.err.Error())
		}
		// A cache snapshot never overwrites fresher network data.
		if message.fromCache && !p.fetchedAt.IsZero() && !p.fromCache {
			return p, nil
		}
		p.materials = message.materials
		p.fetchedAt = message.fetchedAt
		p.fromCache = message.fromCache
		p.loadErr = nil
		if !message.fromCache {
			p.loading = false
		}
		p.clampCursor()
		if !message.fromCache {
			return p, p.saveSnapshot(message.status, message.materials)
		}
		return p, nil

	case editLoadedMsg:
		if plugin.IsStale(p.ctx, message) {
			return p, nil
		}
		if message.err != nil {
			return p, msg.ShowError("Edit failed: " + message.err.Error())
		}
		p.startEditor(message.material)
		return p, nil

	case actionDoneMsg:
		if plugin.IsStale(p.ctx, message) {
			return p, nil
		}
		if message.err != nil {
			return p, msg.ShowError(message.verb + " failed: " + message.err.Error())
		}
		return p, tea.Batch(
			msg.ShowToast(message.verb, 2*time.Second),
			p.fetch(),
		)

	case msg.RefreshMsg:
		if p.focused {
			return p, p.fetch()
		}
		return p, nil

	case msg.ConfigReloadedMsg:
		// Nothing cached per-config here; the next fetch uses the new
		// client the registry reinit installed.
		return p, nil

	case plugin.PluginFocusedMsg:
		if p.fetchedAt.IsZero() || p.fromCache {
			return p, p.fetch()
		}
		return p, nil
	}

	return p, nil
}

// saveSnapshot writes a fresh listing to the cache.
func (p *Plugin) saveSnapshot(status string, ms []api.Material) tea.Cmd {
	if p.ctx.Cache == nil {
		return nil
	}
	store := p.ctx.Cache
	log := p.ctx.Logger
	return func() tea.Msg {
		changed, err := store.SaveMaterials(cache.MaterialsKey(status), ms)
		if err != nil {
			log.Warn("materials snapshot save failed", "status", status, "error", err)
		} else if changed {
			log.Debug("materials snapshot updated", "status", status, "count", len(ms))
		}
		return nil
	}
}

// visible returns the materials passing the title filter, preserving
// listing order.
func (p *Plugin) visible() []api.Material {
	if p.filter == "" {
		return p.materials
	}
	var out []api.Material
	for _, m := range p.materials {
		if containsFold(m.Title, p.filter) || containsFold(m.Authors, p.filter) {
			out = append(out, m)
		}
	}
	return out
}

// selected returns the material under the cursor, or nil.
func (p *Plugin) selected() *api.Material {
	vis := p.visible()
	if p.cursor < 0 || p.cursor >= len(vis) {
		return nil
	}
	return &vis[p.cursor]
}

func (p *Plugin) clampCursor() {
	n := len(p.visible())
	if n == 0 {
		p.cursor = 0
		p.scrollOff = 0
		return
	}
	if p.cursor >= n {
		p.cursor = n - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
	p.ensureCursorVisible()
}

// setTab switches the active tab and refetches.
func (p *Plugin) setTab(idx int) tea.Cmd {
	if idx < 0 {
		idx = len(tabOrder) - 1
	}
	idx %= len(tabOrder)
	if idx == p.tab {
		return nil
	}
	p.tab = idx
	p.cursor = 0
	p.scrollOff = 0
	p.fetchedAt = time.Time{}
	p.fromCache = false
	state.SetMaterialsTab(p.status())
	return tea.Batch(p.loadCached(), p.fetch())
}

// openEditor fetches the editable fields, then opens the form.
func (p *Plugin) openEditor(materialID string) tea.Cmd {
	client := p.ctx.API
	epoch := p.ctx.Epoch
	return func() tea.Msg {
		m, err := client.MaterialForEdit(context.Background(), materialID)
		return editLoadedMsg{epoch: epoch, material: m, err: err}
	}
}

// start moves a queued material to reading.
func (p *Plugin) start(materialID string) tea.Cmd {
	client := p.ctx.API
	epoch := p.ctx.Epoch
	return func() tea.Msg {
		err := client.StartMaterial(context.Background(), materialID)
		return actionDoneMsg{epoch: epoch, verb: "Started", err: err}
	}
}

// complete moves a reading material to completed.
func (p *Plugin) complete(materialID string) tea.Cmd {
	client := p.ctx.API
	epoch := p.ctx.Epoch
	return func() tea.Msg {
		err := client.CompleteMaterial(context.Background(), materialID)
		return actionDoneMsg{epoch: epoch, verb: "Completed", err: err}
	}
}

// yankLink copies the selected material's link.
func (p *Plugin) yankLink() tea.Cmd {
	sel := p.selected()
	if sel == nil {
		return nil
	}
	if sel.Link == "" {
		return msg.ShowToast("No link on this material", 2*time.Second)
	}
	if err := clipboard.WriteAll(sel.Link); err != nil {
		return msg.ShowError("Copy failed: " + err.Error())
	}
	return msg.ShowToast("Yanked link", 2*time.Second)
}

func (p *Plugin) IsFocused() bool   { return p.focused }
func (p *Plugin) SetFocused(f bool) { p.focused = f }

// ConsumesTextInput reports whether typed text belongs to the pane.
func (p *Plugin) ConsumesTextInput() bool {
	return p.filterMode || p.editor != nil
}

// FocusContext names the keymap context for the current mode.
func (p *Plugin) FocusContext() string {
	if p.editor != nil {
		return "materials-edit"
	}
	return "materials"
}

// Commands lists the pane's commands for the footer and help overlay.
func (p *Plugin) Commands() []plugin.Command {
	return []plugin.Command{
		{ID: "open-notes", Name: "Notes", Description: "Open notes for the selected material", Category: plugin.CategoryNavigation, Context: "materials", Priority: 1},
		{ID: "start-reading", Name: "Start", Description: "Move the selected material from queue to reading", Category: plugin.CategoryActions, Context: "materials", Priority: 2},
		{ID: "complete", Name: "Complete", Description: "Mark the selected material completed", Category: plugin.CategoryActions, Context: "materials", Priority: 3},
		{ID: "edit-material", Name: "Edit", Description: "Edit the selected material", Category: plugin.CategoryEdit, Context: "materials", Priority: 4},
		{ID: "filter", Name: "Filter", Description: "Filter the list by title or author", Category: plugin.CategorySearch, Context: "materials", Priority: 5},
		{ID: "yank-link", Name: "Yank", Description: "Copy the selected material's link", Category: plugin.CategoryActions, Context: "materials"},
		{ID: "next-tab", Name: "Tab", Description: "Next status tab", Category: plugin.CategoryNavigation, Context: "materials"},
	}
}

// containsFold reports a case-insensitive substring match.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
