package plugin

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Registry owns the registered panes. Registration order is tab order.
type Registry struct {
	ctx         *Context
	plugins     []Plugin
	unavailable map[string]error
}

// NewRegistry creates a registry bound to the shared context.
func NewRegistry(ctx *Context) *Registry {
	return &Registry{
		ctx:         ctx,
		unavailable: make(map[string]error),
	}
}

// Register adds a pane. Panes failing Init are recorded as unavailable
// and skipped rather than aborting startup.
func (r *Registry) Register(p Plugin) {
	if err := p.Init(r.ctx); err != nil {
		r.ctx.Logger.Error("pane init failed", "pane", p.ID(), "error", err)
		r.unavailable[p.ID()] = fmt.Errorf("init %s: %w", p.ID(), err)
		return
	}
	r.plugins = append(r.plugins, p)
}

// Plugins returns the registered panes in registration order. The
// returned slice is the registry's own; the app root swaps entries in
// place as panes return updated copies from Update.
func (r *Registry) Plugins() []Plugin {
	return r.plugins
}

// Get returns the pane with the given ID.
func (r *Registry) Get(id string) (Plugin, bool) {
	for _, p := range r.plugins {
		if p.ID() == id {
			return p, true
		}
	}
	return nil, false
}

// Unavailable reports panes that failed Init, keyed by pane ID.
func (r *Registry) Unavailable() map[string]error {
	return r.unavailable
}

// Start starts every pane and collects their startup commands.
func (r *Registry) Start() []tea.Cmd {
	var cmds []tea.Cmd
	for _, p := range r.plugins {
		if cmd := p.Start(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

// Stop stops all panes.
func (r *Registry) Stop() {
	for _, p := range r.plugins {
		p.Stop()
	}
}

// Reinit stops and reinitializes every pane against the current
// context, bumping the epoch so stale async results are dropped.
// Used after a config reload changes the backend. Returns the new
// startup commands.
func (r *Registry) Reinit() []tea.Cmd {
	r.ctx.Epoch++
	var cmds []tea.Cmd
	for _, p := range r.plugins {
		p.Stop()
		if err := p.Init(r.ctx); err != nil {
			r.ctx.Logger.Error("pane reinit failed", "pane", p.ID(), "error", err)
			r.unavailable[p.ID()] = fmt.Errorf("reinit %s: %w", p.ID(), err)
			continue
		}
		delete(r.unavailable, p.ID())
		if cmd := p.Start(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}
