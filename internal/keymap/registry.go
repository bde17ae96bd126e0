// Package keymap maps keys to named commands per focus context. Most
// pane-local keys are handled inside the pane's own Update; bindings
// registered here serve the footer and help overlay, and fire directly
// only when a handler-backed command is registered for them.
package keymap

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Binding ties a key to a command ID within a focus context.
type Binding struct {
	Key     string // bubbletea key string, e.g. "ctrl+s", "g g"
	Command string // command ID, e.g. "start-reading"
	Context string // focus context, "global" applies everywhere
}

// Command is an executable registered under a command ID.
type Command struct {
	ID          string
	Name        string
	Description string
	Handler     func() tea.Cmd
}

// ExecuteCommandMsg asks the app root to run a bound command that has
// no registered handler of its own.
type ExecuteCommandMsg struct {
	CommandID string
	Context   string
}

// Registry holds bindings and command handlers.
type Registry struct {
	mu        sync.RWMutex
	bindings  []Binding                     // registration order, drives help display
	byContext map[string]map[string]string  // context -> key -> command ID
	commands  map[string]Command            // command ID -> executable
	overrides map[string]string             // user key -> command ID, highest priority
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byContext: make(map[string]map[string]string),
		commands:  make(map[string]Command),
		overrides: make(map[string]string),
	}
}

// RegisterBinding adds a binding. A later binding for the same key and
// context replaces the earlier one.
func (r *Registry) RegisterBinding(b Binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ctx := r.byContext[b.Context]
	if ctx == nil {
		ctx = make(map[string]string)
		r.byContext[b.Context] = ctx
	}
	if _, exists := ctx[b.Key]; exists {
		for i := range r.bindings {
			if r.bindings[i].Context == b.Context && r.bindings[i].Key == b.Key {
				r.bindings[i] = b
				break
			}
		}
	} else {
		r.bindings = append(r.bindings, b)
	}
	ctx[b.Key] = b.Command
}

// RegisterCommand registers an executable under its command ID.
func (r *Registry) RegisterCommand(cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[cmd.ID] = cmd
}

// RegisterPluginBinding registers a command with its handler and binds
// a key to it in one step. Panes call this from Init for bindings they
// want surfaced in the help overlay.
func (r *Registry) RegisterPluginBinding(key, context string, cmd Command) {
	r.RegisterCommand(cmd)
	r.RegisterBinding(Binding{Key: key, Command: cmd.ID, Context: context})
}

// SetUserOverride maps a key to a command ID ahead of every binding.
// An empty command ID unbinds the key.
func (r *Registry) SetUserOverride(key, commandID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overrides[key] = commandID
}

// GetCommand returns the registered command for an ID.
func (r *Registry) GetCommand(id string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[id]
	return cmd, ok
}

// Resolve returns the command ID bound to key in context, consulting
// user overrides first, then the context, then global bindings.
func (r *Registry) Resolve(key, context string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id, ok := r.overrides[key]; ok {
		return id, id != ""
	}
	if ctx, ok := r.byContext[context]; ok {
		if id, ok := ctx[key]; ok {
			return id, true
		}
	}
	if global, ok := r.byContext["global"]; ok {
		if id, ok := global[key]; ok {
			return id, true
		}
	}
	return "", false
}

// Handle resolves msg against the context's bindings and runs the bound
// command. It returns nil when the key is unbound or the bound command
// has no registered handler, so the key falls through to the focused
// pane's own Update.
func (r *Registry) Handle(msg tea.KeyMsg, context string) tea.Cmd {
	id, ok := r.Resolve(msg.String(), context)
	if !ok {
		return nil
	}
	cmd, ok := r.GetCommand(id)
	if !ok || cmd.Handler == nil {
		return nil
	}
	return cmd.Handler()
}

// BindingsForContext returns the bindings registered for a context in
// registration order, with user overrides applied.
func (r *Registry) BindingsForContext(context string) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Binding
	for _, b := range r.bindings {
		if b.Context != context {
			continue
		}
		if id, ok := r.overrides[b.Key]; ok {
			if id == "" {
				continue
			}
			b.Command = id
		}
		out = append(out, b)
	}
	return out
}
