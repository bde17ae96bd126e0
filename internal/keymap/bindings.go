package keymap

// DefaultBindings returns the default key bindings.
func DefaultBindings() []Binding {
	return []Binding{
		// Global bindings
		{Key: "q", Command: "quit", Context: "global"},
		{Key: "ctrl+c", Command: "quit", Context: "global"},
		{Key: "`", Command: "next-pane", Context: "global"},
		{Key: "~", Command: "prev-pane", Context: "global"},
		{Key: "1", Command: "focus-pane-1", Context: "global"},
		{Key: "2", Command: "focus-pane-2", Context: "global"},
		{Key: "?", Command: "toggle-help", Context: "global"},
		{Key: "!", Command: "toggle-status", Context: "global"},
		{Key: "ctrl+h", Command: "toggle-footer", Context: "global"},
		{Key: "r", Command: "refresh", Context: "global"},
		{Key: "j", Command: "cursor-down", Context: "global"},
		{Key: "down", Command: "cursor-down", Context: "global"},
		{Key: "k", Command: "cursor-up", Context: "global"},
		{Key: "up", Command: "cursor-up", Context: "global"},
		{Key: "g g", Command: "cursor-top", Context: "global"},
		{Key: "G", Command: "cursor-bottom", Context: "global"},
		{Key: "enter", Command: "select", Context: "global"},
		{Key: "esc", Command: "back", Context: "global"},

		// Materials list context
		{Key: "tab", Command: "next-tab", Context: "materials"},
		{Key: "shift+tab", Command: "prev-tab", Context: "materials"},
		{Key: "enter", Command: "open-notes", Context: "materials"},
		{Key: "s", Command: "start-reading", Context: "materials"},
		{Key: "c", Command: "complete", Context: "materials"},
		{Key: "e", Command: "edit-material", Context: "materials"},
		{Key: "y", Command: "yank-link", Context: "materials"},
		{Key: "/", Command: "filter", Context: "materials"},

		// Notes list context
		{Key: "enter", Command: "open-note", Context: "notes-list"},
		{Key: "n", Command: "new-note", Context: "notes-list"},
		{Key: "e", Command: "edit-note", Context: "notes-list"},
		{Key: "d", Command: "delete-note", Context: "notes-list"},
		{Key: "/", Command: "search", Context: "notes-list"},
		{Key: "p", Command: "next-page", Context: "notes-list"},
		{Key: "P", Command: "prev-page", Context: "notes-list"},
		{Key: "m", Command: "all-materials", Context: "notes-list"},
		{Key: "y", Command: "yank-note", Context: "notes-list"},

		// Note detail context
		{Key: "esc", Command: "back", Context: "notes-detail"},
		{Key: "e", Command: "edit-note", Context: "notes-detail"},
		{Key: "d", Command: "delete-note", Context: "notes-detail"},
		{Key: "v", Command: "toggle-source", Context: "notes-detail"},
		{Key: "y", Command: "yank-note", Context: "notes-detail"},

		// Note editor context. Markup hotkeys are handled by the editor
		// itself; these entries document them for the help overlay.
		{Key: "ctrl+s", Command: "save-note", Context: "notes-editor"},
		{Key: "esc", Command: "close-editor", Context: "notes-editor"},
		{Key: "alt+q", Command: "insert-quotes", Context: "notes-editor"},
		{Key: "alt+t", Command: "insert-dash", Context: "notes-editor"},
		{Key: "ctrl+b", Command: "insert-bold", Context: "notes-editor"},
		{Key: "ctrl+i", Command: "insert-italic", Context: "notes-editor"},
		{Key: "alt+b", Command: "insert-sub", Context: "notes-editor"},
		{Key: "alt+p", Command: "insert-sup", Context: "notes-editor"},
	}
}

// RegisterDefaults registers all default bindings with the registry.
func RegisterDefaults(r *Registry) {
	for _, b := range DefaultBindings() {
		r.RegisterBinding(b)
	}
}
