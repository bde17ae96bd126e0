package keymap

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestResolveContextBeforeGlobal(t *testing.T) {
	r := NewRegistry()
	r.RegisterBinding(Binding{Key: "e", Command: "global-edit", Context: "global"})
	r.RegisterBinding(Binding{Key: "e", Command: "edit-material", Context: "materials"})

	if id, ok := r.Resolve("e", "materials"); !ok || id != "edit-material" {
		t.Errorf("Resolve(e, materials) = %q, %v", id, ok)
	}
	if id, ok := r.Resolve("e", "notes-list"); !ok || id != "global-edit" {
		t.Errorf("Resolve(e, notes-list) = %q, %v; want global fallback", id, ok)
	}
	if _, ok := r.Resolve("zz", "materials"); ok {
		t.Error("Resolve of unbound key should report ok=false")
	}
}

func TestUserOverrideWinsEverywhere(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	r.SetUserOverride("r", "quit")

	if id, ok := r.Resolve("r", "materials"); !ok || id != "quit" {
		t.Errorf("Resolve(r, materials) = %q, %v; want override", id, ok)
	}
}

func TestUserOverrideUnbinds(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	r.SetUserOverride("q", "")

	if _, ok := r.Resolve("q", "materials"); ok {
		t.Error("empty override should unbind the key")
	}
}

func TestRegisterBindingReplacesSameKey(t *testing.T) {
	r := NewRegistry()
	r.RegisterBinding(Binding{Key: "x", Command: "first", Context: "materials"})
	r.RegisterBinding(Binding{Key: "x", Command: "second", Context: "materials"})

	if id, _ := r.Resolve("x", "materials"); id != "second" {
		t.Errorf("Resolve(x) = %q, want second", id)
	}
	bindings := r.BindingsForContext("materials")
	count := 0
	for _, b := range bindings {
		if b.Key == "x" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("duplicate bindings for same key: %d", count)
	}
}

func TestHandleRunsRegisteredHandler(t *testing.T) {
	r := NewRegistry()
	fired := false
	r.RegisterPluginBinding("F", "materials", Command{
		ID:   "do-thing",
		Name: "Thing",
		Handler: func() tea.Cmd {
			fired = true
			return nil
		},
	})

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'F'}}
	_ = r.Handle(msg, "materials")
	if !fired {
		t.Error("Handle should invoke the registered handler")
	}
}

func TestHandleFallsThroughWithoutHandler(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	// "s" is bound in the materials context but the pane handles it
	// itself; Handle must return nil so the key reaches the pane.
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}}
	if cmd := r.Handle(msg, "materials"); cmd != nil {
		t.Error("Handle should return nil for handler-less bindings")
	}
}

func TestBindingsForContextOrderAndOverride(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	bindings := r.BindingsForContext("notes-editor")
	if len(bindings) == 0 {
		t.Fatal("expected notes-editor bindings")
	}
	if bindings[0].Key != "ctrl+s" || bindings[0].Command != "save-note" {
		t.Errorf("registration order not preserved: first = %+v", bindings[0])
	}

	for _, b := range bindings {
		if b.Context != "notes-editor" {
			t.Errorf("foreign context leaked in: %+v", b)
		}
	}
}
