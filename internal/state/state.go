package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// State holds persistent user preferences and resumable UI position.
type State struct {
	ActivePane     string `json:"activePane,omitempty"`     // "materials" or "notes"
	MaterialsTab   string `json:"materialsTab,omitempty"`   // "queue", "reading", "completed", "all"
	MaterialFilter string `json:"materialFilter,omitempty"` // last title filter on the materials pane

	// Pane-specific state
	Notes NotesState `json:"notes,omitempty"`

	// Draft preserves an interrupted note edit across restarts.
	Draft DraftState `json:"draft,omitempty"`
}

// NotesState remembers where the notes pane was.
type NotesState struct {
	MaterialID string `json:"materialId,omitempty"` // empty = all materials
	Page       int    `json:"page,omitempty"`       // 1-based server page
	Cursor     int    `json:"cursor,omitempty"`     // list cursor position
}

// DraftState is an unsaved editor buffer and its target.
type DraftState struct {
	NoteID     string `json:"noteId,omitempty"` // empty = new note
	MaterialID string `json:"materialId,omitempty"`
	Content    string `json:"content,omitempty"`
	Chapter    string `json:"chapter,omitempty"`
	Page       int    `json:"page,omitempty"`
}

// Empty reports whether the draft carries no unsaved content.
func (d DraftState) Empty() bool {
	return d.Content == ""
}

var (
	current *State
	mu      sync.RWMutex
	path    string
)

// Init loads state from the default location.
func Init() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return InitWithDir(filepath.Join(home, ".config", "margin"))
}

// InitWithDir loads state from a specified directory.
// This is primarily for testing to avoid reading real user state.
func InitWithDir(dir string) error {
	path = filepath.Join(dir, "state.json")
	return Load()
}

// Load reads state from disk.
func Load() error {
	mu.Lock()
	defer mu.Unlock()

	current = &State{
		ActivePane:   "materials",
		MaterialsTab: "queue",
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil // no state file yet, use defaults
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(data, current)
}

// Save writes state to disk.
func Save() error {
	mu.RLock()
	defer mu.RUnlock()

	if current == nil {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetActivePane returns the pane that was focused when margin last exited.
func GetActivePane() string {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil || current.ActivePane == "" {
		return "materials"
	}
	return current.ActivePane
}

// SetActivePane saves the focused pane.
func SetActivePane(pane string) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.ActivePane = pane
	mu.Unlock()
	return Save()
}

// GetMaterialsTab returns the saved materials status tab.
func GetMaterialsTab() string {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil || current.MaterialsTab == "" {
		return "queue"
	}
	return current.MaterialsTab
}

// SetMaterialsTab saves the materials status tab.
func SetMaterialsTab(tab string) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.MaterialsTab = tab
	mu.Unlock()
	return Save()
}

// GetMaterialFilter returns the last title filter on the materials pane.
func GetMaterialFilter() string {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return ""
	}
	return current.MaterialFilter
}

// SetMaterialFilter saves the materials title filter.
func SetMaterialFilter(filter string) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.MaterialFilter = filter
	mu.Unlock()
	return Save()
}

// GetNotesState returns the saved notes pane position.
func GetNotesState() NotesState {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return NotesState{}
	}
	return current.Notes
}

// SetNotesState saves the notes pane position.
func SetNotesState(s NotesState) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.Notes = s
	mu.Unlock()
	return Save()
}

// GetDraft returns the saved editor draft.
func GetDraft() DraftState {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return DraftState{}
	}
	return current.Draft
}

// SetDraft saves an in-progress editor buffer.
func SetDraft(d DraftState) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.Draft = d
	mu.Unlock()
	return Save()
}

// ClearDraft removes the saved draft after a successful save or an
// explicit discard.
func ClearDraft() error {
	mu.Lock()
	if current == nil {
		mu.Unlock()
		return nil
	}
	current.Draft = DraftState{}
	mu.Unlock()
	return Save()
}
