// Package modal implements a declarative form dialog built from
// composable sections. A Modal owns focus order, scrolling, and mouse
// hit regions; callers react to the action IDs it returns.
package modal

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/margin/internal/mouse"
)

// Modal is a dialog assembled from sections. Construct with New,
// chain AddSection, then route input through HandleKey and
// HandleMouse and draw with Render each frame.
type Modal struct {
	title         string
	variant       Variant
	width         int
	sections      []Section
	showHints     bool
	primaryAction string

	focusIdx     int      // index into focusIDs
	hoverID      string   // element under the pointer
	focusIDs     []string // focus order, rebuilt each Render
	scrollOffset int      // content scroll in lines

	// Focus positions cached by the last layout pass so tab can
	// scroll the focused element into view.
	focusPositions map[string]focusablePos
	lastViewportH  int
}

// focusablePos is an element's position within the full content.
type focusablePos struct {
	y      int
	height int
}

// New creates a modal with the given title and options.
func New(title string, opts ...Option) *Modal {
	m := &Modal{
		title:     title,
		variant:   VariantDefault,
		width:     DefaultWidth,
		showHints: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddSection appends a section. Returns the modal for chaining.
func (m *Modal) AddSection(s Section) *Modal {
	m.sections = append(m.sections, s)
	return m
}

// Render draws the modal and registers hit regions on handler.
func (m *Modal) Render(screenW, screenH int, handler *mouse.Handler) string {
	return m.buildLayout(screenW, screenH, handler)
}

// HandleKey processes a key press. It returns the action ID that
// fired ("cancel" for esc, a button or input ID for enter) and any
// command from the embedded bubbles models.
func (m *Modal) HandleKey(msg tea.KeyMsg) (action string, cmd tea.Cmd) {
	switch msg.String() {
	case "esc":
		return "cancel", nil

	case "tab":
		m.cycleFocus(1)
		return "", nil

	case "shift+tab":
		m.cycleFocus(-1)
		return "", nil

	case "enter":
		focusID := m.currentFocusID()
		if focusID == "" {
			return "", nil
		}
		// The focused section gets first claim on enter.
		action, cmd = m.routeToFocusedSection(msg)
		if action != "" {
			return action, cmd
		}
		if m.primaryAction != "" {
			return m.primaryAction, cmd
		}
		return focusID, cmd

	default:
		return m.routeToFocusedSection(msg)
	}
}

// HandleMouse processes a mouse event against the modal's hit
// regions. Returns the action ID of a clicked element, "cancel" for a
// backdrop click, or "".
func (m *Modal) HandleMouse(msg tea.MouseMsg, handler *mouse.Handler) string {
	action := handler.HandleMouse(msg)

	switch action.Type {
	case mouse.ActionClick:
		if action.Region == nil {
			return ""
		}
		id := action.Region.ID

		if id == "modal-backdrop" {
			return "cancel"
		}
		if id == "modal-body" {
			return ""
		}

		// Click on a focusable: focus it and surface its ID.
		for i, fid := range m.focusIDs {
			if fid == id {
				m.focusIdx = i
				return id
			}
		}
		return ""

	case mouse.ActionHover:
		if action.Region != nil && action.Region.ID != "modal-backdrop" && action.Region.ID != "modal-body" {
			m.hoverID = action.Region.ID
		} else {
			m.hoverID = ""
		}
		return ""

	case mouse.ActionScrollUp:
		if action.Region != nil && action.Region.ID == "modal-body" {
			m.scrollOffset = max(0, m.scrollOffset-3)
		}
		return ""

	case mouse.ActionScrollDown:
		if action.Region != nil && action.Region.ID == "modal-body" {
			// Clamped against content height in buildLayout.
			m.scrollOffset += 3
		}
		return ""
	}

	return ""
}

// SetFocus moves focus to the element with the given ID.
func (m *Modal) SetFocus(id string) {
	for i, fid := range m.focusIDs {
		if fid == id {
			m.focusIdx = i
			return
		}
	}
}

func (m *Modal) currentFocusID() string {
	if len(m.focusIDs) == 0 {
		return ""
	}
	if m.focusIdx < 0 || m.focusIdx >= len(m.focusIDs) {
		return m.focusIDs[0]
	}
	return m.focusIDs[m.focusIdx]
}

func (m *Modal) cycleFocus(delta int) {
	if len(m.focusIDs) == 0 {
		return
	}
	m.focusIdx = (m.focusIdx + delta + len(m.focusIDs)) % len(m.focusIDs)
	m.scrollToFocused()
}

// scrollToFocused keeps the focused element inside the viewport.
func (m *Modal) scrollToFocused() {
	id := m.currentFocusID()
	if id == "" || m.focusPositions == nil || m.lastViewportH <= 0 {
		return
	}
	pos, ok := m.focusPositions[id]
	if !ok {
		return
	}
	if pos.y < m.scrollOffset {
		m.scrollOffset = pos.y
	}
	if pos.y+pos.height > m.scrollOffset+m.lastViewportH {
		m.scrollOffset = pos.y + pos.height - m.lastViewportH
	}
}

func (m *Modal) routeToFocusedSection(msg tea.KeyMsg) (string, tea.Cmd) {
	focusID := m.currentFocusID()
	if focusID == "" {
		return "", nil
	}
	for _, section := range m.sections {
		action, cmd := section.Update(msg, focusID)
		if action != "" || cmd != nil {
			return action, cmd
		}
	}
	return "", nil
}
