package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/margin/internal/styles"
)

// ChoiceItem is one entry in a Choice section.
type ChoiceItem struct {
	ID    string // action/value identifier
	Label string
}

// choiceSection renders a pick-one list bound to an index. The whole
// list is one focusable: tab moves past it, j/k move the selection
// while it holds focus.
type choiceSection struct {
	id       string
	label    string
	items    []ChoiceItem
	selected *int
	visible  int
	scroll   int
}

// Choice creates a labeled pick-one list bound to selected. Enter
// falls through to the modal's primary action so the list behaves
// like any other form field.
func Choice(id, label string, items []ChoiceItem, selected *int) Section {
	return &choiceSection{id: id, label: label, items: items, selected: selected, visible: 5}
}

func (s *choiceSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	if len(s.items) == 0 {
		return RenderedSection{Content: styles.Muted.Render("(empty)")}
	}

	sel := 0
	if s.selected != nil {
		sel = clamp(*s.selected, 0, len(s.items)-1)
	}
	count := min(s.visible, len(s.items))

	// Keep the selection inside the window.
	if sel < s.scroll {
		s.scroll = sel
	} else if sel >= s.scroll+count {
		s.scroll = sel - count + 1
	}
	s.scroll = clamp(s.scroll, 0, max(0, len(s.items)-count))

	focused := focusID == s.id

	var rows []string
	rows = append(rows, styles.Muted.Render(s.label))
	for i := 0; i < count; i++ {
		idx := s.scroll + i
		item := s.items[idx]

		var style lipgloss.Style
		switch {
		case idx == sel:
			style = styles.ListItemFocused
		case item.ID == hoverID:
			style = styles.ListItemSelected
		default:
			style = styles.ListItemNormal
		}

		cursor := "  "
		if idx == sel {
			if focused {
				cursor = styles.ListCursor.Render("▸ ")
			} else {
				cursor = styles.ListCursor.Render("> ")
			}
		}
		rows = append(rows, cursor+style.Render(item.Label))
	}
	if s.scroll+count < len(s.items) {
		rows = append(rows, styles.Muted.Render("↓ more"))
	}

	return RenderedSection{
		Content: strings.Join(rows, "\n"),
		Focusables: []FocusableInfo{{
			ID:      s.id,
			OffsetX: 0,
			OffsetY: 1, // below the label line
			Width:   contentWidth,
			Height:  count,
		}},
	}
}

func (s *choiceSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if focusID != s.id || s.selected == nil || len(s.items) == 0 {
		return "", nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return "", nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if *s.selected > 0 {
			*s.selected--
		}
	case "down", "j":
		if *s.selected < len(s.items)-1 {
			*s.selected++
		}
	case "home":
		*s.selected = 0
	case "end":
		*s.selected = len(s.items) - 1
	}
	return "", nil
}
