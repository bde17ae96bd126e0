package modal

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/margin/internal/styles"
)

// Section is a composable modal building block. Render produces the
// section's content at the given width; Update receives keys routed to
// the section while one of its focusables holds focus and returns an
// action ID when one fires.
type Section interface {
	Render(contentWidth int, focusID, hoverID string) RenderedSection
	Update(msg tea.Msg, focusID string) (string, tea.Cmd)
}

// RenderedSection is the output of a section render pass.
type RenderedSection struct {
	Content    string
	Focusables []FocusableInfo
}

// FocusableInfo describes a focusable element's position within its
// section, in content-relative cells. The layout pass translates these
// to absolute hit regions.
type FocusableInfo struct {
	ID      string
	OffsetX int
	OffsetY int
	Width   int
	Height  int
}

// measureHeight returns the rendered height of section content in
// lines. Empty content (including a bare newline) measures zero so
// hidden sections take no space.
func measureHeight(content string) int {
	if content == "" {
		return 0
	}
	content = strings.TrimRight(content, "\n")
	if content == "" {
		return 0
	}
	return strings.Count(content, "\n") + 1
}

// textSection renders static text wrapped to the content width.
type textSection struct {
	text string
}

// Text creates a static text section.
func Text(text string) Section {
	return &textSection{text: text}
}

func (s *textSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	return RenderedSection{
		Content: lipgloss.NewStyle().Width(contentWidth).Render(s.text),
	}
}

func (s *textSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	return "", nil
}

// spacerSection renders one blank line.
type spacerSection struct{}

// Spacer creates a one-line vertical gap.
func Spacer() Section {
	return spacerSection{}
}

func (spacerSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	return RenderedSection{Content: " "}
}

func (spacerSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	return "", nil
}

// Button describes one button in a Buttons section.
type Button struct {
	Label  string
	ID     string
	danger bool
}

// BtnOption customizes a button.
type BtnOption func(*Button)

// Btn creates a button with the given label and action ID.
func Btn(label, id string, opts ...BtnOption) Button {
	b := Button{Label: label, ID: id}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// BtnDanger renders the button in the danger palette.
func BtnDanger() BtnOption {
	return func(b *Button) {
		b.danger = true
	}
}

// buttonsSection renders a horizontal row of buttons.
type buttonsSection struct {
	buttons []Button
}

// Buttons creates a row of buttons. Enter on a focused button returns
// its ID as the modal action; clicks do the same via hit regions.
func Buttons(buttons ...Button) Section {
	return &buttonsSection{buttons: buttons}
}

const buttonGap = 2

func (s *buttonsSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	parts := make([]string, 0, len(s.buttons))
	focusables := make([]FocusableInfo, 0, len(s.buttons))
	x := 0

	for i, b := range s.buttons {
		style := styles.Button
		switch {
		case b.danger && b.ID == focusID:
			style = styles.ButtonDangerFocused
		case b.danger && b.ID == hoverID:
			style = styles.ButtonDangerHover
		case b.danger:
			style = styles.ButtonDanger
		case b.ID == focusID:
			style = styles.ButtonFocused
		case b.ID == hoverID:
			style = styles.ButtonHover
		}

		rendered := style.Render(b.Label)
		w := ansi.StringWidth(rendered)
		parts = append(parts, rendered)
		focusables = append(focusables, FocusableInfo{
			ID:      b.ID,
			OffsetX: x,
			OffsetY: 0,
			Width:   w,
			Height:  1,
		})
		x += w
		if i < len(s.buttons)-1 {
			x += buttonGap
		}
	}

	return RenderedSection{
		Content:    strings.Join(parts, strings.Repeat(" ", buttonGap)),
		Focusables: focusables,
	}
}

func (s *buttonsSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || keyMsg.String() != "enter" {
		return "", nil
	}
	for _, b := range s.buttons {
		if b.ID == focusID {
			return b.ID, nil
		}
	}
	return "", nil
}

// checkboxSection renders a toggleable checkbox bound to a bool.
type checkboxSection struct {
	id      string
	label   string
	checked *bool
}

// Checkbox creates a checkbox bound to checked. Enter or space toggles
// it while focused.
func Checkbox(id, label string, checked *bool) Section {
	return &checkboxSection{id: id, label: label, checked: checked}
}

func (s *checkboxSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	box := "[ ]"
	if s.checked != nil && *s.checked {
		box = "[x]"
	}

	style := styles.ListItemNormal
	if s.id == focusID {
		style = styles.ListItemFocused
	} else if s.id == hoverID {
		style = styles.ListItemSelected
	}

	line := style.Render(box + " " + s.label)
	return RenderedSection{
		Content: line,
		Focusables: []FocusableInfo{{
			ID:      s.id,
			OffsetX: 0,
			OffsetY: 0,
			Width:   ansi.StringWidth(line),
			Height:  1,
		}},
	}
}

func (s *checkboxSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if focusID != s.id || s.checked == nil {
		return "", nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return "", nil
	}
	switch keyMsg.String() {
	case "enter", " ":
		*s.checked = !*s.checked
	}
	return "", nil
}

// inputSection renders a labeled single-line text input.
type inputSection struct {
	id    string
	label string
	input *textinput.Model
}

// InputWithLabel creates a labeled text input section bound to input.
// The section owns focus/blur of the bubbles model.
func InputWithLabel(id, label string, input *textinput.Model) Section {
	return &inputSection{id: id, label: label, input: input}
}

func (s *inputSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	if s.id == focusID && !s.input.Focused() {
		s.input.Focus()
	} else if s.id != focusID && s.input.Focused() {
		s.input.Blur()
	}

	s.input.Width = max(1, contentWidth-ansi.StringWidth(s.label)-2)
	line := styles.Muted.Render(s.label) + " " + s.input.View()

	return RenderedSection{
		Content: line,
		Focusables: []FocusableInfo{{
			ID:      s.id,
			OffsetX: 0,
			OffsetY: 0,
			Width:   contentWidth,
			Height:  1,
		}},
	}
}

func (s *inputSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if focusID != s.id {
		return "", nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return "", nil
	}
	// Enter bubbles up to the modal's primary action.
	if keyMsg.String() == "enter" {
		return "", nil
	}
	var cmd tea.Cmd
	*s.input, cmd = s.input.Update(msg)
	return "", cmd
}

// whenSection shows its child only while cond holds. A hidden section
// renders empty and takes no layout space.
type whenSection struct {
	cond  func() bool
	inner Section
}

// When wraps a section behind a visibility condition.
func When(cond func() bool, inner Section) Section {
	return &whenSection{cond: cond, inner: inner}
}

func (s *whenSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	if !s.cond() {
		return RenderedSection{}
	}
	return s.inner.Render(contentWidth, focusID, hoverID)
}

func (s *whenSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if !s.cond() {
		return "", nil
	}
	return s.inner.Update(msg, focusID)
}
