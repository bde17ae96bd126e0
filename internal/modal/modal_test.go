package modal

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/margin/internal/mouse"
)

func TestNew(t *testing.T) {
	m := New("Edit material")
	if m.title != "Edit material" {
		t.Errorf("expected title 'Edit material', got %q", m.title)
	}
	if m.width != DefaultWidth {
		t.Errorf("expected default width %d, got %d", DefaultWidth, m.width)
	}
	if m.variant != VariantDefault {
		t.Errorf("expected VariantDefault, got %v", m.variant)
	}
}

func TestNewWithOptions(t *testing.T) {
	m := New("Quit?",
		WithWidth(60),
		WithVariant(VariantDanger),
		WithHints(false),
		WithPrimaryAction("confirm"),
	)

	if m.width != 60 {
		t.Errorf("expected width 60, got %d", m.width)
	}
	if m.variant != VariantDanger {
		t.Errorf("expected VariantDanger, got %v", m.variant)
	}
	if m.showHints {
		t.Errorf("expected showHints false")
	}
	if m.primaryAction != "confirm" {
		t.Errorf("expected primaryAction 'confirm', got %q", m.primaryAction)
	}
}

func TestAddSection(t *testing.T) {
	m := New("Test").
		AddSection(Text("Hello")).
		AddSection(Spacer()).
		AddSection(Text("World"))

	if len(m.sections) != 3 {
		t.Errorf("expected 3 sections, got %d", len(m.sections))
	}
}

func TestTextSection(t *testing.T) {
	s := Text("Hello World")
	res := s.Render(80, "", "")

	if !strings.Contains(res.Content, "Hello World") {
		t.Errorf("expected content to contain 'Hello World', got %q", res.Content)
	}
	if len(res.Focusables) != 0 {
		t.Errorf("expected no focusables, got %d", len(res.Focusables))
	}
}

func TestButtonsSection(t *testing.T) {
	s := Buttons(
		Btn(" Confirm ", "confirm"),
		Btn(" Cancel ", "cancel"),
	)
	res := s.Render(80, "confirm", "")

	if !strings.Contains(res.Content, "Confirm") {
		t.Errorf("expected content to contain 'Confirm', got %q", res.Content)
	}
	if len(res.Focusables) != 2 {
		t.Fatalf("expected 2 focusables, got %d", len(res.Focusables))
	}
	if res.Focusables[0].ID != "confirm" {
		t.Errorf("expected first focusable ID 'confirm', got %q", res.Focusables[0].ID)
	}
	if res.Focusables[1].ID != "cancel" {
		t.Errorf("expected second focusable ID 'cancel', got %q", res.Focusables[1].ID)
	}
}

func TestCheckboxSection(t *testing.T) {
	checked := false
	s := Checkbox("outlined", "Outlined", &checked)

	res := s.Render(80, "outlined", "")
	if !strings.Contains(res.Content, "[ ]") {
		t.Errorf("expected unchecked box '[ ]', got %q", res.Content)
	}

	s.Update(tea.KeyMsg{Type: tea.KeyEnter}, "outlined")
	if !checked {
		t.Errorf("expected checked after enter")
	}

	res = s.Render(80, "outlined", "")
	if !strings.Contains(res.Content, "[x]") {
		t.Errorf("expected checked box '[x]', got %q", res.Content)
	}
}

func TestWhenSection(t *testing.T) {
	show := false
	s := When(func() bool { return show }, Text("Conditional"))

	res := s.Render(80, "", "")
	if res.Content != "" {
		t.Errorf("expected empty when condition is false, got %q", res.Content)
	}

	show = true
	res = s.Render(80, "", "")
	if !strings.Contains(res.Content, "Conditional") {
		t.Errorf("expected 'Conditional' when condition is true, got %q", res.Content)
	}
}

func TestWhenSectionNoSpacerLine(t *testing.T) {
	// A hidden section must not leave a blank line between its
	// neighbors, and their hit regions should sit on adjacent rows.
	m := New("Test", WithHints(false)).
		AddSection(Buttons(Btn(" First ", "first"))).
		AddSection(When(func() bool { return false }, Text("Hidden"))).
		AddSection(Buttons(Btn(" Second ", "second")))

	handler := mouse.NewHandler()
	m.Render(80, 24, handler)

	regions := handler.HitMap.Regions()
	var first, second *mouse.Region
	for i := range regions {
		switch regions[i].ID {
		case "first":
			first = &regions[i]
		case "second":
			second = &regions[i]
		}
	}

	if first == nil || second == nil {
		t.Fatalf("expected both 'first' and 'second' regions to be registered")
	}
	if second.Rect.Y-first.Rect.Y != 1 {
		t.Errorf("expected adjacent rows; got delta %d", second.Rect.Y-first.Rect.Y)
	}
}

func TestHandleKeyEsc(t *testing.T) {
	m := New("Test").
		AddSection(Buttons(Btn(" OK ", "ok")))

	handler := mouse.NewHandler()
	m.Render(80, 24, handler)

	action, _ := m.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if action != "cancel" {
		t.Errorf("expected 'cancel' on esc, got %q", action)
	}
}

func TestHandleKeyTab(t *testing.T) {
	m := New("Test").
		AddSection(Buttons(
			Btn(" A ", "a"),
			Btn(" B ", "b"),
			Btn(" C ", "c"),
		))

	handler := mouse.NewHandler()
	m.Render(80, 24, handler)

	if m.currentFocusID() != "a" {
		t.Errorf("expected initial focus on 'a', got %q", m.currentFocusID())
	}

	m.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	if m.currentFocusID() != "b" {
		t.Errorf("expected focus on 'b' after tab, got %q", m.currentFocusID())
	}

	m.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	m.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	if m.currentFocusID() != "a" {
		t.Errorf("expected focus to wrap to 'a', got %q", m.currentFocusID())
	}

	m.HandleKey(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.currentFocusID() != "c" {
		t.Errorf("expected focus on 'c' after shift+tab, got %q", m.currentFocusID())
	}
}

func TestHandleKeyEnter(t *testing.T) {
	m := New("Test").
		AddSection(Buttons(
			Btn(" OK ", "ok"),
			Btn(" Cancel ", "cancel"),
		))

	handler := mouse.NewHandler()
	m.Render(80, 24, handler)

	action, _ := m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if action != "ok" {
		t.Errorf("expected 'ok' on enter, got %q", action)
	}

	m.SetFocus("cancel")
	action, _ = m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if action != "cancel" {
		t.Errorf("expected 'cancel' on enter, got %q", action)
	}
}

func TestHandleKeyEnterPrimaryAction(t *testing.T) {
	// Enter on an input falls through to the primary action.
	ti := textinput.New()
	m := New("Test", WithPrimaryAction("save")).
		AddSection(InputWithLabel("title", "Title", &ti)).
		AddSection(Buttons(Btn(" Save ", "save")))

	handler := mouse.NewHandler()
	m.Render(80, 24, handler)

	m.SetFocus("title")
	action, _ := m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if action != "save" {
		t.Errorf("expected primary action 'save' on enter, got %q", action)
	}
}

func TestHandleMouseClick(t *testing.T) {
	m := New("Test", WithWidth(40)).
		AddSection(Text("Click a button")).
		AddSection(Spacer()).
		AddSection(Buttons(
			Btn(" OK ", "ok"),
			Btn(" Cancel ", "cancel"),
		))

	handler := mouse.NewHandler()
	m.Render(80, 24, handler)

	regions := handler.HitMap.Regions()
	var okRegion *mouse.Region
	for i := range regions {
		if regions[i].ID == "ok" {
			okRegion = &regions[i]
			break
		}
	}
	if okRegion == nil {
		t.Fatal("expected 'ok' button region to be registered")
	}

	action := m.HandleMouse(tea.MouseMsg{
		X:      okRegion.Rect.X + okRegion.Rect.W/2,
		Y:      okRegion.Rect.Y,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	}, handler)

	if action != "ok" {
		t.Errorf("expected 'ok' on click, got %q", action)
	}
}

func TestHandleMouseBackdropClick(t *testing.T) {
	m := New("Test", WithWidth(40)).
		AddSection(Text("Click outside"))

	handler := mouse.NewHandler()
	m.Render(80, 24, handler)

	action := m.HandleMouse(tea.MouseMsg{
		X:      0,
		Y:      0,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	}, handler)
	if action != "cancel" {
		t.Errorf("expected 'cancel' on backdrop click, got %q", action)
	}
}

func TestHandleMouseHover(t *testing.T) {
	m := New("Test", WithWidth(40)).
		AddSection(Buttons(Btn(" OK ", "ok")))

	handler := mouse.NewHandler()
	m.Render(80, 24, handler)

	regions := handler.HitMap.Regions()
	var okRegion *mouse.Region
	for i := range regions {
		if regions[i].ID == "ok" {
			okRegion = &regions[i]
			break
		}
	}
	if okRegion == nil {
		t.Fatal("expected 'ok' button region")
	}

	m.HandleMouse(tea.MouseMsg{
		X:      okRegion.Rect.X,
		Y:      okRegion.Rect.Y,
		Action: tea.MouseActionMotion,
	}, handler)
	if m.hoverID != "ok" {
		t.Errorf("expected hoverID 'ok', got %q", m.hoverID)
	}

	m.HandleMouse(tea.MouseMsg{
		X:      0,
		Y:      0,
		Action: tea.MouseActionMotion,
	}, handler)
	if m.hoverID != "" {
		t.Errorf("expected empty hoverID, got %q", m.hoverID)
	}
}

func TestInputSection(t *testing.T) {
	ti := textinput.New()
	ti.Placeholder = "Enter name"
	s := InputWithLabel("name", "Name:", &ti)

	res := s.Render(60, "name", "")

	if !strings.Contains(res.Content, "Name:") {
		t.Errorf("expected content to contain 'Name:', got %q", res.Content)
	}
	if len(res.Focusables) != 1 {
		t.Fatalf("expected 1 focusable, got %d", len(res.Focusables))
	}
	if res.Focusables[0].ID != "name" {
		t.Errorf("expected focusable ID 'name', got %q", res.Focusables[0].ID)
	}
}

func TestChoiceSection(t *testing.T) {
	selected := 0
	items := []ChoiceItem{
		{ID: "book", Label: "Book"},
		{ID: "lecture", Label: "Lecture"},
		{ID: "course", Label: "Course"},
	}
	s := Choice("type", "Type", items, &selected)

	res := s.Render(60, "type", "")
	if !strings.Contains(res.Content, "Book") {
		t.Errorf("expected content to contain 'Book', got %q", res.Content)
	}
	// The whole list is one focusable.
	if len(res.Focusables) != 1 {
		t.Fatalf("expected 1 focusable, got %d", len(res.Focusables))
	}
	if res.Focusables[0].ID != "type" {
		t.Errorf("expected focusable ID 'type', got %q", res.Focusables[0].ID)
	}

	s.Update(tea.KeyMsg{Type: tea.KeyDown}, "type")
	if selected != 1 {
		t.Errorf("expected selected 1 after down, got %d", selected)
	}
	s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, "type")
	if selected != 2 {
		t.Errorf("expected selected 2 after j, got %d", selected)
	}
	s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, "type")
	if selected != 2 {
		t.Errorf("expected selection to stop at last item, got %d", selected)
	}
	s.Update(tea.KeyMsg{Type: tea.KeyHome}, "type")
	if selected != 0 {
		t.Errorf("expected selected 0 after home, got %d", selected)
	}

	// Enter falls through so the modal's primary action can fire.
	action, _ := s.Update(tea.KeyMsg{Type: tea.KeyEnter}, "type")
	if action != "" {
		t.Errorf("expected no action on enter, got %q", action)
	}

	// Keys while another element holds focus are ignored.
	s.Update(tea.KeyMsg{Type: tea.KeyDown}, "other")
	if selected != 0 {
		t.Errorf("expected selection unchanged without focus, got %d", selected)
	}
}

func TestHitRegionAccuracy(t *testing.T) {
	m := New("Test Modal", WithWidth(50)).
		AddSection(Text("Some text")).
		AddSection(Spacer()).
		AddSection(Buttons(
			Btn(" OK ", "ok"),
			Btn(" Cancel ", "cancel"),
		))

	handler := mouse.NewHandler()
	rendered := m.Render(80, 24, handler)

	if rendered == "" {
		t.Error("expected non-empty render")
	}

	want := map[string]bool{
		"modal-backdrop": false,
		"modal-body":     false,
		"ok":             false,
		"cancel":         false,
	}
	for _, r := range handler.HitMap.Regions() {
		if _, ok := want[r.ID]; ok {
			want[r.ID] = true
		}
	}
	for id, found := range want {
		if !found {
			t.Errorf("expected %s region", id)
		}
	}
}

func TestMeasureHeight(t *testing.T) {
	cases := []struct {
		content  string
		expected int
	}{
		{"", 0},
		{"single line", 1},
		{"line 1\nline 2", 2},
		{"line 1\nline 2\nline 3", 3},
		{"with trailing\n", 1},
		{"\n", 0},
	}

	for _, tc := range cases {
		got := measureHeight(tc.content)
		if got != tc.expected {
			t.Errorf("measureHeight(%q) = %d, want %d", tc.content, got, tc.expected)
		}
	}
}

func TestSliceLines(t *testing.T) {
	content := "line 0\nline 1\nline 2\nline 3\nline 4"

	cases := []struct {
		offset, height int
		padToHeight    bool
		want           string
	}{
		{0, 2, true, "line 0\nline 1"},
		{1, 2, true, "line 1\nline 2"},
		{3, 3, true, "line 3\nline 4\n"},
		{0, 10, true, "line 0\nline 1\nline 2\nline 3\nline 4\n\n\n\n\n"},
		{3, 3, false, "line 3\nline 4"},
		{0, 10, false, "line 0\nline 1\nline 2\nline 3\nline 4"},
	}

	for _, tc := range cases {
		got := sliceLines(content, tc.offset, tc.height, tc.padToHeight)
		if got != tc.want {
			t.Errorf("sliceLines(offset=%d, height=%d, pad=%v) = %q, want %q", tc.offset, tc.height, tc.padToHeight, got, tc.want)
		}
	}
}
