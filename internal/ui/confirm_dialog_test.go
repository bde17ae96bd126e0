package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/margin/internal/styles"
)

func TestNewConfirmDialogDefaults(t *testing.T) {
	d := NewConfirmDialog("Quit Margin?", "Open note drafts are kept for next time.")

	if d.Title != "Quit Margin?" {
		t.Errorf("expected title 'Quit Margin?', got %q", d.Title)
	}
	if d.ConfirmLabel != " Confirm " || d.CancelLabel != " Cancel " {
		t.Errorf("unexpected default labels: %q / %q", d.ConfirmLabel, d.CancelLabel)
	}
	if d.Width != ModalWidthMedium {
		t.Errorf("expected width %d, got %d", ModalWidthMedium, d.Width)
	}
	if d.BorderColor != styles.Primary {
		t.Error("expected default border color")
	}
}

func TestConfirmDialogToModal(t *testing.T) {
	d := NewConfirmDialog("Quit Margin?", "Open note drafts are kept for next time.")
	d.ConfirmLabel = " Quit "

	m := d.ToModal()
	output := m.Render(80, 24, nil)

	if !strings.Contains(output, "Quit Margin?") {
		t.Error("render should contain the title")
	}
	if !strings.Contains(output, "drafts are kept") {
		t.Error("render should contain the message")
	}
	if !strings.Contains(output, "Quit") || !strings.Contains(output, "Cancel") {
		t.Error("render should contain both button labels")
	}
	if strings.Contains(output, "Tab to switch") {
		t.Error("confirm dialogs must not show the hint line")
	}
}

func TestConfirmDialogActions(t *testing.T) {
	d := NewConfirmDialog("Quit Margin?", "Sure?")
	m := d.ToModal()
	m.Render(80, 24, nil)

	// Confirm is the primary action and the initially focused button.
	action, _ := m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if action != "confirm" {
		t.Errorf("expected confirm, got %q", action)
	}

	m.SetFocus("cancel")
	action, _ = m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if action != "cancel" {
		t.Errorf("expected cancel, got %q", action)
	}

	action, _ = m.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if action != "cancel" {
		t.Errorf("expected cancel on esc, got %q", action)
	}
}

func TestConfirmDialogDangerBorder(t *testing.T) {
	d := NewConfirmDialog("Quit Margin?", "Sure?")
	d.BorderColor = styles.Error

	m := d.ToModal()
	out := m.Render(80, 24, nil)
	if out == "" {
		t.Fatal("expected rendered output")
	}
	// The danger variant must still confirm via enter.
	action, _ := m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if action != "confirm" {
		t.Errorf("expected confirm, got %q", action)
	}
}
