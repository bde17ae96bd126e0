package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/margin/internal/modal"
	"github.com/marcus/margin/internal/styles"
)

// ConfirmDialog describes a two-button confirmation prompt. The border
// color doubles as the severity signal: styles.Error gets the danger
// treatment (red confirm button), Warning and Info tint the frame.
type ConfirmDialog struct {
	Title        string
	Message      string
	ConfirmLabel string
	CancelLabel  string
	BorderColor  lipgloss.Color
	Width        int
}

// NewConfirmDialog creates a dialog with sensible defaults.
func NewConfirmDialog(title, message string) *ConfirmDialog {
	return &ConfirmDialog{
		Title:        title,
		Message:      message,
		ConfirmLabel: " Confirm ",
		CancelLabel:  " Cancel ",
		BorderColor:  styles.Primary,
		Width:        ModalWidthMedium,
	}
}

// ToModal builds the modal for this dialog. "confirm" is the primary
// action, so enter anywhere in the modal confirms.
func (d *ConfirmDialog) ToModal() *modal.Modal {
	variant := modal.VariantDefault
	switch d.BorderColor {
	case styles.Error:
		variant = modal.VariantDanger
	case styles.Warning:
		variant = modal.VariantWarning
	case styles.Info:
		variant = modal.VariantInfo
	}

	confirm := modal.Btn(d.ConfirmLabel, "confirm")
	if variant == modal.VariantDanger {
		confirm = modal.Btn(d.ConfirmLabel, "confirm", modal.BtnDanger())
	}

	return modal.New(d.Title,
		modal.WithWidth(d.Width),
		modal.WithVariant(variant),
		modal.WithPrimaryAction("confirm"),
		modal.WithHints(false),
	).
		AddSection(modal.Text(d.Message)).
		AddSection(modal.Spacer()).
		AddSection(modal.Buttons(
			confirm,
			modal.Btn(d.CancelLabel, "cancel"),
		))
}
