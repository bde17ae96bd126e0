package ui

// Standard modal widths. Dialogs pick the smallest size that fits their
// content; callers can still override per-instance via the Width field.
const (
	ModalWidthSmall  = 40
	ModalWidthMedium = 50
	ModalWidthLarge  = 72
)
