package modal

// Layout constants shared by the modal framework.
const (
	// DefaultWidth is the modal width when WithWidth is not given.
	DefaultWidth = 50

	// MinModalWidth is the narrowest a modal will render.
	MinModalWidth = 20

	// ModalPadding is the horizontal chrome around content:
	// border (2) plus padding (4).
	ModalPadding = 6
)

// Variant selects the modal's accent palette.
type Variant int

const (
	VariantDefault Variant = iota
	VariantDanger
	VariantWarning
	VariantInfo
)

// Option configures a Modal at construction.
type Option func(*Modal)

// WithWidth sets the preferred modal width in cells. The layout pass
// still clamps to the screen.
func WithWidth(w int) Option {
	return func(m *Modal) {
		m.width = w
	}
}

// WithVariant sets the accent palette.
func WithVariant(v Variant) Option {
	return func(m *Modal) {
		m.variant = v
	}
}

// WithHints toggles the keyboard hint line under the content.
func WithHints(show bool) Option {
	return func(m *Modal) {
		m.showHints = show
	}
}

// WithPrimaryAction names the action Enter triggers when the focused
// element doesn't claim the key itself.
func WithPrimaryAction(id string) Option {
	return func(m *Modal) {
		m.primaryAction = id
	}
}
