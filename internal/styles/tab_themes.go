package styles

// TabThemePreset is a named tab color scheme selectable as a tabStyle
// value in the theme config.
type TabThemePreset struct {
	Name        string
	DisplayName string
	Style       string   // "gradient", "per-tab", "solid", "minimal"
	Colors      []string // gradient stops or per-tab colors
}

// TabThemePresets holds the built-in tab schemes. The materials pane
// renders four status tabs; per-tab schemes cycle when there are more
// tabs than colors.
var TabThemePresets = map[string]TabThemePreset{
	"rainbow": {
		Name:        "rainbow",
		DisplayName: "Rainbow",
		Style:       "gradient",
		Colors:      []string{"#DC3C3C", "#3CDC3C", "#3C3CDC", "#9C3CDC"},
	},
	"ocean": {
		Name:        "ocean",
		DisplayName: "Ocean",
		Style:       "gradient",
		Colors:      []string{"#0077B6", "#00B4D8", "#90E0EF"},
	},
	"ember": {
		Name:        "ember",
		DisplayName: "Ember",
		Style:       "gradient",
		Colors:      []string{"#FF4500", "#FF8C00", "#FFD700"},
	},

	// One color per reading status: queue, reading, completed, all.
	"shelf": {
		Name:        "shelf",
		DisplayName: "Shelf",
		Style:       "per-tab",
		Colors:      []string{"#6B7280", "#3B82F6", "#10B981", "#7C3AED"},
	},
	"terminal": {
		Name:        "terminal",
		DisplayName: "Terminal",
		Style:       "per-tab",
		Colors:      []string{"#FF5555", "#50FA7B", "#8BE9FD", "#F1FA8C"},
	},

	"mono": {
		Name:        "mono",
		DisplayName: "Monochrome",
		Style:       "solid",
		Colors:      []string{}, // theme primary
	},

	"underline": {
		Name:        "underline",
		DisplayName: "Underline",
		Style:       "minimal",
		Colors:      []string{},
	},
	"dim": {
		Name:        "dim",
		DisplayName: "Dim",
		Style:       "minimal",
		Colors:      []string{},
	},
}

// GetTabPreset returns a preset by name, or nil.
func GetTabPreset(name string) *TabThemePreset {
	if preset, ok := TabThemePresets[name]; ok {
		return &preset
	}
	return nil
}
