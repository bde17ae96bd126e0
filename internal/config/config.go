package config

import (
	"time"

	"github.com/marcus/margin/internal/styles"
)

// Config is the root configuration structure.
type Config struct {
	Backend BackendConfig `json:"backend"`
	Cache   CacheConfig   `json:"cache"`
	Keymap  KeymapConfig  `json:"keymap"`
	UI      UIConfig      `json:"ui"`
	Editor  EditorConfig  `json:"editor"`
}

// BackendConfig configures the notes backend connection.
type BackendConfig struct {
	// URL is the base URL of the tracker backend, e.g. "http://localhost:8888".
	URL string `json:"url"`
	// Timeout applies to listing and mutation calls. Deletes are sent
	// without one so a slow backend cannot stall the UI refresh.
	Timeout time.Duration `json:"timeout"`
}

// CacheConfig configures the local snapshot cache.
type CacheConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"` // sqlite file, supports ~ expansion
}

// KeymapConfig holds key binding overrides.
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides"`
}

// UIConfig configures UI appearance.
type UIConfig struct {
	ShowFooter     bool        `json:"showFooter"`
	GroupByChapter bool        `json:"groupByChapter"`
	DateFormat     string      `json:"dateFormat"`
	Theme          ThemeConfig `json:"theme"`
}

// EditorConfig configures the note editor.
type EditorConfig struct {
	// WrapWidth is the column the editor soft-wraps at. 0 uses the pane width.
	WrapWidth int `json:"wrapWidth"`
}

// ThemeConfig configures the color theme.
type ThemeConfig struct {
	Name      string                 `json:"name"`
	Overrides map[string]interface{} `json:"overrides,omitempty"` // user customizations on top
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			URL:     "http://localhost:8888",
			Timeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    "~/.cache/margin/snapshot.db",
		},
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
		UI: UIConfig{
			ShowFooter:     true,
			GroupByChapter: true,
			DateFormat:     "2006-01-02",
			Theme: ThemeConfig{
				Name:      "default",
				Overrides: make(map[string]interface{}),
			},
		},
		Editor: EditorConfig{
			WrapWidth: 0,
		},
	}
}

// Validate checks the configuration and corrects out-of-range values
// instead of rejecting the file.
func (c *Config) Validate() error {
	if c.Backend.URL == "" {
		c.Backend.URL = "http://localhost:8888"
	}
	if c.Backend.Timeout <= 0 {
		c.Backend.Timeout = 10 * time.Second
	}
	if c.Cache.Path == "" {
		c.Cache.Path = "~/.cache/margin/snapshot.db"
	}
	if c.UI.DateFormat == "" {
		c.UI.DateFormat = "2006-01-02"
	}
	if !styles.IsValidTheme(c.UI.Theme.Name) {
		c.UI.Theme.Name = "default"
	}
	if c.Editor.WrapWidth < 0 {
		c.Editor.WrapWidth = 0
	}
	return nil
}
