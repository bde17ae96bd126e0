package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// testConfigPath redirects Save/Load during tests.
var testConfigPath string

// SetTestConfigPath points the package at a temp config file. Test-only.
func SetTestConfigPath(path string) { testConfigPath = path }

// ResetTestConfigPath restores the default config location. Test-only.
func ResetTestConfigPath() { testConfigPath = "" }

func effectiveConfigPath() string {
	if testConfigPath != "" {
		return testConfigPath
	}
	return ConfigPath()
}

// saveConfig is the JSON-marshaling intermediary that uses string durations.
type saveConfig struct {
	Backend saveBackendConfig `json:"backend"`
	Cache   saveCacheConfig   `json:"cache"`
	Keymap  KeymapConfig      `json:"keymap"`
	UI      UIConfig          `json:"ui"`
	Editor  EditorConfig      `json:"editor"`
}

type saveBackendConfig struct {
	URL     string `json:"url,omitempty"`
	Timeout string `json:"timeout,omitempty"`
}

type saveCacheConfig struct {
	Enabled *bool  `json:"enabled,omitempty"`
	Path    string `json:"path,omitempty"`
}

// toSaveConfig converts Config to the JSON-serializable format.
func toSaveConfig(cfg *Config) saveConfig {
	return saveConfig{
		Backend: saveBackendConfig{
			URL:     cfg.Backend.URL,
			Timeout: cfg.Backend.Timeout.String(),
		},
		Cache: saveCacheConfig{
			Enabled: &cfg.Cache.Enabled,
			Path:    cfg.Cache.Path,
		},
		Keymap: cfg.Keymap,
		UI:     cfg.UI,
		Editor: cfg.Editor,
	}
}

// Save writes the config to ~/.config/margin/config.json
func Save(cfg *Config) error {
	return SaveTo(cfg, effectiveConfigPath())
}

// SaveTo writes the config to a specific path. Keys this package does not
// manage (hand-edited extras, keys from newer versions) are carried over
// from the existing file rather than dropped.
func SaveTo(cfg *Config, path string) error {
	raw := make(map[string]json.RawMessage)
	if data, err := os.ReadFile(path); err == nil {
		// Corrupt existing file: start fresh rather than fail the save
		_ = json.Unmarshal(data, &raw)
	}

	sc := toSaveConfig(cfg)
	sections := map[string]interface{}{
		"backend": sc.Backend,
		"cache":   sc.Cache,
		"keymap":  sc.Keymap,
		"ui":      sc.UI,
		"editor":  sc.Editor,
	}
	for key, val := range sections {
		b, err := json.Marshal(val)
		if err != nil {
			return err
		}
		raw[key] = b
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SaveBackendURL updates only the backend URL in config and saves.
// Used by the first-run setup modal.
func SaveBackendURL(url string) error {
	cfg, err := LoadFrom(effectiveConfigPath())
	if err != nil {
		return err
	}
	cfg.Backend.URL = url
	return Save(cfg)
}

// SaveTheme updates only the theme name in config and saves.
func SaveTheme(themeName string) error {
	cfg, err := LoadFrom(effectiveConfigPath())
	if err != nil {
		return err
	}
	cfg.UI.Theme.Name = themeName
	cfg.UI.Theme.Overrides = nil
	return Save(cfg)
}

// SaveThemeWithOverrides saves a theme name and full overrides map to config.
func SaveThemeWithOverrides(themeName string, overrides map[string]interface{}) error {
	cfg, err := LoadFrom(effectiveConfigPath())
	if err != nil {
		return err
	}
	cfg.UI.Theme.Name = themeName
	cfg.UI.Theme.Overrides = overrides
	return Save(cfg)
}
