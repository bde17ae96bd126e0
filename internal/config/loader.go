package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	configDir  = ".config/margin"
	configFile = "config.json"
)

// rawConfig is the JSON-unmarshaling intermediary. Pointer and string
// fields distinguish "absent" from zero values so a partial file only
// overrides what it names.
type rawConfig struct {
	Backend rawBackendConfig `json:"backend"`
	Cache   rawCacheConfig   `json:"cache"`
	Keymap  KeymapConfig     `json:"keymap"`
	UI      rawUIConfig      `json:"ui"`
	Editor  rawEditorConfig  `json:"editor"`
}

type rawBackendConfig struct {
	URL     string `json:"url"`
	Timeout string `json:"timeout"` // duration string, e.g. "10s"
}

type rawCacheConfig struct {
	Enabled *bool  `json:"enabled"`
	Path    string `json:"path"`
}

type rawUIConfig struct {
	ShowFooter     *bool       `json:"showFooter"`
	GroupByChapter *bool       `json:"groupByChapter"`
	DateFormat     string      `json:"dateFormat"`
	Theme          ThemeConfig `json:"theme"`
}

type rawEditorConfig struct {
	WrapWidth *int `json:"wrapWidth"`
}

// Load loads configuration from the default location (or the test
// override when one is set).
func Load() (*Config, error) {
	return LoadFrom(effectiveConfigPath())
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/margin/config.json
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil // Return defaults on error
		}
		path = filepath.Join(home, configDir, configFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	// Merge raw config into defaults
	mergeConfig(cfg, &raw)

	// Expand paths
	cfg.Cache.Path = ExpandPath(cfg.Cache.Path)

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeConfig merges raw config values into the config.
func mergeConfig(cfg *Config, raw *rawConfig) {
	// Backend
	if raw.Backend.URL != "" {
		cfg.Backend.URL = strings.TrimRight(raw.Backend.URL, "/")
	}
	if raw.Backend.Timeout != "" {
		if d, err := time.ParseDuration(raw.Backend.Timeout); err == nil {
			cfg.Backend.Timeout = d
		}
	}

	// Cache
	if raw.Cache.Enabled != nil {
		cfg.Cache.Enabled = *raw.Cache.Enabled
	}
	if raw.Cache.Path != "" {
		cfg.Cache.Path = raw.Cache.Path
	}

	// Keymap
	if raw.Keymap.Overrides != nil {
		for k, v := range raw.Keymap.Overrides {
			cfg.Keymap.Overrides[k] = v
		}
	}

	// UI
	if raw.UI.ShowFooter != nil {
		cfg.UI.ShowFooter = *raw.UI.ShowFooter
	}
	if raw.UI.GroupByChapter != nil {
		cfg.UI.GroupByChapter = *raw.UI.GroupByChapter
	}
	if raw.UI.DateFormat != "" {
		cfg.UI.DateFormat = raw.UI.DateFormat
	}
	if raw.UI.Theme.Name != "" {
		cfg.UI.Theme.Name = raw.UI.Theme.Name
	}
	if raw.UI.Theme.Overrides != nil {
		for k, v := range raw.UI.Theme.Overrides {
			cfg.UI.Theme.Overrides[k] = v
		}
	}

	// Editor
	if raw.Editor.WrapWidth != nil {
		cfg.Editor.WrapWidth = *raw.Editor.WrapWidth
	}
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}
