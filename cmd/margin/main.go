package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/margin/internal/api"
	"github.com/marcus/margin/internal/app"
	"github.com/marcus/margin/internal/cache"
	"github.com/marcus/margin/internal/config"
	"github.com/marcus/margin/internal/keymap"
	"github.com/marcus/margin/internal/menu"
	"github.com/marcus/margin/internal/plugin"
	"github.com/marcus/margin/internal/plugins/materials"
	"github.com/marcus/margin/internal/plugins/notes"
	"github.com/marcus/margin/internal/state"
	"github.com/marcus/margin/internal/styles"
)

// Version is set at build time via ldflags
var Version = ""

var (
	configPath   = flag.String("config", "", "path to config file")
	backendURL   = flag.String("backend", "", "backend URL (overrides config)")
	debugFlag    = flag.Bool("debug", false, "enable debug logging")
	versionFlag  = flag.Bool("version", false, "print version and exit")
	shortVersion = flag.Bool("v", false, "print version and exit (short)")
)

func main() {
	flag.Parse()

	if *versionFlag || *shortVersion {
		fmt.Printf("margin version %s\n", effectiveVersion(Version))
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *debugFlag {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg.Validate()
	if *backendURL != "" {
		cfg.Backend.URL = *backendURL
	}

	styles.ApplyThemeWithOverrides(cfg.UI.Theme.Name, cfg.UI.Theme.Overrides)

	// Persistent UI state is optional; a failed load starts fresh.
	_ = state.Init()

	client := api.NewClient(cfg.Backend.URL, cfg.Backend.Timeout, logger)

	var store *cache.Store
	if cfg.Cache.Enabled {
		store, err = cache.Open(config.ExpandPath(cfg.Cache.Path))
		if err != nil {
			logger.Warn("snapshot cache unavailable", "path", cfg.Cache.Path, "error", err)
			store = nil
		}
	}

	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	registerRootCommands(km)
	for key, cmdID := range cfg.Keymap.Overrides {
		km.SetUserOverride(key, cmdID)
	}

	ctl := menu.NewController(logger)

	pluginCtx := &plugin.Context{
		Config: cfg,
		Keymap: km,
		Logger: logger,
		API:    client,
		Cache:  store,
		Menu:   ctl,
	}

	registry := plugin.NewRegistry(pluginCtx)
	registry.Register(materials.New())
	registry.Register(notes.New())

	// Watch the config file; a nil channel just disables live reload.
	configCh, closer, err := config.NewWatcher(configFile(*configPath))
	if err != nil {
		logger.Warn("config watch disabled", "error", err)
		configCh = nil
	} else {
		defer closer.Close()
	}

	model := app.New(registry, km, pluginCtx, ctl, effectiveVersion(Version), configCh)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}

	if store != nil {
		store.Close()
	}
}

// registerRootCommands binds handler-backed commands for the root-level
// actions so user key overrides can reach them through the keymap.
func registerRootCommands(km *keymap.Registry) {
	rootCommands := []struct {
		id, name, description string
	}{
		{"quit", "Quit", "Quit margin"},
		{"next-pane", "Next pane", "Focus the next pane"},
		{"prev-pane", "Previous pane", "Focus the previous pane"},
		{"focus-pane-1", "Materials", "Focus the materials pane"},
		{"focus-pane-2", "Notes", "Focus the notes pane"},
		{"toggle-help", "Help", "Toggle the help overlay"},
		{"toggle-status", "Status", "Toggle the status overlay"},
		{"toggle-footer", "Footer", "Toggle the footer"},
		{"refresh", "Refresh", "Refetch the active pane"},
	}
	for _, c := range rootCommands {
		id := c.id
		km.RegisterCommand(keymap.Command{
			ID:          c.id,
			Name:        c.name,
			Description: c.description,
			Handler: func() tea.Cmd {
				return func() tea.Msg {
					return keymap.ExecuteCommandMsg{CommandID: id}
				}
			},
		})
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// configFile resolves the path the watcher should follow.
func configFile(override string) string {
	if override != "" {
		return override
	}
	return config.ConfigPath()
}

// effectiveVersion returns the version string, with fallback to build info.
func effectiveVersion(v string) string {
	if v != "" {
		return v
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var revision string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if revision != "" {
		ver := "devel+" + revision
		if len(ver) > 20 {
			ver = ver[:20]
		}
		if dirty {
			ver += "+dirty"
		}
		return ver
	}
	return "devel"
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: margin [options]\n\n")
		fmt.Fprintf(os.Stderr, "A terminal client for your reading tracker.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
}
