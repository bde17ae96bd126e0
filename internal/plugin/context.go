package plugin

import (
	"log/slog"

	"github.com/marcus/margin/internal/api"
	"github.com/marcus/margin/internal/cache"
	"github.com/marcus/margin/internal/config"
	"github.com/marcus/margin/internal/keymap"
	"github.com/marcus/margin/internal/menu"
)

// Context carries the shared dependencies panes need. One Context is
// created at startup and handed to every pane's Init; the registry
// bumps Epoch whenever panes are reinitialized so in-flight async
// results from the previous backend can be discarded.
type Context struct {
	Config *config.Config
	Keymap *keymap.Registry
	Logger *slog.Logger
	API    *api.Client
	Cache  *cache.Store // nil when the snapshot cache is disabled

	// Menu is the shared context-menu controller. Panes register their
	// item builders on it at Init; the app root owns its lifecycle.
	Menu *menu.Controller

	// Epoch increments on every Reinit. Async messages carry the epoch
	// they were started under; stale ones are dropped via IsStale.
	Epoch uint64
}
