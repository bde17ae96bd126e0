package config

import (
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// NewWatcher watches the config file for changes and signals after each
// settled write. The parent directory is watched rather than the file so
// atomic replace-on-save (write temp, rename over) keeps working. Close the
// returned closer to stop watching; the channel closes with it.
func NewWatcher(path string) (<-chan struct{}, io.Closer, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, nil, err
	}

	events := make(chan struct{}, 1)

	go func() {
		defer close(events)

		// Debounce timer
		var debounceTimer *time.Timer
		debounceDelay := 100 * time.Millisecond

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				// Only react to the config file itself
				if filepath.Clean(event.Name) != path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}

				// Debounce rapid events
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDelay, func() {
					select {
					case events <- struct{}{}:
					default:
						// Signal already pending, drop
					}
				})

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Keep watching on errors
			}
		}
	}()

	return events, watcher, nil
}
