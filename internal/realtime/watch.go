package realtime

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatchDatabase publishes an EventExternal for every table whenever the sqlite file at
// path (or its WAL/journal companion) is written. It blocks until ctx is cancelled.
//
// Writes made by this process are reported too; subscribers simply refetch again.
func WatchDatabase(ctx context.Context, path string, hub *Hub, logger *zap.Logger, tables ...string) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	// Watch the directory: sqlite replaces journal files, which drops file-level watches.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	targets := map[string]struct{}{
		abs:              {},
		abs + "-wal":     {},
		abs + "-journal": {},
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if _, tracked := targets[event.Name]; !tracked {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			for _, table := range tables {
				hub.Publish(Event{Type: EventExternal, Table: table})
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("database watcher error", zap.Error(err))
		}
	}
}
