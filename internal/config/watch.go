package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/thruflo/context-engine/internal/logging"
)

// Watch calls onChange each time the config file under projectRoot is
// written, created, renamed or removed. It never reloads anything itself;
// the callback decides whether to ask a Resolver for a Reload. Watch blocks
// until ctx is done.
//
// The directory is watched rather than the file so that editors which
// replace the file on save are still observed.
func Watch(ctx context.Context, projectRoot string, onChange func()) error {
	root, err := filepath.Abs(projectRoot)
	if err != nil {
		return fmt.Errorf("failed to resolve project root: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}

	const relevant = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != FileName || ev.Op&relevant == 0 {
				continue
			}
			logging.Debug("config file changed", "op", ev.Op.String())
			onChange()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn("config watcher error", "error", err)
		}
	}
}
