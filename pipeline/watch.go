package pipeline

import (
	"context"
	"fmt"

	"github.com/KimDantic/Worklog/internal/logger"
	"github.com/fsnotify/fsnotify"
)

type Invalidator interface {
	Invalidate()
}

// Watch invalidates target whenever a file in dir is created, written,
// removed or renamed. It blocks until ctx is done.
func Watch(ctx context.Context, dir string, target Invalidator, log *logger.Logger) error {
	if log == nil {
		log = logger.Nop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	log.Info("watching source directory", "dir", dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			log.Debug("source directory changed", "path", event.Name, "op", event.Op.String())
			target.Invalidate()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", "error", err)
		}
	}
}
