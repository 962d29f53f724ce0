package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// StartWatcher reloads the configuration whenever the YAML file changes on
// disk. Editors commonly replace the file instead of writing in place, so the
// watch is on the containing directory and events are filtered by path.
// The watcher stops when ctx is cancelled.
func (c *YamlConfig) StartWatcher(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}

	dir := filepath.Dir(c.configPath)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch config directory '%s': %w", dir, err)
	}

	absPath, err := filepath.Abs(c.configPath)
	if err != nil {
		absPath = c.configPath
	}

	c.logger.Info("Watching configuration file for changes", zap.String("path", c.configPath))

	go func() {
		defer watcher.Close()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				eventPath, err := filepath.Abs(event.Name)
				if err != nil {
					eventPath = event.Name
				}
				if eventPath != absPath {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				c.logger.Debug("Configuration file changed", zap.String("op", event.Op.String()))
				if err := c.Update(); err != nil {
					// Keep serving with the last good configuration.
					c.logger.Error("Failed to reload configuration", zap.Error(err))
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				c.logger.Error("Config watcher error", zap.Error(err))
			case <-ctx.Done():
				c.logger.Debug("Stopping configuration watcher")
				return
			}
		}
	}()

	return nil
}
