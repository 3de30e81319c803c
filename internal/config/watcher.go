package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vetsec/url-security/internal/domain/heuristics"
)

// Watcher reloads the reference lists when the config file changes
//
// The parent directory is watched rather than the file itself: editors and
// config management tools replace files atomically (write to a temp file,
// then rename), which drops a watch registered on the old inode.
type Watcher struct {
	path     string
	debounce time.Duration
	onReload func(heuristics.Lists)
}

// NewWatcher creates a watcher for the given config file. onReload receives
// the fresh lists after every successful reload.
func NewWatcher(path string, onReload func(heuristics.Lists)) *Watcher {
	return &Watcher{
		path:     path,
		debounce: 200 * time.Millisecond,
		onReload: onReload,
	}
}

// Start watches until ctx is canceled
func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	log.Printf("Watching %s for reference list changes", w.path)

	// Editors fire several events per save; act only once the file has
	// been quiet for the debounce period
	var pending time.Time
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			pending = time.Now()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error: %v", err)

		case <-ticker.C:
			if pending.IsZero() || time.Since(pending) < w.debounce {
				continue
			}
			pending = time.Time{}
			w.reload()

		case <-ctx.Done():
			return nil
		}
	}
}

// reload re-reads the config and hands the fresh lists to the callback.
// A file that fails to load keeps the previous lists in place.
func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		log.Printf("Failed to reload config %s: %v", w.path, err)
		return
	}

	w.onReload(cfg.Lists())
}
