package pricing

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a pricing file for changes and invalidates the loader's
// cache when it is rewritten. It debounces change bursts so editors that
// write-then-rename do not trigger repeated reloads.
type Watcher struct {
	loader   *Loader
	path     string
	debounce time.Duration
	logger   *slog.Logger
}

// WatcherConfig configures a pricing file watcher.
type WatcherConfig struct {
	// Path is the pricing file to watch. Must not be empty (the bundled
	// default table cannot change at runtime).
	Path string

	// Debounce is the quiet period after the last change event before the
	// reload fires. Default: 100ms.
	Debounce time.Duration
}

// NewWatcher creates a watcher that invalidates loader's cache entry for the
// configured path whenever the file changes.
func NewWatcher(loader *Loader, cfg WatcherConfig, logger *slog.Logger) (*Watcher, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("watcher path cannot be empty")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 100 * time.Millisecond
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		loader:   loader,
		path:     cfg.Path,
		debounce: cfg.Debounce,
		logger:   logger.With("component", "pricing.watcher"),
	}, nil
}

// Watch blocks until the context is cancelled, invalidating the cache and
// invoking onReload after each debounced change. Reload failures are logged
// and leave the previously cached table unavailable until a good load; they
// never stop the watch loop.
func (w *Watcher) Watch(ctx context.Context, onReload func(Table)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer fsw.Close()

	// Watch the directory, not the file: rename-over-write replaces the
	// inode and a file-level watch would go stale after the first change.
	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %q: %w", dir, err)
	}

	w.logger.Info("pricing file watcher started",
		"path", w.path,
		"debounce_ms", w.debounce.Milliseconds(),
	)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("pricing file watcher stopped")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				// Drain a just-fired timer before reusing it, or the stale
				// tick would trigger an extra reload.
				if !timer.Stop() {
					<-timerC
				}
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			w.reload(onReload)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("pricing file watch error", "error", err)
		}
	}
}

func (w *Watcher) reload(onReload func(Table)) {
	w.loader.Invalidate(w.path)

	table, err := w.loader.Load(w.path)
	if err != nil {
		w.logger.Error("pricing reload failed", "path", w.path, "error", err)
		return
	}

	w.logger.Info("pricing table reloaded", "path", w.path, "providers", len(table))

	if onReload != nil {
		onReload(table)
	}
}
