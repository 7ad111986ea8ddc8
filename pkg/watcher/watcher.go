package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// sidecars are the files SQLite writes next to a database while it commits
var sidecars = []string{"", "-wal", "-journal"}

// DatabaseWatcher watches a SQLite database and reports debounced changes
type DatabaseWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	names    map[string]bool
	debounce time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending sync.WaitGroup
}

// New creates a watcher for the database at path. The parent directory is
// watched rather than the file itself, since the WAL and journal files come
// and go between commits.
func New(path string, debounce time.Duration, logger *slog.Logger) (*DatabaseWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	dir := filepath.Dir(absPath)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	names := make(map[string]bool, len(sidecars))
	for _, suffix := range sidecars {
		names[absPath+suffix] = true
	}

	return &DatabaseWatcher{
		watcher:  watcher,
		path:     absPath,
		names:    names,
		debounce: debounce,
		logger:   logger,
	}, nil
}

// Path returns the absolute path of the watched database
func (w *DatabaseWatcher) Path() string {
	return w.path
}

// Run blocks until ctx is done, calling onChange once per burst of changes.
// It returns only after a callback that already started has finished, so
// resources used by onChange can be released once Run returns.
func (w *DatabaseWatcher) Run(ctx context.Context, onChange func()) error {
	defer w.stopTimer()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.names[filepath.Clean(event.Name)] {
				continue
			}
			// Only trigger on write or create events
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.logger.Debug("database changed", "file", event.Name, "op", event.Op.String())
				w.schedule(onChange)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *DatabaseWatcher) schedule(onChange func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.cancelTimer()
	w.pending.Add(1)
	w.timer = time.AfterFunc(w.debounce, func() {
		defer w.pending.Done()
		onChange()
	})
}

// cancelTimer drops the scheduled callback. A timer that already fired
// releases pending itself. Callers hold mu.
func (w *DatabaseWatcher) cancelTimer() {
	if w.timer != nil && w.timer.Stop() {
		w.pending.Done()
	}
	w.timer = nil
}

func (w *DatabaseWatcher) stopTimer() {
	w.mu.Lock()
	w.cancelTimer()
	w.mu.Unlock()

	w.pending.Wait()
}

// Close stops the watcher
func (w *DatabaseWatcher) Close() error {
	return w.watcher.Close()
}
