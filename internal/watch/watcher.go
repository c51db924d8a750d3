// Package watch re-runs a job whenever one of a fixed set of input files
// changes on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when Config.Debounce is not positive.
const DefaultDebounce = 500 * time.Millisecond

// Config configures a Watcher.
type Config struct {
	// Files are the inputs to watch. Their parent directories are watched
	// so editors that replace files on save are still seen.
	Files []string

	// Debounce is how long to wait for more changes before running.
	Debounce time.Duration
}

// Watcher watches input files and runs a job after they settle.
type Watcher struct {
	config  Config
	watcher *fsnotify.Watcher
	logger  *slog.Logger
	files   map[string]bool

	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op
}

// New creates a watcher for the configured files.
func New(config Config, logger *slog.Logger) (*Watcher, error) {
	if len(config.Files) == 0 {
		return nil, fmt.Errorf("watch: no files given")
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		config:  config,
		watcher: fsw,
		logger:  logger,
		files:   make(map[string]bool),
		pending: make(map[string]fsnotify.Op),
	}

	dirs := make(map[string]bool)
	for _, f := range config.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		logger.Debug("Watching directory", "path", dir)
	}

	return w, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Run calls job once immediately and again after every settled change,
// until ctx is done. Runs never overlap: changes seen while a job runs
// are collected and trigger one more run afterwards. A job error is
// logged and does not stop the watcher.
func (w *Watcher) Run(ctx context.Context, job func(ctx context.Context) error) error {
	w.run(ctx, job, nil)

	ticker := time.NewTicker(w.config.Debounce)
	defer ticker.Stop()

	// quiet is true once a tick passed with no new event; a run starts on
	// the first quiet tick after changes.
	quiet := true
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.handleFSEvent(event) {
				quiet = false
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			if !quiet {
				quiet = true
				continue
			}
			if changed := w.takePending(); len(changed) > 0 {
				w.run(ctx, job, changed)
			}
		}
	}
}

func (w *Watcher) run(ctx context.Context, job func(ctx context.Context) error, changed []string) {
	if ctx.Err() != nil {
		return
	}
	if len(changed) > 0 {
		w.logger.Info("Inputs changed, re-running", "files", changed)
	}
	if err := job(ctx); err != nil {
		w.logger.Error("Run failed", "error", err)
	}
}

// handleFSEvent records a change to a watched file and reports whether
// the event was relevant.
func (w *Watcher) handleFSEvent(event fsnotify.Event) bool {
	path, err := filepath.Abs(event.Name)
	if err != nil || !w.files[path] {
		return false
	}
	if event.Op == fsnotify.Chmod {
		return false
	}

	w.pendingMu.Lock()
	w.pending[path] |= event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("Input change detected", "path", path, "op", event.Op.String())
	return true
}

// takePending returns and clears the changed files.
func (w *Watcher) takePending() []string {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	if len(w.pending) == 0 {
		return nil
	}
	changed := make([]string, 0, len(w.pending))
	for path := range w.pending {
		changed = append(changed, path)
	}
	w.pending = make(map[string]fsnotify.Op)
	return changed
}
