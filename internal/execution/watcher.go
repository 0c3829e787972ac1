package execution

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"wraptest/internal/discovery"
	"wraptest/internal/logging"
)

// DefaultDebounce is how long a file must stay quiet before it is handed on
const DefaultDebounce = 300 * time.Millisecond

// Watcher reports source files that changed under a directory tree.
// Rapid saves of the same file are collapsed into one notification.
type Watcher struct {
	watcher  *fsnotify.Watcher
	scanner  *discovery.Scanner
	logger   *zap.Logger
	debounce time.Duration
	pending  map[string]time.Time
}

// NewWatcher watches root and every directory below it the scanner would visit
func NewWatcher(root string, scanner *discovery.Scanner, logger *zap.Logger) (*Watcher, error) {
	dirs, err := scanner.Dirs(root)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	w := &Watcher{
		watcher:  fw,
		scanner:  scanner,
		logger:   logging.OrNop(logger),
		debounce: DefaultDebounce,
		pending:  make(map[string]time.Time),
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	return w, nil
}

// SetDebounce overrides DefaultDebounce
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run calls handle with each settled batch of changed files until ctx is
// done. The watcher is closed when Run returns.
func (w *Watcher) Run(ctx context.Context, handle func(ctx context.Context, files []string)) error {
	defer w.watcher.Close()

	tick := w.debounce / 3
	if tick <= 0 {
		tick = time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))

		case <-ticker.C:
			if files := w.settled(time.Now()); len(files) > 0 {
				handle(ctx, files)
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}

	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !w.scanner.Skips(filepath.Base(event.Name)) {
				if err := w.watcher.Add(event.Name); err != nil {
					w.logger.Warn("failed to watch new directory", zap.String("dir", event.Name), zap.Error(err))
				}
			}
			return
		}
	}

	if !w.scanner.Matches(filepath.Base(event.Name)) {
		return
	}
	w.logger.Debug("file changed", zap.String("file", event.Name), zap.Stringer("op", event.Op))
	w.pending[event.Name] = time.Now()
}

// settled removes and returns the files quiet for at least the debounce window
func (w *Watcher) settled(now time.Time) []string {
	var files []string
	for path, at := range w.pending {
		if now.Sub(at) >= w.debounce {
			files = append(files, path)
			delete(w.pending, path)
		}
	}
	sort.Strings(files)
	return files
}
