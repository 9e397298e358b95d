// Package watch re-runs a full build whenever one of a fixed set of files changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/lessonbuilder/internal/logfields"
)

// DefaultDebounce coalesces editor write bursts into one rebuild.
const DefaultDebounce = 300 * time.Millisecond

// Rebuild performs one full build. Errors are logged and do not stop watching.
type Rebuild func(ctx context.Context) error

// Watcher monitors files by watching their parent directories, which survives
// editors that save by rename.
type Watcher struct {
	files    map[string]bool
	dirs     []string
	debounce time.Duration
	rebuild  Rebuild
	logger   *slog.Logger
}

// New creates a Watcher for files. Empty entries are ignored.
func New(files []string, debounce time.Duration, rebuild Rebuild) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{files: map[string]bool{}, debounce: debounce, rebuild: rebuild, logger: slog.Default()}
	seen := map[string]bool{}
	for _, f := range files {
		if f == "" {
			continue
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", f, err)
		}
		w.files[abs] = true
		if dir := filepath.Dir(abs); !seen[dir] {
			seen[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}
	if len(w.files) == 0 {
		return nil, fmt.Errorf("watch: no files to watch")
	}
	return w, nil
}

// Run blocks until ctx is done, rebuilding after each debounced change.
// Rebuilds never overlap.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() {
		_ = fw.Close()
	}()
	for _, d := range w.dirs {
		if err := fw.Add(d); err != nil {
			return fmt.Errorf("watch %s: %w", d, err)
		}
	}

	rebuildReq, trigger, stop := debouncer(w.debounce)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if w.relevant(ev) {
				w.logger.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
				trigger()
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", logfields.Error(err))
		case <-rebuildReq:
			w.logger.Info("Change detected; rebuilding")
			if err := w.rebuild(ctx); err != nil {
				w.logger.Warn("Rebuild failed", logfields.Error(err))
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	return w.files[filepath.Clean(ev.Name)]
}

// debouncer returns a request channel, a trigger that (re)arms the timer and
// a stop func releasing the timer.
func debouncer(d time.Duration) (<-chan struct{}, func(), func()) {
	var mu sync.Mutex
	var timer *time.Timer
	req := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case req <- struct{}{}:
			default:
			}
		})
	}
	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return req, trigger, stop
}
