package watch

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher collects change hints for a small set of directories. Hints are
// coalesced per directory until the caller drains them, so a burst of writes
// in one directory yields one hint.
type Watcher struct {
	fsw    *fsnotify.Watcher
	logger *slog.Logger

	mu      sync.Mutex
	watched map[string]struct{}
	pending map[string]struct{}

	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// New starts an fsnotify watcher with an empty watch set.
func New(logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("cannot start directory watcher: %w", err)
	}

	w := &Watcher{
		fsw:     fsw,
		logger:  logger,
		watched: make(map[string]struct{}),
		pending: make(map[string]struct{}),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Watch replaces the watch set with paths. Paths that cannot be watched are
// reported in the joined error; the rest are still watched.
func (w *Watcher) Watch(paths ...string) error {
	want := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		want[filepath.Clean(p)] = struct{}{}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for p := range w.watched {
		if _, keep := want[p]; keep {
			continue
		}
		if err := w.fsw.Remove(p); err != nil {
			w.logger.Debug("unwatch failed", "path", p, "error", err)
		}
		delete(w.watched, p)
		delete(w.pending, p)
	}

	var errs []error
	for p := range want {
		if _, ok := w.watched[p]; ok {
			continue
		}
		if err := w.fsw.Add(p); err != nil {
			errs = append(errs, fmt.Errorf("cannot watch %s: %w", p, err))
			continue
		}
		w.watched[p] = struct{}{}
	}
	return errors.Join(errs...)
}

// Watched returns the current watch set, sorted.
func (w *Watcher) Watched() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.watched))
	for p := range w.watched {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

// Drain returns and clears the directories that changed since the last call.
// It never blocks.
func (w *Watcher) Drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) == 0 {
		return nil
	}
	out := make([]string, 0, len(w.pending))
	for p := range w.pending {
		out = append(out, p)
	}
	clear(w.pending)
	slices.Sort(out)
	return out
}

// Close stops the watcher. Further calls return the first result.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		w.closeErr = w.fsw.Close()
		<-w.done
	})
	return w.closeErr
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.record(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("directory watcher error", "error", err)
		}
	}
}

func (w *Watcher) record(ev fsnotify.Event) {
	if ev.Op == fsnotify.Chmod {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	dir, ok := dirFor(ev.Name, w.watched)
	if !ok {
		return
	}
	w.pending[dir] = struct{}{}
}

// dirFor maps an event path to the watched directory whose listing it
// affects: the path itself when it is watched, otherwise its parent.
func dirFor(name string, watched map[string]struct{}) (string, bool) {
	name = filepath.Clean(name)
	if _, ok := watched[name]; ok {
		return name, true
	}
	parent := filepath.Dir(name)
	if _, ok := watched[parent]; ok {
		return parent, true
	}
	return "", false
}
