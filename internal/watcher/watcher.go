// Package watcher watches input files with fsnotify and reports debounced
// batches of changes.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 400 * time.Millisecond

// Watcher watches a set of files and directories and invokes onChange once
// per quiet period with every path that changed during it. Callbacks never
// overlap.
type Watcher struct {
	dirs       []string
	roots      map[string]struct{}
	files      map[string]struct{}
	extensions []string
	onChange   func(changed []string)
	debounce   time.Duration
	watcher    *fsnotify.Watcher
	mu         sync.Mutex
	runMu      sync.Mutex
	pending    map[string]struct{}
	timer      *time.Timer
	done       chan struct{}
	started    bool
	stopOnce   sync.Once
	logger     *zap.Logger
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) WatcherOption {
	return func(w *Watcher) { w.logger = l }
}

// WithDebounce sets the quiet period. Non-positive values keep the default.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// NewWatcher creates a watcher over paths. A file path is watched on its own;
// a directory path reports any file in it whose extension is in extensions
// (empty = all).
func NewWatcher(paths []string, extensions []string, onChange func(changed []string), opts ...WatcherOption) *Watcher {
	w := &Watcher{
		roots:      make(map[string]struct{}),
		files:      make(map[string]struct{}),
		extensions: extensions,
		onChange:   onChange,
		debounce:   defaultDebounce,
		pending:    make(map[string]struct{}),
		done:       make(chan struct{}),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	seen := make(map[string]struct{})
	addDir := func(dir string) {
		if _, ok := seen[dir]; !ok {
			seen[dir] = struct{}{}
			w.dirs = append(w.dirs, dir)
		}
	}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = filepath.Clean(p)
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			w.roots[abs] = struct{}{}
			addDir(abs)
			continue
		}
		w.files[abs] = struct{}{}
		addDir(filepath.Dir(abs))
	}
	sort.Strings(w.dirs)
	return w
}

// Start starts the watcher. It runs until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	for _, dir := range w.dirs {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return err
		}
	}
	w.watcher = watcher
	w.started = true
	w.logger.Debug("watcher starting", zap.Strings("directories", w.dirs), zap.Int("files", len(w.files)), zap.Strings("extensions", w.extensions))
	go w.run(ctx, watcher)
	return nil
}

func (w *Watcher) run(ctx context.Context, watcher *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case <-w.done:
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			if err != nil {
				w.logger.Debug("watcher error", zap.Error(err))
			}
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	// Chmod alone carries no content change.
	if ev.Op == fsnotify.Chmod {
		return
	}
	path := filepath.Clean(ev.Name)
	if !w.relevant(path) {
		return
	}
	w.logger.Debug("watcher event", zap.String("op", ev.Op.String()), zap.String("path", path))
	w.schedule(path)
}

// relevant reports whether path is a watched file, or a matching file inside
// a watched directory.
func (w *Watcher) relevant(path string) bool {
	if _, ok := w.files[path]; ok {
		return true
	}
	if _, ok := w.roots[filepath.Dir(path)]; ok {
		return matchExtension(path, w.extensions)
	}
	return false
}

func matchExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, e := range extensions {
		if strings.TrimPrefix(strings.ToLower(e), ".") == ext {
			return true
		}
	}
	return false
}

func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return
	}
	w.pending[path] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	changed := make([]string, 0, len(w.pending))
	for p := range w.pending {
		changed = append(changed, p)
	}
	w.pending = make(map[string]struct{})
	w.timer = nil
	w.mu.Unlock()
	if len(changed) == 0 || w.onChange == nil {
		return
	}
	sort.Strings(changed)

	w.runMu.Lock()
	defer w.runMu.Unlock()
	w.logger.Debug("watcher change batch (debounced)", zap.Strings("paths", changed))
	w.onChange(changed)
}

// Directories returns the watched directories.
func (w *Watcher) Directories() []string {
	return append([]string(nil), w.dirs...)
}

// Stop stops the watcher and releases resources. Pending changes are dropped.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.started || w.watcher == nil {
		w.mu.Unlock()
		return
	}
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.pending = make(map[string]struct{})
	_ = w.watcher.Close()
	w.watcher = nil
	w.started = false
	w.mu.Unlock()
	w.stopOnce.Do(func() { close(w.done) })
}
