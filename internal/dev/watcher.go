package dev

import (
	"context"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeType represents the type of file change.
type ChangeType int

const (
	ChangeAsset ChangeType = iota
	ChangeCSS
	ChangeConfig
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeCSS:
		return "css"
	case ChangeConfig:
		return "config"
	default:
		return "asset"
	}
}

// Change represents a detected file change.
type Change struct {
	Path string
	Type ChangeType
}

// WatcherConfig configures the file watcher.
type WatcherConfig struct {
	// Paths are the files and directories to watch. Directories are watched
	// recursively. A file is watched through its parent directory so that
	// editors saving by rename are still seen.
	Paths []string

	// Ignore patterns to skip (names, path segments or globs). Patterns match
	// the path relative to the watch root it falls under.
	Ignore []string

	// Debounce is how long the watcher waits after the last event before
	// reporting a batch.
	Debounce time.Duration

	// Logger receives watcher diagnostics.
	Logger *slog.Logger
}

// DefaultIgnore contains default patterns to ignore.
var DefaultIgnore = []string{
	".git",
	"node_modules",
	"dist",
	"tmp",
	"*.tmp",
	"*.swp",
	"*~",
}

// Watcher reports batches of file changes using fsnotify.
type Watcher struct {
	config   WatcherConfig
	logger   *slog.Logger
	mu       sync.Mutex
	onChange func([]Change)
	pending  map[string]Change
	timer    *time.Timer

	// dirs are the directory roots; files are single watched files.
	dirs  []string
	files map[string]bool
}

// NewWatcher creates a new file watcher.
func NewWatcher(config WatcherConfig) *Watcher {
	if config.Debounce <= 0 {
		config.Debounce = 100 * time.Millisecond
	}
	if config.Ignore == nil {
		config.Ignore = DefaultIgnore
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		config:  config,
		logger:  logger.With("component", "watcher"),
		pending: make(map[string]Change),
		files:   make(map[string]bool),
	}
}

// OnChange sets the callback for change batches. Batches are sorted by path
// and hold at most one entry per file.
func (w *Watcher) OnChange(fn func([]Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	for _, p := range w.config.Paths {
		w.addPath(fw, p)
	}

	defer w.stopTimer()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fw, event)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// addPath registers a watch root. Directories are added recursively; a file
// is tracked by name and its parent directory is watched.
func (w *Watcher) addPath(fw *fsnotify.Watcher, root string) {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		w.logger.Debug("skip watch path", "path", root, "error", err)
		return
	}
	if !info.IsDir() {
		w.files[root] = true
		if err := fw.Add(filepath.Dir(root)); err != nil {
			w.logger.Warn("watch failed", "path", root, "error", err)
		}
		return
	}
	w.dirs = append(w.dirs, root)
	w.addTree(fw, root)
}

// addTree watches dir and every directory below it.
func (w *Watcher) addTree(fw *fsnotify.Watcher, dir string) {
	filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if p != dir && w.shouldIgnore(p) {
			return filepath.SkipDir
		}
		if err := fw.Add(p); err != nil {
			w.logger.Warn("watch failed", "path", p, "error", err)
		}
		return nil
	})
}

// rootOf returns the deepest directory root containing p, or "".
func (w *Watcher) rootOf(p string) string {
	best := ""
	for _, d := range w.dirs {
		if (p == d || strings.HasPrefix(p, d+string(filepath.Separator))) && len(d) > len(best) {
			best = d
		}
	}
	return best
}

// watched reports whether p belongs to a watch root. Events for siblings of
// a watched file are dropped.
func (w *Watcher) watched(p string) bool {
	return w.files[p] || w.rootOf(p) != ""
}

// relPath returns p relative to its watch root. Paths outside every root are
// returned unchanged.
func (w *Watcher) relPath(p string) string {
	root := w.rootOf(p)
	if root == "" && w.files[p] {
		root = filepath.Dir(p)
	}
	if root == "" {
		return p
	}
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return p
	}
	return rel
}

func (w *Watcher) handleEvent(fw *fsnotify.Watcher, event fsnotify.Event) {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return
	}
	name := filepath.Clean(event.Name)
	if !w.watched(name) || w.shouldIgnore(name) {
		return
	}
	if event.Has(fsnotify.Create) && !w.files[name] {
		if info, err := os.Stat(name); err == nil && info.IsDir() {
			w.addTree(fw, name)
			return
		}
	}
	w.queue(Change{Path: name, Type: classifyChange(name)})
}

// queue records a change and restarts the debounce timer.
func (w *Watcher) queue(c Change) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[c.Path] = c
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.config.Debounce, w.flush)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	batch := make([]Change, 0, len(w.pending))
	for _, c := range w.pending {
		batch = append(batch, c)
	}
	w.pending = make(map[string]Change)
	w.timer = nil
	callback := w.onChange
	w.mu.Unlock()

	if len(batch) == 0 || callback == nil {
		return
	}
	sort.Slice(batch, func(i, j int) bool { return batch[i].Path < batch[j].Path })
	callback(batch)
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// shouldIgnore checks if a path should be ignored. Only the part of the path
// below its watch root is matched.
func (w *Watcher) shouldIgnore(fullPath string) bool {
	rel := w.relPath(fullPath)
	name := filepath.Base(rel)
	normalized := filepath.ToSlash(rel)

	for _, pattern := range w.config.Ignore {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if name == pattern {
			return true
		}

		hasPathSep := strings.Contains(pattern, "/")
		if strings.ContainsAny(pattern, "*?[") {
			if hasPathSep {
				if matched, _ := path.Match(pattern, normalized); matched {
					return true
				}
			} else if matched, _ := filepath.Match(pattern, name); matched {
				return true
			}
			continue
		}

		if hasPathSep {
			if strings.Contains("/"+normalized+"/", "/"+strings.Trim(pattern, "/")+"/") {
				return true
			}
			continue
		}

		for _, seg := range strings.Split(normalized, "/") {
			if seg == pattern {
				return true
			}
		}
	}
	return false
}

// classifyChange determines the type of change from the file name.
func classifyChange(p string) ChangeType {
	base := strings.ToLower(filepath.Base(p))
	switch {
	case strings.HasPrefix(base, "dashboard.") &&
		(strings.HasSuffix(base, ".json") || strings.HasSuffix(base, ".yaml") || strings.HasSuffix(base, ".yml")):
		return ChangeConfig
	case filepath.Ext(base) == ".css":
		return ChangeCSS
	default:
		return ChangeAsset
	}
}
