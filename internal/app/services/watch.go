package services

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/chmouel/lazyuntrack/internal/config"
	"github.com/chmouel/lazyuntrack/internal/models"
)

// IgnoreWatchDebounce is the debounce window for watcher events.
const IgnoreWatchDebounce = 600 * time.Millisecond

// IgnoreWatchService watches the places a rescan depends on: each
// repository's git directory (index updates), its root (.gitignore edits)
// and its info directory (exclude edits).
type IgnoreWatchService struct {
	Started     bool
	Waiting     bool
	Roots       []string
	Events      chan struct{}
	Done        chan struct{}
	Paths       map[string]struct{}
	Mu          sync.Mutex
	Watcher     *fsnotify.Watcher
	LastRefresh time.Time
	logf        func(string, ...any)
}

// NewIgnoreWatchService creates a new IgnoreWatchService.
func NewIgnoreWatchService(logf func(string, ...any)) *IgnoreWatchService {
	return &IgnoreWatchService{
		logf: logf,
	}
}

// Start initialises the watcher and starts the background goroutine.
func (w *IgnoreWatchService) Start(cfg *config.AppConfig, repos []*models.Repository) (bool, error) {
	if w.Started || cfg == nil || !cfg.AutoRefresh {
		return false, nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return false, err
	}

	w.Started = true
	w.Watcher = watcher
	w.Events = make(chan struct{}, 1)
	w.Done = make(chan struct{})
	w.Paths = make(map[string]struct{})
	w.WatchRepos(repos)

	go w.run()
	return true, nil
}

// WatchRepos registers the watch directories for the given repositories.
// Already watched directories are kept; a rescan only adds new ones.
func (w *IgnoreWatchService) WatchRepos(repos []*models.Repository) {
	if !w.Started && w.Watcher == nil {
		return
	}
	for _, repo := range repos {
		if repo == nil {
			continue
		}
		for _, dir := range []string{
			repo.GitDir,
			filepath.Join(repo.GitDir, "info"),
			repo.Root,
		} {
			w.addWatchDir(dir)
			w.rememberRoot(dir)
		}
	}
}

// Stop stops the watcher and closes channels.
func (w *IgnoreWatchService) Stop() {
	if !w.Started {
		return
	}
	close(w.Done)
	w.Started = false
	if w.Watcher != nil {
		_ = w.Watcher.Close()
	}
}

// NextEvent returns the event channel if waiting is not already active.
func (w *IgnoreWatchService) NextEvent() <-chan struct{} {
	if w.Events == nil || w.Waiting {
		return nil
	}
	w.Waiting = true
	return w.Events
}

// ResetWaiting clears the waiting flag after an event is processed.
func (w *IgnoreWatchService) ResetWaiting() {
	w.Waiting = false
}

// ShouldRefresh checks debounce timing for watcher events.
func (w *IgnoreWatchService) ShouldRefresh(now time.Time) bool {
	if !w.LastRefresh.IsZero() && now.Sub(w.LastRefresh) < IgnoreWatchDebounce {
		return false
	}
	w.LastRefresh = now
	return true
}

// Signal notifies listeners of watcher activity.
func (w *IgnoreWatchService) Signal() {
	select {
	case <-w.Done:
		return
	default:
	}
	select {
	case w.Events <- struct{}{}:
	default:
	}
}

// IsUnderRoot reports whether the path is under any watched directory.
func (w *IgnoreWatchService) IsUnderRoot(path string) bool {
	if path == "" {
		return false
	}
	w.Mu.Lock()
	defer w.Mu.Unlock()
	for _, root := range w.Roots {
		if root == "" {
			continue
		}
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *IgnoreWatchService) run() {
	for {
		select {
		case <-w.Done:
			return
		case event, ok := <-w.Watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !w.relevantEvent(event.Name) {
				continue
			}
			w.Signal()
		case err, ok := <-w.Watcher.Errors:
			if !ok {
				return
			}
			w.debugf("ignore watcher error: %v", err)
		}
	}
}

// relevantEvent filters the watcher stream down to paths that can change a
// scan result. Lock files are skipped: git publishes index updates by
// renaming index.lock onto index, and that rename still fires for "index".
func (w *IgnoreWatchService) relevantEvent(path string) bool {
	if path == "" {
		return false
	}
	base := filepath.Base(path)
	if strings.HasSuffix(base, ".lock") {
		return false
	}
	switch base {
	case "index", ".gitignore", "exclude", "HEAD":
		return true
	}
	return false
}

func (w *IgnoreWatchService) addWatchDir(path string) {
	if path == "" || w.Watcher == nil {
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}

	w.Mu.Lock()
	defer w.Mu.Unlock()

	if _, ok := w.Paths[path]; ok {
		return
	}
	if err := w.Watcher.Add(path); err != nil {
		w.debugf("ignore watcher add failed for %s: %v", path, err)
		return
	}
	w.Paths[path] = struct{}{}
}

func (w *IgnoreWatchService) rememberRoot(path string) {
	if path == "" {
		return
	}
	w.Mu.Lock()
	defer w.Mu.Unlock()
	for _, root := range w.Roots {
		if root == path {
			return
		}
	}
	w.Roots = append(w.Roots, path)
}

func (w *IgnoreWatchService) debugf(format string, args ...any) {
	if w.logf == nil {
		return
	}
	w.logf(format, args...)
}
