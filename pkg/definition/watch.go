package definition

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period a Watcher waits for after the last file
// event before reloading.
const DefaultDebounce = 100 * time.Millisecond

// Watcher keeps a Store in sync with a directory of definition files. A
// reload that fails keeps the previous store.
type Watcher struct {
	dir      string
	debounce time.Duration
	onReload func(*Store)
	onError  func(error)

	mu    sync.RWMutex
	store *Store
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// OnReload registers a callback invoked with every successfully reloaded
// store.
func OnReload(fn func(*Store)) WatchOption {
	return func(w *Watcher) {
		w.onReload = fn
	}
}

// OnError registers a callback for reload and watcher errors.
func OnError(fn func(error)) WatchOption {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// NewWatcher loads dir once and returns a watcher serving that store. Call
// Run to follow changes.
func NewWatcher(dir string, opts ...WatchOption) (*Watcher, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("definition: watch directory is required")
	}
	w := &Watcher{dir: dir, debounce: DefaultDebounce}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	store, err := LoadFS(os.DirFS(dir))
	if err != nil {
		return nil, err
	}
	w.store = store
	return w, nil
}

// Store returns the most recent successfully loaded store.
func (w *Watcher) Store() *Store {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.store
}

// Reload re-reads the directory and swaps the store on success.
func (w *Watcher) Reload() error {
	store, err := LoadFS(os.DirFS(w.dir))
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.store = store
	w.mu.Unlock()
	if w.onReload != nil {
		w.onReload(store)
	}
	return nil
}

// Run watches the directory tree until ctx is cancelled, matching the files
// LoadFS reads. Directories created while running are added to the watch.
// Bursts of events are collapsed into a single reload.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("definition: create watcher: %w", err)
	}
	defer fsw.Close()

	if err := addTree(fsw, w.dir); err != nil {
		return err
	}

	var (
		timerMu sync.Mutex
		timer   *time.Timer
	)
	defer func() {
		timerMu.Lock()
		if timer != nil {
			timer.Stop()
		}
		timerMu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return errors.New("definition: watcher events channel closed")
			}
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := addTree(fsw, event.Name); err != nil {
					w.report(err)
				}
			} else if !relevant(event) {
				continue
			}
			timerMu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				if ctx.Err() != nil {
					return
				}
				if err := w.Reload(); err != nil {
					w.report(err)
				}
			})
			timerMu.Unlock()
		case err, ok := <-fsw.Errors:
			if !ok {
				return errors.New("definition: watcher errors channel closed")
			}
			w.report(fmt.Errorf("definition: watcher: %w", err))
		}
	}
}

func (w *Watcher) report(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}

// addTree watches root and every non-hidden directory below it.
func addTree(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(entry.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("definition: watch %s: %w", path, err)
		}
		return nil
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	return isDefinitionFile(event.Name)
}
