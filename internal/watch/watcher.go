package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"grafanagraphs/internal/metrics"
	"grafanagraphs/internal/store"
	"grafanagraphs/pkg/logging"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when Options.Debounce is zero.
const DefaultDebounce = 500 * time.Millisecond

// Store is the part of store.Config the watcher needs.
type Store interface {
	Reload(ctx context.Context) error
	Sections() store.Sections
}

// Options configures a Watcher.
type Options struct {
	// Path is the store file to watch.
	Path string
	// Store is reloaded after the file changed.
	Store Store
	// Debounce is how long to wait for further events before reloading.
	Debounce time.Duration
	// Lock is held during Reload so a reload never interleaves with a
	// submit. Optional.
	Lock sync.Locker
}

// Watcher watches the directory of a store file and reloads the store when
// the file is written or created.
type Watcher struct {
	path     string
	store    Store
	debounce time.Duration
	lock     sync.Locker
	ready    chan struct{}
}

// New creates a watcher. Run starts it.
func New(opts Options) *Watcher {
	debounce := opts.Debounce
	if debounce == 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		path:     filepath.Clean(opts.Path),
		store:    opts.Store,
		debounce: debounce,
		lock:     opts.Lock,
		ready:    make(chan struct{}),
	}
}

// Ready is closed once the watch is in place.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create filesystem watcher: %w", err)
	}
	defer fsw.Close()

	// Watch the directory: atomic replaces swap the file's inode, which
	// would silently end a watch on the file itself.
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	close(w.ready)
	logging.Info("Watcher", "Watching %s for changes", w.path)

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logging.Info("Watcher", "Stopped watching %s", w.path)
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logging.Debug("Watcher", "Store file event: %s", event)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			w.reload(ctx)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logging.Error("Watcher", err, "Filesystem watcher error")
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

func (w *Watcher) reload(ctx context.Context) {
	if w.lock != nil {
		w.lock.Lock()
		defer w.lock.Unlock()
	}

	err := w.store.Reload(ctx)
	switch {
	case errors.Is(err, store.ErrPendingChanges):
		logging.Warn("Watcher", "Skipping reload of %s: %v", w.path, err)
	case err != nil:
		logging.Error("Watcher", err, "Failed to reload %s", w.path)
	default:
		metrics.SetGraphsConfigured(len(w.store.Sections()))
	}
}
