// Package watch notifies callers when the journal's backing file changes on disk.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"emotree/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// StoreWatcher watches the directory of a store file and calls onChange once
// writes to that file (or its -wal/-journal/.tmp siblings) have settled.
type StoreWatcher struct {
	mu          sync.RWMutex
	watcher     *fsnotify.Watcher
	dir         string
	base        string
	onChange    func(ctx context.Context)
	pending     time.Time
	debounceDur time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool

	stats Stats
}

// Stats tracks watcher activity.
type Stats struct {
	Events        int
	Notifications int
	Errors        int
	LastEventTime time.Time
	LastEventPath string
}

// NewStoreWatcher creates a watcher for the store at path. It does not start watching.
func NewStoreWatcher(path string, onChange func(ctx context.Context)) (*StoreWatcher, error) {
	if path == "" || path == ":memory:" {
		return nil, fmt.Errorf("cannot watch store path %q", path)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &StoreWatcher{
		watcher:     watcher,
		dir:         filepath.Dir(path),
		base:        filepath.Base(path),
		onChange:    onChange,
		debounceDur: 200 * time.Millisecond,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// SetDebounce changes how long writes must be quiet before onChange fires.
func (w *StoreWatcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	w.debounceDur = d
	w.mu.Unlock()
}

// Start begins watching in a goroutine. Calling Start twice is a no-op.
func (w *StoreWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	err := os.MkdirAll(w.dir, 0755)
	if err == nil {
		err = w.watcher.Add(w.dir)
	}
	if err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	logging.Store("StoreWatcher: watching %s in %s", w.base, w.dir)

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit.
func (w *StoreWatcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		w.watcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		logging.Get(logging.CategoryStore).Error("StoreWatcher: error closing watcher: %v", err)
	}
	logging.StoreDebug("StoreWatcher: stopped")
}

// Stats returns a snapshot of the watcher's counters.
func (w *StoreWatcher) Stats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}

func (w *StoreWatcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Get(logging.CategoryStore).Error("StoreWatcher error: %v", err)
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

func (w *StoreWatcher) relevant(name string) bool {
	return strings.HasPrefix(filepath.Base(name), w.base)
}

func (w *StoreWatcher) handleEvent(event fsnotify.Event) {
	if !w.relevant(event.Name) {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return
	}
	logging.StoreDebug("StoreWatcher: %s %s", event.Op, event.Name)

	w.mu.Lock()
	now := time.Now()
	w.stats.Events++
	w.stats.LastEventTime = now
	w.stats.LastEventPath = event.Name
	w.pending = now
	w.mu.Unlock()
}

func (w *StoreWatcher) flush(ctx context.Context) {
	w.mu.Lock()
	if w.pending.IsZero() || time.Since(w.pending) < w.debounceDur {
		w.mu.Unlock()
		return
	}
	w.pending = time.Time{}
	w.stats.Notifications++
	w.mu.Unlock()

	if w.onChange != nil {
		w.onChange(ctx)
	}
}
