package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aajetechnology/StudyBot/internal/logger"
)

type implWatcher struct {
	dir         string
	filter      Filter
	handler     EventHandler
	logger      logger.Logger
	watcher     *fsnotify.Watcher
	settleDelay time.Duration
	slots       *semaphore
	wg          sync.WaitGroup

	mu       sync.Mutex
	inFlight map[string]bool
}

func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Inbox watcher started (max concurrent: %d). Monitoring: %s", w.slots.capacity(), w.dir)

	if err := w.scanExisting(ctx); err != nil && ctx.Err() == nil {
		w.logger.Warn(ctx, "Could not scan existing inbox files: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing inbox jobs to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "Inbox watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !w.filter(event.Name) {
				w.logger.Debug(ctx, "Ignoring unsupported inbox file: %s", event.Name)
				continue
			}
			w.logger.Info(ctx, "New inbox file detected: %s", event.Name)
			// dispatch only fails once ctx is done, which the next iteration handles.
			_ = w.dispatch(ctx, event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// scanExisting queues files that were dropped while the watcher was down.
func (w *implWatcher) scanExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && w.filter(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		w.logger.Info(ctx, "Queueing existing inbox file: %s", name)
		if err := w.dispatch(ctx, filepath.Join(w.dir, name)); err != nil {
			return err
		}
	}
	return nil
}

// dispatch blocks for a free slot, then handles path in the background.
// A path already being handled is skipped.
func (w *implWatcher) dispatch(ctx context.Context, path string) error {
	w.mu.Lock()
	if w.inFlight[path] {
		w.mu.Unlock()
		return nil
	}
	w.inFlight[path] = true
	w.mu.Unlock()

	if err := w.slots.acquire(ctx); err != nil {
		w.done(path)
		return err
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.slots.release()
		defer w.done(path)

		select {
		case <-time.After(w.settleDelay):
		case <-ctx.Done():
			return
		}
		if _, err := os.Stat(path); err != nil {
			w.logger.Debug(ctx, "Inbox file %s disappeared before processing", path)
			return
		}
		if err := w.handler(ctx, path); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", path, err)
		}
	}()
	return nil
}

func (w *implWatcher) done(path string) {
	w.mu.Lock()
	delete(w.inFlight, path)
	w.mu.Unlock()
}

func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}
