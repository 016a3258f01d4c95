// Package watch observes a local content tree and reports change batches
// after a quiet period, so watch mode can re-run export once per burst of
// edits instead of once per file event.
package watch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchedExts are the file suffixes that represent content: group and
// article content files, meta files and article bodies. Everything else
// in the tree (editor droppings, the config file) is ignored.
var watchedExts = []string{".json", ".meta", ".mkdown"}

// TreeWatcher watches a content root recursively. It uses fsnotify for
// cross-platform file system event monitoring.
type TreeWatcher struct {
	watcher  *fsnotify.Watcher
	interval time.Duration
	changes  chan []string
	errors   chan error
	done     chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
	root     string
}

// NewTreeWatcher creates a TreeWatcher that emits one change batch per
// quiet interval. The watcher must be started with Start() before it
// will emit batches.
func NewTreeWatcher(interval time.Duration) (*TreeWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	return &TreeWatcher{
		watcher:  watcher,
		interval: interval,
		changes:  make(chan []string, 10),
		errors:   make(chan error, 10),
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching root and every directory below it. Directories
// created later are picked up as they appear.
func (w *TreeWatcher) Start(root string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("watcher already running")
	}
	w.root = root

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}

	w.running = true
	w.wg.Add(1)
	go w.processEvents()
	return nil
}

// Stop stops watching and cleans up resources. It blocks until the event
// processing goroutine has exited.
func (w *TreeWatcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	w.mu.Unlock()

	close(w.done)
	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	w.wg.Wait()

	close(w.changes)
	close(w.errors)
	return nil
}

// Changes returns the channel that emits change batches. Each batch holds
// the distinct paths touched since the previous quiet period. The channel
// is closed when the watcher is stopped.
func (w *TreeWatcher) Changes() <-chan []string {
	return w.changes
}

// Errors returns the channel that emits watch errors. The channel is
// closed when the watcher is stopped.
func (w *TreeWatcher) Errors() <-chan error {
	return w.errors
}

// IsRunning reports whether the watcher is currently running.
func (w *TreeWatcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// processEvents collects relevant events and flushes them as one batch
// once no event has arrived for a full interval.
func (w *TreeWatcher) processEvents() {
	defer w.wg.Done()

	pending := map[string]struct{}{}
	timer := time.NewTimer(w.interval)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if path, ok := w.convertEvent(event); ok {
				pending[path] = struct{}{}
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.interval)
			}

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			batch := make([]string, 0, len(pending))
			for path := range pending {
				batch = append(batch, path)
			}
			pending = map[string]struct{}{}
			select {
			case w.changes <- batch:
			case <-w.done:
				return
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			case <-w.done:
				return
			}
		}
	}
}

// convertEvent filters an fsnotify event down to a content path, and
// registers newly created directories with the watcher.
func (w *TreeWatcher) convertEvent(event fsnotify.Event) (string, bool) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			// Watch errors on a vanished directory are not actionable.
			_ = w.watcher.Add(event.Name)
			return "", false
		}
	}
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return "", false
	}
	if !contentFile(event.Name) {
		return "", false
	}
	return event.Name, true
}

func contentFile(path string) bool {
	for _, ext := range watchedExts {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
