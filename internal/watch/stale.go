// Package watch reports changes to the scanned directory after the feed
// snapshot was taken. It never rebuilds the feed.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/dirfeed/pkg/log"
)

// DefaultDebounce groups bursts of file system events into one notice.
const DefaultDebounce = 500 * time.Millisecond

// Notifier logs a warning when the watched directory changes.
type Notifier struct {
	dir      string
	debounce time.Duration
	logger   log.Logger
	watcher  *fsnotify.Watcher

	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]struct{}
	notices int
}

// New registers a watch on dir. The watch is active when New returns; call
// Run to start reporting. A non-positive debounce uses DefaultDebounce.
func New(dir string, debounce time.Duration, logger log.Logger) (*Notifier, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	return &Notifier{
		dir:      dir,
		debounce: debounce,
		logger:   logger,
		watcher:  w,
		pending:  make(map[string]struct{}),
	}, nil
}

// Notices returns the number of warnings emitted so far.
func (n *Notifier) Notices() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.notices
}

// Run processes events until ctx is done, then releases the watch.
func (n *Notifier) Run(ctx context.Context) error {
	defer n.watcher.Close()
	defer n.stopTimer()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-n.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			n.schedule(filepath.Base(event.Name))
		case err, ok := <-n.watcher.Errors:
			if !ok {
				return nil
			}
			n.logger.Error("directory watcher error", log.String("dir", n.dir), log.Err(err))
		}
	}
}

func (n *Notifier) schedule(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.pending[name] = struct{}{}
	if n.timer != nil {
		n.timer.Stop()
	}
	n.timer = time.AfterFunc(n.debounce, n.flush)
}

func (n *Notifier) flush() {
	n.mu.Lock()
	names := make([]string, 0, len(n.pending))
	for name := range n.pending {
		names = append(names, name)
	}
	n.pending = make(map[string]struct{})
	n.timer = nil
	n.notices++
	n.mu.Unlock()

	sort.Strings(names)
	n.logger.Warn("directory changed since startup; the feed is a startup snapshot, restart to republish",
		log.String("dir", n.dir),
		log.Any("changed", names),
	)
}

func (n *Notifier) stopTimer() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}
