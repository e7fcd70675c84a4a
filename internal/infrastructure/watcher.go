package infrastructure

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ChangeCallback is called after the watched file changes.
type ChangeCallback func(path string) error

// Watcher calls back when a file is written or recreated. Rapid events are debounced.
type Watcher struct {
	logger         *zap.Logger
	path           string
	watcher        *fsnotify.Watcher
	debouncePeriod time.Duration
	callback       ChangeCallback

	mu            sync.Mutex
	debounceTimer *time.Timer
	// fire is signalled by the debounce timer; Run drains it
	fire chan struct{}
}

// NewWatcher watches the directory of path so editors that replace the file are seen.
func NewWatcher(logger *zap.Logger, path string, debounce time.Duration, callback ChangeCallback) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create fsnotify watcher")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, errors.Wrapf(err, "resolve %s", path)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, errors.Wrapf(err, "watch %s", path)
	}

	return &Watcher{
		logger:         logger,
		path:           abs,
		watcher:        fw,
		debouncePeriod: debounce,
		callback:       callback,
		fire:           make(chan struct{}, 1),
	}, nil
}

// Run blocks until ctx is done or the watcher fails. Callbacks run on the
// caller's goroutine one at a time, so Run never returns while one is in flight.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.debounceTimer != nil {
				w.debounceTimer.Stop()
			}
			w.mu.Unlock()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.logger.Debug("Watched file changed",
					zap.String("file", event.Name),
					zap.String("op", event.Op.String()))
				w.schedule()
			}

		case <-w.fire:
			if err := w.callback(w.path); err != nil {
				w.logger.Error("Change callback failed", zap.String("file", w.path), zap.Error(err))
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return errors.Wrap(err, "watch")
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, func() {
		select {
		case w.fire <- struct{}{}:
		default:
		}
	})
}
