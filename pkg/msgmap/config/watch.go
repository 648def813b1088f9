package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/randalmurphal/msgmap/pkg/msgmap"
	"github.com/randalmurphal/msgmap/pkg/msgmap/observability"
)

// WithDebounce sets how long Watch waits after the last file event before
// reloading. Non-positive values are ignored.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.debounce = d
		}
	}
}

// WithLogger sets the logger Watch reports reloads to.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithCollectionOptions sets the options used for every Collection Watch builds.
func WithCollectionOptions(opts ...msgmap.CollectionOption) Option {
	return func(o *options) {
		o.collectionOpts = append(o.collectionOpts, opts...)
	}
}

// Watcher reloads a definition file when it changes.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	opts      options
	onReload  func(*msgmap.Collection)

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// Watch loads the definition at path, passes the resulting Collection to
// onReload, and then reloads it after every change to the file until ctx is
// canceled or Stop is called.
//
// The initial load must succeed. Later load failures are logged and the
// previous Collection stays in use.
//
// Example:
//
//	var current atomic.Pointer[msgmap.Collection]
//	w, err := config.Watch(ctx, "messages.yaml", current.Store)
func Watch(ctx context.Context, path string, onReload func(*msgmap.Collection), opts ...Option) (*Watcher, error) {
	o := applyOptions(opts)

	def, err := FromFile(path, opts...)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	// Watch the directory so editors that replace the file are still seen.
	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}

	w := &Watcher{
		fsWatcher: fsw,
		path:      filepath.Clean(path),
		opts:      o,
		onReload:  onReload,
		done:      make(chan struct{}),
	}

	w.publish(def)

	w.wg.Add(1)
	go w.loop(ctx)
	return w, nil
}

// Stop terminates the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
	})
	w.wg.Wait()
	return err
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()

	var timer *time.Timer
	var timerC <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.opts.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.opts.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			w.reload()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			observability.LogReloadError(w.opts.logger, w.path, err)

		case <-ctx.Done():
			_ = w.fsWatcher.Close()
			return

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) reload() {
	def, err := FromFile(w.path, w.decodeOptions()...)
	if err != nil {
		observability.LogReloadError(w.opts.logger, w.path, err)
		return
	}
	w.publish(def)
}

func (w *Watcher) publish(def msgmap.Definition) {
	coll := msgmap.NewCollection(def, w.opts.collectionOpts...)
	observability.LogReload(w.opts.logger, w.path, coll.Len())
	if w.onReload != nil {
		w.onReload(coll)
	}
}

func (w *Watcher) decodeOptions() []Option {
	return []Option{WithValidators(w.opts.validators)}
}

// isRelevantEvent reports whether event touched the watched file.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	return filepath.Clean(event.Name) == w.path
}
