package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the file must stay quiet before it is reloaded
const DefaultDebounce = 150 * time.Millisecond

// Watcher reloads a config file whenever it changes on disk. A burst of
// events produces one reload after the file settles, and only the latest
// reload result is kept if the consumer falls behind.
type Watcher struct {
	loader   *Loader
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	updates  chan *Config
	errors   chan error
	done     chan struct{}
	once     sync.Once
}

// WatchOption configures a Watcher
type WatchOption func(*Watcher)

// WithDebounce sets the quiet period before a reload
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// Watch starts watching path. The parent directory is watched so editors
// that replace the file on save are still seen.
func (l *Loader) Watch(path string, opts ...WatchOption) (*Watcher, error) {
	if err := validateConfigPath(path); err != nil {
		return nil, fmt.Errorf("invalid config path: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		loader:   l,
		path:     abs,
		debounce: DefaultDebounce,
		watcher:  fw,
		updates:  make(chan *Config, 1),
		errors:   make(chan error, 1),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	go w.run()
	return w, nil
}

// Path returns the watched file
func (w *Watcher) Path() string {
	return w.path
}

// Updates delivers each successfully reloaded configuration
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Errors delivers reload and watcher failures
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			cfg, err := w.loader.LoadConfig(w.path)
			if err != nil {
				publish(w.errors, err)
				continue
			}
			publish(w.updates, cfg)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			publish(w.errors, err)
		}
	}
}

// publish replaces any unread value in ch with v
func publish[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
