// Package watch re-runs a function when a file changes.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/agentstation/routemap/pkg/constants"
	"github.com/agentstation/routemap/pkg/errors"
	"github.com/agentstation/routemap/pkg/logging"
)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long the watcher waits for events to settle.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the watcher's logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// Watcher watches one file. It watches the parent directory so editors that
// replace the file by rename are still seen.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *zerolog.Logger
	fs       *fsnotify.Watcher
}

// New starts watching path. Events that arrive before Run are kept.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.WrapIO("watch", path, err)
	}
	abs, err = filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, errors.WrapIO("watch", path, err)
	}

	w := &Watcher{
		path:     abs,
		debounce: constants.WatchDebounce,
		logger:   logging.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapIO("watch", path, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, errors.WrapIO("watch", path, err)
	}
	w.fs = fw
	return w, nil
}

// Path returns the absolute watched path.
func (w *Watcher) Path() string {
	return w.path
}

// Run calls fn after each settled burst of changes to the file until ctx
// is done. Errors from fn are logged and watching continues. Run closes
// the watcher when it returns.
func (w *Watcher) Run(ctx context.Context, fn func(context.Context) error) error {
	defer func() { _ = w.fs.Close() }()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug().Str("path", w.path).Str("op", event.Op.String()).Msg("file changed")
			timer.Reset(w.debounce)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Str("path", w.path).Msg("error watching file")
		case <-timer.C:
			if err := fn(ctx); err != nil {
				w.logger.Error().Err(err).Str("path", w.path).Msg("re-run failed")
			}
		}
	}
}

// Close stops watching without running.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
