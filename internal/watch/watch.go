// Package watch reloads type catalogs when their files change on disk.
package watch

import (
	"context"
	"path/filepath"
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"path-explorer/internal/logger"
)

// DefaultDebounce collapses the bursts of events editors produce on save.
const DefaultDebounce = 250 * time.Millisecond

// Watcher calls a reload function after any of a set of files changes.
type Watcher struct {
	files    map[string]struct{}
	dirs     []string
	debounce time.Duration
	reload   func() error
	log      *zap.SugaredLogger
}

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

// WithLogger sets the watcher logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(w *Watcher) {
		if log != nil {
			w.log = log
		}
	}
}

// New creates a watcher for files. Their directories are watched rather
// than the files themselves so that editors replacing a file by rename
// are noticed.
func New(files []string, reload func() error, opts ...Option) (*Watcher, error) {
	if len(files) == 0 {
		return nil, errors.New("no files to watch")
	}

	w := &Watcher{
		files:    make(map[string]struct{}, len(files)),
		debounce: DefaultDebounce,
		reload:   reload,
		log:      zap.NewNop().Sugar(),
	}

	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to resolve %s", f)
		}

		w.files[abs] = struct{}{}

		if dir := filepath.Dir(abs); !slices.Contains(w.dirs, dir) {
			w.dirs = append(w.dirs, dir)
		}
	}

	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// Run watches until ctx is done. Reload failures are logged and the
// watcher keeps running.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}
	defer fw.Close()

	for _, dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			return errors.Wrapf(err, "failed to watch %s", dir)
		}
	}

	w.log.Infow("watching files", logger.FieldCount, len(w.files))

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}

			if !w.relevant(ev) {
				continue
			}

			w.log.Debugw("file changed", logger.FieldFile, ev.Name, "op", ev.Op.String())

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}

			fire = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}

			w.log.Warnw("file watcher error", logger.FieldError, err)

		case <-fire:
			fire = nil

			if err := w.reload(); err != nil {
				w.log.Errorw("reload failed, keeping previous types", logger.FieldError, err)
				continue
			}

			w.log.Infow("types reloaded")
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}

	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}

	_, ok := w.files[abs]

	return ok
}
