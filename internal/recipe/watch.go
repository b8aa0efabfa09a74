package recipe

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const watchDebounce = 150 * time.Millisecond

// Update is a reload result for a watched recipe. Err is set when the
// edited file no longer parses; the previous recipe stays in effect.
type Update struct {
	Recipe *Recipe
	Err    error
}

// Watcher reloads a recipe file whenever it is written.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	updates chan Update
	log     *zap.SugaredLogger

	closeOnce sync.Once
	stop      chan struct{}
	wg        sync.WaitGroup
}

// Watch starts watching path. Editors often replace files instead of
// writing them, so the parent directory is watched and events are
// filtered by name.
func Watch(path string, log *zap.SugaredLogger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	w := &Watcher{
		path:    abs,
		watcher: fw,
		updates: make(chan Update, 1),
		log:     log,
		stop:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Updates delivers reloaded recipes. It is closed by Close.
func (w *Watcher) Updates() <-chan Update {
	return w.updates
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.stop)
		err = w.watcher.Close()
		w.wg.Wait()
		close(w.updates)
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var debounce <-chan time.Time
	for {
		select {
		case <-w.stop:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.log.Debugw("recipe changed", "event", event.Op.String(), "file", event.Name)
				debounce = time.After(watchDebounce)
			}
		case <-debounce:
			debounce = nil
			r, err := Load(w.path)
			if err != nil {
				w.log.Warnw("recipe reload failed", "file", w.path, "error", err)
			}
			w.publish(Update{Recipe: r, Err: err})
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Errorw("fsnotify error", "error", err)
		}
	}
}

// publish keeps only the newest update if the reader lags behind.
func (w *Watcher) publish(u Update) {
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- u:
	case <-w.stop:
	}
}
