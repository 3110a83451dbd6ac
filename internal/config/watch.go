package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file into a Store whenever it changes.
type Watcher struct {
	path  string
	base  Options
	store *Store
	onErr func(error)

	fsw      *fsnotify.Watcher
	closeCh  chan struct{}
	closedWg sync.WaitGroup
	once     sync.Once
}

// Watch starts watching path. Reloaded files are layered over base.
// Load and validation failures go to onErr and leave the store unchanged.
func Watch(path string, base Options, store *Store, onErr func(error)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Editors often replace files by rename, so watch the directory.
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}
	if onErr == nil {
		onErr = func(error) {}
	}

	w := &Watcher{
		path:    abs,
		base:    base.Clone(),
		store:   store,
		onErr:   onErr,
		fsw:     fsw,
		closeCh: make(chan struct{}),
	}
	w.closedWg.Add(1)
	go w.processLoop()
	return w, nil
}

func (w *Watcher) processLoop() {
	defer w.closedWg.Done()
	for {
		select {
		case <-w.closeCh:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.onErr(err)
		}
	}
}

func (w *Watcher) reload() {
	opts, err := Load(w.path, w.base)
	if err != nil {
		w.onErr(err)
		return
	}
	if err := w.store.Set(opts); err != nil {
		w.onErr(err)
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fsw.Close()
		w.closedWg.Wait()
	})
	return err
}
