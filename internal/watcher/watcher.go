// Package watcher follows the data directory on disk and publishes
// classified change events for the save registry to reconcile against.
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/saveman/saveman/internal/fsutil"
)

// Watcher wraps an fsnotify watcher over the whole data directory tree.
// Every directory below the root is watched; directories that appear later
// are picked up from their create notifications.
type Watcher struct {
	root    string
	fs      *fsnotify.Watcher
	backend renameBackend

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// New starts watching root and everything below it.
func New(root string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		root:   root,
		fs:     fsw,
		ctx:    ctx,
		cancel: cancel,
		events: make(chan Event, 64),
	}
	w.backend = newRenameBackend(w.emit, &w.wg, w.sameTier)

	if err := w.watchTree(root); err != nil {
		fsw.Close()
		cancel()
		return nil, err
	}

	w.wg.Add(1)
	go w.run()
	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w, nil
}

// Events returns the channel of classified events. It is closed after Stop
// once all in-flight work has drained.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop shuts the watcher down. Pending rename pairs are cancelled, not
// flushed.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the event channel has been closed. Call after Stop when
// a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

// watchTree registers path and every non-ignored directory below it.
func (w *Watcher) watchTree(path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == path {
				return err
			}
			return nil // vanished mid-walk
		}
		if !d.IsDir() {
			return nil
		}
		if p != path && fsutil.Ignored(d.Name()) {
			return filepath.SkipDir
		}
		return w.fs.Add(p)
	})
}

func (w *Watcher) run() {
	defer w.wg.Done()
	defer w.fs.Close()
	defer w.backend.close()

	for {
		select {
		case <-w.ctx.Done():
			return
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.send(Event{Err: err})
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handle(ev)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if fsutil.Ignored(filepath.Base(ev.Name)) {
		return
	}
	switch {
	case ev.Op.Has(fsnotify.Create):
		// a directory moved or created here brings a subtree with it
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			w.watchTree(ev.Name)
		}
		w.backend.create(ev.Name)
	case ev.Op.Has(fsnotify.Rename):
		w.backend.renameFrom(ev.Name)
	case ev.Op.Has(fsnotify.Remove):
		w.backend.remove(ev.Name)
	}
}

// sameTier reports whether two paths sit at the same registry tier. The
// rename backend uses it to veto pairing a rename-from with a create in an
// unrelated part of the tree.
func (w *Watcher) sameTier(old, new string) bool {
	ot, ok := Classify(w.root, old)
	if !ok {
		return false
	}
	nt, ok := Classify(w.root, new)
	return ok && ot == nt
}

// emit classifies a reconciliation action against the root and publishes
// it. Paths outside the registry layout are dropped here.
func (w *Watcher) emit(kind Kind, path, newPath string) {
	tier, ok := Classify(w.root, path)
	if !ok {
		return
	}
	w.send(Event{Tier: tier, Kind: kind, Path: path, NewPath: newPath})
}

func (w *Watcher) send(ev Event) {
	select {
	case <-w.ctx.Done():
	case w.events <- ev:
	}
}
