package mapfs

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/phanxgames/lotmap"
)

// Watcher reports map files that changed on disk. It watches directories and
// filters events to the files registered with Add. Changes are coalesced:
// a file written several times before the owner polls is reported once.
//
// The owner drains Changes on its own goroutine (e.g. once per frame) and
// then reloads, so composites are never touched by the watcher goroutine.
type Watcher struct {
	fsw *fsnotify.Watcher
	log logrus.FieldLogger

	mu      sync.Mutex
	files   map[string]bool
	dirs    map[string]int
	pending map[string]bool

	changes chan string
	done    chan struct{}
}

// NewWatcher starts a watcher.
func NewWatcher() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("mapfs: create watcher: %w", err)
	}
	w := &Watcher{
		fsw:     fsw,
		log:     lotmap.Logger().WithField("component", "mapfs.watcher"),
		files:   make(map[string]bool),
		dirs:    make(map[string]int),
		pending: make(map[string]bool),
		changes: make(chan string, 64),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Add watches the map file at path.
func (w *Watcher) Add(path string) error {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.files[path] {
		return nil
	}
	if w.dirs[dir] == 0 {
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("mapfs: watch %s: %w", dir, err)
		}
	}
	w.dirs[dir]++
	w.files[path] = true
	return nil
}

// Remove stops watching path.
func (w *Watcher) Remove(path string) {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.files[path] {
		return
	}
	delete(w.files, path)
	w.dirs[dir]--
	if w.dirs[dir] == 0 {
		delete(w.dirs, dir)
		_ = w.fsw.Remove(dir)
	}
}

// AddTree watches every map file in mc's tree.
func (w *Watcher) AddTree(mc *lotmap.MapComposite) error {
	if p := mc.MapInfo().Path; p != "" {
		if err := w.Add(p); err != nil {
			return err
		}
	}
	for _, sub := range mc.SubMaps() {
		if err := w.AddTree(sub); err != nil {
			return err
		}
	}
	return nil
}

// Changes delivers the paths of changed files.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Poll returns every change reported so far without blocking and
// acknowledges them.
func (w *Watcher) Poll() []string {
	var out []string
	for {
		select {
		case p, ok := <-w.changes:
			if !ok {
				return out
			}
			w.Ack(p)
			out = append(out, p)
		default:
			return out
		}
	}
}

// Close stops the watcher. Changes is closed once the event loop exits.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	defer close(w.changes)
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.notify(filepath.Clean(ev.Name))
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("mapfs: watch error")
		}
	}
}

// notify queues path unless it is unwatched or already queued.
func (w *Watcher) notify(path string) {
	w.mu.Lock()
	if !w.files[path] || w.pending[path] {
		w.mu.Unlock()
		return
	}
	w.pending[path] = true
	w.mu.Unlock()

	select {
	case w.changes <- path:
	case <-w.done:
	}
}

// Ack marks path as handled so the next change is reported again. Readers
// of Changes call it after reloading; Poll does it for them.
func (w *Watcher) Ack(path string) {
	w.mu.Lock()
	delete(w.pending, filepath.Clean(path))
	w.mu.Unlock()
}
