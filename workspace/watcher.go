package workspace

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Change describes a document that was reloaded or removed by a Watcher.
type Change struct {
	Path     string
	Document *Document // nil when the file was removed
}

func (c Change) Removed() bool {
	return c.Document == nil
}

// Watcher keeps a workspace in sync with the files below its root
// directory. Directories created while watching are watched too.
type Watcher struct {
	workspace *Workspace
	fsw       *fsnotify.Watcher
	changes   chan Change
	stopCh    chan struct{}
	doneCh    chan struct{}

	stopOnce sync.Once
	stopErr  error
}

func NewWatcher(w *Workspace) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		workspace: w,
		fsw:       fsw,
		changes:   make(chan Change, 64),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}, nil
}

// Changes delivers one value per reloaded or removed document. The channel
// is closed after Stop.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

func (w *Watcher) Start() error {
	if err := w.addTree(w.workspace.RootDir()); err != nil {
		w.fsw.Close()
		close(w.changes)
		close(w.doneCh)
		return err
	}
	go w.run()
	return nil
}

// Stop ends watching and waits for pending changes to be dropped. It must
// follow Start and may be called more than once; later calls return the
// result of the first.
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.stopErr = w.fsw.Close()
		<-w.doneCh
	})
	return w.stopErr
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

func (w *Watcher) run() {
	defer close(w.doneCh)
	defer close(w.changes)

	log := w.workspace.log
	for {
		select {
		case <-w.stopCh:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Warningf("watch: %s", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	log := w.workspace.log
	path := filepath.Clean(ev.Name)

	switch {
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		if !w.workspace.Matches(path) {
			return
		}
		log.Debugf("removed %s", path)
		w.workspace.Remove(path)
		w.emit(Change{Path: path})

	case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
		info, err := os.Stat(path)
		if err != nil {
			return
		}
		if info.IsDir() {
			if ev.Op&fsnotify.Create != 0 && !strings.HasPrefix(info.Name(), ".") {
				if err := w.addTree(path); err != nil {
					log.Warningf("watch %s: %s", path, err)
				}
			}
			return
		}
		if !w.workspace.Matches(path) {
			return
		}
		doc, err := w.workspace.LoadFile(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				log.Warningf("reload: %s", err)
			}
			return
		}
		log.Debugf("reloaded %s", path)
		w.emit(Change{Path: path, Document: doc})
	}
}

func (w *Watcher) emit(c Change) {
	select {
	case w.changes <- c:
	case <-w.stopCh:
	}
}
