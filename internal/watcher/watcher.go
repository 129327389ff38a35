package watcher

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a vault recursively and emits debounced note changes.
// fsnotify is not recursive by itself, so every non-ignored directory is
// registered, and newly created directories are added on the fly.
type Watcher struct {
	fsw        *fsnotify.Watcher
	deb        *debouncer
	ignoreDirs map[string]struct{}
	extension  string
	root       string
}

// New creates a watcher over root. ignoreDirs are exact directory names
// excluded from watching; only files with the note extension produce
// changes.
func New(root string, ignoreDirs []string, extension string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ignore := make(map[string]struct{}, len(ignoreDirs))
	for _, d := range ignoreDirs {
		ignore[d] = struct{}{}
	}

	w := &Watcher{
		fsw:        fsw,
		deb:        newDebouncer(200 * time.Millisecond),
		ignoreDirs: ignore,
		extension:  extension,
		root:       root,
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root {
			if _, ignored := w.ignoreDirs[d.Name()]; ignored {
				return filepath.SkipDir
			}
		}
		if addErr := fsw.Add(path); addErr != nil {
			log.Printf("warning: cannot watch %s: %v", path, addErr)
		}
		return nil
	})
	if err != nil {
		fsw.Close()
		return nil, err
	}

	return w, nil
}

// Changes returns the channel of debounced change batches.
func (w *Watcher) Changes() <-chan []Change {
	return w.deb.out
}

// Run listens for filesystem events until the watcher is closed.
// Call it in a goroutine.
func (w *Watcher) Run() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("watcher error: %v", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	path := event.Name

	// Newly created directories join the watch set.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if _, ignored := w.ignoreDirs[filepath.Base(path)]; !ignored {
				if err := w.fsw.Add(path); err != nil {
					log.Printf("warning: cannot watch new directory %s: %v", path, err)
				}
			}
			return
		}
	}

	name := filepath.Base(path)
	if !strings.HasSuffix(name, w.extension) || strings.HasPrefix(name, ".") {
		return
	}

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		w.deb.add(Change{Path: path, Removed: true})
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		w.deb.add(Change{Path: path})
	}
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
