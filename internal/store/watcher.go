package store

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Collection identifies one of the three persisted files in watch events.
type Collection string

const (
	CollectionProfiles Collection = "perfiles"
	CollectionContexts Collection = "contextos"
	CollectionHistory  Collection = "historial"
)

// Watcher reports external edits to the collection files so the UI can
// reload its pickers. Events are best-effort; a slow consumer drops them
// rather than blocking the watch loop.
type Watcher struct {
	fs     *fsnotify.Watcher
	Events chan Collection
	done   chan struct{}
}

// Watch starts watching the directories containing the collection files.
// Directories are watched rather than the files themselves because the
// store replaces files by rename, which re-creates the watched inode.
func (s *Store) Watch() (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	byPath := map[string]Collection{
		filepath.Clean(s.paths.Profiles): CollectionProfiles,
		filepath.Clean(s.paths.Contexts): CollectionContexts,
		filepath.Clean(s.paths.History):  CollectionHistory,
	}

	dirs := map[string]bool{}
	for path := range byPath {
		dirs[filepath.Dir(path)] = true
	}
	for dir := range dirs {
		if err := fs.Add(dir); err != nil {
			fs.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:     fs,
		Events: make(chan Collection, 8),
		done:   make(chan struct{}),
	}

	go func() {
		defer close(w.Events)
		for {
			select {
			case <-w.done:
				return
			case event, ok := <-fs.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				coll, watched := byPath[filepath.Clean(event.Name)]
				if !watched {
					continue
				}
				select {
				case w.Events <- coll:
				default:
				}
			case err, ok := <-fs.Errors:
				if !ok {
					return
				}
				s.log.Debug("watch error", zap.Error(err))
			}
		}
	}()

	return w, nil
}

// Close stops the watcher and closes the event channel.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}
