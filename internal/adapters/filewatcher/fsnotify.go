// Package filewatcher provides file system monitoring adapters.
package filewatcher

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/0xcro3dile/faqbot-go/internal/domain/ports"
)

// FSNotifyWatcher implements ports.FileWatcher using fsnotify.
//
// Editors often save by writing a temp file and renaming it over the target,
// so the watcher observes the parent directory and filters by name.
type FSNotifyWatcher struct {
	watcher *fsnotify.Watcher
	names   map[string]struct{} // Base names to report; empty means all files
	log     zerolog.Logger
}

// NewFSNotifyWatcher creates a watcher that only reports events for the
// given base names (e.g. "qa_dataset.json").
func NewFSNotifyWatcher(log zerolog.Logger, names ...string) (*FSNotifyWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[filepath.Base(n)] = struct{}{}
	}

	return &FSNotifyWatcher{
		watcher: w,
		names:   set,
		log:     log.With().Str("component", "filewatcher").Logger(),
	}, nil
}

// Watch starts monitoring the directory and emits events.
func (w *FSNotifyWatcher) Watch(ctx context.Context, dir string) (<-chan ports.FileEvent, error) {
	if err := w.watcher.Add(dir); err != nil {
		return nil, err
	}

	events := make(chan ports.FileEvent, 100)

	go func() {
		defer close(events)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if !w.isWatched(event.Name) {
					continue
				}

				op, ok := translate(event.Op)
				if !ok {
					continue
				}

				select {
				case events <- ports.FileEvent{Path: event.Name, Operation: op}:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.log.Warn().Err(err).Str("dir", dir).Msg("watch error")
			}
		}
	}()

	return events, nil
}

// Stop stops the watcher.
func (w *FSNotifyWatcher) Stop() error {
	return w.watcher.Close()
}

func translate(op fsnotify.Op) (ports.FileOperation, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return ports.FileCreated, true
	case op.Has(fsnotify.Write):
		return ports.FileModified, true
	case op.Has(fsnotify.Remove):
		return ports.FileDeleted, true
	case op.Has(fsnotify.Rename):
		return ports.FileRenamed, true
	}
	return 0, false
}

func (w *FSNotifyWatcher) isWatched(path string) bool {
	if len(w.names) == 0 {
		return true
	}
	_, ok := w.names[filepath.Base(path)]
	if ok {
		return true
	}
	// Case-insensitive file systems may report a different spelling.
	for n := range w.names {
		if strings.EqualFold(n, filepath.Base(path)) {
			return true
		}
	}
	return false
}
