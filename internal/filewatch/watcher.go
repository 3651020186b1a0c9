// Package filewatch reloads the assistant prompt file when it changes on disk.
package filewatch

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// PromptWatcher monitors a prompt file and applies its contents on change.
type PromptWatcher struct {
	path    string
	apply   func(string)
	watcher *fsnotify.Watcher
	log     *logrus.Logger
}

// NewPromptWatcher watches the directory containing path. Watching the
// directory rather than the file survives editors that replace the file
// on save.
func NewPromptWatcher(path string, apply func(string), log *logrus.Logger) (*PromptWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}
	return &PromptWatcher{path: path, apply: apply, watcher: w, log: log}, nil
}

// Watch blocks, applying the file contents after every write. Call it in
// its own goroutine and Close to stop.
func (pw *PromptWatcher) Watch() {
	for {
		select {
		case event, ok := <-pw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(pw.path) {
				continue
			}
			pw.reload()
		case err, ok := <-pw.watcher.Errors:
			if !ok {
				return
			}
			pw.log.WithError(err).Warn("prompt watcher error")
		}
	}
}

func (pw *PromptWatcher) reload() {
	data, err := os.ReadFile(pw.path)
	if err != nil {
		pw.log.WithError(err).WithField("path", pw.path).Warn("reading prompt file")
		return
	}
	pw.apply(string(data))
	pw.log.WithField("path", pw.path).Info("assistant prompt reloaded")
}

func (pw *PromptWatcher) Close() error {
	return pw.watcher.Close()
}
