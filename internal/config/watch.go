package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"ctxforge/internal/logging"
)

// Watcher fires a callback with the freshly loaded config whenever the
// workspace config file changes. Consumers pick the new values up at the
// start of their next operation; in-flight operations keep the values they
// snapshotted.
type Watcher struct {
	workspace string
	fw        *fsnotify.Watcher
	done      chan struct{}
}

// Watch starts watching the workspace config file. onChange runs on the
// watcher goroutine with the reloaded config; it must not block for long.
func Watch(workspace string, onChange func(*Config)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory, not the file: editors replace files on save and
	// a file-level watch would be dropped after the first rename.
	if err := fw.Add(workspace); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{workspace: workspace, fw: fw, done: make(chan struct{})}
	go w.loop(onChange)
	return w, nil
}

func (w *Watcher) loop(onChange func(*Config)) {
	defer close(w.done)
	target := filepath.Join(w.workspace, FileName)

	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			cfg, err := Load(w.workspace)
			if err != nil {
				logging.Get(logging.CategoryConfig).Warn("config reload failed: %v", err)
				continue
			}
			logging.Get(logging.CategoryConfig).Info("config reloaded from %s", target)
			onChange(cfg)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			logging.Get(logging.CategoryConfig).Warn("config watch error: %v", err)
		}
	}
}

// Close stops the watcher and waits for the event loop to exit.
func (w *Watcher) Close() error {
	err := w.fw.Close()
	<-w.done
	return err
}
