// Package watcher reloads the viewer when files in the data directory
// change on disk. Bursts of filesystem events, such as an editor writing a
// temp file and renaming it into place, collapse into one reload.
package watcher

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettle is how long the directory must stay quiet before a change
// burst is reported.
const DefaultSettle = 250 * time.Millisecond

// Watcher observes a data directory and invokes a callback after changes
// settle.
type Watcher struct {
	fsw    *fsnotify.Watcher
	done   chan struct{}
	closed chan struct{}
}

// Watch starts observing dir. onChange runs on the watcher goroutine once
// per settled burst of changes to .json files; it must not block for long.
// If settle is 0, DefaultSettle is used.
func Watch(dir string, settle time.Duration, onChange func()) (*Watcher, error) {
	if settle == 0 {
		settle = DefaultSettle
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{
		fsw:    fsw,
		done:   make(chan struct{}),
		closed: make(chan struct{}),
	}
	go w.loop(settle, onChange)
	return w, nil
}

// Close stops the watcher and waits for its goroutine to exit. A pending
// unsettled burst is discarded.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.fsw.Close()
	<-w.closed
	return err
}

func (w *Watcher) loop(settle time.Duration, onChange func()) {
	defer close(w.closed)

	// The timer starts disarmed; every relevant event pushes the deadline
	// out, so the callback fires only after the directory goes quiet.
	timer := time.NewTimer(settle)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !relevant(ev) {
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(settle)
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// Transient watch errors are not fatal; the next event still
			// triggers a reload.
		case <-timer.C:
			onChange()
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	if !ev.Op.Has(fsnotify.Create | fsnotify.Write | fsnotify.Rename | fsnotify.Remove) {
		return false
	}
	return strings.EqualFold(filepath.Ext(ev.Name), ".json")
}
