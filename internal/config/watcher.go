package config

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vitrinehq/vitrine/pkg/ports"
)

// coalesceWindow suppresses duplicate events from editors that write a
// file in multiple syscalls.
const coalesceWindow = 100 * time.Millisecond

// Watcher notifies when YAML configuration under a directory changes.
// Implements ports.ConfigWatcher.
type Watcher struct {
	dir string
}

// NewWatcher creates a watcher for the given directory.
func NewWatcher(dir string) *Watcher {
	return &Watcher{dir: dir}
}

// Watch starts watching and returns a channel that signals whenever a
// reload is required. The channel closes when ctx is canceled.
func (w *Watcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(w.dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer fsw.Close()

		last := make(map[string]time.Time)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				if !isConfigFile(event.Name) {
					continue
				}
				now := time.Now()
				if t, ok := last[event.Name]; ok && now.Sub(t) < coalesceWindow {
					continue
				}
				last[event.Name] = now

				// Non-blocking send; one pending signal is enough.
				select {
				case out <- struct{}{}:
				default:
				}
			case _, ok := <-fsw.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return out, nil
}

func isConfigFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

var _ ports.ConfigWatcher = (*Watcher)(nil)
