// Package stopfile turns the appearance of a file into a stop request, so a
// game pinned to every CPU can still be ended from another shell or a
// supervisor that cannot deliver signals.
package stopfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher waits for a stop file to appear.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
}

// New watches for path. Its parent directory must exist; the file itself
// usually does not.
func New(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("stop file %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: fsnotify cannot watch a file that does not exist
	// yet, and editors replace files rather than writing them in place.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{path: abs, watcher: watcher}, nil
}

// Path returns the absolute path being watched for.
func (w *Watcher) Path() string {
	return w.path
}

// Wait blocks until the stop file exists or ctx is done. It returns nil
// when the file was seen and ctx.Err() otherwise.
func (w *Watcher) Wait(ctx context.Context) error {
	if Exists(w.path) {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return errors.New("stop file watcher closed")
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) == w.path && Exists(w.path) {
				return nil
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New("stop file watcher closed")
			}
			return fmt.Errorf("watch %s: %w", w.path, err)
		}
	}
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Exists reports whether path is present.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Clear removes a leftover stop file. It reports whether one was removed.
func Clear(path string) (bool, error) {
	err := os.Remove(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}
