// Package watch triggers rebuilds when files under the content tree change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce coalesces editor save bursts into one rebuild.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches a directory tree. New subdirectories are picked up as
// they appear.
type Watcher struct {
	root     string
	debounce time.Duration
	logger   *zap.Logger
	ignore   []string
	fsw      *fsnotify.Watcher
}

// New starts watching root and every directory below it. Directories in
// ignore, typically the build output, are neither watched nor reported.
func New(root string, debounce time.Duration, logger *zap.Logger, ignore ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{root: root, debounce: debounce, logger: logger, fsw: fsw}
	for _, dir := range ignore {
		abs, err := filepath.Abs(dir)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("resolving %s: %w", dir, err)
		}
		w.ignore = append(w.ignore, abs)
	}
	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if w.ignored(p) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(p); err != nil {
			return fmt.Errorf("watching %s: %w", p, err)
		}
		return nil
	})
}

// ignored reports whether p is an ignored directory or lies below one.
func (w *Watcher) ignored(p string) bool {
	abs, err := filepath.Abs(p)
	if err != nil {
		return false
	}
	for _, dir := range w.ignore {
		if abs == dir || strings.HasPrefix(abs, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Run calls onChange after each burst of filesystem events until ctx is
// done or the watcher is closed. onChange runs on the Run goroutine, so
// events that arrive during a rebuild collapse into the next call.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	defer w.fsw.Close()

	// Timers never deliver stale values after Reset (Go 1.23 semantics).
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) {
				continue
			}
			if w.ignored(ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						w.logger.Warn("watching new directory", zap.String("dir", ev.Name), zap.Error(err))
					}
				}
			}
			w.logger.Debug("content changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			timer.Reset(w.debounce)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))
		case <-timer.C:
			onChange()
		}
	}
}
