// Package watch recomputes vault views when notes appear, disappear or move.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/gorewood/marks/internal/vault"
)

// DefaultDebounce is how long the watcher waits for a burst of events to end
// before calling the change handler.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches a vault directory tree.
type Watcher struct {
	root     string
	debounce time.Duration
	log      *zap.Logger
	fsw      *fsnotify.Watcher
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period between the last event and the handler.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// New watches root and every non-hidden directory below it.
func New(root string, log *zap.Logger, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	w := &Watcher{
		root:     filepath.Clean(root),
		debounce: DefaultDebounce,
		log:      log,
		fsw:      fsw,
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := w.addTree(w.root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run calls onChange once immediately and again after every burst of
// create, remove or rename events. Content writes do not count. Handler
// errors are logged and do not stop the loop. Run returns when ctx is done
// or the watcher is closed.
func (w *Watcher) Run(ctx context.Context, onChange func() error) error {
	w.refresh(onChange, "start")

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debug("vault event", zap.String("op", event.Op.String()), zap.String("path", event.Name))
			if event.Has(fsnotify.Create) {
				w.addIfDir(event.Name)
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.refresh(onChange, "change")

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) refresh(onChange func() error, reason string) {
	start := time.Now()
	if err := onChange(); err != nil {
		w.log.Error("refresh failed", zap.String("reason", reason), zap.Error(err))
		return
	}
	w.log.Debug("refreshed", zap.String("reason", reason), zap.Duration("took", time.Since(start)))
}

// relevant drops content writes, chmods and anything under a hidden path,
// which also hides the temp files of atomic saves.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if vault.Hidden(part) && part != "." && part != ".." {
			return false
		}
	}
	return true
}

func (w *Watcher) addIfDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.addTree(path); err != nil {
		w.log.Warn("cannot watch new directory", zap.String("path", path), zap.Error(err))
	}
}

// addTree adds dir and its non-hidden subdirectories.
func (w *Watcher) addTree(dir string) error {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrNotExist) && path != dir {
				return nil
			}
			return walkErr
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && vault.Hidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watching vault %s: %w", dir, err)
	}
	return nil
}
