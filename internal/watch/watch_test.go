package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap/zaptest"
)

// startWatcher runs a watcher on a fresh vault and returns a channel that
// receives one value per refresh.
func startWatcher(t *testing.T, root string) <-chan struct{} {
	t.Helper()
	w, err := New(root, zaptest.NewLogger(t), WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	refreshed := make(chan struct{}, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx, func() error {
			refreshed <- struct{}{}
			return nil
		})
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		_ = w.Close()
	})
	return refreshed
}

func waitRefresh(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatalf("no refresh after %s", what)
	}
}

func expectQuiet(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
		t.Fatalf("unexpected refresh after %s", what)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestRun_RefreshesOnStartAndCreate(t *testing.T) {
	root := t.TempDir()
	refreshed := startWatcher(t, root)
	waitRefresh(t, refreshed, "start")

	if err := os.WriteFile(filepath.Join(root, "12-03-2024.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitRefresh(t, refreshed, "create")
}

func TestRun_WatchesNewDirectories(t *testing.T) {
	root := t.TempDir()
	refreshed := startWatcher(t, root)
	waitRefresh(t, refreshed, "start")

	daily := filepath.Join(root, "Daily")
	if err := os.Mkdir(daily, 0o755); err != nil {
		t.Fatal(err)
	}
	waitRefresh(t, refreshed, "mkdir")

	// Give the watcher a moment to add the new directory.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(daily, "12-03-2024.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitRefresh(t, refreshed, "create in new directory")
}

func TestRun_IgnoresWritesAndHiddenPaths(t *testing.T) {
	root := t.TempDir()
	note := filepath.Join(root, "note.md")
	if err := os.WriteFile(note, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(root, ".obsidian"), 0o755); err != nil {
		t.Fatal(err)
	}

	refreshed := startWatcher(t, root)
	waitRefresh(t, refreshed, "start")

	if err := os.WriteFile(note, []byte("changed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, ".tmp-marks-1"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	expectQuiet(t, refreshed, "content write")
}

func TestRun_HandlerErrorKeepsRunning(t *testing.T) {
	root := t.TempDir()
	w, err := New(root, zaptest.NewLogger(t), WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func() error {
			calls.Add(1)
			return errors.New("boom")
		})
	}()

	deadline := time.Now().Add(5 * time.Second)
	for calls.Load() < 1 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if err := os.WriteFile(filepath.Join(root, "a.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	for calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if err := <-done; err != nil {
		t.Errorf("Run() error = %v", err)
	}
	if calls.Load() < 2 {
		t.Errorf("calls = %d, want at least 2", calls.Load())
	}
}

func TestRelevant(t *testing.T) {
	w := &Watcher{root: "/vault"}
	tests := []struct {
		event fsnotify.Event
		want  bool
	}{
		{fsnotify.Event{Name: "/vault/Daily/a.md", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "/vault/Daily/a.md", Op: fsnotify.Remove}, true},
		{fsnotify.Event{Name: "/vault/Daily/a.md", Op: fsnotify.Rename}, true},
		{fsnotify.Event{Name: "/vault/Daily/a.md", Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: "/vault/Daily/a.md", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/vault/.obsidian/workspace.json", Op: fsnotify.Create}, false},
		{fsnotify.Event{Name: "/vault/Daily/.tmp-marks-123", Op: fsnotify.Create}, false},
	}

	for _, tt := range tests {
		t.Run(tt.event.String(), func(t *testing.T) {
			if got := w.relevant(tt.event); got != tt.want {
				t.Errorf("relevant(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestNew_MissingRoot(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing"), nil); err == nil {
		t.Error("New() should fail for a missing root")
	}
}
