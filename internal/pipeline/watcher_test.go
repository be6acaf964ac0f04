package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_IngestsDroppedMedia(t *testing.T) {
	dir := t.TempDir()
	got := make(chan string, 1)

	w := NewWatcher([]string{dir}, []string{".mp3", ".mp4"}, func(path string) {
		got <- path
	}, nil)
	w.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	dropped := filepath.Join(dir, "episode.mp3")
	if err := os.WriteFile(dropped, []byte("audio"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case path := <-got:
		if path != dropped {
			t.Errorf("path=%s, want %s", path, dropped)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never fired")
	}
}

func TestWatcher_IgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	got := make(chan string, 1)

	w := NewWatcher([]string{dir}, []string{".mp3"}, func(path string) {
		got <- path
	}, nil)
	w.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case path := <-got:
		t.Errorf("unexpected callback for %s", path)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_WantsFile(t *testing.T) {
	w := NewWatcher(nil, []string{".mp3", ".MP4"}, nil, nil)
	if !w.wantsFile("/drop/a.mp3") || !w.wantsFile("/drop/b.mp4") {
		t.Error("configured extensions rejected")
	}
	if w.wantsFile("/drop/c.srt") {
		t.Error("unconfigured extension accepted")
	}
	open := NewWatcher(nil, nil, nil, nil)
	if !open.wantsFile("/drop/anything.bin") {
		t.Error("empty extension list should accept all")
	}
}
