package blob

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestDiskStore_PutGet(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	uri, err := store.Put(ctx, "demo/vid1/chunk1.mp3", strings.NewReader("audio-bytes"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(uri, "file://") {
		t.Errorf("uri=%s", uri)
	}

	rc, err := store.Get(ctx, uri)
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "audio-bytes" {
		t.Errorf("data=%q", data)
	}
}

func TestDiskStore_List(t *testing.T) {
	store, _ := NewDiskStore(t.TempDir())
	ctx := context.Background()
	_, _ = store.Put(ctx, "demo/vid1/a.mp3", strings.NewReader("a"))
	_, _ = store.Put(ctx, "demo/vid1/b.mp3", strings.NewReader("b"))
	_, _ = store.Put(ctx, "demo/vid2/c.mp3", strings.NewReader("c"))

	uris, err := store.List(ctx, "demo/vid1/")
	if err != nil {
		t.Fatal(err)
	}
	if len(uris) != 2 {
		t.Errorf("expected 2 uris, got %d: %v", len(uris), uris)
	}
}

func TestDiskStore_DeletePrefix(t *testing.T) {
	store, _ := NewDiskStore(t.TempDir())
	ctx := context.Background()
	_, _ = store.Put(ctx, "demo/vid1/a.mp3", strings.NewReader("a"))

	if err := store.DeletePrefix(ctx, "demo/vid1"); err != nil {
		t.Fatal(err)
	}
	uris, _ := store.List(ctx, "demo/")
	if len(uris) != 0 {
		t.Errorf("expected 0 uris after delete, got %v", uris)
	}
	// Absent prefix is a no-op.
	if err := store.DeletePrefix(ctx, "never/there"); err != nil {
		t.Errorf("deleting absent prefix should succeed: %v", err)
	}
}

func TestDiskStore_RejectsEscapingKeys(t *testing.T) {
	store, _ := NewDiskStore(t.TempDir())
	ctx := context.Background()
	if _, err := store.Put(ctx, "../outside", strings.NewReader("x")); err == nil {
		t.Error("expected error for escaping key")
	}
	if _, err := store.Put(ctx, "/abs/path", strings.NewReader("x")); err == nil {
		t.Error("expected error for absolute key")
	}
}
