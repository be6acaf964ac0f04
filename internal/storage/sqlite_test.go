package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gamedevCloudy/youtube-automation/internal/models"
)

func openTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "meta.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStorage_Collections(t *testing.T) {
	store := openTestStorage(t)
	ctx := context.Background()

	if err := store.CreateCollection(ctx, "demo"); err != nil {
		t.Fatal(err)
	}
	if err := store.CreateCollection(ctx, "demo"); err != nil {
		t.Errorf("repeat create should be a no-op: %v", err)
	}

	list, err := store.ListCollections(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != "demo" {
		t.Fatalf("list=%v", list)
	}
	if list[0].Documents != 0 {
		t.Errorf("empty collection has %d documents", list[0].Documents)
	}
	if list[0].CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
}

func TestSQLiteStorage_VideoChunksTranscripts(t *testing.T) {
	store := openTestStorage(t)
	ctx := context.Background()

	video := &models.Video{VideoID: "vid1", CollectionID: "demo", SourceURI: "https://youtu.be/abc"}
	if err := store.CreateVideo(ctx, video); err != nil {
		t.Fatal(err)
	}

	chunks := []*models.Chunk{
		{ChunkID: "c0", VideoID: "vid1", Ordinal: 0, StartTime: 0, EndTime: 600, BlobURI: "file:///c0.mp3"},
		{ChunkID: "c1", VideoID: "vid1", Ordinal: 1, StartTime: 600, EndTime: 900, BlobURI: "file:///c1.mp3"},
	}
	if err := store.CreateChunks(ctx, chunks); err != nil {
		t.Fatal(err)
	}

	got, err := store.GetChunksByVideo(ctx, "vid1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ChunkID != "c0" || got[1].EndTime != 900 {
		t.Errorf("chunks=%v, %v", got[0], got[1])
	}

	if err := store.SaveTranscript(ctx, "c0", &models.Transcript{Text: "srt text", Duration: 600}); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveTranscript(ctx, "c0", &models.Transcript{Text: "replaced", Duration: 600}); err != nil {
		t.Errorf("transcript replace failed: %v", err)
	}

	n, _ := store.CountVideos(ctx)
	if n != 1 {
		t.Errorf("videos=%d", n)
	}
	n, _ = store.CountChunks(ctx)
	if n != 2 {
		t.Errorf("chunks=%d", n)
	}
}

func TestSQLiteStorage_RecordsAndCounts(t *testing.T) {
	store := openTestStorage(t)
	ctx := context.Background()
	store.CreateCollection(ctx, "demo")

	records := []*models.EmbeddingRecord{
		{RecordID: "r1", CollectionID: "demo", VideoID: "v", ChunkID: "c", Text: "one"},
		{RecordID: "r2", CollectionID: "demo", VideoID: "v", ChunkID: "c", Text: "two"},
	}
	if err := store.UpsertRecords(ctx, records); err != nil {
		t.Fatal(err)
	}
	// Same key again: replace, not duplicate.
	if err := store.UpsertRecords(ctx, records[:1]); err != nil {
		t.Fatal(err)
	}

	n, err := store.CountRecords(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("records=%d, want 2", n)
	}

	list, _ := store.ListCollections(ctx)
	if list[0].Documents != 2 {
		t.Errorf("collection documents=%d", list[0].Documents)
	}
}

func TestSQLiteStorage_DeleteRecordsByChunk(t *testing.T) {
	store := openTestStorage(t)
	ctx := context.Background()
	store.CreateCollection(ctx, "demo")

	store.UpsertRecords(ctx, []*models.EmbeddingRecord{
		{RecordID: "c1_000", CollectionID: "demo", VideoID: "v", ChunkID: "c1", Text: "one"},
		{RecordID: "c1_001", CollectionID: "demo", VideoID: "v", ChunkID: "c1", Text: "two"},
		{RecordID: "c2", CollectionID: "demo", VideoID: "v", ChunkID: "c2", Text: "other"},
	})

	if err := store.DeleteRecordsByChunk(ctx, "demo", "c1"); err != nil {
		t.Fatal(err)
	}
	n, _ := store.CountRecords(ctx)
	if n != 1 {
		t.Errorf("records=%d after chunk delete, want 1", n)
	}
	// Absent chunk: no-op.
	if err := store.DeleteRecordsByChunk(ctx, "demo", "c9"); err != nil {
		t.Errorf("absent chunk should not error: %v", err)
	}
}

func TestSQLiteStorage_DeleteCollectionCascades(t *testing.T) {
	store := openTestStorage(t)
	ctx := context.Background()

	store.CreateVideo(ctx, &models.Video{VideoID: "vid1", CollectionID: "demo"})
	store.CreateChunks(ctx, []*models.Chunk{{ChunkID: "c0", VideoID: "vid1", Ordinal: 0, EndTime: 600}})
	store.SaveTranscript(ctx, "c0", &models.Transcript{Text: "x", Duration: 600})
	store.UpsertRecords(ctx, []*models.EmbeddingRecord{
		{RecordID: "r1", CollectionID: "demo", VideoID: "vid1", ChunkID: "c0", Text: "x"},
	})

	if err := store.DeleteCollection(ctx, "demo"); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteCollection(ctx, "demo"); err != nil {
		t.Errorf("repeat delete should be a no-op: %v", err)
	}
	if err := store.DeleteCollection(ctx, "never-existed"); err != nil {
		t.Errorf("deleting unknown collection should be a no-op: %v", err)
	}

	for name, count := range map[string]func(context.Context) (int64, error){
		"videos":  store.CountVideos,
		"chunks":  store.CountChunks,
		"records": store.CountRecords,
	} {
		n, err := count(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if n != 0 {
			t.Errorf("%s=%d after delete", name, n)
		}
	}
}

func TestDiskUsageBytes(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSQLiteStorage(filepath.Join(dir, "meta.db"))
	if err != nil {
		t.Fatal(err)
	}
	store.Close()

	n, err := DiskUsageBytes(dir)
	if err != nil {
		t.Fatal(err)
	}
	if n <= 0 {
		t.Errorf("usage=%d, want > 0", n)
	}

	missing, err := DiskUsageBytes(filepath.Join(dir, "absent"))
	if err != nil {
		t.Fatal(err)
	}
	if missing != 0 {
		t.Errorf("missing path usage=%d", missing)
	}
}
