package indexer

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gamedevCloudy/youtube-automation/internal/config"
	"github.com/gamedevCloudy/youtube-automation/internal/embedding"
	"github.com/gamedevCloudy/youtube-automation/internal/keyword"
	"github.com/gamedevCloudy/youtube-automation/internal/models"
	"github.com/gamedevCloudy/youtube-automation/internal/storage"
	"github.com/gamedevCloudy/youtube-automation/internal/vector"
)

func newTestIndexer(t *testing.T) (*Indexer, *vector.Index, storage.Storage) {
	return newTestIndexerCfg(t, config.SearchConfig{SplitChars: 1000, SplitOverlap: 200})
}

func newTestIndexerCfg(t *testing.T, cfg config.SearchConfig) (*Indexer, *vector.Index, storage.Storage) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewSQLiteStorage(filepath.Join(dir, "meta.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	keywords, err := keyword.Open(filepath.Join(dir, "keyword.bleve"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { keywords.Close() })

	vectors, err := vector.NewIndex(64)
	if err != nil {
		t.Fatal(err)
	}
	return New(store, embedding.NewHashEmbedder(64), vectors, keywords, cfg, nil), vectors, store
}

func TestIndexer_Upsert(t *testing.T) {
	idx, vectors, store := newTestIndexer(t)
	ctx := context.Background()

	units := []models.TranscriptUnit{
		{ChunkID: "c1", VideoID: "v1", Text: "first chunk transcript", StartTime: 0, EndTime: 600},
		{ChunkID: "c2", VideoID: "v1", Text: "second chunk transcript", StartTime: 600, EndTime: 1200},
	}
	n, err := idx.Upsert(ctx, "demo", units)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("records=%d, want 2", n)
	}
	if vectors.Count("demo") != 2 {
		t.Errorf("vector count=%d", vectors.Count("demo"))
	}

	// Collection was created lazily.
	list, err := store.ListCollections(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != "demo" || list[0].Documents != 2 {
		t.Errorf("collections=%+v", list[0])
	}
}

func TestIndexer_UpsertIdempotent(t *testing.T) {
	idx, vectors, _ := newTestIndexer(t)
	ctx := context.Background()

	units := []models.TranscriptUnit{
		{ChunkID: "c1", VideoID: "v1", Text: "original text", StartTime: 0, EndTime: 600},
	}
	if _, err := idx.Upsert(ctx, "demo", units); err != nil {
		t.Fatal(err)
	}
	units[0].Text = "revised text"
	if _, err := idx.Upsert(ctx, "demo", units); err != nil {
		t.Fatal(err)
	}

	if n := vectors.Count("demo"); n != 1 {
		t.Errorf("vector count=%d after re-upsert, want 1", n)
	}
	results, _ := vectors.Search(ctx, mustEmbed(t, "revised text"), 1, []string{"demo"})
	if results[0].Record.Text != "revised text" {
		t.Errorf("stored text=%q", results[0].Record.Text)
	}
}

func TestIndexer_ReUpsertRetiresStoredFragments(t *testing.T) {
	idx, vectors, store := newTestIndexerCfg(t, config.SearchConfig{SplitChars: 100, SplitOverlap: 20})
	ctx := context.Background()

	long := strings.Repeat("transcribed words fill the chunk ", 16)
	units := []models.TranscriptUnit{
		{ChunkID: "c1", VideoID: "v1", Text: long, StartTime: 0, EndTime: 600},
	}
	if _, err := idx.Upsert(ctx, "demo", units); err != nil {
		t.Fatal(err)
	}
	before, err := store.CountRecords(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if before < 2 {
		t.Fatalf("records=%d before re-upsert, want several fragments", before)
	}

	// Re-upserting the same chunk with a short text collapses the fragments
	// to one record everywhere, including the metadata store.
	units[0].Text = "short revision"
	if _, err := idx.Upsert(ctx, "demo", units); err != nil {
		t.Fatal(err)
	}

	if n := vectors.Count("demo"); n != 1 {
		t.Errorf("vector count=%d after re-upsert, want 1", n)
	}
	after, err := store.CountRecords(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if after != 1 {
		t.Errorf("stored records=%d after re-upsert, want 1", after)
	}
	list, _ := store.ListCollections(ctx)
	if len(list) != 1 || list[0].Documents != 1 {
		t.Errorf("collection listing=%+v, want 1 document", list)
	}
}

func TestIndexer_UpsertValidation(t *testing.T) {
	idx, _, _ := newTestIndexer(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		coll  string
		units []models.TranscriptUnit
	}{
		{"empty collection", "", []models.TranscriptUnit{{ChunkID: "c", Text: "x"}}},
		{"no units", "demo", nil},
		{"blank text", "demo", []models.TranscriptUnit{{ChunkID: "c", Text: "   "}}},
		{"missing chunk id", "demo", []models.TranscriptUnit{{Text: "x"}}},
	}
	for _, tc := range cases {
		_, err := idx.Upsert(ctx, tc.coll, tc.units)
		if !errors.Is(err, models.ErrInvalidArgument) {
			t.Errorf("%s: err=%v, want ErrInvalidArgument", tc.name, err)
		}
	}
}

func TestIndexer_DeleteCollection(t *testing.T) {
	idx, vectors, store := newTestIndexer(t)
	ctx := context.Background()

	idx.Upsert(ctx, "demo", []models.TranscriptUnit{
		{ChunkID: "c1", VideoID: "v1", Text: "some text", StartTime: 0, EndTime: 600},
	})
	if err := idx.DeleteCollection(ctx, "demo"); err != nil {
		t.Fatal(err)
	}
	if err := idx.DeleteCollection(ctx, "demo"); err != nil {
		t.Errorf("repeat delete should be a no-op: %v", err)
	}
	if vectors.Count("demo") != 0 {
		t.Errorf("vectors remain after delete")
	}
	list, _ := store.ListCollections(ctx)
	if len(list) != 0 {
		t.Errorf("collections=%v", list)
	}
}

func mustEmbed(t *testing.T, text string) []float32 {
	t.Helper()
	v, err := embedding.NewHashEmbedder(64).Embed(context.Background(), text)
	if err != nil {
		t.Fatal(err)
	}
	return v
}
