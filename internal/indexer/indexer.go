// Package indexer embeds transcript units and writes them to the vector
// index, keyword index, and metadata store.
package indexer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/gamedevCloudy/youtube-automation/internal/config"
	"github.com/gamedevCloudy/youtube-automation/internal/embedding"
	"github.com/gamedevCloudy/youtube-automation/internal/keyword"
	"github.com/gamedevCloudy/youtube-automation/internal/models"
	"github.com/gamedevCloudy/youtube-automation/internal/storage"
	"github.com/gamedevCloudy/youtube-automation/internal/vector"
)

// Indexer turns transcript units into searchable records. Upserting is
// idempotent per chunk: prior records for a chunk are dropped before its new
// ones land, so re-ingesting a video never accumulates stale fragments.
type Indexer struct {
	store    storage.Storage
	embedder embedding.Embedder
	vectors  *vector.Index
	keywords *keyword.Index
	splitter *Splitter
	logger   *zap.Logger
}

// New creates an indexer. keywords may be nil to disable keyword indexing.
func New(
	store storage.Storage,
	embedder embedding.Embedder,
	vectors *vector.Index,
	keywords *keyword.Index,
	cfg config.SearchConfig,
	logger *zap.Logger,
) *Indexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Indexer{
		store:    store,
		embedder: embedder,
		vectors:  vectors,
		keywords: keywords,
		splitter: NewSplitter(cfg.SplitChars, cfg.SplitOverlap),
		logger:   logger,
	}
}

// Upsert indexes units into collectionID and returns the number of records
// written. The collection is created if it does not exist. Units with blank
// text are rejected before anything is written.
func (idx *Indexer) Upsert(ctx context.Context, collectionID string, units []models.TranscriptUnit) (int, error) {
	if collectionID == "" {
		return 0, fmt.Errorf("%w: collection id is empty", models.ErrInvalidArgument)
	}
	if len(units) == 0 {
		return 0, fmt.Errorf("%w: no units to index", models.ErrInvalidArgument)
	}
	for _, u := range units {
		if strings.TrimSpace(u.Text) == "" {
			return 0, fmt.Errorf("%w: unit for chunk %q has empty text", models.ErrInvalidArgument, u.ChunkID)
		}
		if u.ChunkID == "" {
			return 0, fmt.Errorf("%w: unit missing chunk id", models.ErrInvalidArgument)
		}
	}

	if err := idx.store.CreateCollection(ctx, collectionID); err != nil {
		return 0, fmt.Errorf("create collection: %w", err)
	}

	var records []*models.EmbeddingRecord
	for _, u := range units {
		records = append(records, idx.splitter.Split(collectionID, u)...)
	}

	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = r.Text
	}
	vectors, err := idx.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed records: %w", err)
	}
	for i, r := range records {
		r.Vector = vectors[i]
	}

	// Drop each chunk's prior records first so a shorter re-split cannot
	// leave orphaned fragments behind.
	for _, u := range units {
		idx.vectors.DeleteChunk(collectionID, u.ChunkID)
		if idx.keywords != nil {
			if err := idx.keywords.DeleteChunk(ctx, collectionID, u.ChunkID); err != nil {
				return 0, fmt.Errorf("clear keyword records: %w", err)
			}
		}
		if err := idx.store.DeleteRecordsByChunk(ctx, collectionID, u.ChunkID); err != nil {
			return 0, fmt.Errorf("clear stored records: %w", err)
		}
	}

	if err := idx.vectors.Upsert(records); err != nil {
		return 0, fmt.Errorf("index vectors: %w", err)
	}
	if idx.keywords != nil {
		if err := idx.keywords.Upsert(ctx, records); err != nil {
			return 0, fmt.Errorf("index keywords: %w", err)
		}
	}
	if err := idx.store.UpsertRecords(ctx, records); err != nil {
		return 0, fmt.Errorf("persist records: %w", err)
	}

	idx.logger.Debug("indexed transcript units",
		zap.String("collection_id", collectionID),
		zap.Int("units", len(units)),
		zap.Int("records", len(records)),
	)
	return len(records), nil
}

// DeleteCollection removes a collection from every index. Unknown collections
// are a no-op.
func (idx *Indexer) DeleteCollection(ctx context.Context, collectionID string) error {
	idx.vectors.DeleteCollection(collectionID)
	if idx.keywords != nil {
		if err := idx.keywords.DeleteCollection(ctx, collectionID); err != nil {
			return fmt.Errorf("delete keyword records: %w", err)
		}
	}
	if err := idx.store.DeleteCollection(ctx, collectionID); err != nil {
		return fmt.Errorf("delete collection metadata: %w", err)
	}
	idx.logger.Info("deleted collection", zap.String("collection_id", collectionID))
	return nil
}
