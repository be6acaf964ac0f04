// Package storage defines metadata persistence for collections, videos,
// chunks, transcripts and indexed records.
package storage

import (
	"context"

	"github.com/gamedevCloudy/youtube-automation/internal/models"
)

// Storage is the metadata store behind the pipeline. Vectors live in the
// vector index; this records what was processed and what it produced.
type Storage interface {
	// Collection operations
	CreateCollection(ctx context.Context, id string) error
	ListCollections(ctx context.Context) ([]*models.CollectionInfo, error)
	DeleteCollection(ctx context.Context, id string) error

	// Video and chunk operations
	CreateVideo(ctx context.Context, video *models.Video) error
	CreateChunks(ctx context.Context, chunks []*models.Chunk) error
	GetChunksByVideo(ctx context.Context, videoID string) ([]*models.Chunk, error)
	SaveTranscript(ctx context.Context, chunkID string, t *models.Transcript) error

	// Record operations
	UpsertRecords(ctx context.Context, records []*models.EmbeddingRecord) error
	DeleteRecordsByChunk(ctx context.Context, collectionID, chunkID string) error

	// Stats
	CountVideos(ctx context.Context) (int64, error)
	CountChunks(ctx context.Context) (int64, error)
	CountRecords(ctx context.Context) (int64, error)

	Close() error
}
