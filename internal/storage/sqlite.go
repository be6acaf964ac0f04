package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/gamedevCloudy/youtube-automation/internal/models"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and
// initializes the schema. Parent directories are created if missing.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS collections (
		id TEXT PRIMARY KEY,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS videos (
		id TEXT PRIMARY KEY,
		collection_id TEXT NOT NULL,
		source_uri TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (collection_id) REFERENCES collections(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_videos_collection ON videos(collection_id);

	CREATE TABLE IF NOT EXISTS chunks (
		id TEXT PRIMARY KEY,
		video_id TEXT NOT NULL,
		ordinal INTEGER NOT NULL,
		start_time REAL NOT NULL,
		end_time REAL NOT NULL,
		blob_uri TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (video_id) REFERENCES videos(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_chunks_video ON chunks(video_id, ordinal);

	CREATE TABLE IF NOT EXISTS transcripts (
		chunk_id TEXT PRIMARY KEY,
		text TEXT NOT NULL,
		duration REAL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (chunk_id) REFERENCES chunks(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS records (
		id TEXT NOT NULL,
		collection_id TEXT NOT NULL,
		video_id TEXT NOT NULL,
		chunk_id TEXT NOT NULL,
		start_time REAL NOT NULL,
		end_time REAL NOT NULL,
		text TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (collection_id, id)
	);

	CREATE INDEX IF NOT EXISTS idx_records_chunk ON records(collection_id, chunk_id);
	`
	_, err := db.Exec(schema)
	return err
}

// CreateCollection inserts a collection if it does not already exist.
// Creating an existing collection is a no-op, so callers can create lazily.
func (s *SQLiteStorage) CreateCollection(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO collections (id, created_at) VALUES (?, ?)`,
		id, time.Now())
	return err
}

// ListCollections returns all collections with their indexed record counts,
// newest first.
func (s *SQLiteStorage) ListCollections(ctx context.Context) ([]*models.CollectionInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.id, c.created_at, COUNT(r.id)
		 FROM collections c
		 LEFT JOIN records r ON r.collection_id = c.id
		 GROUP BY c.id
		 ORDER BY c.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.CollectionInfo
	for rows.Next() {
		var info models.CollectionInfo
		if err := rows.Scan(&info.ID, &info.CreatedAt, &info.Documents); err != nil {
			return nil, err
		}
		out = append(out, &info)
	}
	return out, rows.Err()
}

// DeleteCollection removes a collection and everything under it. Deleting a
// collection that does not exist is a no-op.
func (s *SQLiteStorage) DeleteCollection(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// transcripts and chunks cascade from videos; records are keyed by
	// collection directly.
	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE collection_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM collections WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// CreateVideo inserts a video, creating its collection if needed.
// Re-ingesting a video replaces the prior row; the cascade drops its old
// chunks and transcripts, since a reprocess mints entirely new chunk IDs.
func (s *SQLiteStorage) CreateVideo(ctx context.Context, video *models.Video) error {
	if err := s.CreateCollection(ctx, video.CollectionID); err != nil {
		return err
	}
	video.CreatedAt = time.Now()
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO videos (id, collection_id, source_uri, created_at) VALUES (?, ?, ?, ?)`,
		video.VideoID, video.CollectionID, video.SourceURI, video.CreatedAt)
	return err
}

// CreateChunks inserts a video's chunks in one transaction.
func (s *SQLiteStorage) CreateChunks(ctx context.Context, chunks []*models.Chunk) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO chunks (id, video_id, ordinal, start_time, end_time, blob_uri)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range chunks {
		if _, err := stmt.ExecContext(ctx,
			c.ChunkID, c.VideoID, c.Ordinal, c.StartTime, c.EndTime, c.BlobURI); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetChunksByVideo returns a video's chunks in timeline order.
func (s *SQLiteStorage) GetChunksByVideo(ctx context.Context, videoID string) ([]*models.Chunk, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, video_id, ordinal, start_time, end_time, blob_uri
		 FROM chunks WHERE video_id = ? ORDER BY ordinal`, videoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Chunk
	for rows.Next() {
		var c models.Chunk
		if err := rows.Scan(&c.ChunkID, &c.VideoID, &c.Ordinal, &c.StartTime, &c.EndTime, &c.BlobURI); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// SaveTranscript stores a chunk's transcript, replacing any prior one.
func (s *SQLiteStorage) SaveTranscript(ctx context.Context, chunkID string, t *models.Transcript) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO transcripts (chunk_id, text, duration) VALUES (?, ?, ?)`,
		chunkID, t.Text, t.Duration)
	return err
}

// UpsertRecords stores indexed records, replacing rows with the same
// (collection, record) key.
func (s *SQLiteStorage) UpsertRecords(ctx context.Context, records []*models.EmbeddingRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO records (id, collection_id, video_id, chunk_id, start_time, end_time, text)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			r.RecordID, r.CollectionID, r.VideoID, r.ChunkID, r.StartTime, r.EndTime, r.Text); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// DeleteRecordsByChunk removes every record derived from one chunk. Re-split
// transcripts can produce fewer fragments than before, so upserting alone
// cannot retire the extras.
func (s *SQLiteStorage) DeleteRecordsByChunk(ctx context.Context, collectionID, chunkID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM records WHERE collection_id = ? AND chunk_id = ?`, collectionID, chunkID)
	return err
}

// CountVideos returns the number of stored videos.
func (s *SQLiteStorage) CountVideos(ctx context.Context) (int64, error) {
	return s.countRows(ctx, "videos")
}

// CountChunks returns the number of stored chunks.
func (s *SQLiteStorage) CountChunks(ctx context.Context) (int64, error) {
	return s.countRows(ctx, "chunks")
}

// CountRecords returns the number of indexed records.
func (s *SQLiteStorage) CountRecords(ctx context.Context) (int64, error) {
	return s.countRows(ctx, "records")
}

func (s *SQLiteStorage) countRows(ctx context.Context, table string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n)
	return n, err
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
