// Package models defines core data structures for collections, videos, chunks,
// transcripts, and indexed records.
package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Collection is a named grouping of videos (one processing job or topic).
type Collection struct {
	ID        string    `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CollectionInfo is a collection listing entry with its indexed record count.
type CollectionInfo struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Documents int64     `json:"documents"`
}

// Video is one source media item within a collection.
type Video struct {
	VideoID      string    `json:"video_id" db:"video_id"`
	CollectionID string    `json:"collection_id" db:"collection_id"`
	SourceURI    string    `json:"source_uri" db:"source_uri"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Chunk is a contiguous time-slice of a video's audio. Chunks are immutable
// once created; a reprocess mints new chunk IDs.
type Chunk struct {
	ChunkID   string  `json:"chunk_id" db:"chunk_id"`
	VideoID   string  `json:"video_id" db:"video_id"`
	Ordinal   int     `json:"ordinal" db:"ordinal"`
	StartTime float64 `json:"start_time" db:"start_time"`
	EndTime   float64 `json:"end_time" db:"end_time"`
	BlobURI   string  `json:"blob_uri" db:"blob_uri"`
}

// Duration returns the chunk's time span in seconds.
func (c *Chunk) Duration() float64 {
	return c.EndTime - c.StartTime
}

// Transcript is the subtitle-formatted text produced for one chunk, with the
// duration the engine reported for the audio.
type Transcript struct {
	Text     string  `json:"text"`
	Duration float64 `json:"duration"`
}

// UnmarshalJSON accepts duration as either a JSON number or a numeric string;
// generative engines are not consistent about which they return.
func (t *Transcript) UnmarshalJSON(data []byte) error {
	var raw struct {
		Text     string          `json:"text"`
		Duration json.RawMessage `json:"duration"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.Text = raw.Text
	t.Duration = 0
	if len(raw.Duration) == 0 {
		return nil
	}
	s := strings.Trim(string(raw.Duration), `"`)
	if s == "" || s == "null" {
		return nil
	}
	d, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("transcript duration %q is not numeric: %w", s, err)
	}
	t.Duration = d
	return nil
}

// TranscriptUnit is one embeddable unit submitted for indexing: a chunk's
// transcript text with its provenance.
type TranscriptUnit struct {
	ChunkID   string  `json:"chunk_id"`
	VideoID   string  `json:"video_id"`
	Text      string  `json:"text"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

// EmbeddingRecord is one indexed unit derived from a transcript. Records are
// keyed by RecordID within a collection and may be regenerated from transcripts
// at any time; upserting an existing RecordID replaces the prior record.
type EmbeddingRecord struct {
	RecordID     string    `json:"record_id"`
	CollectionID string    `json:"collection_id"`
	VideoID      string    `json:"video_id"`
	ChunkID      string    `json:"chunk_id"`
	StartTime    float64   `json:"start_time"`
	EndTime      float64   `json:"end_time"`
	Text         string    `json:"text"`
	Vector       []float32 `json:"-"`
}

// SearchResult is a single similarity hit with enough provenance to map back
// to the audio interval that produced it.
type SearchResult struct {
	Text         string  `json:"text"`
	VideoID      string  `json:"video_id"`
	CollectionID string  `json:"collection_id"`
	StartTime    float64 `json:"start_time"`
	EndTime      float64 `json:"end_time"`
	Score        float64 `json:"score"`
	KeywordScore float64 `json:"keyword_score,omitempty"`
}
