// Package keyword provides a Bleve full-text index over transcript records,
// used to sharpen vector search with exact term matches.
package keyword

import (
	"context"
	"fmt"
	"os"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	blevequery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/gamedevCloudy/youtube-automation/internal/models"
)

// recordDoc is the shape Bleve indexes for each transcript record.
type recordDoc struct {
	Text         string  `json:"text"`
	CollectionID string  `json:"collection_id"`
	VideoID      string  `json:"video_id"`
	ChunkID      string  `json:"chunk_id"`
	StartTime    float64 `json:"start_time"`
}

// Result is a keyword search hit. ID is the record ID.
type Result struct {
	ID    string
	Score float64
}

// Index wraps a Bleve index keyed by record ID.
type Index struct {
	index bleve.Index
}

// Open creates or opens a Bleve index at path. Text gets the standard
// analyzer (lowercase + tokenize, no stemming) so spoken-word queries match
// the exact words; collection, video and chunk IDs are keyword fields used
// for filtering, never scored.
func Open(path string) (*Index, error) {
	if _, err := os.Stat(path); err == nil {
		idx, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("open keyword index: %w", openErr)
		}
		return &Index{index: idx}, nil
	}

	textField := bleve.NewTextFieldMapping()
	textField.Analyzer = standard.Name
	idField := bleve.NewTextFieldMapping()
	idField.Analyzer = keyword.Name

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("text", textField)
	doc.AddFieldMappingsAt("collection_id", idField)
	doc.AddFieldMappingsAt("video_id", idField)
	doc.AddFieldMappingsAt("chunk_id", idField)

	im := bleve.NewIndexMapping()
	im.DefaultMapping = doc

	idx, err := bleve.New(path, im)
	if err != nil {
		return nil, fmt.Errorf("create keyword index: %w", err)
	}
	return &Index{index: idx}, nil
}

// Upsert indexes records by record ID. Bleve replaces documents with the same
// ID, so re-indexing a record is safe.
func (x *Index) Upsert(ctx context.Context, records []*models.EmbeddingRecord) error {
	batch := x.index.NewBatch()
	for _, r := range records {
		err := batch.Index(r.RecordID, recordDoc{
			Text:         r.Text,
			CollectionID: r.CollectionID,
			VideoID:      r.VideoID,
			ChunkID:      r.ChunkID,
			StartTime:    r.StartTime,
		})
		if err != nil {
			return fmt.Errorf("index record %s: %w", r.RecordID, err)
		}
	}
	return x.index.Batch(batch)
}

// Search runs a match query over text, restricted to the named collections,
// and returns up to limit hits by descending score.
func (x *Index) Search(ctx context.Context, text string, limit int, collections []string) ([]*Result, error) {
	match := bleve.NewMatchQuery(text)
	match.SetField("text")

	q := blevequery.Query(match)
	if len(collections) > 0 {
		filters := make([]blevequery.Query, 0, len(collections))
		for _, id := range collections {
			tq := bleve.NewTermQuery(id)
			tq.SetField("collection_id")
			filters = append(filters, tq)
		}
		q = bleve.NewConjunctionQuery(match, bleve.NewDisjunctionQuery(filters...))
	}

	req := bleve.NewSearchRequest(q)
	req.Size = limit
	res, err := x.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("keyword search: %w", err)
	}
	out := make([]*Result, len(res.Hits))
	for i, hit := range res.Hits {
		out[i] = &Result{ID: hit.ID, Score: hit.Score}
	}
	return out, nil
}

// DeleteChunk removes every record derived from the chunk.
func (x *Index) DeleteChunk(ctx context.Context, collectionID, chunkID string) error {
	ids, err := x.matchingIDs("chunk_id", chunkID, collectionID)
	if err != nil {
		return err
	}
	return x.deleteIDs(ids)
}

// DeleteCollection removes every record in the collection. Unknown
// collections are a no-op.
func (x *Index) DeleteCollection(ctx context.Context, collectionID string) error {
	ids, err := x.matchingIDs("collection_id", collectionID, "")
	if err != nil {
		return err
	}
	return x.deleteIDs(ids)
}

func (x *Index) matchingIDs(field, value, collectionID string) ([]string, error) {
	tq := bleve.NewTermQuery(value)
	tq.SetField(field)
	q := blevequery.Query(tq)
	if collectionID != "" {
		cq := bleve.NewTermQuery(collectionID)
		cq.SetField("collection_id")
		q = bleve.NewConjunctionQuery(tq, cq)
	}

	var ids []string
	for {
		req := bleve.NewSearchRequest(q)
		req.Size = 1000
		req.From = len(ids)
		res, err := x.index.Search(req)
		if err != nil {
			return nil, fmt.Errorf("find records to delete: %w", err)
		}
		for _, hit := range res.Hits {
			ids = append(ids, hit.ID)
		}
		if uint64(len(ids)) >= res.Total || len(res.Hits) == 0 {
			return ids, nil
		}
	}
}

func (x *Index) deleteIDs(ids []string) error {
	batch := x.index.NewBatch()
	for _, id := range ids {
		batch.Delete(id)
	}
	return x.index.Batch(batch)
}

// DocCount returns the number of indexed records.
func (x *Index) DocCount() (uint64, error) {
	return x.index.DocCount()
}

// Close closes the underlying Bleve index.
func (x *Index) Close() error {
	return x.index.Close()
}
