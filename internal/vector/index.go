// Package vector provides an in-memory, collection-partitioned vector index
// with brute-force inner product search and binary persistence.
package vector

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/gamedevCloudy/youtube-automation/internal/models"
)

// Result is a single search hit: the stored record plus its similarity score.
type Result struct {
	Record *models.EmbeddingRecord
	Score  float64
}

// Index stores embedding records partitioned by collection. Records carry
// their own metadata (text, video, time range) so search results are complete
// without a side lookup. Brute force is fine at this scale; a video yields on
// the order of hundreds of records, not millions.
type Index struct {
	dimensions  int
	collections map[string]map[string]*models.EmbeddingRecord
	mu          sync.RWMutex
}

// NewIndex creates an empty index for vectors of the given dimension.
func NewIndex(dimensions int) (*Index, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("dimensions must be positive")
	}
	return &Index{
		dimensions:  dimensions,
		collections: make(map[string]map[string]*models.EmbeddingRecord),
	}, nil
}

// Upsert inserts records, replacing any existing record with the same record
// ID in the same collection. Collections are created on first write.
func (x *Index) Upsert(records []*models.EmbeddingRecord) error {
	for _, r := range records {
		if len(r.Vector) != x.dimensions {
			return fmt.Errorf("record %s: vector dimension %d, index expects %d",
				r.RecordID, len(r.Vector), x.dimensions)
		}
		if r.CollectionID == "" || r.RecordID == "" {
			return fmt.Errorf("record missing collection or record id")
		}
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	for _, r := range records {
		coll := x.collections[r.CollectionID]
		if coll == nil {
			coll = make(map[string]*models.EmbeddingRecord)
			x.collections[r.CollectionID] = coll
		}
		coll[r.RecordID] = r
	}
	return nil
}

// Search returns the top k records across the named collections, ranked by
// inner product with query. Collections with no stored records simply
// contribute nothing; they are not an error.
func (x *Index) Search(ctx context.Context, query []float32, k int, collections []string) ([]*Result, error) {
	if len(query) != x.dimensions {
		return nil, fmt.Errorf("query dimension %d, index expects %d", len(query), x.dimensions)
	}
	if k <= 0 {
		return nil, nil
	}
	x.mu.RLock()
	defer x.mu.RUnlock()

	var results []*Result
	for _, id := range collections {
		coll := x.collections[id]
		for _, r := range coll {
			results = append(results, &Result{Record: r, Score: innerProduct(query, r.Vector)})
		}
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Record.RecordID < results[j].Record.RecordID
	})
	if k > len(results) {
		k = len(results)
	}
	return results[:k:k], nil
}

// DeleteChunk removes every record derived from the chunk. Splitting produces
// several records per chunk; re-ingesting a chunk deletes them all first so a
// shorter transcript cannot leave stale fragments behind.
func (x *Index) DeleteChunk(collectionID, chunkID string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	coll := x.collections[collectionID]
	for id, r := range coll {
		if r.ChunkID == chunkID {
			delete(coll, id)
		}
	}
}

// DeleteCollection drops a collection and its records. Deleting a collection
// that does not exist is a no-op.
func (x *Index) DeleteCollection(collectionID string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	delete(x.collections, collectionID)
}

// Collections returns the collection IDs present in the index, sorted.
func (x *Index) Collections() []string {
	x.mu.RLock()
	defer x.mu.RUnlock()
	ids := make([]string, 0, len(x.collections))
	for id := range x.collections {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of records stored for a collection.
func (x *Index) Count(collectionID string) int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.collections[collectionID])
}

// Size returns the total number of records across all collections.
func (x *Index) Size() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	n := 0
	for _, coll := range x.collections {
		n += len(coll)
	}
	return n
}
