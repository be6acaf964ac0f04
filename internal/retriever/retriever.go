// Package retriever answers similarity queries over indexed transcript
// records, optionally fused with keyword matches.
package retriever

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/gamedevCloudy/youtube-automation/internal/embedding"
	"github.com/gamedevCloudy/youtube-automation/internal/keyword"
	"github.com/gamedevCloudy/youtube-automation/internal/models"
	"github.com/gamedevCloudy/youtube-automation/internal/vector"
)

// Retriever embeds a query once and ranks stored records against it.
type Retriever struct {
	embedder      embedding.Embedder
	vectors       *vector.Index
	keywords      *keyword.Index
	keywordWeight float64
	logger        *zap.Logger
}

// New creates a retriever. keywords may be nil; keyword-fused queries then
// fall back to pure vector ranking.
func New(embedder embedding.Embedder, vectors *vector.Index, keywords *keyword.Index, keywordWeight float64, logger *zap.Logger) *Retriever {
	if logger == nil {
		logger = zap.NewNop()
	}
	if keywordWeight < 0 || keywordWeight >= 1 {
		keywordWeight = 0.3
	}
	return &Retriever{
		embedder:      embedder,
		vectors:       vectors,
		keywords:      keywords,
		keywordWeight: keywordWeight,
		logger:        logger,
	}
}

// Query validates req and returns up to TopK results ranked by similarity
// across the requested collections. Collections with nothing indexed simply
// contribute no results. Backend failures surface as ErrIndexUnavailable.
func (r *Retriever) Query(ctx context.Context, req *models.QueryRequest) ([]*models.SearchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	queryVec, err := r.embedder.Embed(ctx, req.Query)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %v", models.ErrIndexUnavailable, err)
	}

	// Overfetch when fusing so keyword evidence can promote hits from
	// beyond the strict vector top-k.
	fetchK := req.TopK
	fuse := req.Keyword && r.keywords != nil
	if fuse {
		fetchK = req.TopK * 4
		if fetchK < 20 {
			fetchK = 20
		}
	}

	hits, err := r.vectors.Search(ctx, queryVec, fetchK, req.CollectionIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: vector search: %v", models.ErrIndexUnavailable, err)
	}

	var keywordScores map[string]float64
	if fuse {
		kwHits, err := r.keywords.Search(ctx, req.Query, fetchK, req.CollectionIDs)
		if err != nil {
			return nil, fmt.Errorf("%w: keyword search: %v", models.ErrIndexUnavailable, err)
		}
		keywordScores = normalizeKeywordScores(kwHits)
	}

	results := make([]*models.SearchResult, 0, len(hits))
	for _, hit := range hits {
		res := &models.SearchResult{
			Text:         hit.Record.Text,
			VideoID:      hit.Record.VideoID,
			CollectionID: hit.Record.CollectionID,
			StartTime:    hit.Record.StartTime,
			EndTime:      hit.Record.EndTime,
			Score:        hit.Score,
		}
		if fuse {
			kw := keywordScores[hit.Record.RecordID]
			res.KeywordScore = kw
			res.Score = (1-r.keywordWeight)*hit.Score + r.keywordWeight*kw
		}
		results = append(results, res)
	}
	if fuse {
		sortByScore(results)
	}
	if len(results) > req.TopK {
		results = results[:req.TopK]
	}

	r.logger.Debug("query answered",
		zap.String("query", req.Query),
		zap.Strings("collections", req.CollectionIDs),
		zap.Int("results", len(results)),
	)
	return results, nil
}

// normalizeKeywordScores scales Bleve's unbounded scores to [0, 1] by the max
// so they can be mixed with similarity scores.
func normalizeKeywordScores(hits []*keyword.Result) map[string]float64 {
	out := make(map[string]float64, len(hits))
	if len(hits) == 0 {
		return out
	}
	max := hits[0].Score
	for _, h := range hits {
		if h.Score > max {
			max = h.Score
		}
	}
	for _, h := range hits {
		if max > 0 {
			out[h.ID] = h.Score / max
		}
	}
	return out
}

func sortByScore(results []*models.SearchResult) {
	sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })
}
