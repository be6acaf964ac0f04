package models

import "fmt"

// DefaultTopK is used when a query does not specify top_k.
const DefaultTopK = 5

// MaxTopK caps top_k regardless of what the request asks for.
const MaxTopK = 100

// QueryRequest is a similarity query scoped to an explicit set of collections.
type QueryRequest struct {
	CollectionIDs []string `json:"collection_ids"`
	Query         string   `json:"query"`
	TopK          int      `json:"top_k"`
	// Keyword enables hybrid ranking: bleve keyword scores are fused with the
	// semantic scores instead of ranking by similarity alone.
	Keyword bool `json:"keyword,omitempty"`
}

// Validate rejects malformed query shapes before any external call is made.
// top_k is capped at MaxTopK; callers that want the default must resolve it
// before constructing the request (see server request decoding).
func (q *QueryRequest) Validate() error {
	if q.Query == "" {
		return fmt.Errorf("%w: query text is empty", ErrInvalidArgument)
	}
	if len(q.CollectionIDs) == 0 {
		return fmt.Errorf("%w: collection set is empty", ErrInvalidArgument)
	}
	for _, id := range q.CollectionIDs {
		if id == "" {
			return fmt.Errorf("%w: collection id is empty", ErrInvalidArgument)
		}
	}
	if q.TopK <= 0 {
		return fmt.Errorf("%w: top_k must be positive, got %d", ErrInvalidArgument, q.TopK)
	}
	if q.TopK > MaxTopK {
		q.TopK = MaxTopK
	}
	return nil
}
