// Package embedding turns transcript text into fixed-dimension vectors.
package embedding

import (
	"context"
	"os"

	"github.com/gamedevCloudy/youtube-automation/internal/config"
)

// Embedder produces vector embeddings for text. Implementations must be safe
// for concurrent use.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Close() error
}

// New builds the embedder described by cfg: an ONNX session when the model
// file is present, otherwise the deterministic hash embedder.
func New(cfg config.EmbeddingConfig) (Embedder, error) {
	if cfg.ModelPath == "" {
		return NewHashEmbedder(cfg.Dimensions), nil
	}
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return NewHashEmbedder(cfg.Dimensions), nil
	}
	return NewONNXEmbedder(cfg.ModelPath, cfg.Dimensions, cfg.MaxTokens, cfg.CacheSize)
}
