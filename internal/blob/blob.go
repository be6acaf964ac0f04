// Package blob provides durable object storage for chunk audio, addressed by URI.
package blob

import (
	"context"
	"io"
)

// Store is a durable object store. Put returns a URI that Get accepts; List
// returns the URIs under a key prefix.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader) (string, error)
	Get(ctx context.Context, uri string) (io.ReadCloser, error)
	List(ctx context.Context, prefix string) ([]string, error)
	DeletePrefix(ctx context.Context, prefix string) error
}
