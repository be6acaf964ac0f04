package blob

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GCSStore stores blobs as objects in a Google Cloud Storage bucket. URIs are
// gs://bucket/key.
type GCSStore struct {
	client *storage.Client
	bucket string
}

// NewGCSStore creates a GCS-backed store for the given bucket. Credentials
// come from the environment (application default credentials).
func NewGCSStore(ctx context.Context, bucket string, opts ...option.ClientOption) (*GCSStore, error) {
	if bucket == "" {
		return nil, fmt.Errorf("gcs bucket name is empty")
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket}, nil
}

func (g *GCSStore) uriFor(key string) string {
	return fmt.Sprintf("gs://%s/%s", g.bucket, key)
}

// parseURI splits gs://bucket/key and checks the bucket matches.
func (g *GCSStore) parseURI(uri string) (string, error) {
	rest, ok := strings.CutPrefix(uri, "gs://")
	if !ok {
		return "", fmt.Errorf("not a gs:// uri: %s", uri)
	}
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || key == "" {
		return "", fmt.Errorf("malformed gs uri: %s", uri)
	}
	if bucket != g.bucket {
		return "", fmt.Errorf("uri bucket %s does not match store bucket %s", bucket, g.bucket)
	}
	return key, nil
}

// Put uploads the reader's bytes to the bucket under key.
func (g *GCSStore) Put(ctx context.Context, key string, r io.Reader) (string, error) {
	w := g.client.Bucket(g.bucket).Object(key).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write gcs object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close gcs writer %s: %w", key, err)
	}
	return g.uriFor(key), nil
}

// Get opens the object at uri for reading.
func (g *GCSStore) Get(ctx context.Context, uri string) (io.ReadCloser, error) {
	key, err := g.parseURI(uri)
	if err != nil {
		return nil, err
	}
	rc, err := g.client.Bucket(g.bucket).Object(key).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("open gcs object %s: %w", uri, err)
	}
	return rc, nil
}

// List returns the URIs of all objects under prefix, sorted.
func (g *GCSStore) List(ctx context.Context, prefix string) ([]string, error) {
	var uris []string
	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list gcs objects %s: %w", prefix, err)
		}
		uris = append(uris, g.uriFor(attrs.Name))
	}
	sort.Strings(uris)
	return uris, nil
}

// DeletePrefix removes all objects under prefix. Absent objects are skipped.
func (g *GCSStore) DeletePrefix(ctx context.Context, prefix string) error {
	if prefix == "" {
		return fmt.Errorf("refusing to delete empty prefix")
	}
	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return fmt.Errorf("list gcs objects %s: %w", prefix, err)
		}
		if err := g.client.Bucket(g.bucket).Object(attrs.Name).Delete(ctx); err != nil && err != storage.ErrObjectNotExist {
			return fmt.Errorf("delete gcs object %s: %w", attrs.Name, err)
		}
	}
}

// Close releases the underlying client.
func (g *GCSStore) Close() error {
	return g.client.Close()
}
