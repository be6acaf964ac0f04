// Package segmenter splits a decoded audio timeline into contiguous,
// non-overlapping chunks and persists each chunk's audio to blob storage.
package segmenter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gamedevCloudy/youtube-automation/internal/blob"
	"github.com/gamedevCloudy/youtube-automation/internal/models"
)

// Window is one planned time slice of the audio timeline.
type Window struct {
	Ordinal int
	Start   float64
	End     float64
}

// Plan partitions [0, total) into consecutive windows of length target, the
// final window truncated to total. The result covers the timeline exactly:
// no gap, no overlap, ordinals from 0. total == 0 yields no windows;
// target >= total yields exactly one.
func Plan(total, target float64) []Window {
	if total <= 0 || target <= 0 {
		return nil
	}
	var windows []Window
	ordinal := 0
	for start := 0.0; start < total; start += target {
		end := start + target
		if end > total {
			end = total
		}
		windows = append(windows, Window{Ordinal: ordinal, Start: start, End: end})
		ordinal++
	}
	return windows
}

// Cutter extracts a [start, start+duration) slice of an audio file.
// *media.FFmpeg satisfies this.
type Cutter interface {
	Cut(ctx context.Context, src string, start, duration float64, dst string) error
}

// Failure records one window that was dropped from the result.
type Failure struct {
	Window Window
	Err    error
}

// Result carries the ordered chunks plus any dropped windows. Failed windows
// are not retried; the caller decides whether to reprocess the video.
type Result struct {
	Chunks   []models.Chunk
	Failures []Failure
}

// Segmenter cuts planned windows from an audio file and uploads each to blob
// storage under {collection_id}/{video_id}/{chunk_id}.
type Segmenter struct {
	store   blob.Store
	cutter  Cutter
	workDir string
	workers int
	logger  *zap.Logger
}

// NewSegmenter creates a segmenter. workers bounds concurrent cut+upload work;
// values < 1 mean serial.
func NewSegmenter(store blob.Store, cutter Cutter, workDir string, workers int, logger *zap.Logger) *Segmenter {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Segmenter{store: store, cutter: cutter, workDir: workDir, workers: workers, logger: logger}
}

// Segment cuts audioPath into windows of target seconds, uploads each slice,
// and returns the surviving chunks in ordinal order. Upload or cut failures
// drop that chunk only (partial success); the error return is reserved for
// setup problems that prevent any segmentation at all.
func (s *Segmenter) Segment(ctx context.Context, collectionID, videoID, audioPath string, total, target float64) (*Result, error) {
	if target <= 0 {
		return nil, fmt.Errorf("%w: target duration must be positive, got %v", models.ErrInvalidArgument, target)
	}
	windows := Plan(total, target)
	result := &Result{}
	if len(windows) == 0 {
		return result, nil
	}

	dir := s.workDir
	if dir == "" {
		dir = os.TempDir()
	}
	tmpDir, err := os.MkdirTemp(dir, "segments-")
	if err != nil {
		return nil, fmt.Errorf("create segment dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, w := range windows {
		w := w
		g.Go(func() error {
			chunk, err := s.segmentOne(gctx, collectionID, videoID, audioPath, tmpDir, w)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.logger.Warn("chunk dropped",
					zap.String("video_id", videoID),
					zap.Int("ordinal", w.Ordinal),
					zap.Error(err),
				)
				result.Failures = append(result.Failures, Failure{Window: w, Err: err})
				return nil
			}
			result.Chunks = append(result.Chunks, *chunk)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(result.Chunks, func(i, j int) bool {
		return result.Chunks[i].Ordinal < result.Chunks[j].Ordinal
	})
	sort.Slice(result.Failures, func(i, j int) bool {
		return result.Failures[i].Window.Ordinal < result.Failures[j].Window.Ordinal
	})
	return result, nil
}

func (s *Segmenter) segmentOne(ctx context.Context, collectionID, videoID, audioPath, tmpDir string, w Window) (*models.Chunk, error) {
	chunkID := uuid.New().String()
	slicePath := filepath.Join(tmpDir, chunkID+".mp3")
	if err := s.cutter.Cut(ctx, audioPath, w.Start, w.End-w.Start, slicePath); err != nil {
		return nil, fmt.Errorf("cut window %d: %w", w.Ordinal, err)
	}
	f, err := os.Open(slicePath)
	if err != nil {
		return nil, fmt.Errorf("open slice: %w", err)
	}
	defer f.Close()
	defer os.Remove(slicePath)

	key := fmt.Sprintf("%s/%s/%s.mp3", collectionID, videoID, chunkID)
	uri, err := s.store.Put(ctx, key, f)
	if err != nil {
		return nil, &models.UploadError{ChunkID: chunkID, Key: key, Err: err}
	}
	return &models.Chunk{
		ChunkID:   chunkID,
		VideoID:   videoID,
		Ordinal:   w.Ordinal,
		StartTime: w.Start,
		EndTime:   w.End,
		BlobURI:   uri,
	}, nil
}
