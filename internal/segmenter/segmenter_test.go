package segmenter

import (
	"context"
	"errors"
	"math"
	"os"
	"testing"

	"github.com/gamedevCloudy/youtube-automation/internal/blob"
)

func TestPlan_ExactPartition(t *testing.T) {
	windows := Plan(1500, 600)
	if len(windows) != 3 {
		t.Fatalf("expected 3 windows, got %d", len(windows))
	}
	want := []struct{ start, end float64 }{{0, 600}, {600, 1200}, {1200, 1500}}
	for i, w := range windows {
		if w.Ordinal != i {
			t.Errorf("window %d ordinal=%d", i, w.Ordinal)
		}
		if w.Start != want[i].start || w.End != want[i].end {
			t.Errorf("window %d = [%v, %v), want [%v, %v)", i, w.Start, w.End, want[i].start, want[i].end)
		}
	}
}

func TestPlan_Continuity(t *testing.T) {
	for _, tc := range []struct{ total, target float64 }{
		{1500, 600}, {600, 600}, {601, 600}, {59.5, 10}, {3600, 7},
	} {
		windows := Plan(tc.total, tc.target)
		var sum float64
		for i, w := range windows {
			if w.End <= w.Start {
				t.Errorf("T=%v d=%v: window %d empty", tc.total, tc.target, i)
			}
			if w.End-w.Start > tc.target+1e-9 {
				t.Errorf("T=%v d=%v: window %d longer than target", tc.total, tc.target, i)
			}
			if i > 0 && windows[i-1].End != w.Start {
				t.Errorf("T=%v d=%v: gap between window %d and %d", tc.total, tc.target, i-1, i)
			}
			sum += w.End - w.Start
		}
		if len(windows) > 0 {
			if windows[0].Start != 0 {
				t.Errorf("T=%v d=%v: first window starts at %v", tc.total, tc.target, windows[0].Start)
			}
			if windows[len(windows)-1].End != tc.total {
				t.Errorf("T=%v d=%v: last window ends at %v", tc.total, tc.target, windows[len(windows)-1].End)
			}
		}
		if math.Abs(sum-tc.total) > 1e-9 {
			t.Errorf("T=%v d=%v: durations sum to %v", tc.total, tc.target, sum)
		}
	}
}

func TestPlan_Degenerate(t *testing.T) {
	if windows := Plan(0, 600); windows != nil {
		t.Errorf("T=0 should yield no windows, got %v", windows)
	}
	windows := Plan(300, 600)
	if len(windows) != 1 {
		t.Fatalf("target >= T should yield one window, got %d", len(windows))
	}
	if windows[0].Start != 0 || windows[0].End != 300 {
		t.Errorf("window = [%v, %v)", windows[0].Start, windows[0].End)
	}
}

// fakeCutter writes an empty file at dst so the upload path has something to read.
type fakeCutter struct {
	failOrdinalStart float64 // window start whose cut fails; -1 for none
}

func (f *fakeCutter) Cut(ctx context.Context, src string, start, duration float64, dst string) error {
	if start == f.failOrdinalStart {
		return errors.New("injected cut failure")
	}
	return os.WriteFile(dst, []byte("slice"), 0644)
}

func TestSegment_AllChunksUploaded(t *testing.T) {
	store := blob.NewMemoryStore()
	seg := NewSegmenter(store, &fakeCutter{failOrdinalStart: -1}, t.TempDir(), 3, nil)

	result, err := seg.Segment(context.Background(), "demo", "vid1", "audio.mp3", 1500, 600)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(result.Chunks))
	}
	if len(result.Failures) != 0 {
		t.Errorf("unexpected failures: %v", result.Failures)
	}
	for i, c := range result.Chunks {
		if c.Ordinal != i {
			t.Errorf("chunk %d ordinal=%d (result must be ordinal-ordered)", i, c.Ordinal)
		}
		if c.ChunkID == "" || c.BlobURI == "" {
			t.Errorf("chunk %d missing id or uri", i)
		}
		if i > 0 && result.Chunks[i-1].EndTime != c.StartTime {
			t.Errorf("boundary mismatch between chunk %d and %d", i-1, i)
		}
	}
	if store.Len() != 3 {
		t.Errorf("expected 3 blobs, got %d", store.Len())
	}
}

func TestSegment_UploadFailureDropsChunkOnly(t *testing.T) {
	store := blob.NewMemoryStore()
	store.FailKeys = []string{"demo/vid1/"} // all uploads fail
	seg := NewSegmenter(store, &fakeCutter{failOrdinalStart: -1}, t.TempDir(), 2, nil)

	result, err := seg.Segment(context.Background(), "demo", "vid1", "audio.mp3", 1200, 600)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Chunks) != 0 {
		t.Errorf("expected 0 chunks, got %d", len(result.Chunks))
	}
	if len(result.Failures) != 2 {
		t.Errorf("expected 2 failures, got %d", len(result.Failures))
	}
}

func TestSegment_CutFailurePartialSuccess(t *testing.T) {
	store := blob.NewMemoryStore()
	seg := NewSegmenter(store, &fakeCutter{failOrdinalStart: 600}, t.TempDir(), 2, nil)

	result, err := seg.Segment(context.Background(), "demo", "vid1", "audio.mp3", 1500, 600)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Chunks) != 2 {
		t.Fatalf("expected 2 surviving chunks, got %d", len(result.Chunks))
	}
	if len(result.Failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(result.Failures))
	}
	if result.Failures[0].Window.Ordinal != 1 {
		t.Errorf("failed window ordinal=%d", result.Failures[0].Window.Ordinal)
	}
}

func TestSegment_InvalidTarget(t *testing.T) {
	seg := NewSegmenter(blob.NewMemoryStore(), &fakeCutter{failOrdinalStart: -1}, t.TempDir(), 1, nil)
	if _, err := seg.Segment(context.Background(), "demo", "vid1", "audio.mp3", 100, 0); err == nil {
		t.Error("expected error for zero target duration")
	}
}

func TestSegment_EmptyTimeline(t *testing.T) {
	seg := NewSegmenter(blob.NewMemoryStore(), &fakeCutter{failOrdinalStart: -1}, t.TempDir(), 1, nil)
	result, err := seg.Segment(context.Background(), "demo", "vid1", "audio.mp3", 0, 600)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Chunks) != 0 || len(result.Failures) != 0 {
		t.Errorf("empty timeline should yield empty result, got %+v", result)
	}
}
