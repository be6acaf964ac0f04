package transcribe

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/gamedevCloudy/youtube-automation/internal/models"
)

// Outcome is the per-chunk result of a batch transcription: exactly one of
// Transcript or Err is set. Warning carries non-fatal continuity drift.
type Outcome struct {
	Transcript *models.Transcript
	Err        error
	Warning    string
}

// Orchestrator runs per-chunk transcription. Chunks are independent: no
// chunk's failure blocks another's, and a timed-out chunk is treated the same
// as a failed one. There are no automatic retries.
type Orchestrator struct {
	engine  Engine
	workers int64
	timeout time.Duration
	logger  *zap.Logger
}

// NewOrchestrator creates an orchestrator. workers bounds concurrent engine
// calls; timeout is the independent per-chunk deadline (0 = none).
func NewOrchestrator(engine Engine, workers int, timeout time.Duration, logger *zap.Logger) *Orchestrator {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{engine: engine, workers: int64(workers), timeout: timeout, logger: logger}
}

// TranscribeChunk transcribes one chunk and validates the engine's reply.
// The returned warning is non-fatal duration drift; an error means the chunk
// is a coverage gap.
func (o *Orchestrator) TranscribeChunk(ctx context.Context, chunk models.Chunk) (*models.Transcript, string, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}
	tc := TimeContext{Start: chunk.StartTime, End: chunk.EndTime}
	t, err := o.engine.Transcribe(ctx, chunk.BlobURI, tc)
	if err != nil {
		return nil, "", &models.TranscriptionError{ChunkID: chunk.ChunkID, Err: err}
	}
	warning, err := validateReply(t, chunk)
	if err != nil {
		return nil, "", &models.TranscriptionError{ChunkID: chunk.ChunkID, Err: err}
	}
	return t, warning, nil
}

// TranscribeAll transcribes chunks on a bounded worker pool and returns a
// per-chunk outcome map keyed by chunk ID. The map preserves no order;
// callers re-sort by ordinal before assembly.
//
// Cancelling ctx stops dispatching new chunks; calls already in flight run to
// completion and their results are discarded, since the engines behind the
// interface are opaque and not safely preemptible. On cancellation the
// returned map is nil and the context error is returned.
func (o *Orchestrator) TranscribeAll(ctx context.Context, chunks []models.Chunk) (map[string]Outcome, error) {
	outcomes := make(map[string]Outcome, len(chunks))
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := semaphore.NewWeighted(o.workers)

	for _, chunk := range chunks {
		if err := sem.Acquire(ctx, 1); err != nil {
			break // ctx cancelled: stop dispatching
		}
		chunk := chunk
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)
			// Each call gets its own deadline derived from Background so a
			// batch cancellation does not interrupt a dispatched call mid-flight.
			callCtx := context.WithoutCancel(ctx)
			t, warning, err := o.TranscribeChunk(callCtx, chunk)
			if warning != "" {
				o.logger.Warn("transcript duration drift",
					zap.String("chunk_id", chunk.ChunkID),
					zap.String("warning", warning),
				)
			}
			if err != nil {
				o.logger.Warn("chunk transcription failed",
					zap.String("chunk_id", chunk.ChunkID),
					zap.Int("ordinal", chunk.Ordinal),
					zap.Error(err),
				)
			}
			mu.Lock()
			outcomes[chunk.ChunkID] = Outcome{Transcript: t, Err: err, Warning: warning}
			mu.Unlock()
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// Transcripts extracts the successful transcripts from an outcome map.
func Transcripts(outcomes map[string]Outcome) map[string]*models.Transcript {
	out := make(map[string]*models.Transcript)
	for id, o := range outcomes {
		if o.Err == nil && o.Transcript != nil {
			out[id] = o.Transcript
		}
	}
	return out
}
