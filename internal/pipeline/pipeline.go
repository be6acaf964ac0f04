// Package pipeline drives a source from acquisition through segmentation,
// transcription, assembly and indexing.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gamedevCloudy/youtube-automation/internal/assembler"
	"github.com/gamedevCloudy/youtube-automation/internal/indexer"
	"github.com/gamedevCloudy/youtube-automation/internal/media"
	"github.com/gamedevCloudy/youtube-automation/internal/models"
	"github.com/gamedevCloudy/youtube-automation/internal/segmenter"
	"github.com/gamedevCloudy/youtube-automation/internal/storage"
	"github.com/gamedevCloudy/youtube-automation/internal/transcribe"
)

// IngestRequest names one source to process. Exactly one of URL or FilePath
// must be set. TargetSeconds of 0 uses the configured default.
type IngestRequest struct {
	CollectionID  string  `json:"collection_id"`
	URL           string  `json:"url,omitempty"`
	FilePath      string  `json:"file_path,omitempty"`
	TargetSeconds float64 `json:"target_seconds,omitempty"`
}

// ChunkReport describes one chunk's fate in an ingest.
type ChunkReport struct {
	ChunkID       string  `json:"chunk_id"`
	StartTime     float64 `json:"start_time"`
	EndTime       float64 `json:"end_time"`
	HasTranscript bool    `json:"has_transcript"`
	Warning       string  `json:"warning,omitempty"`
}

// IngestResult summarizes an ingest: what was chunked, what transcribed, what
// ranges of the timeline have no coverage, and how many records were indexed.
type IngestResult struct {
	VideoID      string          `json:"video_id"`
	CollectionID string          `json:"collection_id"`
	Duration     float64         `json:"duration"`
	Chunks       []ChunkReport   `json:"chunks"`
	Gaps         []assembler.Gap `json:"gaps,omitempty"`
	Records      int             `json:"records"`
	Transcript   string          `json:"-"`
}

// MediaTools probes and converts local media files. *media.FFmpeg satisfies
// this.
type MediaTools interface {
	Duration(ctx context.Context, path string) (float64, error)
	ExtractAudio(ctx context.Context, mediaPath, dir string) (string, error)
}

// Pipeline wires the ingest stages together. Each stage's partial-success
// semantics are preserved: a failed chunk becomes a gap, never an aborted
// ingest.
type Pipeline struct {
	fetcher media.Fetcher
	ffmpeg  MediaTools
	seg     *segmenter.Segmenter
	orch    *transcribe.Orchestrator
	store   storage.Storage
	indexer *indexer.Indexer
	workDir string
	target  float64
	logger  *zap.Logger
}

// New creates a pipeline. target is the default chunk length in seconds.
func New(
	fetcher media.Fetcher,
	ffmpeg MediaTools,
	seg *segmenter.Segmenter,
	orch *transcribe.Orchestrator,
	store storage.Storage,
	idx *indexer.Indexer,
	workDir string,
	target float64,
	logger *zap.Logger,
) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		fetcher: fetcher,
		ffmpeg:  ffmpeg,
		seg:     seg,
		orch:    orch,
		store:   store,
		indexer: idx,
		workDir: workDir,
		target:  target,
		logger:  logger,
	}
}

// Ingest runs one source through the full pipeline and reports what survived.
// Acquisition and probing failures abort the ingest; from segmentation onward
// failures degrade to gaps in the result.
func (p *Pipeline) Ingest(ctx context.Context, req *IngestRequest) (*IngestResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	src, cleanup, err := p.acquire(ctx, req)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	duration, err := p.ffmpeg.Duration(ctx, src.AudioPath)
	if err != nil {
		return nil, fmt.Errorf("probe duration: %w", err)
	}

	err = p.store.CreateVideo(ctx, &models.Video{
		VideoID:      src.VideoID,
		CollectionID: req.CollectionID,
		SourceURI:    src.SourceURI,
	})
	if err != nil {
		return nil, fmt.Errorf("record video: %w", err)
	}

	target := req.TargetSeconds
	if target <= 0 {
		target = p.target
	}
	segRes, err := p.seg.Segment(ctx, req.CollectionID, src.VideoID, src.AudioPath, duration, target)
	if err != nil {
		return nil, err
	}
	p.logger.Info("segmented source",
		zap.String("video_id", src.VideoID),
		zap.Float64("duration", duration),
		zap.Int("chunks", len(segRes.Chunks)),
		zap.Int("dropped", len(segRes.Failures)),
	)

	chunkPtrs := make([]*models.Chunk, len(segRes.Chunks))
	for i := range segRes.Chunks {
		chunkPtrs[i] = &segRes.Chunks[i]
	}
	if err := p.store.CreateChunks(ctx, chunkPtrs); err != nil {
		return nil, fmt.Errorf("record chunks: %w", err)
	}

	outcomes, err := p.orch.TranscribeAll(ctx, segRes.Chunks)
	if err != nil {
		return nil, err
	}
	transcripts := transcribe.Transcripts(outcomes)
	for chunkID, t := range transcripts {
		if err := p.store.SaveTranscript(ctx, chunkID, t); err != nil {
			return nil, fmt.Errorf("save transcript: %w", err)
		}
	}

	assembly := assembler.Assemble(src.VideoID, segRes.Chunks, transcripts)
	for _, w := range assembly.Warnings {
		p.logger.Warn("boundary drift", zap.String("video_id", src.VideoID), zap.String("detail", w))
	}

	records := 0
	if units := assembly.Units(); len(units) > 0 {
		records, err = p.indexer.Upsert(ctx, req.CollectionID, units)
		if err != nil {
			return nil, fmt.Errorf("index transcripts: %w", err)
		}
	}

	result := &IngestResult{
		VideoID:      src.VideoID,
		CollectionID: req.CollectionID,
		Duration:     duration,
		Gaps:         mergeGaps(assembly.Gaps, segRes.Failures),
		Records:      records,
		Transcript:   assembly.Text(),
	}
	for _, c := range segRes.Chunks {
		result.Chunks = append(result.Chunks, ChunkReport{
			ChunkID:       c.ChunkID,
			StartTime:     c.StartTime,
			EndTime:       c.EndTime,
			HasTranscript: transcripts[c.ChunkID] != nil,
			Warning:       outcomes[c.ChunkID].Warning,
		})
	}
	p.logger.Info("ingest complete",
		zap.String("video_id", src.VideoID),
		zap.String("collection_id", req.CollectionID),
		zap.Int("records", records),
		zap.Int("gaps", len(result.Gaps)),
	)
	return result, nil
}

func validateRequest(req *IngestRequest) error {
	if req.CollectionID == "" {
		return fmt.Errorf("%w: collection id is required", models.ErrInvalidArgument)
	}
	if (req.URL == "") == (req.FilePath == "") {
		return fmt.Errorf("%w: exactly one of url or file_path is required", models.ErrInvalidArgument)
	}
	return nil
}

// acquire resolves the request to a local audio file. Downloaded and
// extracted intermediates are cleaned up by the returned func; caller-owned
// local files are left alone.
func (p *Pipeline) acquire(ctx context.Context, req *IngestRequest) (*media.Source, func(), error) {
	if req.URL != "" {
		src, err := p.fetcher.Fetch(ctx, req.URL)
		if err != nil {
			return nil, nil, err
		}
		return src, func() { os.Remove(src.AudioPath) }, nil
	}

	if _, err := os.Stat(req.FilePath); err != nil {
		return nil, nil, &models.AcquisitionError{Source: req.FilePath, Err: err}
	}
	videoID := strings.TrimSuffix(filepath.Base(req.FilePath), filepath.Ext(req.FilePath))
	if videoID == "" {
		videoID = uuid.New().String()
	}
	src := &media.Source{VideoID: videoID, SourceURI: "file://" + req.FilePath, AudioPath: req.FilePath}
	if !isAudioFile(req.FilePath) {
		audioPath, err := p.ffmpeg.ExtractAudio(ctx, req.FilePath, p.workDir)
		if err != nil {
			return nil, nil, &models.AcquisitionError{Source: req.FilePath, Err: err}
		}
		src.AudioPath = audioPath
		return src, func() { os.Remove(audioPath) }, nil
	}
	return src, func() {}, nil
}

func isAudioFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3", ".m4a", ".wav", ".flac", ".ogg", ".opus", ".aac":
		return true
	}
	return false
}

// mergeGaps combines assembly gaps with segmentation failures. A window that
// failed to segment shows up in both lists; the segmentation reason wins
// because it names the cause rather than the symptom.
func mergeGaps(gaps []assembler.Gap, failures []segmenter.Failure) []assembler.Gap {
	byRange := make(map[[2]float64]assembler.Gap, len(gaps)+len(failures))
	for _, g := range gaps {
		byRange[[2]float64{g.Start, g.End}] = g
	}
	for _, f := range failures {
		byRange[[2]float64{f.Window.Start, f.Window.End}] = assembler.Gap{
			Start:  f.Window.Start,
			End:    f.Window.End,
			Reason: fmt.Sprintf("segmentation failed: %v", f.Err),
		}
	}
	if len(byRange) == 0 {
		return nil
	}
	out := make([]assembler.Gap, 0, len(byRange))
	for _, g := range byRange {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}
