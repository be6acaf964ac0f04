// Package assembler stitches per-chunk transcripts back into a single
// chronological transcript and reports the stretches that have no coverage.
package assembler

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/gamedevCloudy/youtube-automation/internal/models"
	"github.com/gamedevCloudy/youtube-automation/internal/transcribe"
	"github.com/gamedevCloudy/youtube-automation/pkg/utils"
)

// Entry pairs a chunk with its transcript. Transcript is nil when the chunk's
// transcription failed; the chunk still appears so the timeline stays whole.
type Entry struct {
	Chunk      models.Chunk
	Transcript *models.Transcript
}

// Gap is a time range of the source with no usable transcript.
type Gap struct {
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
	Reason string  `json:"reason"`
}

// Assembly is the chronological reconstruction of one video's transcript.
// Warnings carry boundary drift small enough to tolerate.
type Assembly struct {
	VideoID  string
	Entries  []Entry
	Gaps     []Gap
	Warnings []string
}

// Assemble orders chunks chronologically and pairs each with its transcript.
// Chunks without a transcript become gaps, as does any discontinuity between
// consecutive chunk boundaries. Assembly never fails outright: a video where
// every chunk failed still yields an Assembly, with the whole span as gaps.
func Assemble(videoID string, chunks []models.Chunk, transcripts map[string]*models.Transcript) *Assembly {
	ordered := make([]models.Chunk, len(chunks))
	copy(ordered, chunks)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Ordinal < ordered[j].Ordinal })

	a := &Assembly{VideoID: videoID}
	var prevEnd float64
	for i, chunk := range ordered {
		// Boundary drift within the tolerance band is a warning; beyond it
		// the stretch between chunks is reported as uncovered.
		if drift := math.Abs(chunk.StartTime - prevEnd); i > 0 && drift > 0 {
			if drift > transcribe.DurationTolerance {
				a.Gaps = append(a.Gaps, Gap{
					Start:  prevEnd,
					End:    chunk.StartTime,
					Reason: "missing segment between chunks",
				})
			} else {
				a.Warnings = append(a.Warnings, fmt.Sprintf(
					"chunk %s starts %.3fs off the previous chunk's end", chunk.ChunkID, drift))
			}
		}
		prevEnd = chunk.EndTime

		t := transcripts[chunk.ChunkID]
		if t == nil {
			a.Gaps = append(a.Gaps, Gap{
				Start:  chunk.StartTime,
				End:    chunk.EndTime,
				Reason: fmt.Sprintf("chunk %s has no transcript", chunk.ChunkID),
			})
		}
		a.Entries = append(a.Entries, Entry{Chunk: chunk, Transcript: t})
	}
	return a
}

// Complete reports whether the assembly covers the whole timeline.
func (a *Assembly) Complete() bool {
	return len(a.Gaps) == 0
}

// Text concatenates the transcribed chunks in order. Failed chunks are marked
// inline so a reader of the flat transcript can see where coverage drops.
func (a *Assembly) Text() string {
	var b strings.Builder
	for i, e := range a.Entries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if e.Transcript == nil {
			fmt.Fprintf(&b, "[no transcript for %s - %s]",
				utils.FormatTimestamp(e.Chunk.StartTime), utils.FormatTimestamp(e.Chunk.EndTime))
			continue
		}
		b.WriteString(strings.TrimSpace(e.Transcript.Text))
	}
	return b.String()
}

// Units flattens the assembly into indexable transcript units, one per
// successfully transcribed chunk. Gap chunks are skipped.
func (a *Assembly) Units() []models.TranscriptUnit {
	var units []models.TranscriptUnit
	for _, e := range a.Entries {
		if e.Transcript == nil {
			continue
		}
		units = append(units, models.TranscriptUnit{
			ChunkID:   e.Chunk.ChunkID,
			VideoID:   e.Chunk.VideoID,
			Text:      e.Transcript.Text,
			StartTime: e.Chunk.StartTime,
			EndTime:   e.Chunk.EndTime,
		})
	}
	return units
}
