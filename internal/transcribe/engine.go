// Package transcribe orchestrates per-chunk transcription against a
// generative transcription engine.
package transcribe

import (
	"context"
	"fmt"
	"math"

	"github.com/gamedevCloudy/youtube-automation/internal/models"
	"github.com/gamedevCloudy/youtube-automation/internal/subtitle"
	"github.com/gamedevCloudy/youtube-automation/pkg/utils"
)

// DurationTolerance is the accepted drift, in seconds, between the duration
// the engine reports and the chunk's actual time span. Drift beyond this is a
// continuity warning, never fatal.
const DurationTolerance = 0.5

// TimeContext tells the engine where a chunk sits in the full video so the
// subtitle timestamps it produces stay globally meaningful.
type TimeContext struct {
	Start float64
	End   float64
}

// String renders the context as zero-padded HH:MM:SS, matching the prompt
// contract of the engine.
func (tc TimeContext) String() string {
	return fmt.Sprintf("Start: %s, End: %s",
		utils.FormatTimestamp(tc.Start), utils.FormatTimestamp(tc.End))
}

// Engine is a generative transcription backend: given a chunk's audio blob
// and its time context, it returns subtitle text plus a reported duration.
// Treated as a black box; implementations must be safe for concurrent use.
type Engine interface {
	Transcribe(ctx context.Context, audioURI string, tc TimeContext) (*models.Transcript, error)
}

// validateReply checks an engine reply against the chunk it was produced for.
// Malformed subtitle text is an error (the chunk becomes a coverage gap);
// duration drift within tolerance of the chunk span is accepted, drift beyond
// it is returned as a non-fatal warning string.
func validateReply(t *models.Transcript, chunk models.Chunk) (warning string, err error) {
	if t == nil {
		return "", fmt.Errorf("engine returned no transcript")
	}
	if err := subtitle.Validate(t.Text); err != nil {
		return "", fmt.Errorf("malformed subtitle text: %w", err)
	}
	span := chunk.EndTime - chunk.StartTime
	if drift := math.Abs(t.Duration - span); t.Duration > 0 && drift > DurationTolerance {
		return fmt.Sprintf("reported duration %.2fs drifts %.2fs from chunk span %.2fs",
			t.Duration, drift, span), nil
	}
	return "", nil
}
