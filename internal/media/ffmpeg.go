package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// FFmpeg wraps the ffmpeg and ffprobe binaries for duration probing, audio
// extraction, and window cutting.
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
}

// NewFFmpeg returns a wrapper using the given binary paths ("ffmpeg" and
// "ffprobe" when empty).
func NewFFmpeg(ffmpegPath, ffprobePath string) *FFmpeg {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &FFmpeg{ffmpegPath: ffmpegPath, ffprobePath: ffprobePath}
}

// Duration returns the media file's total duration in seconds.
func (f *FFmpeg) Duration(ctx context.Context, path string) (float64, error) {
	// ffprobe -v error -show_entries format=duration -of default=noprint_wrappers=1:nokey=1 input
	cmd := exec.CommandContext(ctx, f.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	return ParseProbeDuration(string(out))
}

// ParseProbeDuration parses ffprobe's duration output (a bare float, possibly
// "N/A" for streams without a known duration).
func ParseProbeDuration(out string) (float64, error) {
	s := strings.TrimSpace(out)
	if s == "" || s == "N/A" {
		return 0, fmt.Errorf("no duration in ffprobe output %q", out)
	}
	d, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse ffprobe duration %q: %w", s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %v", d)
	}
	return d, nil
}

// ExtractAudio extracts an mp3 audio track from a media file into dir and
// returns the output path.
func (f *FFmpeg) ExtractAudio(ctx context.Context, mediaPath, dir string) (string, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	base := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
	out := filepath.Join(dir, base+"_audio.mp3")

	// ffmpeg -y -i input -vn -acodec libmp3lame output
	cmd := exec.CommandContext(ctx, f.ffmpegPath,
		"-y", "-i", mediaPath,
		"-vn",
		"-acodec", "libmp3lame",
		out,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("ffmpeg extract audio: %w: %s", err, lastLine(output))
	}
	return out, nil
}

// Cut writes the [start, start+duration) slice of src to dst. Stream copy is
// used so cutting is cheap and bit-exact at frame boundaries.
func (f *FFmpeg) Cut(ctx context.Context, src string, start, duration float64, dst string) error {
	// ffmpeg -y -ss start -t duration -i src -acodec copy dst
	cmd := exec.CommandContext(ctx, f.ffmpegPath,
		"-y",
		"-ss", formatSeconds(start),
		"-t", formatSeconds(duration),
		"-i", src,
		"-acodec", "copy",
		dst,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg cut [%s +%s]: %w: %s",
			formatSeconds(start), formatSeconds(duration), err, lastLine(output))
	}
	return nil
}

// formatSeconds renders a float for ffmpeg arguments without exponent notation.
func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', 3, 64)
}
