// Package media acquires source audio and performs duration/boundary work with
// ffmpeg. All external tools are invoked as subprocesses.
package media

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gamedevCloudy/youtube-automation/internal/models"
)

// Source is an acquired media item: a local audio file plus its identifier.
type Source struct {
	VideoID   string
	SourceURI string
	AudioPath string
}

// Fetcher acquires a source stream given a URL and returns a local audio file.
// Failures are opaque acquisition errors; the pipeline does not distinguish
// an unreachable video from one with no audio stream.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*Source, error)
}

// YTDLPFetcher downloads audio with the yt-dlp binary.
type YTDLPFetcher struct {
	binary  string
	workDir string
}

// NewYTDLPFetcher returns a fetcher using the given yt-dlp binary path and
// working directory for downloaded audio.
func NewYTDLPFetcher(binary, workDir string) *YTDLPFetcher {
	if binary == "" {
		binary = "yt-dlp"
	}
	return &YTDLPFetcher{binary: binary, workDir: workDir}
}

// Fetch downloads the best audio stream for rawURL as mp3 and returns the
// local path. The video ID is taken from the URL's v parameter when present,
// else from the last path element.
func (f *YTDLPFetcher) Fetch(ctx context.Context, rawURL string) (*Source, error) {
	videoID, err := VideoIDFromURL(rawURL)
	if err != nil {
		return nil, &models.AcquisitionError{Source: rawURL, Err: err}
	}
	dir := f.workDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &models.AcquisitionError{Source: rawURL, Err: err}
	}
	out := filepath.Join(dir, videoID+".mp3")

	cmd := exec.CommandContext(ctx, f.binary,
		"-f", "bestaudio",
		"--extract-audio",
		"--audio-format", "mp3",
		"--no-playlist",
		"-o", out,
		rawURL,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, &models.AcquisitionError{
			Source: rawURL,
			Err:    fmt.Errorf("yt-dlp: %w: %s", err, lastLine(output)),
		}
	}
	if _, err := os.Stat(out); err != nil {
		return nil, &models.AcquisitionError{Source: rawURL, Err: fmt.Errorf("no audio produced: %w", err)}
	}
	return &Source{VideoID: videoID, SourceURI: rawURL, AudioPath: out}, nil
}

// VideoIDFromURL extracts a video identifier from a watch URL. "v" query
// parameter wins; otherwise the last non-empty path segment is used
// (youtu.be short links).
func VideoIDFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	if v := u.Query().Get("v"); v != "" {
		return v, nil
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	last := segments[len(segments)-1]
	if last == "" {
		return "", fmt.Errorf("no video id in url %s", rawURL)
	}
	return last, nil
}

func lastLine(output []byte) string {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}
