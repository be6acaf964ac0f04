package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gamedevCloudy/youtube-automation/internal/models"
)

// HTTPEngine calls a generative transcription API over HTTP. The API receives
// the audio blob reference plus an SRT-transcription prompt carrying the time
// context, and replies with a JSON object {"text": ..., "duration": ...}.
type HTTPEngine struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
}

// NewHTTPEngine creates an engine client. timeout bounds a single call
// end-to-end; per-chunk deadlines layered by the orchestrator still apply.
func NewHTTPEngine(endpoint, model, apiKey string, timeout time.Duration) *HTTPEngine {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &HTTPEngine{
		endpoint: endpoint,
		model:    model,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

type transcribeRequest struct {
	Model    string `json:"model"`
	AudioURI string `json:"audio_uri"`
	MimeType string `json:"mime_type"`
	Prompt   string `json:"prompt"`
}

// promptFor builds the transcription instruction for one chunk. The time
// context keeps the engine's SRT timestamps aligned with the full video.
func promptFor(tc TimeContext) string {
	return fmt.Sprintf(
		"Transcribe the audio in SRT format. This is a chunk of a larger video, %s. "+
			"Differentiate speakers (Speaker 1, Speaker 2, ...), keep subtitles between 3-5 words, "+
			"use SRT timestamps (HH:MM:SS,mmm), and maintain continuity with the timing provided. "+
			`Return a JSON object {"text": "<full SRT transcript>", "duration": <seconds>}.`,
		tc)
}

// Transcribe sends one chunk to the engine and decodes its reply.
func (e *HTTPEngine) Transcribe(ctx context.Context, audioURI string, tc TimeContext) (*models.Transcript, error) {
	body, err := json.Marshal(transcribeRequest{
		Model:    e.model,
		AudioURI: audioURI,
		MimeType: "audio/mpeg",
		Prompt:   promptFor(tc),
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("engine request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("engine http %d: %s", resp.StatusCode, string(b))
	}

	var t models.Transcript
	if err := json.NewDecoder(resp.Body).Decode(&t); err != nil {
		return nil, fmt.Errorf("decode engine reply: %w", err)
	}
	return &t, nil
}
