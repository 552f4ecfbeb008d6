// Package elevenlabs adapts the ElevenLabs text-to-speech API to the
// pipeline's speech-synthesis port.
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.elevenlabs.io"
	defaultModel   = "eleven_multilingual_v2"

	requestTimeout = 2 * time.Minute
)

// voiceIDs maps the provider's voice vocabulary to premade voice identifiers.
// Names are provider-scoped and validated at wiring time.
var voiceIDs = map[string]string{
	"Rachel":  "21m00Tcm4TlvDq8ikWAM",
	"Adam":    "pNInz6obpgDQGcFmaJgB",
	"Charlie": "IKne3meq5aSn9XLyUdCD",
	"Daniel":  "onwK4e9ZLuTAKqWW03F9",
	"Bella":   "EXAVITQu4vr4xnSDxMaL",
	"Nicole":  "piTKgcLEGmPE4e6mEKli",
}

// Voices is the ElevenLabs voice vocabulary in a stable order.
var Voices = []string{"Rachel", "Adam", "Charlie", "Daniel", "Bella", "Nicole"}

// DefaultVoice is used when the caller does not pick one.
const DefaultVoice = "Rachel"

type Adapter struct {
	key     string
	model   string
	baseURL string
	client  *http.Client
}

func New(apiKey, model, baseURL string) *Adapter {
	if model == "" {
		model = defaultModel
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Adapter{
		key:     apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 5 * time.Minute},
	}
}

func (a *Adapter) Synthesize(ctx context.Context, text, voice, outPath string) error {
	id, ok := voiceIDs[voice]
	if !ok {
		return fmt.Errorf("elevenlabs: unknown voice %q", voice)
	}

	body, err := json.Marshal(map[string]any{
		"text":     text,
		"model_id": a.model,
	})
	if err != nil {
		return fmt.Errorf("elevenlabs: marshal request: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	url := a.baseURL + "/v1/text-to-speech/" + id
	req, err := http.NewRequestWithContext(reqCtx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("xi-api-key", a.key)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := a.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("elevenlabs timeout after %s (voice=%s)", requestTimeout, voice)
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("elevenlabs status %d and read body failed: %v", resp.StatusCode, readErr)
		}
		return fmt.Errorf("elevenlabs status %d: %s", resp.StatusCode, truncate(redactKey(string(rb), a.key), 400))
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("elevenlabs: %w", err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		return errors.Join(fmt.Errorf("elevenlabs: write audio: %w", err), f.Close())
	}
	return f.Close()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func redactKey(s, apiKey string) string {
	if apiKey == "" {
		return s
	}
	return strings.ReplaceAll(s, apiKey, "[REDACTED]")
}
