//go:build integration

package itest

import (
	"fmt"
	"os/exec"
	"testing"
)

// makeSpeechWAV synthesizes speech audio with espeak-ng, padded or trimmed
// to roughly the requested duration via ffmpeg apad/-t.
func makeSpeechWAV(t *testing.T, path, text string, seconds float64) {
	t.Helper()
	raw := path + ".raw.wav"
	cmd := exec.Command("espeak-ng", "-w", raw, text)
	if b, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("espeak-ng failed: %v\n%s", err, string(b))
	}
	pad := exec.Command("ffmpeg",
		"-y",
		"-i", raw,
		"-af", "apad",
		"-t", fmt.Sprintf("%.3f", seconds),
		path,
	)
	if b, err := pad.CombinedOutput(); err != nil {
		t.Fatalf("ffmpeg pad failed: %v\n%s", err, string(b))
	}
}

// makeVideo builds a black mp4 of the given length with the wav as its
// audio track.
func makeVideo(t *testing.T, path, wav string, seconds float64) {
	t.Helper()
	cmd := exec.Command("ffmpeg",
		"-y",
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=c=black:s=640x360:d=%.3f", seconds),
		"-i", wav,
		"-shortest",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		path,
	)
	if b, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("ffmpeg fixture failed: %v\n%s", err, string(b))
	}
}
