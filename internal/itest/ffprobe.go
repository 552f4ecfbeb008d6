//go:build integration

package itest

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

func probeDurationSeconds(path string) (float64, error) {
	cmd := exec.Command("ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w\n%s", err, string(b))
	}
	s := strings.TrimSpace(string(b))
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return sec, nil
}

// videoStreamMD5 hashes the stream-copied video track, so two files with
// bit-identical video streams hash equal regardless of their audio.
func videoStreamMD5(path string) (string, error) {
	cmd := exec.Command("ffmpeg",
		"-v", "error",
		"-i", path,
		"-map", "0:v",
		"-c", "copy",
		"-f", "md5", "-",
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("ffmpeg md5: %w\n%s", err, string(b))
	}
	return strings.TrimSpace(string(b)), nil
}
