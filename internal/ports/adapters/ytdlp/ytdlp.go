// Package ytdlp fetches remote videos through the yt-dlp binary.
package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/types"
)

type Adapter struct {
	bin string
}

func New(binPath string) *Adapter {
	if binPath == "" {
		binPath = "yt-dlp"
	}
	return &Adapter{bin: binPath}
}

type videoInfo struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Uploader string  `json:"uploader"`
	Duration float64 `json:"duration"`
	Ext      string  `json:"ext"`
	Filename string  `json:"_filename"`
}

// Fetch downloads url into dir, preferring an mp4 container, and returns the
// local path plus metadata parsed from yt-dlp's info JSON.
func (a *Adapter) Fetch(ctx context.Context, url, dir string) (types.SourceInfo, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, a.bin,
		"--no-playlist",
		"--no-progress",
		"--print-json",
		"-f", "best[ext=mp4]/best",
		"-o", filepath.Join(dir, "%(id)s.%(ext)s"),
		url,
	)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return types.SourceInfo{}, fmt.Errorf("yt-dlp failed for %s: %w\n%s", url, err, stderr.String())
	}

	var info videoInfo
	if err := json.Unmarshal(stdout.Bytes(), &info); err != nil {
		return types.SourceInfo{}, fmt.Errorf("parse yt-dlp info for %s: %w", url, err)
	}

	path := info.Filename
	if path == "" {
		path = filepath.Join(dir, info.ID+"."+info.Ext)
	}
	if _, err := os.Stat(path); err != nil {
		return types.SourceInfo{}, fmt.Errorf("downloaded file not found: %w", err)
	}

	return types.SourceInfo{
		Path:     path,
		ID:       info.ID,
		Title:    info.Title,
		Uploader: info.Uploader,
		Duration: time.Duration(info.Duration * float64(time.Second)),
	}, nil
}
