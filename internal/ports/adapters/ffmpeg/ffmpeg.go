package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/domain/tempo"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/types"
)

type Adapter struct {
	ffmpeg  string
	ffprobe string
}

func New(ffmpegPath, ffprobePath string) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{ffmpeg: ffmpegPath, ffprobe: ffprobePath}
}

func (a *Adapter) ProbeDuration(ctx context.Context, path string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w\n%s", err, string(b))
	}
	s := strings.TrimSpace(string(b))
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	if sec <= 0 {
		return 0, fmt.Errorf("no measurable duration in %s", path)
	}
	return time.Duration(sec * float64(time.Second)), nil
}

// ExtractSpeechAudio produces a mono 16 kHz mp3, the format the transcription
// service expects for speech input.
func (a *Adapter) ExtractSpeechAudio(ctx context.Context, inVideo, outAudio string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-i", inVideo,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-acodec", "libmp3lame",
		outAudio,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg extract audio: %w\n%s", err, string(b))
	}
	return nil
}

func (a *Adapter) AdjustTempo(ctx context.Context, inAudio, outAudio string, plan tempo.Plan) error {
	if plan.Empty() {
		return copyFile(inAudio, outAudio)
	}
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-i", inAudio,
		"-filter:a", tempoFilter(plan),
		outAudio,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg tempo adjust: %w\n%s", err, string(b))
	}
	return nil
}

func (a *Adapter) ReplaceAudio(ctx context.Context, inVideo, speechAudio, outVideo string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-i", inVideo,
		"-i", speechAudio,
		"-map", "0:v",
		"-map", "1:a",
		"-c:v", "copy",
		"-c:a", "aac",
		outVideo,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg replace audio: %w\n%s", err, string(b))
	}
	return nil
}

func (a *Adapter) MixAudio(ctx context.Context, inVideo, speechAudio, outVideo string, spec types.MixSpec) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-i", inVideo,
		"-i", speechAudio,
		"-filter_complex", mixFilter(spec),
		"-map", "0:v",
		"-map", "[aout]",
		"-c:v", "copy",
		"-c:a", "aac",
		"-b:a", "192k",
		outVideo,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg mix audio: %w\n%s", err, string(b))
	}
	return nil
}

// tempoFilter renders a plan as a chained atempo filter, e.g.
// "atempo=2.0000,atempo=1.5000". Each factor is within the filter's
// [0.5, 2.0] range by construction.
func tempoFilter(plan tempo.Plan) string {
	parts := make([]string, 0, len(plan))
	for _, f := range plan {
		parts = append(parts, "atempo="+strconv.FormatFloat(f, 'f', 4, 64))
	}
	return strings.Join(parts, ",")
}

// mixFilter scales the video's original audio by the background gain, scales
// the speech track by the speech gain (the node is skipped at exactly 1.0),
// and sums both with duration=longest so the shorter input is padded with
// silence.
func mixFilter(spec types.MixSpec) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[0:a]volume=%.2f[bg];", spec.BackgroundGain)
	speech := "1:a"
	if spec.SpeechGain != 1.0 {
		fmt.Fprintf(&b, "[1:a]volume=%.2f[sp];", spec.SpeechGain)
		speech = "sp"
	}
	fmt.Fprintf(&b, "[bg][%s]amix=inputs=2:duration=longest[aout]", speech)
	return b.String()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("copy audio: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("copy audio: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		return errors.Join(fmt.Errorf("copy audio: %w", err), out.Close())
	}
	return out.Close()
}
