//go:build integration

package itest

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/domain/tempo"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/ports/adapters/ffmpeg"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/types"
)

// These tests exercise the media layer against real ffmpeg binaries and need
// no remote credentials.

func TestReconcile_SingleStepHitsTolerance(t *testing.T) {
	tmp := t.TempDir()
	in := filepath.Join(tmp, "speech.wav")
	out := filepath.Join(tmp, "synced.wav")
	makeSpeechWAV(t, in, "here is the key idea, explained step by step for the test", 14)

	a := ffmpeg.New("", "")
	ctx := context.Background()

	cur, err := a.ProbeDuration(ctx, in)
	if err != nil {
		t.Fatalf("probe input: %v", err)
	}
	target := 10 * time.Second
	plan := tempo.BuildPlan(cur.Seconds() / target.Seconds())
	if len(plan) != 1 {
		t.Fatalf("expected single-step plan for 1.4x, got %v", plan)
	}
	if err := a.AdjustTempo(ctx, in, out, plan); err != nil {
		t.Fatalf("adjust tempo: %v", err)
	}

	got, err := a.ProbeDuration(ctx, out)
	if err != nil {
		t.Fatalf("probe output: %v", err)
	}
	drift := math.Abs(got.Seconds()-target.Seconds()) / target.Seconds()
	if drift > 0.05 {
		t.Fatalf("reconciled duration %s off target %s by %.1f%%", got, target, 100*drift)
	}
}

func TestReconcile_ChainedPlanForTripleSpeed(t *testing.T) {
	tmp := t.TempDir()
	in := filepath.Join(tmp, "speech.wav")
	out := filepath.Join(tmp, "synced.wav")
	makeSpeechWAV(t, in, "a much longer narration that must be compressed a lot", 9)

	a := ffmpeg.New("", "")
	ctx := context.Background()

	cur, err := a.ProbeDuration(ctx, in)
	if err != nil {
		t.Fatalf("probe input: %v", err)
	}
	target := cur / 3
	plan := tempo.BuildPlan(cur.Seconds() / target.Seconds())
	if len(plan) != 2 {
		t.Fatalf("expected chained plan for 3.0x, got %v", plan)
	}
	if err := a.AdjustTempo(ctx, in, out, plan); err != nil {
		t.Fatalf("adjust tempo: %v", err)
	}

	got, err := a.ProbeDuration(ctx, out)
	if err != nil {
		t.Fatalf("probe output: %v", err)
	}
	drift := math.Abs(got.Seconds()-target.Seconds()) / target.Seconds()
	if drift > 0.05 {
		t.Fatalf("reconciled duration %s off target %s by %.1f%%", got, target, 100*drift)
	}
}

func TestReplaceAudio_CopiesVideoStreamVerbatim(t *testing.T) {
	tmp := t.TempDir()
	wav := filepath.Join(tmp, "speech.wav")
	video := filepath.Join(tmp, "in.mp4")
	out := filepath.Join(tmp, "out.mp4")
	makeSpeechWAV(t, wav, "original narration", 5)
	makeVideo(t, video, wav, 5)

	speech := filepath.Join(tmp, "new_speech.wav")
	makeSpeechWAV(t, speech, "replacement narration", 5)

	a := ffmpeg.New("", "")
	if err := a.ReplaceAudio(context.Background(), video, speech, out); err != nil {
		t.Fatalf("replace audio: %v", err)
	}

	inMD5, err := videoStreamMD5(video)
	if err != nil {
		t.Fatalf("hash input video stream: %v", err)
	}
	outMD5, err := videoStreamMD5(out)
	if err != nil {
		t.Fatalf("hash output video stream: %v", err)
	}
	if inMD5 != outMD5 {
		t.Fatalf("video stream changed: %s != %s", inMD5, outMD5)
	}
}

func TestMixAudio_LongestInputWins(t *testing.T) {
	tmp := t.TempDir()
	wav := filepath.Join(tmp, "bed.wav")
	video := filepath.Join(tmp, "in.mp4")
	out := filepath.Join(tmp, "out.mp4")
	makeSpeechWAV(t, wav, "background bed", 5)
	makeVideo(t, video, wav, 5)

	speech := filepath.Join(tmp, "speech.wav")
	makeSpeechWAV(t, speech, "a longer speech track for the mix", 8)

	a := ffmpeg.New("", "")
	spec := types.MixSpec{BackgroundGain: 0.3, SpeechGain: 1.0}
	if err := a.MixAudio(context.Background(), video, speech, out, spec); err != nil {
		t.Fatalf("mix audio: %v", err)
	}

	got, err := probeDurationSeconds(out)
	if err != nil {
		t.Fatalf("probe output: %v", err)
	}
	if got < 7.5 {
		t.Fatalf("expected mixed audio to keep the longer input (~8s), got %.2fs", got)
	}
}
