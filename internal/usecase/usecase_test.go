package usecase

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/domain/tempo"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/types"
)

func TestRun_SingleStepReconciliation(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	media := &fakeMedia{durations: map[string]time.Duration{
		"in.mp4":            10 * time.Second,
		"speech.mp3":        14 * time.Second,
		"speech_synced.mp3": 10 * time.Second,
	}}
	uc := New(Deps{
		Media:       media,
		Transcriber: fakeTranscriber{text: "hello world"},
		Translator:  fakeTranslator{text: "नमस्ते दुनिया"},
		Synth:       &fakeSynth{},
	})

	res, err := uc.Run(context.Background(), Input{
		InputVideo:     filepath.Join(tmp, "in.mp4"),
		OutputPath:     filepath.Join(tmp, "out", "in_hindi.mp4"),
		TargetLanguage: "Hindi",
		Voice:          "shimmer",
		Provider:       "openai",
		WorkDir:        tmp,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(media.tempoPlans) != 1 {
		t.Fatalf("expected one tempo adjustment, got %d", len(media.tempoPlans))
	}
	plan := media.tempoPlans[0]
	if len(plan) != 1 || math.Abs(plan[0]-1.4) > 1e-9 {
		t.Fatalf("expected single 1.4x step, got %v", plan)
	}
	if media.replaceCalls != 1 || media.mixCalls != 0 {
		t.Fatalf("expected replace composition, got replace=%d mix=%d", media.replaceCalls, media.mixCalls)
	}
	if res.Report.SpeedFactor != 1.4 {
		t.Fatalf("report speed factor = %v, want 1.4", res.Report.SpeedFactor)
	}
	if res.Report.ReconciledDuration != 10*time.Second {
		t.Fatalf("report reconciled duration = %v", res.Report.ReconciledDuration)
	}
	if res.Artifacts.Transcript != "hello world" || res.Artifacts.Translation != "नमस्ते दुनिया" {
		t.Fatalf("unexpected artifact texts: %+v", res.Artifacts)
	}
}

func TestRun_NearIdentitySkipsTempoChange(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	media := &fakeMedia{durations: map[string]time.Duration{
		"in.mp4":            10 * time.Second,
		"speech.mp3":        10*time.Second + 200*time.Millisecond,
		"speech_synced.mp3": 10*time.Second + 200*time.Millisecond,
	}}
	uc := New(Deps{
		Media:       media,
		Transcriber: fakeTranscriber{text: "t"},
		Translator:  fakeTranslator{text: "t"},
		Synth:       &fakeSynth{},
	})

	res, err := uc.Run(context.Background(), Input{
		InputVideo:     filepath.Join(tmp, "in.mp4"),
		OutputPath:     filepath.Join(tmp, "out.mp4"),
		TargetLanguage: "Hindi",
		Voice:          "nova",
		WorkDir:        tmp,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(media.tempoPlans) != 1 || !media.tempoPlans[0].Empty() {
		t.Fatalf("expected empty plan copy path, got %v", media.tempoPlans)
	}
	if len(res.Report.TempoPlan) != 0 {
		t.Fatalf("expected no tempo steps in report, got %v", res.Report.TempoPlan)
	}
}

func TestRun_ChainsExtremeFactor(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	media := &fakeMedia{durations: map[string]time.Duration{
		"in.mp4":            3 * time.Second,
		"speech.mp3":        9 * time.Second,
		"speech_synced.mp3": 3 * time.Second,
	}}
	uc := New(Deps{
		Media:       media,
		Transcriber: fakeTranscriber{text: "t"},
		Translator:  fakeTranslator{text: "t"},
		Synth:       &fakeSynth{},
	})

	if _, err := uc.Run(context.Background(), Input{
		InputVideo:     filepath.Join(tmp, "in.mp4"),
		OutputPath:     filepath.Join(tmp, "out.mp4"),
		TargetLanguage: "Hindi",
		Voice:          "nova",
		WorkDir:        tmp,
	}); err != nil {
		t.Fatalf("run: %v", err)
	}

	plan := media.tempoPlans[0]
	want := tempo.Plan{2.0, 1.5}
	if len(plan) != 2 || plan[0] != want[0] || plan[1] != want[1] {
		t.Fatalf("expected chained plan %v, got %v", want, plan)
	}
}

func TestRun_MixComposition(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	media := &fakeMedia{durations: map[string]time.Duration{
		"in.mp4":            10 * time.Second,
		"speech.mp3":        10 * time.Second,
		"speech_synced.mp3": 10 * time.Second,
	}}
	uc := New(Deps{
		Media:       media,
		Transcriber: fakeTranscriber{text: "t"},
		Translator:  fakeTranslator{text: "t"},
		Synth:       &fakeSynth{},
	})

	spec := types.MixSpec{BackgroundGain: 0.3, SpeechGain: 1.2}
	if _, err := uc.Run(context.Background(), Input{
		InputVideo:     filepath.Join(tmp, "in.mp4"),
		OutputPath:     filepath.Join(tmp, "out.mp4"),
		TargetLanguage: "Hindi",
		Voice:          "nova",
		Mix:            true,
		MixSpec:        spec,
		WorkDir:        tmp,
	}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if media.mixCalls != 1 || media.replaceCalls != 0 {
		t.Fatalf("expected mix composition, got replace=%d mix=%d", media.replaceCalls, media.mixCalls)
	}
	if media.lastMixSpec != spec {
		t.Fatalf("mix spec not forwarded: %+v", media.lastMixSpec)
	}
}

func TestRun_WrapsStageErrors(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	media := &fakeMedia{durations: map[string]time.Duration{
		"in.mp4": 10 * time.Second,
	}}
	boom := errors.New("remote unavailable")
	uc := New(Deps{
		Media:       media,
		Transcriber: fakeTranscriber{err: boom},
		Translator:  fakeTranslator{text: "t"},
		Synth:       &fakeSynth{},
	})

	_, err := uc.Run(context.Background(), Input{
		InputVideo:     filepath.Join(tmp, "in.mp4"),
		OutputPath:     filepath.Join(tmp, "out.mp4"),
		TargetLanguage: "Hindi",
		Voice:          "nova",
		WorkDir:        tmp,
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	var se *types.StageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StageError, got %T: %v", err, err)
	}
	if se.Stage != types.StageTranscription {
		t.Fatalf("expected transcription stage, got %s", se.Stage)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped cause to survive")
	}
	if media.replaceCalls+media.mixCalls != 0 {
		t.Fatalf("pipeline must abort before composition")
	}
}

type fakeMedia struct {
	durations map[string]time.Duration

	tempoPlans   []tempo.Plan
	replaceCalls int
	mixCalls     int
	lastMixSpec  types.MixSpec
}

func (f *fakeMedia) ProbeDuration(_ context.Context, path string) (time.Duration, error) {
	d, ok := f.durations[filepath.Base(path)]
	if !ok {
		return 0, errors.New("unknown asset: " + path)
	}
	return d, nil
}

func (f *fakeMedia) ExtractSpeechAudio(_ context.Context, _, _ string) error { return nil }

func (f *fakeMedia) AdjustTempo(_ context.Context, _, _ string, plan tempo.Plan) error {
	f.tempoPlans = append(f.tempoPlans, plan)
	return nil
}

func (f *fakeMedia) ReplaceAudio(_ context.Context, _, _, _ string) error {
	f.replaceCalls++
	return nil
}

func (f *fakeMedia) MixAudio(_ context.Context, _, _, _ string, spec types.MixSpec) error {
	f.mixCalls++
	f.lastMixSpec = spec
	return nil
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f fakeTranscriber) Transcribe(_ context.Context, _ string) (string, error) {
	return f.text, f.err
}

type fakeTranslator struct {
	text string
	err  error
}

func (f fakeTranslator) Translate(_ context.Context, _, _ string) (string, error) {
	return f.text, f.err
}

type fakeSynth struct {
	err error
}

func (f *fakeSynth) Synthesize(_ context.Context, _, _, _ string) error { return f.err }
