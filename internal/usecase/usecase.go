package usecase

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/domain/tempo"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/ports"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/types"
)

type Deps struct {
	Media       ports.MediaTool
	Transcriber ports.Transcriber
	Translator  ports.Translator
	Synth       ports.SpeechSynthesizer
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Input struct {
	InputVideo     string
	OutputPath     string
	TargetLanguage string
	Voice          string
	Provider       string
	Mix            bool
	MixSpec        types.MixSpec
	WorkDir        string
	Logf           func(format string, args ...any)
}

// Artifacts are the intermediate files left in the workspace after a
// successful run, for optional copy-out before the workspace is released.
type Artifacts struct {
	ExtractedAudio   string
	RawSpeech        string
	ReconciledSpeech string
	Transcript       string
	Translation      string
}

type Result struct {
	OutputPath string
	Report     types.Report
	Artifacts  Artifacts
}

// Run drives the strictly linear stage chain: probe, extract, transcribe,
// translate, synthesize, reconcile, compose. Every stage failure is wrapped
// with its stage and aborts the rest of the call.
func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	logf := in.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	videoDur, err := u.d.Media.ProbeDuration(ctx, in.InputVideo)
	if err != nil {
		return Result{}, types.StageErr(types.StageProbe, err)
	}
	logf("source video: %s (%s)", in.InputVideo, videoDur)

	extracted := filepath.Join(in.WorkDir, "extracted_audio.mp3")
	if err := u.d.Media.ExtractSpeechAudio(ctx, in.InputVideo, extracted); err != nil {
		return Result{}, types.StageErr(types.StageExtraction, err)
	}

	transcript, err := u.d.Transcriber.Transcribe(ctx, extracted)
	if err != nil {
		return Result{}, types.StageErr(types.StageTranscription, err)
	}
	logf("transcript (%d chars): %s", len(transcript), preview(transcript))

	translated, err := u.d.Translator.Translate(ctx, transcript, in.TargetLanguage)
	if err != nil {
		return Result{}, types.StageErr(types.StageTranslation, err)
	}
	logf("translation (%d chars): %s", len(translated), preview(translated))

	rawSpeech := filepath.Join(in.WorkDir, "speech.mp3")
	if err := u.d.Synth.Synthesize(ctx, translated, in.Voice, rawSpeech); err != nil {
		return Result{}, types.StageErr(types.StageSynthesis, err)
	}

	reconciled := filepath.Join(in.WorkDir, "speech_synced.mp3")
	speechDur, reconciledDur, plan, err := u.reconcile(ctx, rawSpeech, reconciled, videoDur, logf)
	if err != nil {
		return Result{}, types.StageErr(types.StageReconciliation, err)
	}

	if err := os.MkdirAll(filepath.Dir(in.OutputPath), 0o755); err != nil {
		return Result{}, types.StageErr(types.StageComposition, err)
	}
	if in.Mix {
		err = u.d.Media.MixAudio(ctx, in.InputVideo, reconciled, in.OutputPath, in.MixSpec)
	} else {
		err = u.d.Media.ReplaceAudio(ctx, in.InputVideo, reconciled, in.OutputPath)
	}
	if err != nil {
		return Result{}, types.StageErr(types.StageComposition, err)
	}
	logf("output written: %s", in.OutputPath)

	return Result{
		OutputPath: in.OutputPath,
		Report: types.Report{
			Input:              in.InputVideo,
			TargetLanguage:     in.TargetLanguage,
			Provider:           in.Provider,
			Voice:              in.Voice,
			SourceDuration:     videoDur,
			SpeechDuration:     speechDur,
			ReconciledDuration: reconciledDur,
			SpeedFactor:        speechDur.Seconds() / videoDur.Seconds(),
			TempoPlan:          plan,
		},
		Artifacts: Artifacts{
			ExtractedAudio:   extracted,
			RawSpeech:        rawSpeech,
			ReconciledSpeech: reconciled,
			Transcript:       transcript,
			Translation:      translated,
		},
	}, nil
}

// reconcile brings the synthesized speech to the target duration via an
// analytically computed tempo plan, then re-probes the result for
// observability. No feedback iteration: the plan is applied once.
func (u Usecase) reconcile(
	ctx context.Context,
	inAudio, outAudio string,
	target time.Duration,
	logf func(string, ...any),
) (speechDur, reconciledDur time.Duration, plan tempo.Plan, err error) {
	speechDur, err = u.d.Media.ProbeDuration(ctx, inAudio)
	if err != nil {
		return 0, 0, nil, err
	}

	speedFactor := speechDur.Seconds() / target.Seconds()
	plan = tempo.BuildPlan(speedFactor)
	if plan.Empty() {
		logf("speech %s vs target %s (factor %.3f): within tolerance, no tempo change", speechDur, target, speedFactor)
	} else {
		logf("speech %s vs target %s: applying tempo plan %v", speechDur, target, []float64(plan))
	}

	if err = u.d.Media.AdjustTempo(ctx, inAudio, outAudio, plan); err != nil {
		return 0, 0, nil, err
	}

	reconciledDur, err = u.d.Media.ProbeDuration(ctx, outAudio)
	if err != nil {
		return 0, 0, nil, err
	}
	drift := (reconciledDur.Seconds() - target.Seconds()) / target.Seconds()
	logf("reconciled speech: %s (%.1f%% off target)", reconciledDur, 100*drift)
	return speechDur, reconciledDur, plan, nil
}

func preview(s string) string {
	const n = 100
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
