package ports

import (
	"context"
	"time"

	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/domain/tempo"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/types"
)

// MediaTool covers every local media-processing operation the pipeline needs.
type MediaTool interface {
	// ProbeDuration inspects a media file's metadata and returns its
	// duration, which must be > 0.
	ProbeDuration(ctx context.Context, path string) (time.Duration, error)

	// ExtractSpeechAudio demuxes a mono 16 kHz speech-optimized audio track
	// from a video, suitable for transcription.
	ExtractSpeechAudio(ctx context.Context, inVideo, outAudio string) error

	// AdjustTempo applies a tempo plan as a single pitch-preserving filter
	// chain. An empty plan copies the input unchanged.
	AdjustTempo(ctx context.Context, inAudio, outAudio string, plan tempo.Plan) error

	// ReplaceAudio copies the video stream verbatim and re-encodes the
	// output audio stream from speechAudio only.
	ReplaceAudio(ctx context.Context, inVideo, speechAudio, outVideo string) error

	// MixAudio copies the video stream verbatim and blends speechAudio with
	// the video's original audio at the given gains. The output audio
	// length equals the longer of the two inputs.
	MixAudio(ctx context.Context, inVideo, speechAudio, outVideo string, spec types.MixSpec) error
}

// Transcriber converts spoken audio into source-language text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Translator converts source-language text into the target language.
type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}

// SpeechSynthesizer renders target-language text as spoken audio at outPath.
// Voice names are provider-scoped; validity is checked at wiring time.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, voice, outPath string) error
}

// SourceFetcher downloads a remote video into dir and returns its local path
// plus metadata.
type SourceFetcher interface {
	Fetch(ctx context.Context, url, dir string) (types.SourceInfo, error)
}
