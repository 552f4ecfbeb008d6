package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/domain/source"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/ports"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/ports/adapters/ffmpeg"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/ports/adapters/openai"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/ports/adapters/ytdlp"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/synth"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/types"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/usecase"
)

// DefaultOutDir receives derived output paths when the caller does not name
// one explicitly.
const DefaultOutDir = "translated_videos"

type Config struct {
	// Input is a local video path or a recognized YouTube URL.
	Input string
	// OutputPath is the final video location; empty means derive it from
	// the input's base name plus a target-language suffix under
	// DefaultOutDir.
	OutputPath string

	TargetLanguage string
	Voice          string
	Provider       string

	KeepArtifacts     bool
	MixWithBackground bool
	BackgroundGain    float64
	SpeechGain        float64

	// YouTubeDir, when set, receives the downloaded video instead of the
	// temporary workspace so it survives the call.
	YouTubeDir string

	Logf func(format string, args ...any)

	// WorkRoot is the base directory for per-call workspaces. If empty,
	// defaults to the OS temp dir.
	WorkRoot string

	FFmpegPath  string
	FFprobePath string
	YtdlpPath   string

	OpenAIAPIKey     string
	ElevenLabsAPIKey string

	TranslationModel string
	TTSModel         string
	ElevenLabsModel  string
	SourceLanguage   string
}

func (c Config) Validate() error {
	if c.Input == "" {
		return errors.New("input is empty")
	}
	if !source.IsRemote(c.Input) {
		if _, err := os.Stat(c.Input); err != nil {
			return types.StageErr(types.StageAcquisition, fmt.Errorf("input video not found: %w", err))
		}
	}
	if c.TargetLanguage == "" {
		return errors.New("target language is empty")
	}
	if c.OpenAIAPIKey == "" {
		return errors.New("OPENAI_API_KEY is required")
	}

	provider, err := synth.ParseProvider(c.Provider)
	if err != nil {
		return err
	}
	if provider == synth.ProviderElevenLabs && c.ElevenLabsAPIKey == "" {
		return fmt.Errorf("%w: ELEVENLABS_API_KEY is required for the elevenlabs provider", synth.ErrMissingCredential)
	}
	if c.Voice != "" {
		if err := synth.ValidateVoice(provider, c.Voice); err != nil {
			return err
		}
	}
	return nil
}

// Run executes one translate call and returns the output video path. The
// call owns an isolated workspace that is removed on every exit path.
func Run(ctx context.Context, cfg Config) (string, error) {
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	provider, err := synth.ParseProvider(cfg.Provider)
	if err != nil {
		return "", err
	}
	voice := cfg.Voice
	if voice == "" {
		voice = synth.DefaultVoice(provider)
	}

	// adapters
	media := ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath)
	oa := openai.New(cfg.OpenAIAPIKey, cfg.TranslationModel, cfg.TTSModel, cfg.SourceLanguage)
	speech, err := synth.New(provider, synth.Options{
		OpenAIKey:       cfg.OpenAIAPIKey,
		OpenAITTSModel:  cfg.TTSModel,
		ElevenLabsKey:   cfg.ElevenLabsAPIKey,
		ElevenLabsModel: cfg.ElevenLabsModel,
	})
	if err != nil {
		return "", err
	}

	workRoot := cfg.WorkRoot
	if workRoot == "" {
		workRoot = os.TempDir()
	}
	workDir := filepath.Join(workRoot, "vtrans-"+uuid.NewString())
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return "", fmt.Errorf("create workspace: %w", err)
	}
	defer os.RemoveAll(workDir)
	logf("workspace: %s", workDir)

	inputVideo, remote, err := acquire(ctx, cfg, workDir, logf)
	if err != nil {
		return "", err
	}

	outPath := cfg.OutputPath
	if outPath == "" {
		outPath = deriveOutputPath(inputVideo, cfg.TargetLanguage)
	}

	uc := usecase.New(usecase.Deps{
		Media:       media,
		Transcriber: oa,
		Translator:  oa,
		Synth:       speech,
	})
	res, err := uc.Run(ctx, usecase.Input{
		InputVideo:     inputVideo,
		OutputPath:     outPath,
		TargetLanguage: cfg.TargetLanguage,
		Voice:          voice,
		Provider:       string(provider),
		Mix:            cfg.MixWithBackground,
		MixSpec: types.MixSpec{
			BackgroundGain: cfg.BackgroundGain,
			SpeechGain:     cfg.SpeechGain,
		},
		WorkDir: workDir,
		Logf:    logf,
	})
	if err != nil {
		return "", err
	}

	if cfg.KeepArtifacts {
		keepOriginal := remote && cfg.YouTubeDir == ""
		if err := retainArtifacts(outPath, inputVideo, keepOriginal, res, logf); err != nil {
			return "", err
		}
	}
	return res.OutputPath, nil
}

func acquire(ctx context.Context, cfg Config, workDir string, logf func(string, ...any)) (path string, remote bool, err error) {
	if !source.IsRemote(cfg.Input) {
		if _, err := os.Stat(cfg.Input); err != nil {
			return "", false, types.StageErr(types.StageAcquisition, fmt.Errorf("input video not found: %w", err))
		}
		return cfg.Input, false, nil
	}

	downloadDir := cfg.YouTubeDir
	if downloadDir == "" {
		downloadDir = workDir
	} else if err := os.MkdirAll(downloadDir, 0o755); err != nil {
		return "", true, types.StageErr(types.StageAcquisition, err)
	}

	fetcher := ytdlp.New(cfg.YtdlpPath)
	logf("downloading: %s", cfg.Input)
	info, err := fetcher.Fetch(ctx, cfg.Input, downloadDir)
	if err != nil {
		return "", true, types.StageErr(types.StageAcquisition, err)
	}
	logf("downloaded %q by %s (%s): %s", info.Title, info.Uploader, info.Duration, info.Path)
	return info.Path, true, nil
}

// deriveOutputPath builds "<stem>_<language>.mp4" under DefaultOutDir.
func deriveOutputPath(inputVideo, targetLanguage string) string {
	stem := strings.TrimSuffix(filepath.Base(inputVideo), filepath.Ext(inputVideo))
	stem = normalizePathSegment(stem)
	if stem == "" {
		stem = "video"
	}
	lang := normalizePathSegment(targetLanguage)
	return filepath.Join(DefaultOutDir, stem+"_"+lang+".mp4")
}

// retainArtifacts copies selected intermediates into a debug directory named
// after the output file stem, before the workspace is released.
func retainArtifacts(outPath, inputVideo string, keepOriginal bool, res usecase.Result, logf func(string, ...any)) error {
	stem := strings.TrimSuffix(filepath.Base(outPath), filepath.Ext(outPath))
	dir := filepath.Join(filepath.Dir(outPath), stem+"_artifacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create artifacts dir: %w", err)
	}

	files := map[string]string{
		"extracted_audio.mp3":   res.Artifacts.ExtractedAudio,
		"translated_speech.mp3": res.Artifacts.RawSpeech,
		"reconciled_speech.mp3": res.Artifacts.ReconciledSpeech,
	}
	if keepOriginal {
		files["original_"+stem+".mp4"] = inputVideo
	}
	for name, src := range files {
		if err := copyFile(src, filepath.Join(dir, name)); err != nil {
			return err
		}
	}

	texts := map[string]string{
		"transcript.txt":  res.Artifacts.Transcript,
		"translation.txt": res.Artifacts.Translation,
		"report.txt":      formatReport(res.Report),
	}
	for name, content := range texts {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	logf("artifacts retained: %s", dir)
	return nil
}

func formatReport(r types.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "input: %s\n", r.Input)
	fmt.Fprintf(&b, "target language: %s\n", r.TargetLanguage)
	fmt.Fprintf(&b, "provider: %s\n", r.Provider)
	fmt.Fprintf(&b, "voice: %s\n", r.Voice)
	fmt.Fprintf(&b, "source duration: %s\n", r.SourceDuration)
	fmt.Fprintf(&b, "synthesized speech duration: %s\n", r.SpeechDuration)
	fmt.Fprintf(&b, "reconciled speech duration: %s\n", r.ReconciledDuration)
	fmt.Fprintf(&b, "speed factor: %.4f\n", r.SpeedFactor)
	if len(r.TempoPlan) == 0 {
		b.WriteString("tempo plan: none (within tolerance)\n")
	} else {
		fmt.Fprintf(&b, "tempo plan: %v\n", r.TempoPlan)
	}
	return b.String()
}

func normalizePathSegment(s string) string {
	var b strings.Builder
	prevSep := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevSep = false
		default:
			if !prevSep {
				b.WriteByte('_')
				prevSep = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("retain %s: %w", filepath.Base(dst), err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("retain %s: %w", filepath.Base(dst), err)
	}
	if _, err := io.Copy(out, in); err != nil {
		return errors.Join(fmt.Errorf("retain %s: %w", filepath.Base(dst), err), out.Close())
	}
	return out.Close()
}

// ensure adapters implement ports
var _ ports.MediaTool = (*ffmpeg.Adapter)(nil)
var _ ports.Transcriber = (*openai.Adapter)(nil)
var _ ports.Translator = (*openai.Adapter)(nil)
var _ ports.SpeechSynthesizer = (*openai.Adapter)(nil)
var _ ports.SourceFetcher = (*ytdlp.Adapter)(nil)
