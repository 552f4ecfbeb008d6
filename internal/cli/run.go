package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/config"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/domain/source"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/pipeline"
)

func run(cmd *cobra.Command, input string) error {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return errors.New("OPENAI_API_KEY is required (set it in .env)")
	}

	cfgPath, _ := cmd.Flags().GetString("config")
	required := cfgPath != ""
	if cfgPath == "" {
		cfgPath = config.DefaultPath
	}
	defaults, err := config.Load(cfgPath, required)
	if err != nil {
		return err
	}

	outPath, _ := cmd.Flags().GetString("out")
	language, _ := cmd.Flags().GetString("language")
	voice, _ := cmd.Flags().GetString("voice")
	provider, _ := cmd.Flags().GetString("tts")
	keep, _ := cmd.Flags().GetBool("keep")
	mix, _ := cmd.Flags().GetBool("mix")
	backgroundGain, _ := cmd.Flags().GetFloat64("background-gain")
	speechGain, _ := cmd.Flags().GetFloat64("speech-gain")
	youtubeDir, _ := cmd.Flags().GetString("youtube-dir")
	translationModel, _ := cmd.Flags().GetString("translation-model")
	ttsModel, _ := cmd.Flags().GetString("tts-model")

	// Config file values apply only where the flag was not set explicitly.
	if !cmd.Flags().Changed("language") && defaults.TargetLanguage != "" {
		language = defaults.TargetLanguage
	}
	if !cmd.Flags().Changed("voice") && defaults.Voice != "" {
		voice = defaults.Voice
	}
	if !cmd.Flags().Changed("tts") && defaults.Provider != "" {
		provider = defaults.Provider
	}
	if !cmd.Flags().Changed("mix") && defaults.Mix != nil {
		mix = *defaults.Mix
	}
	if !cmd.Flags().Changed("background-gain") && defaults.BackgroundGain != nil {
		backgroundGain = *defaults.BackgroundGain
	}
	if !cmd.Flags().Changed("speech-gain") && defaults.SpeechGain != nil {
		speechGain = *defaults.SpeechGain
	}
	if !cmd.Flags().Changed("youtube-dir") && defaults.YouTubeDir != "" {
		youtubeDir = defaults.YouTubeDir
	}

	if !source.IsRemote(input) {
		abs, err := filepath.Abs(input)
		if err != nil {
			return err
		}
		input = abs
	}

	cfg := pipeline.Config{
		Input:          input,
		OutputPath:     outPath,
		TargetLanguage: language,
		Voice:          voice,
		Provider:       provider,

		KeepArtifacts:     keep,
		MixWithBackground: mix,
		BackgroundGain:    backgroundGain,
		SpeechGain:        speechGain,
		YouTubeDir:        youtubeDir,

		Logf: log.New(os.Stderr, "", log.LstdFlags).Printf,

		OpenAIAPIKey:     apiKey,
		ElevenLabsAPIKey: os.Getenv("ELEVENLABS_API_KEY"),

		TranslationModel: firstNonEmpty(translationModel, os.Getenv("OPENAI_TRANSLATION_MODEL")),
		TTSModel:         firstNonEmpty(ttsModel, os.Getenv("OPENAI_TTS_MODEL")),
		SourceLanguage:   os.Getenv("SOURCE_LANGUAGE"),
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	out, err := pipeline.Run(context.Background(), cfg)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
