package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:   "vtrans <input>",
		Short: "Translate a video's spoken audio into another language",
		Long: "Translate a local video file or YouTube URL into another spoken language:\n" +
			"transcribes the audio, translates it, synthesizes target-language speech,\n" +
			"stretches it to the original video length, and muxes it back in.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	// Visible flags
	root.Flags().String("out", "", "Output video path (default: derived from input name)")
	root.Flags().String("language", "Hindi", "Target language")
	root.Flags().String("voice", "", "Voice name (default: provider's default)")
	root.Flags().String("tts", "openai", "Speech synthesis provider: openai or elevenlabs")
	root.Flags().Bool("keep", false, "Retain intermediate artifacts next to the output")
	root.Flags().Bool("mix", false, "Mix translated speech with the original audio bed")
	root.Flags().Float64("background-gain", 0.3, "Original audio gain when mixing")
	root.Flags().Float64("speech-gain", 1.0, "Translated speech gain when mixing")
	root.Flags().String("youtube-dir", "", "Keep downloaded YouTube videos in this directory")
	root.Flags().String("config", "", "YAML defaults file (default: vtrans.yaml if present)")

	// Hidden tuning flags (internal)
	root.Flags().String("translation-model", "", "OpenAI chat model for translation")
	root.Flags().String("tts-model", "", "OpenAI speech model")
	_ = root.Flags().MarkHidden("translation-model")
	_ = root.Flags().MarkHidden("tts-model")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
