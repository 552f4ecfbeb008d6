// Package openai adapts the OpenAI API to the pipeline's transcription,
// translation, and speech-synthesis ports.
package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	gopenai "github.com/sashabaranov/go-openai"
)

const (
	DefaultTranslationModel = "gpt-4o"
	DefaultTTSModel         = "tts-1"

	transcriptionModel     = gopenai.Whisper1
	translationTemperature = 0.3
)

// Voices is the OpenAI TTS voice vocabulary. It is provider-scoped and not
// interchangeable with other synthesis providers.
var Voices = []string{"alloy", "echo", "fable", "onyx", "nova", "shimmer"}

// DefaultVoice is used when the caller does not pick one.
const DefaultVoice = "shimmer"

type Adapter struct {
	client           *gopenai.Client
	translationModel string
	ttsModel         string
	sourceLanguage   string
}

func New(apiKey, translationModel, ttsModel, sourceLanguage string) *Adapter {
	if translationModel == "" {
		translationModel = DefaultTranslationModel
	}
	if ttsModel == "" {
		ttsModel = DefaultTTSModel
	}
	if sourceLanguage == "" {
		sourceLanguage = "en"
	}
	return &Adapter{
		client:           gopenai.NewClient(apiKey),
		translationModel: translationModel,
		ttsModel:         ttsModel,
		sourceLanguage:   sourceLanguage,
	}
}

func (a *Adapter) Transcribe(ctx context.Context, audioPath string) (string, error) {
	resp, err := a.client.CreateTranscription(ctx, gopenai.AudioRequest{
		Model:    transcriptionModel,
		FilePath: audioPath,
		Language: a.sourceLanguage,
	})
	if err != nil {
		return "", fmt.Errorf("whisper transcription: %w", err)
	}
	return resp.Text, nil
}

func (a *Adapter) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, gopenai.ChatCompletionRequest{
		Model:       a.translationModel,
		Temperature: translationTemperature,
		Messages: []gopenai.ChatCompletionMessage{
			{Role: gopenai.ChatMessageRoleSystem, Content: translationSystemPrompt(targetLanguage)},
			{Role: gopenai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return "", fmt.Errorf("translate to %s: %w", targetLanguage, err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("translation returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (a *Adapter) Synthesize(ctx context.Context, text, voice, outPath string) error {
	resp, err := a.client.CreateSpeech(ctx, gopenai.CreateSpeechRequest{
		Model:          gopenai.SpeechModel(a.ttsModel),
		Input:          text,
		Voice:          gopenai.SpeechVoice(voice),
		ResponseFormat: gopenai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return fmt.Errorf("tts synthesis: %w", err)
	}
	defer resp.Close()

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("tts synthesis: %w", err)
	}
	if _, err := io.Copy(f, resp); err != nil {
		return errors.Join(fmt.Errorf("tts synthesis: write audio: %w", err), f.Close())
	}
	return f.Close()
}

func translationSystemPrompt(targetLanguage string) string {
	return fmt.Sprintf(
		"You are a professional translator. Translate the following English text to %s. "+
			"Maintain the original meaning, tone, and context. "+
			"Return only the translated text without any additional comments.",
		targetLanguage,
	)
}
