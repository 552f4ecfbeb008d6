// Package synth selects and wires a speech-synthesis provider. Each provider
// has its own voice vocabulary and its own credential; voice validity is
// checked against the selected provider only.
package synth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/ports"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/ports/adapters/elevenlabs"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/ports/adapters/openai"
)

type Provider string

const (
	ProviderOpenAI     Provider = "openai"
	ProviderElevenLabs Provider = "elevenlabs"
)

var (
	ErrUnsupportedProvider = errors.New("unsupported synthesis provider")
	ErrMissingCredential   = errors.New("synthesis provider credential not supplied")
	ErrUnknownVoice        = errors.New("voice not in provider vocabulary")
)

// Options carries the credentials and model overrides the registry needs.
type Options struct {
	OpenAIKey       string
	OpenAITTSModel  string
	ElevenLabsKey   string
	ElevenLabsModel string
}

// ParseProvider maps a user-facing provider name onto the enum.
func ParseProvider(s string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(s))) {
	case ProviderOpenAI, "":
		return ProviderOpenAI, nil
	case ProviderElevenLabs:
		return ProviderElevenLabs, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedProvider, s)
	}
}

// New returns the synthesizer for p, or an error when the provider has no
// registered implementation or its credential is missing.
func New(p Provider, opts Options) (ports.SpeechSynthesizer, error) {
	switch p {
	case ProviderOpenAI:
		if opts.OpenAIKey == "" {
			return nil, fmt.Errorf("%w: openai", ErrMissingCredential)
		}
		return openai.New(opts.OpenAIKey, "", opts.OpenAITTSModel, ""), nil
	case ProviderElevenLabs:
		if opts.ElevenLabsKey == "" {
			return nil, fmt.Errorf("%w: elevenlabs", ErrMissingCredential)
		}
		return elevenlabs.New(opts.ElevenLabsKey, opts.ElevenLabsModel, ""), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, string(p))
	}
}

// Voices returns p's voice vocabulary.
func Voices(p Provider) []string {
	switch p {
	case ProviderOpenAI:
		return openai.Voices
	case ProviderElevenLabs:
		return elevenlabs.Voices
	default:
		return nil
	}
}

// DefaultVoice returns p's default voice.
func DefaultVoice(p Provider) string {
	switch p {
	case ProviderElevenLabs:
		return elevenlabs.DefaultVoice
	default:
		return openai.DefaultVoice
	}
}

// ValidateVoice checks voice against p's vocabulary.
func ValidateVoice(p Provider, voice string) error {
	for _, v := range Voices(p) {
		if v == voice {
			return nil
		}
	}
	return fmt.Errorf("%w: %q (provider %s offers %s)",
		ErrUnknownVoice, voice, p, strings.Join(Voices(p), ", "))
}
