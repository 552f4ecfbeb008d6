package synth

import (
	"errors"
	"testing"
)

func TestParseProvider(t *testing.T) {
	tests := []struct {
		in      string
		want    Provider
		wantErr bool
	}{
		{"openai", ProviderOpenAI, false},
		{"elevenlabs", ProviderElevenLabs, false},
		{"ElevenLabs", ProviderElevenLabs, false},
		{" openai ", ProviderOpenAI, false},
		{"", ProviderOpenAI, false},
		{"polly", "", true},
	}
	for _, tt := range tests {
		got, err := ParseProvider(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedProvider) {
				t.Fatalf("ParseProvider(%q) err = %v, want ErrUnsupportedProvider", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseProvider(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseProvider(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNew_MissingCredential(t *testing.T) {
	if _, err := New(ProviderOpenAI, Options{}); !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential for openai without key, got %v", err)
	}
	if _, err := New(ProviderElevenLabs, Options{OpenAIKey: "sk-x"}); !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential for elevenlabs without key, got %v", err)
	}
}

func TestNew_WiresSelectedProvider(t *testing.T) {
	if s, err := New(ProviderOpenAI, Options{OpenAIKey: "sk-x"}); err != nil || s == nil {
		t.Fatalf("openai: got (%v, %v)", s, err)
	}
	if s, err := New(ProviderElevenLabs, Options{ElevenLabsKey: "el-x"}); err != nil || s == nil {
		t.Fatalf("elevenlabs: got (%v, %v)", s, err)
	}
	if _, err := New(Provider("polly"), Options{}); !errors.Is(err, ErrUnsupportedProvider) {
		t.Fatalf("expected ErrUnsupportedProvider, got %v", err)
	}
}

func TestValidateVoice_IsProviderScoped(t *testing.T) {
	if err := ValidateVoice(ProviderOpenAI, "shimmer"); err != nil {
		t.Fatalf("shimmer should be valid for openai: %v", err)
	}
	if err := ValidateVoice(ProviderElevenLabs, "Rachel"); err != nil {
		t.Fatalf("Rachel should be valid for elevenlabs: %v", err)
	}
	if err := ValidateVoice(ProviderOpenAI, "Rachel"); !errors.Is(err, ErrUnknownVoice) {
		t.Fatalf("Rachel must not validate for openai, got %v", err)
	}
	if err := ValidateVoice(ProviderElevenLabs, "shimmer"); !errors.Is(err, ErrUnknownVoice) {
		t.Fatalf("shimmer must not validate for elevenlabs, got %v", err)
	}
}

func TestDefaultVoice(t *testing.T) {
	if v := DefaultVoice(ProviderOpenAI); v != "shimmer" {
		t.Fatalf("openai default voice = %q", v)
	}
	if v := DefaultVoice(ProviderElevenLabs); v != "Rachel" {
		t.Fatalf("elevenlabs default voice = %q", v)
	}
}
