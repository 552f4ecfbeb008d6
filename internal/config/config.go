// Package config loads optional YAML defaults that sit under the command
// line flags: a value set explicitly on the command line always wins.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is probed when no --config flag is given; a missing file is
// not an error in that case.
const DefaultPath = "vtrans.yaml"

type Defaults struct {
	TargetLanguage string   `yaml:"target_language"`
	Voice          string   `yaml:"voice"`
	Provider       string   `yaml:"provider"`
	Mix            *bool    `yaml:"mix_with_background"`
	BackgroundGain *float64 `yaml:"background_gain"`
	SpeechGain     *float64 `yaml:"speech_gain"`
	YouTubeDir     string   `yaml:"youtube_dir"`
}

// Load reads defaults from path. When required is false a missing file
// yields zero defaults; any other read or parse failure is reported.
func Load(path string, required bool) (Defaults, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return Defaults{}, nil
		}
		return Defaults{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var d Defaults
	if err := yaml.Unmarshal(b, &d); err != nil {
		return Defaults{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return d, nil
}
