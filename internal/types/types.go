package types

import "time"

// Kind distinguishes the two media asset flavors moving through the pipeline.
type Kind string

const (
	KindVideo Kind = "video"
	KindAudio Kind = "audio"
)

// Asset is a probed media file. Once measured it is treated as immutable and
// handed forward to the next pipeline stage.
type Asset struct {
	Path     string
	Duration time.Duration
	Kind     Kind
}

// SourceInfo describes a fetched remote video.
type SourceInfo struct {
	Path     string
	ID       string
	Title    string
	Uploader string
	Duration time.Duration
}

// MixSpec configures background/speech blending. Gains are plain amplitude
// multipliers; values outside [0, 1] are accepted and simply push loudness
// past unity.
type MixSpec struct {
	BackgroundGain float64
	SpeechGain     float64
}

// Report summarizes one translate call for observability and for the
// plain-text metadata file written when artifact retention is requested.
type Report struct {
	Input              string
	TargetLanguage     string
	Provider           string
	Voice              string
	SourceDuration     time.Duration
	SpeechDuration     time.Duration
	ReconciledDuration time.Duration
	SpeedFactor        float64
	TempoPlan          []float64
}
