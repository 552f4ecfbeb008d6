package types

// Stage names the pipeline step that produced a failure.
type Stage string

const (
	StageAcquisition    Stage = "acquisition"
	StageProbe          Stage = "probe"
	StageExtraction     Stage = "extraction"
	StageTranscription  Stage = "transcription"
	StageTranslation    Stage = "translation"
	StageSynthesis      Stage = "synthesis"
	StageReconciliation Stage = "reconciliation"
	StageComposition    Stage = "composition"
)

// StageError wraps a component failure with the stage it occurred in.
// Every stage failure is fatal to the whole translate call; there is no
// internal retry, so the wrapped error carries the underlying tool's
// diagnostic output for the caller to act on.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return string(e.Stage) + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error { return e.Err }

// StageErr wraps err with its stage, passing nil through unchanged.
func StageErr(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}
