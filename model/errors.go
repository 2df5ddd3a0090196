package model

import "errors"

var (
	// ErrUnknownChord means a chord name is not in the vocabulary.
	ErrUnknownChord = errors.New("unknown chord")

	// ErrNoProgression means frequencies or an answer were requested
	// before anything was generated. Generate first, then retry.
	ErrNoProgression = errors.New("no progression generated yet")

	// ErrEmptyChoicePool means range or deactivation filters left nothing
	// to pick from.
	ErrEmptyChoicePool = errors.New("no candidates left to choose from")

	// ErrInvalidParameter covers non-positive durations, frequencies and
	// similar degenerate synthesis inputs.
	ErrInvalidParameter = errors.New("invalid parameter")
)
