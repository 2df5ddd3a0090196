package progression

import (
	"math"

	"github.com/audite/eartrain/model"
	"github.com/audite/eartrain/theory"
	"github.com/audite/eartrain/voicelead"
)

// RenderOptions control Frequencies.
type RenderOptions struct {
	// BaseOctave places semitone offset 0 (scientific pitch, 4 = middle C
	// octave).
	BaseOctave int
	// UseInversions enables voice-led inversion selection for chords
	// after the first.
	UseInversions bool
	// IncludeBass prepends the un-inverted chord root an octave below
	// BaseOctave.
	IncludeBass bool
}

// DefaultRenderOptions match the trainer UI defaults.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{BaseOctave: 4, UseInversions: true}
}

// frequency converts a semitone offset from the tonic into Hz. A sits 9
// semitones above C, so offset 0 at octave 4 lands on middle C.
func (t *Trainer) frequency(offset, baseOctave int) float64 {
	octave := baseOctave + int(math.Floor(float64(offset)/12))
	noteInOctave := ((offset % 12) + 12) % 12
	semitonesFromA4 := (octave-4)*12 + noteInOctave - 9
	return t.BaseFreq * math.Pow(2, float64(semitonesFromA4)/12)
}

// Frequencies renders the current progression to per-chord frequency lists.
// The first chord's inversion leans toward the second chord's register and
// avoids the previous exercise's tonic voicing; later chords follow the
// voice-leading optimizer against the previous chord's semitone voicing.
// Voice order is preserved, never sorted: sorting would break the
// voice-to-voice continuity the optimizer just computed.
func (t *Trainer) Frequencies(opts RenderOptions) ([][]float64, error) {
	voiced, err := t.RenderVoiced(opts)
	if err != nil {
		return nil, err
	}
	res := make([][]float64, len(voiced))
	for i, v := range voiced {
		res[i] = v.Frequencies
	}
	return res, nil
}

// RenderVoiced is Frequencies plus the chosen inversion per chord.
func (t *Trainer) RenderVoiced(opts RenderOptions) ([]model.VoicedChord, error) {
	if t.current == nil {
		return nil, model.ErrNoProgression
	}

	res := make([]model.VoicedChord, 0, len(t.current))
	var previousNotes []int

	for i, chord := range t.current {
		inversion := 0
		if i == 0 && len(t.current) > 1 {
			inversion = voicelead.BestFirstInversion(chord, t.current[1], t.lastTonicInversion)
			t.lastTonicInversion = inversion
		} else if i > 0 && opts.UseInversions && previousNotes != nil {
			inversion = voicelead.BestInversion(chord, previousNotes)
		}

		notes := theory.Voice(chord, inversion)

		var freqs []float64
		if opts.IncludeBass {
			freqs = append(freqs, t.frequency(chord.Root(), opts.BaseOctave-1))
		}
		for _, n := range notes {
			freqs = append(freqs, t.frequency(n, opts.BaseOctave))
		}

		res = append(res, model.VoicedChord{Chord: chord, Inversion: inversion, Frequencies: freqs})
		previousNotes = notes
	}

	return res, nil
}
