package synth

import (
	"math"
	"testing"

	"github.com/audite/eartrain/model"
	"github.com/stretchr/testify/assert"
)

func peak(buf []float64) float64 {
	var max float64
	for _, v := range buf {
		if a := math.Abs(v); a > max {
			max = a
		}
	}
	return max
}

func TestAdditiveNormalizesPeakToOne(t *testing.T) {
	s := New(44100)
	for _, name := range ProfileNames() {
		buf := s.additive(440, 44100/2, ProfileFor(name))
		assert.InDelta(t, 1.0, peak(buf), 1e-9, "instrument %v", name)
	}
}

func TestToneStaysWithinUnitRange(t *testing.T) {
	s := New(44100)
	for _, name := range ProfileNames() {
		buf, err := s.Tone(261.63, 0.8, ProfileFor(name))
		assert.NoError(t, err)
		assert.LessOrEqual(t, peak(buf), 1.0, "instrument %v", name)
	}
}

func TestToneRejectsDegenerateInput(t *testing.T) {
	s := New(44100)

	_, err := s.Tone(0, 0.5, ProfileFor("piano"))
	assert.ErrorIs(t, err, model.ErrInvalidParameter)

	_, err = s.Tone(-440, 0.5, ProfileFor("piano"))
	assert.ErrorIs(t, err, model.ErrInvalidParameter)

	_, err = s.Tone(440, 0, ProfileFor("piano"))
	assert.ErrorIs(t, err, model.ErrInvalidParameter)

	_, err = s.Chord(nil, 0.5, ProfileFor("piano"), ChordOptions{RootPitchClass: -1})
	assert.ErrorIs(t, err, model.ErrInvalidParameter)
}

func TestEnvelopeBoundaries(t *testing.T) {
	assert := assert.New(t)
	env := ADSR{Attack: 0.1, Decay: 0.2, Sustain: 0.5, Release: 0.2}
	sampleRate := 1000
	n := 1001 // exactly 1s, so the last sample lands on totalDuration
	buf := Envelope(n, sampleRate, env)

	assert.Equal(0.0, buf[0])

	// end of attack reaches full level
	assert.InDelta(1.0, buf[100], 1e-9)

	// sustain plateau holds until the release window opens at 0.8s
	assert.InDelta(0.5, buf[500], 1e-9)
	assert.InDelta(0.5, buf[800], 1e-9)

	// fully released by the end
	assert.InDelta(0.0, buf[n-1], 1e-9)
}

func TestEnvelopeZeroAttackStartsAtFull(t *testing.T) {
	buf := Envelope(100, 1000, ADSR{Attack: 0, Decay: 0.01, Sustain: 0.5, Release: 0.01})
	assert.Equal(t, 1.0, buf[0])
}

func TestChordNormalizedToHeadroomCeiling(t *testing.T) {
	s := New(44100)
	freqs := []float64{261.63, 329.63, 392.0}
	buf, err := s.Chord(freqs, 0.8, ProfileFor("piano"), ChordOptions{RootPitchClass: -1})
	assert.NoError(t, err)
	assert.InDelta(t, 0.9, peak(buf), 1e-9)
}

func TestChordRootEmphasisKeepsCeiling(t *testing.T) {
	s := New(44100)
	freqs := []float64{329.63, 392.0, 523.25} // C major first inversion, root on top
	buf, err := s.Chord(freqs, 0.5, ProfileFor("piano"), ChordOptions{
		RootPitchClass:       0,
		RootVolumeMultiplier: 2.0,
	})
	assert.NoError(t, err)
	assert.InDelta(t, 0.9, peak(buf), 1e-9)
}

func TestRootFrequencyFindsInvertedRoot(t *testing.T) {
	assert := assert.New(t)

	// C major first inversion: E4, G4, C5. The theoretical root C is the
	// highest tone, not the lowest.
	freqs := []float64{329.63, 392.0, 523.25}
	assert.Equal(523.25, rootFrequency(freqs, 0))

	// G root in a G major voicing
	assert.Equal(392.0, rootFrequency([]float64{392.0, 493.88, 587.33}, 7))
}

func TestNormalizeSilence(t *testing.T) {
	buf := []float64{0, 0, 0}
	Normalize(buf, 0.9)
	assert.Equal(t, []float64{0, 0, 0}, buf)
}

func TestToPCM16Clamps(t *testing.T) {
	pcm := ToPCM16([]float64{0, 1, -1, 1.5, -2})
	assert.Equal(t, []int{0, 32767, -32767, 32767, -32767}, pcm)
}

func TestProfileForFallsBackToPiano(t *testing.T) {
	assert.Equal(t, "piano", ProfileFor("theremin").Name)
	assert.Equal(t, "bell", ProfileFor("bell").Name)
}
