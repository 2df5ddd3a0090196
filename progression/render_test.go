package progression

import (
	"testing"

	"github.com/audite/eartrain/model"
	"github.com/stretchr/testify/assert"
)

func TestFrequenciesBeforeGenerate(t *testing.T) {
	trainer := NewTrainer()
	_, err := trainer.Frequencies(DefaultRenderOptions())
	assert.ErrorIs(t, err, model.ErrNoProgression)
}

func TestTonicChordExactFrequencies(t *testing.T) {
	assert := assert.New(t)
	trainer := NewTrainer()
	trainer.SetProgression(model.Progression{model.I})

	freqs, err := trainer.Frequencies(RenderOptions{BaseOctave: 4})
	assert.NoError(err)
	assert.Len(freqs, 1)
	assert.Len(freqs[0], 3)

	// C4, E4, G4 in equal temperament from A4=440
	assert.InDelta(261.6255653005986, freqs[0][0], 1e-6)
	assert.InDelta(329.6275569128699, freqs[0][1], 1e-6)
	assert.InDelta(391.99543598174927, freqs[0][2], 1e-6)
}

func TestIncludeBassPrependsSubOctaveRoot(t *testing.T) {
	assert := assert.New(t)
	trainer := NewTrainer()
	trainer.SetProgression(model.Progression{model.V})

	freqs, err := trainer.Frequencies(RenderOptions{BaseOctave: 4, IncludeBass: true})
	assert.NoError(err)
	assert.Len(freqs[0], 4)

	// G3 below the G4-B4-D5 voicing
	assert.InDelta(195.99771799087463, freqs[0][0], 1e-6)
	assert.InDelta(391.99543598174927, freqs[0][1], 1e-6)
}

func TestVoiceOrderIsNotSorted(t *testing.T) {
	assert := assert.New(t)
	trainer := NewTrainer()

	// I then V: the first chord leans up toward V, so its voicing starts
	// above the octave wrap and is not ascending from the root.
	trainer.SetProgression(model.Progression{model.I, model.V})
	voiced, err := trainer.RenderVoiced(DefaultRenderOptions())
	assert.NoError(err)
	assert.Equal(2, voiced[0].Inversion)

	// second inversion of I voices G before the wrapped C and E
	freqs := voiced[0].Frequencies
	assert.Len(freqs, 3)
	assert.InDelta(391.99543598174927, freqs[0], 1e-6) // G4
	assert.InDelta(523.2511306011972, freqs[1], 1e-6)  // C5
	assert.InDelta(659.2551138257398, freqs[2], 1e-6)  // E5
}

func TestTonicInversionAvoidsLastExercise(t *testing.T) {
	assert := assert.New(t)
	trainer := NewTrainer()
	trainer.SetProgression(model.Progression{model.I, model.V})

	first, err := trainer.RenderVoiced(DefaultRenderOptions())
	assert.NoError(err)

	trainer.SetProgression(model.Progression{model.I, model.V})
	second, err := trainer.RenderVoiced(DefaultRenderOptions())
	assert.NoError(err)

	assert.NotEqual(first[0].Inversion, second[0].Inversion)
}

func TestLaterChordsUseVoiceLeading(t *testing.T) {
	assert := assert.New(t)
	trainer := NewTrainer()
	trainer.SetProgression(model.Progression{model.I, model.V, model.I})

	voiced, err := trainer.RenderVoiced(DefaultRenderOptions())
	assert.NoError(err)
	assert.Len(voiced, 3)

	// with inversions disabled everything after the first chord stays in
	// root position
	trainer.SetProgression(model.Progression{model.I, model.V, model.I})
	flat, err := trainer.RenderVoiced(RenderOptions{BaseOctave: 4})
	assert.NoError(err)
	assert.Equal(0, flat[1].Inversion)
	assert.Equal(0, flat[2].Inversion)
}
