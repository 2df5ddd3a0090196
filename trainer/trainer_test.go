package trainer

import (
	"math"
	"testing"

	"github.com/audite/eartrain/model"
	"github.com/stretchr/testify/assert"
)

func TestIntervalRangeFiltering(t *testing.T) {
	assert := assert.New(t)
	it := NewIntervalTrainer()

	for i := 0; i < 100; i++ {
		iv, err := it.Generate(3, 7)
		assert.NoError(err)
		assert.GreaterOrEqual(int(iv), 3)
		assert.LessOrEqual(int(iv), 7)
	}
}

func TestIntervalEmptyRange(t *testing.T) {
	it := NewIntervalTrainer()
	_, err := it.Generate(40, 50)
	assert.ErrorIs(t, err, model.ErrEmptyChoicePool)
}

func TestIntervalFrequencies(t *testing.T) {
	assert := assert.New(t)
	it := NewIntervalTrainer()

	_, _, err := it.Frequencies()
	assert.ErrorIs(err, model.ErrNoProgression)

	_, err = it.Generate(12, 12) // force an octave
	assert.NoError(err)
	f1, f2, err := it.Frequencies()
	assert.NoError(err)
	assert.Equal(440.0, f1)
	if it.Direction() == Ascending {
		assert.InDelta(880.0, f2, 1e-9)
	} else {
		assert.InDelta(220.0, f2, 1e-9)
	}
}

func TestIntervalAnswer(t *testing.T) {
	assert := assert.New(t)
	it := NewIntervalTrainer()
	iv, err := it.Generate(0, 36)
	assert.NoError(err)

	ok, err := it.SubmitAnswer(iv)
	assert.NoError(err)
	assert.True(ok)

	wrong := iv + 1
	if wrong > ThreeOctaves {
		wrong = Unison
	}
	ok, err = it.SubmitAnswer(wrong)
	assert.NoError(err)
	assert.False(ok)
}

func TestNoteFrequency(t *testing.T) {
	assert := assert.New(t)
	nt := NewNoteTrainer()

	assert.InDelta(440.0, nt.NoteFrequency(A, 4), 1e-9)
	assert.InDelta(261.6255653005986, nt.NoteFrequency(C, 4), 1e-6)
	assert.InDelta(880.0, nt.NoteFrequency(A, 5), 1e-9)

	ref, freq := nt.Reference()
	assert.Equal(A, ref)
	assert.InDelta(440.0, freq, 1e-9)
}

func TestNoteMaxIntervalConstraint(t *testing.T) {
	assert := assert.New(t)
	nt := NewNoteTrainer()
	nt.MinOctave, nt.MaxOctave = 3, 5

	prev, prevOct, err := nt.Generate(nil, 0)
	assert.NoError(err)

	for i := 0; i < 100; i++ {
		n, oct, err := nt.Generate(nil, 4)
		assert.NoError(err)
		prevSemis := int(prev) + (prevOct-4)*12
		currSemis := int(n) + (oct-4)*12
		assert.LessOrEqual(int(math.Abs(float64(currSemis-prevSemis))), 4)
		prev, prevOct = n, oct
	}
}

func TestNoteAnswerWithAndWithoutOctave(t *testing.T) {
	assert := assert.New(t)
	nt := NewNoteTrainer()
	n, oct, err := nt.Generate([]Note{C}, 0)
	assert.NoError(err)
	assert.Equal(C, n)

	ok, err := nt.SubmitAnswer(C, oct)
	assert.NoError(err)
	assert.True(ok)

	ok, err = nt.SubmitAnswer(C, -1)
	assert.NoError(err)
	assert.True(ok)

	ok, err = nt.SubmitAnswer(D, -1)
	assert.NoError(err)
	assert.False(ok)
}

func TestChordTypeTrainer(t *testing.T) {
	assert := assert.New(t)
	ct := NewChordTypeTrainer()

	_, err := ct.Generate([]model.Quality{})
	assert.ErrorIs(err, model.ErrEmptyChoicePool)

	q, err := ct.Generate([]model.Quality{model.Major})
	assert.NoError(err)
	assert.Equal(model.Major, q)

	freqs, err := ct.Frequencies()
	assert.NoError(err)
	assert.Len(freqs, 3)
	assert.Equal(440.0, freqs[0])
	assert.InDelta(440.0*math.Pow(2, 7.0/12), freqs[2], 1e-9)

	ok, err := ct.SubmitAnswer(model.Major)
	assert.NoError(err)
	assert.True(ok)

	ok, err = ct.SubmitAnswer(model.Minor)
	assert.NoError(err)
	assert.False(ok)
}

func TestRhythmPatternFillsBar(t *testing.T) {
	assert := assert.New(t)
	rt := NewRhythmTrainer()

	for i := 0; i < 50; i++ {
		p := rt.Generate(4, [2]int{4, 4}, nil)
		var total float64
		for _, n := range p.Notes {
			total += float64(n)
		}
		assert.InDelta(4.0, total, 1e-9)
	}
}

func TestRhythmDuration(t *testing.T) {
	p := RhythmPattern{
		Notes: []NoteValue{Quarter, Quarter, Half},
		Tempo: 120,
	}
	// four beats at 120 bpm
	assert.InDelta(t, 2.0, p.DurationSeconds(), 1e-9)
}

func TestRhythmAnswer(t *testing.T) {
	assert := assert.New(t)
	rt := NewRhythmTrainer()

	_, err := rt.SubmitAnswer([]NoteValue{Quarter})
	assert.ErrorIs(err, model.ErrNoProgression)

	p := rt.Generate(2, [2]int{4, 4}, []NoteValue{Quarter})
	assert.Equal([]NoteValue{Quarter, Quarter}, p.Notes)

	ok, err := rt.SubmitAnswer([]NoteValue{Quarter, Quarter})
	assert.NoError(err)
	assert.True(ok)

	ok, err = rt.SubmitAnswer([]NoteValue{Half})
	assert.NoError(err)
	assert.False(ok)
}
