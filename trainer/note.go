package trainer

import (
	"math"
	"math/rand"
	"time"

	"github.com/audite/eartrain/model"
)

// Note is a pitch class of the chromatic scale, C = 0.
type Note int

const (
	C Note = iota
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	ASharp
	B
)

var noteNames = []string{"C", "C♯", "D", "D♯", "E", "F", "F♯", "G", "G♯", "A", "A♯", "B"}

func (n Note) String() string {
	return noteNames[((int(n)%12)+12)%12]
}

// AllNotes in chromatic order.
var AllNotes = []Note{C, CSharp, D, DSharp, E, F, FSharp, G, GSharp, A, ASharp, B}

// NoteTrainer drills absolute pitch against an A reference tone.
type NoteTrainer struct {
	BaseFreq  float64
	MinOctave int
	MaxOctave int

	rng           *rand.Rand
	current       Note
	currentOctave int
	generated     bool
}

func NewNoteTrainer() *NoteTrainer {
	return &NoteTrainer{
		BaseFreq:  440.0,
		MinOctave: 4,
		MaxOctave: 4,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NoteFrequency computes the equal-tempered frequency of a note at an
// octave relative to A4.
func (t *NoteTrainer) NoteFrequency(n Note, octave int) float64 {
	semitonesFromA4 := int(n) - int(A) + (octave-4)*12
	return t.BaseFreq * math.Pow(2, float64(semitonesFromA4)/12)
}

// Reference returns the fixed A reference and its frequency at MinOctave.
func (t *NoteTrainer) Reference() (Note, float64) {
	return A, t.NoteFrequency(A, t.MinOctave)
}

// Generate draws a note and octave. When maxInterval is positive and a
// previous note exists, the draw is constrained to notes within that many
// semitones of it; if nothing qualifies the constraint is dropped.
func (t *NoteTrainer) Generate(allowed []Note, maxInterval int) (Note, int, error) {
	if len(allowed) == 0 {
		allowed = AllNotes
	}

	if maxInterval > 0 && t.generated {
		type candidate struct {
			note   Note
			octave int
		}
		var valid []candidate
		prev := int(t.current) + (t.currentOctave-4)*12
		for octave := t.MinOctave; octave <= t.MaxOctave; octave++ {
			for _, n := range allowed {
				curr := int(n) + (octave-4)*12
				d := curr - prev
				if d < 0 {
					d = -d
				}
				if d <= maxInterval {
					valid = append(valid, candidate{n, octave})
				}
			}
		}
		if len(valid) > 0 {
			pick := valid[t.rng.Intn(len(valid))]
			t.current, t.currentOctave = pick.note, pick.octave
			t.generated = true
			return t.current, t.currentOctave, nil
		}
	}

	t.current = allowed[t.rng.Intn(len(allowed))]
	t.currentOctave = t.MinOctave + t.rng.Intn(t.MaxOctave-t.MinOctave+1)
	t.generated = true
	return t.current, t.currentOctave, nil
}

// CurrentFrequency is the frequency of the last generated note.
func (t *NoteTrainer) CurrentFrequency() (float64, error) {
	if !t.generated {
		return 0, model.ErrNoProgression
	}
	return t.NoteFrequency(t.current, t.currentOctave), nil
}

// SubmitAnswer checks the guessed note; octave < 0 checks pitch class only.
func (t *NoteTrainer) SubmitAnswer(n Note, octave int) (bool, error) {
	if !t.generated {
		return false, model.ErrNoProgression
	}
	if octave >= 0 {
		return n == t.current && octave == t.currentOctave, nil
	}
	return n == t.current, nil
}
