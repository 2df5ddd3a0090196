package trainer

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/audite/eartrain/model"
	"github.com/audite/eartrain/theory"
)

// ChordTypeTrainer drills bare chord qualities played from a fixed base
// frequency, no progression context.
type ChordTypeTrainer struct {
	BaseFreq float64

	rng       *rand.Rand
	current   model.Quality
	generated bool
}

func NewChordTypeTrainer() *ChordTypeTrainer {
	return &ChordTypeTrainer{
		BaseFreq: 440.0,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// AllQualities lists every chord quality.
var AllQualities = []model.Quality{
	model.Major, model.Minor, model.Diminished, model.Augmented,
	model.Dominant7, model.Major7, model.Minor7, model.Minor7b5,
}

// Generate draws a quality from the allowed subset, or from all qualities
// when none are given.
func (t *ChordTypeTrainer) Generate(allowed []model.Quality) (model.Quality, error) {
	if allowed == nil {
		allowed = AllQualities
	}
	if len(allowed) == 0 {
		return 0, fmt.Errorf("%w: no chord qualities allowed", model.ErrEmptyChoicePool)
	}
	t.current = allowed[t.rng.Intn(len(allowed))]
	t.generated = true
	return t.current, nil
}

// Frequencies returns the chord tones built on BaseFreq.
func (t *ChordTypeTrainer) Frequencies() ([]float64, error) {
	if !t.generated {
		return nil, model.ErrNoProgression
	}
	intervals := theory.Intervals(t.current)
	res := make([]float64, len(intervals))
	for i, semitone := range intervals {
		res[i] = t.BaseFreq * math.Pow(2, float64(semitone)/12)
	}
	return res, nil
}

func (t *ChordTypeTrainer) SubmitAnswer(guess model.Quality) (bool, error) {
	if !t.generated {
		return false, model.ErrNoProgression
	}
	return guess == t.current, nil
}

func (t *ChordTypeTrainer) Current() model.Quality {
	return t.current
}
