// Package trainer holds the simple recognition trainers: intervals, notes,
// chord qualities and rhythms. Each draws a random stimulus and checks a
// submitted answer for equality.
package trainer

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/audite/eartrain/model"
)

// Interval is a musical interval in semitones, 0 through 36.
type Interval int

const (
	Unison Interval = iota
	MinorSecond
	MajorSecond
	MinorThird
	MajorThird
	PerfectFourth
	AugmentedFourth
	PerfectFifth
	MinorSixth
	MajorSixth
	MinorSeventh
	MajorSeventh
	Octave
	MinorNinth
	MajorNinth
	MinorTenth
	MajorTenth
	PerfectEleventh
	AugmentedEleventh
	PerfectTwelfth
	MinorThirteenth
	MajorThirteenth
	MinorFourteenth
	MajorFourteenth
	TwoOctaves
	MinorSixteenth
	MajorSixteenth
	PerfectSeventeenth
	MinorEighteenth
	MajorEighteenth
	MinorNineteenth
	MajorNineteenth
	PerfectTwentieth
	MinorTwentyFirst
	MajorTwentyFirst
	MinorTwentySecond
	ThreeOctaves
)

var intervalNames = []string{
	"UNISON", "MINOR_SECOND", "MAJOR_SECOND", "MINOR_THIRD", "MAJOR_THIRD",
	"PERFECT_FOURTH", "AUGMENTED_FOURTH", "PERFECT_FIFTH", "MINOR_SIXTH",
	"MAJOR_SIXTH", "MINOR_SEVENTH", "MAJOR_SEVENTH", "OCTAVE",
	"MINOR_NINTH", "MAJOR_NINTH", "MINOR_TENTH", "MAJOR_TENTH",
	"PERFECT_ELEVENTH", "AUGMENTED_ELEVENTH", "PERFECT_TWELFTH",
	"MINOR_THIRTEENTH", "MAJOR_THIRTEENTH", "MINOR_FOURTEENTH",
	"MAJOR_FOURTEENTH", "TWO_OCTAVES", "MINOR_SIXTEENTH",
	"MAJOR_SIXTEENTH", "PERFECT_SEVENTEENTH", "MINOR_EIGHTEENTH",
	"MAJOR_EIGHTEENTH", "MINOR_NINETEENTH", "MAJOR_NINETEENTH",
	"PERFECT_TWENTIETH", "MINOR_TWENTY_FIRST", "MAJOR_TWENTY_FIRST",
	"MINOR_TWENTY_SECOND", "THREE_OCTAVES",
}

func (i Interval) String() string {
	if i < 0 || int(i) >= len(intervalNames) {
		return fmt.Sprintf("Interval(%d)", int(i))
	}
	return intervalNames[i]
}

// Direction of interval playback.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// IntervalTrainer draws random intervals and checks guesses.
type IntervalTrainer struct {
	BaseFreq float64

	rng       *rand.Rand
	current   Interval
	direction Direction
	generated bool
}

func NewIntervalTrainer() *IntervalTrainer {
	return &IntervalTrainer{
		BaseFreq: 440.0,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Generate draws an interval between low and high semitones inclusive and
// a random direction. An empty range surfaces ErrEmptyChoicePool.
func (t *IntervalTrainer) Generate(low, high int) (Interval, error) {
	var pool []Interval
	for i := Unison; i <= ThreeOctaves; i++ {
		if int(i) >= low && int(i) <= high {
			pool = append(pool, i)
		}
	}
	if len(pool) == 0 {
		return 0, fmt.Errorf("%w: no intervals in range [%d,%d]", model.ErrEmptyChoicePool, low, high)
	}

	t.current = pool[t.rng.Intn(len(pool))]
	t.direction = Direction(t.rng.Intn(2))
	t.generated = true
	return t.current, nil
}

// Frequencies returns the two tones of the current interval, ordered by
// the drawn direction.
func (t *IntervalTrainer) Frequencies() (float64, float64, error) {
	if !t.generated {
		return 0, 0, model.ErrNoProgression
	}
	second := t.BaseFreq * math.Pow(2, float64(t.current)/12)
	if t.direction == Descending {
		second = t.BaseFreq * math.Pow(2, -float64(t.current)/12)
	}
	return t.BaseFreq, second, nil
}

func (t *IntervalTrainer) Direction() Direction {
	return t.direction
}

func (t *IntervalTrainer) SubmitAnswer(guess Interval) (bool, error) {
	if !t.generated {
		return false, model.ErrNoProgression
	}
	return guess == t.current, nil
}

func (t *IntervalTrainer) Current() Interval {
	return t.current
}
