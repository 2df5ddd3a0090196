package trainer

import (
	"math/rand"
	"time"

	"github.com/audite/eartrain/model"
)

// NoteValue is a duration in beats.
type NoteValue float64

const (
	Whole          NoteValue = 4.0
	Half           NoteValue = 2.0
	Quarter        NoteValue = 1.0
	Eighth         NoteValue = 0.5
	Sixteenth      NoteValue = 0.25
	TripletQuarter NoteValue = 1.0 / 3
	TripletEighth  NoteValue = 1.0 / 6
)

// RhythmPattern is a sequence of note values at a tempo.
type RhythmPattern struct {
	Notes         []NoteValue
	Tempo         int
	TimeSignature [2]int
}

// DurationSeconds is the pattern's total length at its tempo.
func (p RhythmPattern) DurationSeconds() float64 {
	beatDuration := 60.0 / float64(p.Tempo)
	var totalBeats float64
	for _, n := range p.Notes {
		totalBeats += float64(n)
	}
	return totalBeats * beatDuration
}

// RhythmTrainer drills rhythm patterns.
type RhythmTrainer struct {
	Tempo int

	rng     *rand.Rand
	current *RhythmPattern
}

func NewRhythmTrainer() *RhythmTrainer {
	return &RhythmTrainer{
		Tempo: 120,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Generate fills a pattern of the given beat length from the allowed note
// values, falling back to shorter values near the end of the bar. The
// default pool is quarters, eighths and halves.
func (t *RhythmTrainer) Generate(lengthBeats float64, timeSignature [2]int, allowed []NoteValue) RhythmPattern {
	if allowed == nil {
		allowed = []NoteValue{Quarter, Eighth, Half}
	}

	var notes []NoteValue
	remaining := lengthBeats
	for remaining > 0 {
		note := allowed[t.rng.Intn(len(allowed))]
		if float64(note) <= remaining {
			notes = append(notes, note)
			remaining -= float64(note)
			continue
		}
		var fitting []NoteValue
		for _, n := range allowed {
			if float64(n) <= remaining {
				fitting = append(fitting, n)
			}
		}
		if len(fitting) == 0 {
			break
		}
		note = fitting[t.rng.Intn(len(fitting))]
		notes = append(notes, note)
		remaining -= float64(note)
	}

	pattern := RhythmPattern{Notes: notes, Tempo: t.Tempo, TimeSignature: timeSignature}
	t.current = &pattern
	return pattern
}

func (t *RhythmTrainer) SubmitAnswer(guess []NoteValue) (bool, error) {
	if t.current == nil {
		return false, model.ErrNoProgression
	}
	if len(guess) != len(t.current.Notes) {
		return false, nil
	}
	for i := range guess {
		if guess[i] != t.current.Notes[i] {
			return false, nil
		}
	}
	return true, nil
}

func (t *RhythmTrainer) Current() *RhythmPattern {
	return t.current
}
