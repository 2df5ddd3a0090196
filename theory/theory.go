// Package theory holds the interval tables and the inversion calculator.
// Everything here is a pure function of its inputs.
package theory

import (
	"fmt"

	"github.com/audite/eartrain/model"
)

var qualityIntervals = map[model.Quality][]int{
	model.Major:      {0, 4, 7},
	model.Minor:      {0, 3, 7},
	model.Diminished: {0, 3, 6},
	model.Augmented:  {0, 4, 8},
	model.Dominant7:  {0, 4, 7, 10},
	model.Major7:     {0, 4, 7, 11},
	model.Minor7:     {0, 3, 7, 10},
	model.Minor7b5:   {0, 3, 6, 10},
}

// Intervals returns the canonical ascending semitone intervals for a
// quality. The quality set is closed and validated at symbol definition,
// so an unknown quality is a bug in the caller.
func Intervals(q model.Quality) []int {
	intervals, ok := qualityIntervals[q]
	if !ok {
		panic(fmt.Sprintf("no intervals defined for quality %d", int(q)))
	}
	res := make([]int, len(intervals))
	copy(res, intervals)
	return res
}

// NumInversions is 3 for triads and 4 for seventh chords.
func NumInversions(c model.ChordSymbol) int {
	return len(qualityIntervals[c.Quality()])
}

// Voice returns the semitone offsets from the tonic for a chord at the
// given inversion. Rotated-out notes move up an octave, so the pitch-class
// set is unchanged; only octave placement differs.
func Voice(c model.ChordSymbol, inversion int) []int {
	intervals := Intervals(c.Quality())
	n := len(intervals)
	k := ((inversion % n) + n) % n

	if k > 0 {
		rotated := make([]int, 0, n)
		rotated = append(rotated, intervals[k:]...)
		for _, v := range intervals[:k] {
			rotated = append(rotated, v+12)
		}
		intervals = rotated
	}

	root := c.Root()
	res := make([]int, n)
	for i, v := range intervals {
		res[i] = root + v
	}
	return res
}
