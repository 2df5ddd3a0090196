// Package voicelead picks chord inversions that minimize perceived melodic
// motion between successive chords.
package voicelead

import (
	"sort"

	"github.com/audite/eartrain/model"
	"github.com/audite/eartrain/theory"
	"github.com/audite/eartrain/util"
)

// NoAvoid disables the avoid-inversion constraint in BestFirstInversion.
const NoAvoid = -1

func mean(notes []int) float64 {
	var sum int
	for _, n := range notes {
		sum += n
	}
	return float64(sum) / float64(len(notes))
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// BestFirstInversion picks the inversion of the opening chord whose mean
// pitch sits closest to the next chord's root-position mean, skipping the
// inversion used last time so consecutive exercises don't open identically.
// If every inversion is excluded the globally closest one wins anyway.
func BestFirstInversion(chord, next model.ChordSymbol, avoid int) int {
	nextAvg := mean(theory.Voice(next, 0))

	type ranked struct {
		inversion int
		distance  float64
	}
	candidates := make([]ranked, 0, theory.NumInversions(chord))
	for inv := 0; inv < theory.NumInversions(chord); inv++ {
		d := abs(mean(theory.Voice(chord, inv)) - nextAvg)
		candidates = append(candidates, ranked{inv, d})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	for _, c := range candidates {
		if c.inversion != avoid {
			return c.inversion
		}
	}
	return candidates[0].inversion
}

// AssignmentCost is the total semitone motion when each note of the previous
// voicing, in order, moves to its nearest unclaimed note of the candidate
// voicing, searching octave shifts from -2 to +2. Greedy per voice, so not a
// true minimum-weight matching; close enough for three and four voices.
func AssignmentCost(previous, voicing []int) int {
	claimed := make([]bool, len(voicing))
	var total int
	for _, prev := range previous {
		best := -1
		bestIdx := -1
		for j, cand := range voicing {
			if claimed[j] {
				continue
			}
			for shift := -2; shift <= 2; shift++ {
				d := util.Abs(prev - (cand + 12*shift))
				if best == -1 || d < best {
					best = d
					bestIdx = j
				}
			}
		}
		if bestIdx == -1 {
			// more previous voices than chord voices: the leftover voice
			// doubles its nearest target without claiming it
			for _, cand := range voicing {
				for shift := -2; shift <= 2; shift++ {
					d := util.Abs(prev - (cand + 12*shift))
					if best == -1 || d < best {
						best = d
					}
				}
			}
			total += best
			continue
		}
		total += best
		claimed[bestIdx] = true
	}
	return total
}

// BestInversion returns the inversion of chord with the lowest assignment
// cost against the previous chord's voicing. Ties keep the earliest
// inversion.
func BestInversion(chord model.ChordSymbol, previous []int) int {
	bestInversion := 0
	bestCost := -1
	for inv := 0; inv < theory.NumInversions(chord); inv++ {
		cost := AssignmentCost(previous, theory.Voice(chord, inv))
		if bestCost == -1 || cost < bestCost {
			bestCost = cost
			bestInversion = inv
		}
	}
	return bestInversion
}
