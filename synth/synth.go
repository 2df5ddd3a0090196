// Package synth renders frequencies into instrument-like waveforms using
// additive harmonic synthesis and ADSR envelopes. Every call is a pure
// function of its inputs and allocates a fresh buffer, so sessions can
// synthesize in parallel without coordination.
package synth

import (
	"fmt"
	"math"

	"github.com/audite/eartrain/model"
)

// middleC anchors pitch-class math for root detection, matching the
// upstream player's C reference.
const middleC = 262.0

// Synthesizer renders tones at a fixed sample rate.
type Synthesizer struct {
	SampleRate int
}

func New(sampleRate int) *Synthesizer {
	return &Synthesizer{SampleRate: sampleRate}
}

// additive sums the profile's partials for one fundamental and normalizes
// the peak to 1.0 so many-partial instruments don't clip before the
// envelope is applied.
func (s *Synthesizer) additive(freq float64, n int, prof Profile) []float64 {
	waveform := make([]float64, n)
	for _, p := range prof.Partials {
		w := 2 * math.Pi * freq * p.Ratio
		for i := range waveform {
			t := float64(i) / float64(s.SampleRate)
			waveform[i] += math.Sin(w*t) * p.Amp
		}
	}

	var peak float64
	for _, v := range waveform {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak > 0 {
		for i := range waveform {
			waveform[i] /= peak
		}
	}
	return waveform
}

// Tone synthesizes a single enveloped note.
func (s *Synthesizer) Tone(freq, duration float64, prof Profile) ([]float64, error) {
	if freq <= 0 {
		return nil, fmt.Errorf("%w: frequency %v", model.ErrInvalidParameter, freq)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%w: duration %v", model.ErrInvalidParameter, duration)
	}

	n := int(float64(s.SampleRate) * duration)
	waveform := s.additive(freq, n, prof)
	envelope := Envelope(n, s.SampleRate, prof.Envelope)
	for i := range waveform {
		waveform[i] *= envelope[i]
	}
	return waveform, nil
}

// ChordOptions tune Chord synthesis.
type ChordOptions struct {
	// RootPitchClass is the chord's theoretical root as semitones above C,
	// or -1 to skip root emphasis.
	RootPitchClass int
	// RootVolumeMultiplier re-adds the root tone scaled by
	// (multiplier-1.0)*0.3 when greater than 1.
	RootVolumeMultiplier float64
}

// Chord synthesizes simultaneous frequencies: each tone independently, each
// scaled by 1/sqrt(n) before summing, optionally with the theoretical root
// emphasized, then peak-normalized to 0.9 to leave headroom before PCM
// quantization.
func (s *Synthesizer) Chord(freqs []float64, duration float64, prof Profile, opts ChordOptions) ([]float64, error) {
	if len(freqs) == 0 {
		return nil, fmt.Errorf("%w: no frequencies", model.ErrInvalidParameter)
	}

	toneVolume := 1.0 / math.Sqrt(float64(len(freqs)))

	var waveform []float64
	for _, freq := range freqs {
		tone, err := s.Tone(freq, duration, prof)
		if err != nil {
			return nil, err
		}
		if waveform == nil {
			waveform = make([]float64, len(tone))
		}
		for i := range tone {
			waveform[i] += tone[i] * toneVolume
		}
	}

	if opts.RootVolumeMultiplier > 1.0 && opts.RootPitchClass >= 0 {
		rootFreq := rootFrequency(freqs, opts.RootPitchClass)
		rootTone, err := s.Tone(rootFreq, duration, prof)
		if err != nil {
			return nil, err
		}
		extra := (opts.RootVolumeMultiplier - 1.0) * 0.3
		for i := range rootTone {
			waveform[i] += rootTone[i] * extra
		}
	}

	Normalize(waveform, 0.9)
	return waveform, nil
}

// rootFrequency finds the chord tone whose pitch class is circularly
// closest to the theoretical root's pitch class. Inversions can place the
// root anywhere in the voicing, so the lowest tone is not good enough.
func rootFrequency(freqs []float64, rootPitchClass int) float64 {
	target := math.Mod(float64(rootPitchClass), 12)
	best := freqs[0]
	bestDistance := math.Inf(1)

	for _, f := range freqs {
		if f <= 0 {
			continue
		}
		semitonesFromC := math.Log2(f/middleC) * 12
		noteClass := math.Mod(math.Mod(semitonesFromC, 12)+12, 12)

		d := math.Abs(noteClass - target)
		if 12-d < d {
			d = 12 - d
		}
		if d < bestDistance {
			bestDistance = d
			best = f
		}
	}
	return best
}

// Normalize scales the buffer in place so its peak magnitude equals the
// given ceiling. Silent buffers stay silent.
func Normalize(buf []float64, peak float64) {
	var max float64
	for _, v := range buf {
		if a := math.Abs(v); a > max {
			max = a
		}
	}
	if max == 0 {
		return
	}
	scale := peak / max
	for i := range buf {
		buf[i] *= scale
	}
}
