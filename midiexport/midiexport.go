// Package midiexport writes a voiced progression as a standard MIDI file,
// one chord per half note, so exercises can be replayed in a DAW.
package midiexport

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/audite/eartrain/model"
	"github.com/audite/eartrain/theory"
)

const (
	ticksPerQuarter = 960
	chordTicks      = ticksPerQuarter * 2
	velocity        = 90
	channel         = 0
)

// noteNumber maps a semitone offset from the tonic to a MIDI key, with
// offset 0 at C of the base octave (C4 = 60).
func noteNumber(offset, baseOctave int) uint8 {
	return uint8(12*(baseOctave+1) + offset)
}

// Write renders the voiced chords to a type-0 MIDI file.
func Write(path string, chords []model.VoicedChord, baseOctave int, bpm float64) error {
	if len(chords) == 0 {
		return fmt.Errorf("%w: empty progression", model.ErrInvalidParameter)
	}
	if bpm <= 0 {
		return fmt.Errorf("%w: bpm %v", model.ErrInvalidParameter, bpm)
	}

	var s smf.SMF
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var track smf.Track
	track.Add(0, smf.MetaTempo(bpm))

	for _, chord := range chords {
		notes := theory.Voice(chord.Chord, chord.Inversion)
		for _, n := range notes {
			track.Add(0, midi.NoteOn(channel, noteNumber(n, baseOctave), velocity))
		}
		for i, n := range notes {
			delta := uint32(0)
			if i == 0 {
				delta = chordTicks
			}
			track.Add(delta, midi.NoteOff(channel, noteNumber(n, baseOctave)))
		}
	}
	track.Close(0)
	s.Tracks = append(s.Tracks, track)

	if err := s.WriteFile(path); err != nil {
		return fmt.Errorf("could not write midi file: %w", err)
	}
	return nil
}
