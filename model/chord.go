package model

import (
	"fmt"
	"strings"
)

// Quality is the interval recipe of a chord, independent of its root.
type Quality int

const (
	Major Quality = iota
	Minor
	Diminished
	Augmented
	Dominant7
	Major7
	Minor7
	Minor7b5
)

func (q Quality) String() string {
	switch q {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Diminished:
		return "diminished"
	case Augmented:
		return "augmented"
	case Dominant7:
		return "dominant7"
	case Major7:
		return "maj7"
	case Minor7:
		return "m7"
	case Minor7b5:
		return "m7b5"
	}
	panic(fmt.Sprintf("unknown chord quality: %d", int(q)))
}

// ChordSymbol is a Roman-numeral chord of the major key, e.g. I or V7.
// Root offset and quality are fixed per symbol and never change.
type ChordSymbol int

const (
	I ChordSymbol = iota
	II
	III
	IIIAug
	III7
	IV
	V
	V7
	VI
	VII
	IMaj7
	IIm7
	IIIm7
	IVMaj7
	VIm7
	VIIm7b5
)

type symbolDef struct {
	name    string
	root    int
	quality Quality
}

var symbolDefs = map[ChordSymbol]symbolDef{
	I:       {"I", 0, Major},
	II:      {"II", 2, Minor},
	III:     {"III", 4, Minor},
	IIIAug:  {"IIIAUG", 4, Augmented},
	III7:    {"III7", 4, Dominant7},
	IV:      {"IV", 5, Major},
	V:       {"V", 7, Major},
	V7:      {"V7", 7, Dominant7},
	VI:      {"VI", 9, Minor},
	VII:     {"VII", 11, Diminished},
	IMaj7:   {"IMAJ7", 0, Major7},
	IIm7:    {"IIM7", 2, Minor7},
	IIIm7:   {"IIIM7", 4, Minor7},
	IVMaj7:  {"IVMAJ7", 5, Major7},
	VIm7:    {"VIM7", 9, Minor7},
	VIIm7b5: {"VIIM7B5", 11, Minor7b5},
}

// AllChordSymbols lists every symbol in definition order.
var AllChordSymbols = []ChordSymbol{
	I, II, III, IIIAug, III7, IV, V, V7, VI, VII,
	IMaj7, IIm7, IIIm7, IVMaj7, VIm7, VIIm7b5,
}

func (c ChordSymbol) def() symbolDef {
	d, ok := symbolDefs[c]
	if !ok {
		panic(fmt.Sprintf("unknown chord symbol: %d", int(c)))
	}
	return d
}

// Root returns the semitone offset of the chord root from the tonic.
func (c ChordSymbol) Root() int {
	return c.def().root
}

func (c ChordSymbol) Quality() Quality {
	return c.def().quality
}

func (c ChordSymbol) String() string {
	return c.def().name
}

// DisplayName renders the symbol the way the answer buttons show it:
// lowercase numerals for minor and diminished chords, "+" for augmented.
func (c ChordSymbol) DisplayName() string {
	d := c.def()
	switch d.quality {
	case Minor, Diminished:
		return strings.ToLower(d.name)
	case Minor7:
		return strings.ToLower(strings.TrimSuffix(d.name, "M7")) + "m7"
	case Minor7b5:
		return strings.ToLower(strings.TrimSuffix(d.name, "M7B5")) + "m7b5"
	case Major7:
		return strings.TrimSuffix(d.name, "MAJ7") + "maj7"
	case Augmented:
		return strings.TrimSuffix(d.name, "AUG") + "+"
	default:
		return d.name
	}
}

// ParseChordSymbol resolves a symbol name, accepting both canonical and
// display spellings. An unknown name is a caller error, not a panic.
func ParseChordSymbol(name string) (ChordSymbol, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, "+", "AUG")
	for _, c := range AllChordSymbols {
		if symbolDefs[c].name == normalized {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownChord, name)
}

// Progression is an ordered chord sequence. Answer checking is
// order-sensitive; a permutation of the right chords is wrong.
type Progression = []ChordSymbol

func ProgressionsEqual(a, b Progression) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// VoicedChord pairs a progression element with its chosen inversion and the
// rendered frequencies, one per voice in voice-leading order.
type VoicedChord struct {
	Chord       ChordSymbol
	Inversion   int
	Frequencies []float64
}
