package synth

// Partial is one harmonic of an instrument voice: a frequency ratio against
// the fundamental and its relative amplitude.
type Partial struct {
	Ratio float64
	Amp   float64
}

// ADSR holds envelope timings in seconds; Sustain is a level in [0,1].
type ADSR struct {
	Attack  float64
	Decay   float64
	Sustain float64
	Release float64
}

// Profile describes one instrument: its partials and its envelope.
type Profile struct {
	Name     string
	Partials []Partial
	Envelope ADSR
}

// Built-in instrument voices. Bell uses inharmonic partials on purpose;
// flute is nearly a pure sine with a soft attack.
var profiles = map[string]Profile{
	"piano": {
		Name: "piano",
		Partials: []Partial{
			{1.0, 1.0},
			{2.0, 0.6},
			{3.0, 0.3},
			{4.0, 0.2},
		},
		Envelope: ADSR{Attack: 0.01, Decay: 0.3, Sustain: 0.2, Release: 0.2},
	},
	"bell": {
		Name: "bell",
		Partials: []Partial{
			{0.9, 0.5},
			{1.2, 0.7},
			{2.1, 0.6},
			{3.5, 0.4},
		},
		Envelope: ADSR{Attack: 0.15, Decay: 0.1, Sustain: 0.8, Release: 0.3},
	},
	"violin": {
		Name: "violin",
		Partials: []Partial{
			{1.0, 1.0},
			{2.0, 0.9},
			{3.0, 0.7},
			{4.0, 0.5},
			{5.0, 0.3},
			{6.0, 0.2},
		},
		Envelope: ADSR{Attack: 0.03, Decay: 0.05, Sustain: 0.9, Release: 0.1},
	},
	"flute": {
		Name: "flute",
		Partials: []Partial{
			{1.0, 1.0},
			{2.0, 0.2},
			{3.0, 0.05},
		},
		Envelope: ADSR{Attack: 0.15, Decay: 0.02, Sustain: 0.85, Release: 0.08},
	},
}

// ProfileFor returns the named instrument profile, defaulting to piano for
// unknown names the way the upstream player does.
func ProfileFor(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	return profiles["piano"]
}

// ProfileNames lists the built-in instruments.
func ProfileNames() []string {
	return []string{"piano", "bell", "violin", "flute"}
}
