// Package progression generates chord progressions for ear training and
// renders them to frequencies with voice-led inversions.
package progression

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/audite/eartrain/model"
)

// Common progressions sampled in curated mode: diatonic triad standards plus
// seventh-chord variants and lines borrowing from the relative minor.
var commonProgressions = []model.Progression{
	{model.I, model.IV},
	{model.I, model.II},
	{model.I, model.IV, model.V},
	{model.I, model.V, model.IV},
	{model.I, model.VI, model.IV, model.V},
	{model.I, model.IV, model.I, model.V},
	{model.I, model.IV, model.V, model.I},
	{model.VI, model.IV, model.I, model.V},
	{model.I, model.V, model.VI, model.IV},
	{model.I, model.III, model.VI, model.IV, model.V},
	{model.I, model.II, model.V},
	{model.I, model.V, model.I},
	{model.I, model.IIm7, model.V7},
	{model.IMaj7, model.VIm7, model.IIm7, model.V7},
	{model.I, model.VIm7, model.IVMaj7, model.V7},
	{model.IMaj7, model.IVMaj7},
	{model.I, model.IIIAug, model.VIm7, model.IIm7, model.V7},
	{model.I, model.VIIm7b5, model.III7, model.VI},
	{model.I, model.III7, model.VI, model.IIm7, model.V7},
	{model.I, model.IV, model.IIIm7, model.VIm7},
}

// Preferred successors per chord, modeling functional harmony: dominants
// resolve to the tonic or deceptively to the submediant, the leading-tone
// chord resolves home, predominants move to dominants.
var successorTable = map[model.ChordSymbol][]model.ChordSymbol{
	model.I:       {model.IV, model.V, model.V7, model.VI, model.II, model.III, model.III7, model.VII, model.IIm7, model.IVMaj7, model.VIm7},
	model.II:      {model.V, model.V7, model.IV, model.VII},
	model.III:     {model.VI, model.III7, model.IV, model.I},
	model.IIIAug:  {model.VI, model.VIm7, model.IV, model.I},
	model.III7:    {model.VI, model.IV, model.I},
	model.IV:      {model.I, model.V, model.V7, model.II},
	model.V:       {model.I, model.VI, model.IV, model.VII},
	model.V7:      {model.I, model.VI, model.IV, model.VII},
	model.VI:      {model.IV, model.I, model.II, model.III, model.III7},
	model.VII:     {model.I},
	model.IMaj7:   {model.IIm7, model.IVMaj7, model.VIm7, model.V7},
	model.IIm7:    {model.V7, model.V, model.VIIm7b5},
	model.IIIm7:   {model.VIm7, model.IIm7, model.IV},
	model.IVMaj7:  {model.V7, model.IIm7, model.I, model.VIIm7b5},
	model.VIm7:    {model.IIm7, model.IVMaj7, model.V7},
	model.VIIm7b5: {model.I, model.III7},
}

// NoInversion marks lastTonicInversion as unset.
const NoInversion = -1

// maxWalkAttempts bounds regenerate-until-different so deterministic walks
// return the repeat instead of looping forever.
const maxWalkAttempts = 20

// Trainer generates progressions and checks answers for a single session.
// It is not safe for concurrent use: a server hosting many sessions must
// create one Trainer per session.
type Trainer struct {
	BaseFreq float64

	rng *rand.Rand

	current            model.Progression
	last               model.Progression
	userAnswer         model.Progression
	lastTonicInversion int

	deactivated map[model.ChordSymbol]bool
}

func NewTrainer() *Trainer {
	return &Trainer{
		BaseFreq:           440.0,
		rng:                rand.New(rand.NewSource(time.Now().UnixNano())),
		lastTonicInversion: NoInversion,
		deactivated:        make(map[model.ChordSymbol]bool),
	}
}

// Deactivate excludes the named chords from generated progressions, e.g. a
// user hiding sevenths until they can hear triads reliably. Unknown names
// surface ErrUnknownChord.
func (t *Trainer) Deactivate(names []string) error {
	m := make(map[model.ChordSymbol]bool)
	for _, name := range names {
		c, err := model.ParseChordSymbol(name)
		if err != nil {
			return err
		}
		m[c] = true
	}
	t.deactivated = m
	return nil
}

// DeactivatedNames returns the current exclusion list for persistence.
func (t *Trainer) DeactivatedNames() []string {
	var res []string
	for _, c := range model.AllChordSymbols {
		if t.deactivated[c] {
			res = append(res, c.String())
		}
	}
	return res
}

func (t *Trainer) active(pool []model.ChordSymbol) []model.ChordSymbol {
	res := make([]model.ChordSymbol, 0, len(pool))
	for _, c := range pool {
		if !t.deactivated[c] {
			res = append(res, c)
		}
	}
	return res
}

func (t *Trainer) containsDeactivated(p model.Progression) bool {
	for _, c := range p {
		if t.deactivated[c] {
			return true
		}
	}
	return false
}

// GenerateOptions control a single Generate call.
type GenerateOptions struct {
	// NumChords is the progression length; 0 picks randomly from [2,5].
	NumChords int
	// StartOnTonic seeds the walk with I instead of a random chord.
	StartOnTonic bool
	// UseCommonOnly samples from the curated library instead of walking
	// the successor table.
	UseCommonOnly bool
}

// Generate produces a progression distinct from the previous one and makes
// it the current exercise.
func (t *Trainer) Generate(opts GenerateOptions) (model.Progression, error) {
	if opts.UseCommonOnly {
		return t.generateCommon()
	}
	return t.generateWalk(opts)
}

func (t *Trainer) generateCommon() (model.Progression, error) {
	pool := make([]model.Progression, 0, len(commonProgressions))
	for _, p := range commonProgressions {
		if !t.containsDeactivated(p) {
			pool = append(pool, p)
		}
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: every curated progression uses a deactivated chord", model.ErrEmptyChoicePool)
	}

	p := pool[t.rng.Intn(len(pool))]
	for len(pool) > 1 && model.ProgressionsEqual(p, t.last) {
		p = pool[t.rng.Intn(len(pool))]
	}
	t.last = p
	t.current = p
	t.userAnswer = nil
	return p, nil
}

func (t *Trainer) generateWalk(opts GenerateOptions) (model.Progression, error) {
	numChords := opts.NumChords
	if numChords == 0 {
		numChords = 2 + t.rng.Intn(4)
	}

	seedPool := t.active(model.AllChordSymbols)
	if len(seedPool) == 0 {
		return nil, fmt.Errorf("%w: all chords deactivated", model.ErrEmptyChoicePool)
	}
	if opts.StartOnTonic && t.deactivated[model.I] {
		return nil, fmt.Errorf("%w: tonic start requested but I is deactivated", model.ErrEmptyChoicePool)
	}

	// Regenerate the whole sequence until it differs from last time. Some
	// configurations only admit one sequence (a single forced tonic chord,
	// or a vocabulary narrowed until every successor pool has one entry),
	// so after enough attempts the repeat is accepted rather than spun on.
	for attempt := 0; ; attempt++ {
		p := make(model.Progression, 0, numChords)
		if opts.StartOnTonic {
			p = append(p, model.I)
		} else {
			p = append(p, seedPool[t.rng.Intn(len(seedPool))])
		}

		for len(p) < numChords {
			next, err := t.chooseNext(p[len(p)-1])
			if err != nil {
				return nil, err
			}
			p = append(p, next)
		}

		if attempt >= maxWalkAttempts || !model.ProgressionsEqual(p, t.last) {
			t.last = p
			t.current = p
			t.userAnswer = nil
			return p, nil
		}
	}
}

func (t *Trainer) chooseNext(current model.ChordSymbol) (model.ChordSymbol, error) {
	pool, ok := successorTable[current]
	if !ok {
		pool = model.AllChordSymbols
	}
	pool = t.active(pool)
	if len(pool) == 0 {
		return 0, fmt.Errorf("%w: no active successor for %v", model.ErrEmptyChoicePool, current)
	}
	return pool[t.rng.Intn(len(pool))], nil
}

// SetProgression installs a saved custom progression as the current
// exercise, bypassing generation.
func (t *Trainer) SetProgression(p model.Progression) {
	t.current = p
	t.last = p
	t.userAnswer = nil
}

// Current returns the progression being trained, or nil before the first
// Generate.
func (t *Trainer) Current() model.Progression {
	return t.current
}

// SubmitAnswer records the guess and reports whether it matches the current
// progression exactly, in order.
func (t *Trainer) SubmitAnswer(guess model.Progression) (bool, error) {
	if t.current == nil {
		return false, model.ErrNoProgression
	}
	t.userAnswer = guess
	return model.ProgressionsEqual(guess, t.current), nil
}

// ParseProgression inverts FormatProgression, accepting "I - IV - V".
func ParseProgression(s string) (model.Progression, error) {
	var res model.Progression
	for _, part := range strings.Split(s, "-") {
		c, err := model.ParseChordSymbol(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, nil
}

// FormatProgression renders a progression like "I - IV - V".
func FormatProgression(p model.Progression) string {
	var res string
	for i, c := range p {
		if i > 0 {
			res += " - "
		}
		res += c.String()
	}
	return res
}
