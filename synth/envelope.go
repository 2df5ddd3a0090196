package synth

// Envelope evaluates a piecewise-linear ADSR curve over n samples: ramp 0
// to 1 over the attack, 1 down to the sustain level over the decay, flat
// until the release window opens, then down to 0 clamped at zero.
func Envelope(n, sampleRate int, env ADSR) []float64 {
	res := make([]float64, n)
	if n == 0 {
		return res
	}
	totalDuration := float64(n-1) / float64(sampleRate)

	decayEnd := env.Attack + env.Decay
	releaseStart := totalDuration - env.Release

	for i := range res {
		t := float64(i) / float64(sampleRate)
		switch {
		case t <= env.Attack:
			if env.Attack > 0 {
				res[i] = t / env.Attack
			} else {
				res[i] = 1
			}
		case t <= decayEnd:
			if env.Decay > 0 {
				res[i] = 1 - (1-env.Sustain)*((t-env.Attack)/env.Decay)
			} else {
				res[i] = env.Sustain
			}
		case t <= releaseStart:
			res[i] = env.Sustain
		default:
			if env.Release > 0 {
				v := env.Sustain * (1 - (t-releaseStart)/env.Release)
				if v < 0 {
					v = 0
				}
				res[i] = v
			}
		}
	}
	return res
}
