package synth

// ToPCM16 converts float samples in [-1,1] to 16-bit values, clamping
// anything outside the range.
func ToPCM16(samples []float64) []int {
	res := make([]int, len(samples))
	for i, v := range samples {
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		res[i] = int(v * 32767)
	}
	return res
}
